package cmd

import (
	"fmt"
	"os"

	"github.com/Architecture-Mechanism/bellronos/internal/bellerrors"
	"github.com/Architecture-Mechanism/bellronos/internal/packagemgr"
	"github.com/Architecture-Mechanism/bellronos/pkg/bellronos"
	"github.com/spf13/cobra"
)

var runInstallFlag string

// runCmd implements `bellronos run <file>` and, via its own --install
// flag, the `bellronos run <anything> --install <package>` invocation
// form: a run argument is accepted but ignored once --install names a
// package.
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Bellronos source file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runInstallFlag, "install", "", "install the named package instead of running a file")
}

func runRun(_ *cobra.Command, args []string) error {
	mgr, err := newPackageManager()
	if err != nil {
		return printAndReturn(err)
	}

	if runInstallFlag != "" {
		return printAndReturn(runInstall(mgr, runInstallFlag))
	}

	if len(args) != 1 {
		return printAndReturn(bellerrors.New(bellerrors.IO, "usage: bellronos run <filename>"))
	}
	return runFileAndReport(mgr, args[0])
}

func newPackageManager() (*packagemgr.Manager, error) {
	var opts []packagemgr.Option
	if registryURL != "" {
		opts = append(opts, packagemgr.WithRegistryBaseURL(registryURL))
	}
	return packagemgr.New(packageDir, opts...)
}

// runFileAndReport reads and runs filename. Verbose mode upgrades the
// plain "<kind> error: <detail>" line to the full caret-annotated
// diagnostic when the error carries a source position.
func runFileAndReport(mgr *packagemgr.Manager, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		wrapped := bellerrors.New(bellerrors.IO, "failed to read file %s: %s", filename, err.Error())
		exitWithError("%s", wrapped.Error())
		return wrapped
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[running %s]\n", filename)
	}

	engine := bellronos.New(
		bellronos.WithOutput(os.Stdout),
		bellronos.WithPackageManager(mgr),
	)
	_, runErr := engine.Run(string(content), filename)
	if runErr == nil {
		return nil
	}

	if be, ok := runErr.(*bellerrors.BellronosError); ok && verbose {
		exitWithError("%s", be.Format(string(content), true))
	} else {
		exitWithError("%s", runErr.Error())
	}
	return runErr
}

// printAndReturn prints the "<kind> error: <detail>" line on failure
// and returns the error unchanged so Execute can set a non-zero exit
// code.
func printAndReturn(err error) error {
	if err == nil {
		return nil
	}
	exitWithError("%s", err.Error())
	return err
}
