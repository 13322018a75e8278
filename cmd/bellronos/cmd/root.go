package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose     bool
	registryURL string
	packageDir  string
)

var rootInstallFlag string

// rootCmd runs bare invocations directly: `bellronos <file>` runs the
// file, and `bellronos <anything> --install <package>` installs the
// package, so neither mode requires naming a subcommand. The run and
// install subcommands cover the same ground with flags of their own.
var rootCmd = &cobra.Command{
	Use:   "bellronos [file]",
	Short: "Bellronos language interpreter and package installer",
	Long: `bellronos runs Bellronos source files and installs packages from
the configured registry.

This is a from-scratch Go implementation of the Bellronos language:
a lexer, recursive-descent parser, static type checker, and
tree-walking evaluator, with a standard library, package manager,
and foreign-language interop shim as external collaborators.`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newPackageManager()
		if err != nil {
			return printAndReturn(err)
		}
		if rootInstallFlag != "" {
			return printAndReturn(runInstall(mgr, rootInstallFlag))
		}
		if len(args) == 1 {
			return runFileAndReport(mgr, args[0])
		}
		return cmd.Help()
	},
}

// Execute runs the root command, exiting non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().StringVar(&rootInstallFlag, "install", "", "install the named package instead of running a file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&registryURL, "registry", "", "override the package registry base URL")
	rootCmd.PersistentFlags().StringVar(&packageDir, "package-dir", defaultPackageDir(), "directory installed packages are stored under")
}

func defaultPackageDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bellronos/packages"
	}
	return home + "/.bellronos/packages"
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
}
