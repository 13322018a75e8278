package cmd

import (
	"fmt"

	"github.com/Architecture-Mechanism/bellronos/internal/packagemgr"
	"github.com/spf13/cobra"
)

// installCmd implements `bellronos install <package>` as a named
// subcommand (the --install flag form is also accepted on runCmd; see
// run.go).
var installCmd = &cobra.Command{
	Use:   "install <package>",
	Short: "Install a package from the registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		mgr, err := newPackageManager()
		if err != nil {
			return printAndReturn(err)
		}
		return printAndReturn(runInstall(mgr, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}

// runInstall installs the named package and prints the success line.
func runInstall(mgr *packagemgr.Manager, name string) error {
	if err := mgr.Install(name); err != nil {
		return err
	}
	fmt.Printf("Package %s installed successfully\n", name)
	return nil
}
