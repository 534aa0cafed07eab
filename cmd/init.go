package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"containr/logging"
	"containr/sandbox"
)

// sandboxInitCmd is the re-exec target the facade's create() invokes via
// os/exec with CLONE_NEWNS set. It is never meant to be typed by a user.
var sandboxInitCmd = &cobra.Command{
	Use:    "sandbox-init",
	Short:  "Run the sandbox's in-namespace lifecycle (internal use)",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runSandboxInit,
}

func init() {
	rootCmd.AddCommand(sandboxInitCmd)
}

func runSandboxInit(cmd *cobra.Command, args []string) error {
	if err := sandbox.Execute(); err != nil {
		logging.Error("sandbox execute failed", "error", err)
		os.Exit(1)
	}
	return nil
}
