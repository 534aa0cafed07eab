package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"containr/container"
	"containr/ctrerrors"
)

var killCmd = &cobra.Command{
	Use:   "kill <container-id> <signal-number>",
	Short: "Send a signal to a container",
	Args:  cobra.ExactArgs(2),
	RunE:  runKill,
}

func init() {
	rootCmd.AddCommand(killCmd)
}

func runKill(cmd *cobra.Command, args []string) error {
	sig, err := strconv.Atoi(args[1])
	if err != nil {
		return ctrerrors.WrapWithDetail(err, ctrerrors.Precondition, "kill", "signal must be an integer")
	}
	return container.Kill(args[0], sig)
}
