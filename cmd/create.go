package cmd

import (
	"github.com/spf13/cobra"

	"containr/container"
)

var createCmd = &cobra.Command{
	Use:   "create <container-id>",
	Short: "Create a container",
	Long: `Create a container from a bundle directory.
The container ends in the "created" state, waiting for 'start'.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

var (
	createBundle        string
	createPidFile       string
	createConsoleSocket string
)

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVarP(&createBundle, "bundle", "b", ".", "path to the root of the bundle directory")
	createCmd.Flags().StringVar(&createPidFile, "pid-file", "", "path to write the container pid to")
	createCmd.Flags().StringVar(&createConsoleSocket, "console-socket", "", "path to a socket for receiving the console file descriptor")
}

func runCreate(cmd *cobra.Command, args []string) error {
	return container.Create(args[0], createBundle, container.CreateOptions{
		PidFile:       createPidFile,
		ConsoleSocket: createConsoleSocket,
	})
}
