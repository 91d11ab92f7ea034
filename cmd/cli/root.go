package cli

import (
	"fmt"
	"os"

	"github.com/Callmevbdu/alx-files-manager/internal/version"

	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "files-manager",
		Short:   "Files Manager backend",
		Version: version.GetVersion(),
		Long: `Files Manager is a personal file-storage backend: users authenticate,
upload files and folders into a tree, control visibility, and thumbnails
are generated in the background by queue workers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewWorkerCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
