package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "tio",
	Short: "tio — CLI client for Tenable.io",
	Long: `tio is a command-line client for the Tenable.io vulnerability
scanning platform. It lists configured scans and their history, exports
scan results to disk, and reports server status.

API keys are read from ~/.tio/client.json and prompted for on first use.
NOTE: keys are stored unencrypted on the local drive.`,
	// Any unrecognized command falls through to the root, which prints
	// usage and exits cleanly, matching the original tool.
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(versionCmd)
}
