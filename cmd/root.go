package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scanless",
		Short: "Network API over physical document scanners",
		Long: `Scanless exposes attached document scanners over HTTP.

It enumerates SANE scan devices, triggers captures, accumulates scanned
pages per session, and exports a session as one searchable PDF by running
OCR over every page and merging the results.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newDevicesCmd())

	return cmd
}
