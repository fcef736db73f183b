package main

import (
	"fmt"
	"os"

	"jobboard/cmd/jobboard/commands"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Job board maintenance commands",
	Long: `jobboard runs the maintenance tasks of the job board backend outside the HTTP server.

Examples:
  jobboard migrate                          # Apply pending SQL migrations
  jobboard seed --admin-email a@b.io        # Seed taxonomy and the admin account
  jobboard seed postings ./postings.json    # Load sample postings into the external table
  jobboard sync                             # Run one full job post sync
  jobboard sync --url https://x.io/jobs/1   # Sync a single posting
  jobboard cleanup                          # Delete expired postings`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(commands.MigrateCmd)
	rootCmd.AddCommand(commands.SeedCmd)
	rootCmd.AddCommand(commands.SyncCmd)
	rootCmd.AddCommand(commands.CleanupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
