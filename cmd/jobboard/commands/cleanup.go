package commands

import (
	"fmt"

	"jobboard/internal/app"

	"github.com/spf13/cobra"
)

// CleanupCmd deletes expired postings once.
var CleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete job posts past their expiration",
	RunE:  runCleanup,
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Sync() }()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	c, err := app.NewContainer(e.cfg, e.log)
	if err != nil {
		return err
	}
	defer c.Close()

	res, err := c.Usecases.Cleanup.Run(ctx)
	if err != nil {
		return err
	}
	if !res.Ran {
		fmt.Fprintln(cmd.OutOrStdout(), "another instance holds the cleanup lock, nothing done")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d expired posting(s)\n", res.Deleted)
	return nil
}
