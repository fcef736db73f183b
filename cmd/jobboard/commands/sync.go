package commands

import (
	"fmt"

	"jobboard/internal/app"

	"github.com/spf13/cobra"
)

// SyncCmd runs the external posting synchronizer once.
var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize job posts from the external table",
	Long: `Run one full pass of the job post synchronizer, or pull a single posting
with --url. A full pass deletes local postings that are no longer present
externally unless a page fetch failed.`,
	RunE: runSync,
}

var syncURLFlag string

func init() {
	SyncCmd.Flags().StringVar(&syncURLFlag, "url", "", "Synchronize only the posting with this url")
}

func runSync(cmd *cobra.Command, _ []string) error {
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

	if syncURLFlag != "" {
		created, err := c.Usecases.Sync.SyncURL(ctx, syncURLFlag)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", syncURLFlag)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", syncURLFlag)
		}
		return nil
	}

	report, err := c.Usecases.Sync.Sync(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "pages=%d seen=%d created=%d updated=%d failed=%d deleted=%d total=%d\n",
		report.Pages, report.Seen, report.Created, report.Updated, report.Failed, report.Deleted, report.Total)
	if report.StaleCleanupSkipped {
		fmt.Fprintln(cmd.OutOrStdout(), "stale cleanup skipped: a page could not be fetched")
	}
	return nil
}
