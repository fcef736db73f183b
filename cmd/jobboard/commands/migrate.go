package commands

import (
	"fmt"

	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/migrations"

	"github.com/spf13/cobra"
)

// MigrateCmd applies pending SQL migrations.
var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Apply V<version>__<name>.sql migrations in version order.

Migrations embedded in the binary are used unless --dir points at a directory
on disk. Editing an already applied file is reported as an error.`,
	RunE: runMigrate,
}

var migrateDirFlag string

func init() {
	MigrateCmd.Flags().StringVar(&migrateDirFlag, "dir", "", "Read migrations from this directory instead of the embedded set")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Sync() }()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, e.cfg.Database, e.log)
	if err != nil {
		return err
	}
	defer db.Close()

	runner := migration.Runner{FS: migrations.FS, Log: e.log}
	if migrateDirFlag != "" {
		runner = migration.Runner{Dir: migrateDirFlag, Log: e.log}
	}

	applied, err := runner.Run(ctx, db.SQLDB())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
	return nil
}
