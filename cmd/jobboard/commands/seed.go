package commands

import (
	"encoding/json"
	"fmt"
	"os"

	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/database/seeder"
	"jobboard/internal/domain/jobpost"
	"jobboard/internal/infrastructure/dynamo"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// SeedCmd loads reference data, and optionally the admin account.
var SeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed regions, industries, roles and the admin account",
	Long: `Insert the default regions, industries and job roles. Existing rows are kept.

With --admin-email the account is created, or promoted to admin when a user
with that email already exists.`,
	RunE: runSeed,
}

var seedPostingsCmd = &cobra.Command{
	Use:   "postings FILE",
	Short: "Write sample postings from a JSON file into the external table",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeedPostings,
}

var (
	adminEmailFlag    string
	adminPasswordFlag string
)

func init() {
	SeedCmd.AddCommand(seedPostingsCmd)
	SeedCmd.Flags().StringVar(&adminEmailFlag, "admin-email", "", "Email of the admin account to create or promote")
	SeedCmd.Flags().StringVar(&adminPasswordFlag, "admin-password", "", "Password for a newly created admin account")
}

func runSeed(cmd *cobra.Command, _ []string) error {
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

	seeders := seeder.Defaults()
	if adminEmailFlag != "" {
		seeders = append(seeders, seeder.AdminSeeder{Email: adminEmailFlag, Password: adminPasswordFlag})
	}
	return seeder.Runner{Seeders: seeders, Log: e.log}.Run(ctx, db)
}

func runSeedPostings(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Sync() }()

	postings, err := readPostings(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	awsCfg, err := dynamo.LoadAWSConfig(ctx, e.cfg.AWS)
	if err != nil {
		return errors.Wrap(err, "load aws config")
	}
	source := dynamo.NewSource(dynamo.NewClient(awsCfg, e.cfg.AWS.Endpoint))

	for _, p := range postings {
		if err := source.PutItem(ctx, e.cfg.Sync.DynamoTable, p); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d posting(s) to %s\n", len(postings), e.cfg.Sync.DynamoTable)
	return nil
}

// readPostings decodes a JSON array of postings. Keys follow the external
// attribute names, e.g. "url", "contractType", "roleIds".
func readPostings(path string) ([]jobpost.ExternalPosting, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	var postings []jobpost.ExternalPosting
	if err := json.Unmarshal(raw, &postings); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	for i, p := range postings {
		if p.URL == "" {
			return nil, errors.Newf("posting %d has no url", i)
		}
	}
	return postings, nil
}
