package seeder

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/taxonomy"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// NamedSeeder inserts names into a table with (id, name) columns.
type NamedSeeder struct {
	Table string
	Names []string
}

func (s NamedSeeder) Name() string { return s.Table }

func (s NamedSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, s.Table, "id", "name", "created_at"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Querier) error {
		for _, name := range s.Names {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO `+s.Table+` (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
				uuid.New(),
				name,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// RegionsSeeder inserts regions with the currency of the static region table.
type RegionsSeeder struct {
	Names []string
}

func (RegionsSeeder) Name() string { return "regions" }

func (s RegionsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "regions", "id", "name", "currency", "created_at"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Querier) error {
		for _, name := range s.Names {
			currency, ok := taxonomy.CurrencyForRegion(name)
			if !ok {
				return errors.Newf("no currency known for region %q", name)
			}
			_, err := tx.Exec(
				ctx,
				`INSERT INTO regions (id, name, currency) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`,
				uuid.New(),
				name,
				currency,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
