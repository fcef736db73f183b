// Package seeder loads reference data (regions, industries, roles) and an
// optional admin account. Every seeder is idempotent.
package seeder

import (
	"context"

	"jobboard/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
