package seeder

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/pkg/logger"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
	Log     *zap.SugaredLogger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	log := logger.Component(r.Log, "seeder")
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return errors.Wrapf(err, "seed %s", s.Name())
		}
		log.Infow("seeded", "seeder", s.Name())
	}
	return nil
}
