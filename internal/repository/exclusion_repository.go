package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/exclusion"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type ExclusionRepository interface {
	Sets(ctx context.Context, userID uuid.UUID) (exclusion.Sets, error)
	Exists(ctx context.Context, kind exclusion.Kind, userID, jobPostID uuid.UUID) (bool, error)
	Add(ctx context.Context, kind exclusion.Kind, userID, jobPostID uuid.UUID) (bool, error)
	Remove(ctx context.Context, kind exclusion.Kind, userID, jobPostID uuid.UUID) error
}

type PostgresExclusionRepository struct {
	db database.DB
}

func NewPostgresExclusionRepository(db database.DB) *PostgresExclusionRepository {
	return &PostgresExclusionRepository{db: db}
}

var errUnknownKind = errors.New("unknown exclusion kind")

// Sets loads the skipped, saved and applied posting ids of a user in one round trip.
func (r *PostgresExclusionRepository) Sets(ctx context.Context, userID uuid.UUID) (exclusion.Sets, error) {
	rows, err := r.db.Query(ctx,
		`SELECT 'skipped', job_posting_id FROM skipped_job_postings WHERE user_id = $1
		 UNION ALL
		 SELECT 'saved', job_posting_id FROM saved_job_postings WHERE user_id = $1
		 UNION ALL
		 SELECT 'applied', job_posting_id FROM applied_job_postings WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return exclusion.Sets{}, err
	}
	defer rows.Close()

	sets := exclusion.Sets{
		Skipped: exclusion.NewIDSet(),
		Saved:   exclusion.NewIDSet(),
		Applied: exclusion.NewIDSet(),
	}
	for rows.Next() {
		var (
			kind string
			id   uuid.UUID
		)
		if err := rows.Scan(&kind, &id); err != nil {
			return exclusion.Sets{}, err
		}
		switch exclusion.Kind(kind) {
		case exclusion.Skipped:
			sets.Skipped[id] = struct{}{}
		case exclusion.Saved:
			sets.Saved[id] = struct{}{}
		case exclusion.Applied:
			sets.Applied[id] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return exclusion.Sets{}, err
	}
	return sets, nil
}

func (r *PostgresExclusionRepository) Exists(ctx context.Context, kind exclusion.Kind, userID, jobPostID uuid.UUID) (bool, error) {
	if !kind.Valid() {
		return false, errUnknownKind
	}
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+kind.Table()+` WHERE user_id = $1 AND job_posting_id = $2)`,
		userID, jobPostID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Add records the posting in the given list. It reports false when the pair
// was already present.
func (r *PostgresExclusionRepository) Add(ctx context.Context, kind exclusion.Kind, userID, jobPostID uuid.UUID) (bool, error) {
	exists, err := r.Exists(ctx, kind, userID, jobPostID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	n, err := r.db.Exec(ctx,
		`INSERT INTO `+kind.Table()+` (id, user_id, job_posting_id) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, job_posting_id) DO NOTHING`,
		uuid.New(), userID, jobPostID,
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresExclusionRepository) Remove(ctx context.Context, kind exclusion.Kind, userID, jobPostID uuid.UUID) error {
	if !kind.Valid() {
		return errUnknownKind
	}
	return affectedOrNotFound(r.db.Exec(ctx,
		`DELETE FROM `+kind.Table()+` WHERE user_id = $1 AND job_posting_id = $2`,
		userID, jobPostID,
	))
}
