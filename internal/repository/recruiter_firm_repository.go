package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/recruiter"
	"jobboard/internal/pkg/pagination"

	"github.com/google/uuid"
)

type RecruiterFirmInput struct {
	Name        string
	Website     *string
	Description *string
}

type RecruiterFirmRepository interface {
	List(ctx context.Context, p pagination.Params) (pagination.Page[recruiter.Firm], error)
	FindByID(ctx context.Context, id uuid.UUID) (recruiter.Firm, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, in RecruiterFirmInput) (recruiter.Firm, error)
	Update(ctx context.Context, id uuid.UUID, in RecruiterFirmInput) (recruiter.Firm, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresRecruiterFirmRepository struct {
	db database.DB
}

func NewPostgresRecruiterFirmRepository(db database.DB) *PostgresRecruiterFirmRepository {
	return &PostgresRecruiterFirmRepository{db: db}
}

const recruiterFirmColumns = `id, name, website, description, created_at, updated_at`

func scanRecruiterFirm(row database.Row) (recruiter.Firm, error) {
	var f recruiter.Firm
	err := row.Scan(&f.ID, &f.Name, &f.Website, &f.Description, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func scanRecruiterFirmRows(rows database.Rows) (recruiter.Firm, error) {
	return scanRecruiterFirm(rows)
}

func (r *PostgresRecruiterFirmRepository) List(ctx context.Context, p pagination.Params) (pagination.Page[recruiter.Firm], error) {
	return queryPage(ctx, r.db,
		`SELECT COUNT(*) FROM recruiter_firms`,
		`SELECT `+recruiterFirmColumns+` FROM recruiter_firms ORDER BY name, id`,
		nil, p, scanRecruiterFirmRows,
	)
}

func (r *PostgresRecruiterFirmRepository) FindByID(ctx context.Context, id uuid.UUID) (recruiter.Firm, error) {
	f, err := scanRecruiterFirm(r.db.QueryRow(ctx, `SELECT `+recruiterFirmColumns+` FROM recruiter_firms WHERE id = $1`, id))
	return f, notFoundIfNoRows(err)
}

func (r *PostgresRecruiterFirmRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM recruiter_firms WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRecruiterFirmRepository) Create(ctx context.Context, in RecruiterFirmInput) (recruiter.Firm, error) {
	return scanRecruiterFirm(r.db.QueryRow(ctx,
		`INSERT INTO recruiter_firms (id, name, website, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+recruiterFirmColumns,
		uuid.New(), in.Name, in.Website, in.Description,
	))
}

func (r *PostgresRecruiterFirmRepository) Update(ctx context.Context, id uuid.UUID, in RecruiterFirmInput) (recruiter.Firm, error) {
	f, err := scanRecruiterFirm(r.db.QueryRow(ctx,
		`UPDATE recruiter_firms SET name = $2, website = $3, description = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING `+recruiterFirmColumns,
		id, in.Name, in.Website, in.Description,
	))
	return f, notFoundIfNoRows(err)
}

func (r *PostgresRecruiterFirmRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM recruiter_firms WHERE id = $1`, id))
}
