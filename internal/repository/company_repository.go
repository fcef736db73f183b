package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/company"
	"jobboard/internal/pkg/pagination"

	"github.com/google/uuid"
)

type CompanyInput struct {
	Name        string
	Website     *string
	Description *string
	Size        *string
}

type CompanyRepository interface {
	List(ctx context.Context, p pagination.Params) (pagination.Page[company.Company], error)
	FindByID(ctx context.Context, id uuid.UUID) (company.Company, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, in CompanyInput) (company.Company, error)
	Update(ctx context.Context, id uuid.UUID, in CompanyInput) (company.Company, error)
	SetLogoFileKey(ctx context.Context, id uuid.UUID, key *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companyColumns = `id, name, website, description, size, logo_file_key, created_at, updated_at`

func scanCompany(row database.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(&c.ID, &c.Name, &c.Website, &c.Description, &c.Size, &c.LogoFileKey, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func scanCompanyRows(rows database.Rows) (company.Company, error) {
	return scanCompany(rows)
}

func (r *PostgresCompanyRepository) List(ctx context.Context, p pagination.Params) (pagination.Page[company.Company], error) {
	return queryPage(ctx, r.db,
		`SELECT COUNT(*) FROM companies`,
		`SELECT `+companyColumns+` FROM companies ORDER BY name, id`,
		nil, p, scanCompanyRows,
	)
}

func (r *PostgresCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	return c, notFoundIfNoRows(err)
}

func (r *PostgresCompanyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, in CompanyInput) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx,
		`INSERT INTO companies (id, name, website, description, size)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+companyColumns,
		uuid.New(), in.Name, in.Website, in.Description, in.Size,
	))
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, id uuid.UUID, in CompanyInput) (company.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx,
		`UPDATE companies SET name = $2, website = $3, description = $4, size = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING `+companyColumns,
		id, in.Name, in.Website, in.Description, in.Size,
	))
	return c, notFoundIfNoRows(err)
}

func (r *PostgresCompanyRepository) SetLogoFileKey(ctx context.Context, id uuid.UUID, key *string) error {
	return affectedOrNotFound(r.db.Exec(ctx,
		`UPDATE companies SET logo_file_key = $2, updated_at = now() WHERE id = $1`, id, key))
}

func (r *PostgresCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id))
}
