package repository

import (
	"context"
	"strings"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/taxonomy"
	"jobboard/internal/pkg/pagination"

	"github.com/google/uuid"
)

// NamedRepository serves the reference tables that only carry a unique name:
// industries and roles.
type NamedRepository[T any] interface {
	List(ctx context.Context, p pagination.Params) (pagination.Page[T], error)
	FindByID(ctx context.Context, id uuid.UUID) (T, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]T, error)
	Create(ctx context.Context, name string) (T, error)
	Update(ctx context.Context, id uuid.UUID, name string) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresNamedRepository[T any] struct {
	db    database.DB
	table string
	build func(id uuid.UUID, name string, createdAt time.Time) T
}

func NewPostgresIndustryRepository(db database.DB) *PostgresNamedRepository[taxonomy.Industry] {
	return &PostgresNamedRepository[taxonomy.Industry]{
		db:    db,
		table: "industries",
		build: func(id uuid.UUID, name string, createdAt time.Time) taxonomy.Industry {
			return taxonomy.Industry{ID: id, Name: name, CreatedAt: createdAt}
		},
	}
}

func NewPostgresRoleRepository(db database.DB) *PostgresNamedRepository[taxonomy.JobRole] {
	return &PostgresNamedRepository[taxonomy.JobRole]{
		db:    db,
		table: "roles",
		build: func(id uuid.UUID, name string, createdAt time.Time) taxonomy.JobRole {
			return taxonomy.JobRole{ID: id, Name: name, CreatedAt: createdAt}
		},
	}
}

func (r *PostgresNamedRepository[T]) scan(row database.Row) (T, error) {
	var (
		id        uuid.UUID
		name      string
		createdAt time.Time
	)
	if err := row.Scan(&id, &name, &createdAt); err != nil {
		var zero T
		return zero, err
	}
	return r.build(id, name, createdAt), nil
}

func (r *PostgresNamedRepository[T]) scanRows(rows database.Rows) (T, error) {
	return r.scan(rows)
}

func (r *PostgresNamedRepository[T]) List(ctx context.Context, p pagination.Params) (pagination.Page[T], error) {
	return queryPage(ctx, r.db,
		`SELECT COUNT(*) FROM `+r.table,
		`SELECT id, name, created_at FROM `+r.table+` ORDER BY name, id`,
		nil, p, r.scanRows,
	)
}

func (r *PostgresNamedRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (T, error) {
	v, err := r.scan(r.db.QueryRow(ctx, `SELECT id, name, created_at FROM `+r.table+` WHERE id = $1`, id))
	return v, notFoundIfNoRows(err)
}

// FindByIDs returns the rows that exist; callers compare lengths to detect
// unknown ids.
func (r *PostgresNamedRepository[T]) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_at FROM `+r.table+` WHERE id = ANY($1::text[]::uuid[]) ORDER BY name`,
		idStrings(ids),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0, len(ids))
	for rows.Next() {
		v, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PostgresNamedRepository[T]) Create(ctx context.Context, name string) (T, error) {
	return r.scan(r.db.QueryRow(ctx,
		`INSERT INTO `+r.table+` (id, name) VALUES ($1, $2) RETURNING id, name, created_at`,
		uuid.New(), strings.TrimSpace(name),
	))
}

func (r *PostgresNamedRepository[T]) Update(ctx context.Context, id uuid.UUID, name string) (T, error) {
	v, err := r.scan(r.db.QueryRow(ctx,
		`UPDATE `+r.table+` SET name = $2 WHERE id = $1 RETURNING id, name, created_at`,
		id, strings.TrimSpace(name),
	))
	return v, notFoundIfNoRows(err)
}

func (r *PostgresNamedRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, id))
}

type RegionRepository interface {
	List(ctx context.Context, p pagination.Params) (pagination.Page[taxonomy.Region], error)
	FindByID(ctx context.Context, id uuid.UUID) (taxonomy.Region, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]taxonomy.Region, error)
	Create(ctx context.Context, name, currency string) (taxonomy.Region, error)
	Update(ctx context.Context, id uuid.UUID, name, currency string) (taxonomy.Region, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresRegionRepository struct {
	db database.DB
}

func NewPostgresRegionRepository(db database.DB) *PostgresRegionRepository {
	return &PostgresRegionRepository{db: db}
}

const regionColumns = `id, name, currency, created_at`

func scanRegion(row database.Row) (taxonomy.Region, error) {
	var rg taxonomy.Region
	if err := row.Scan(&rg.ID, &rg.Name, &rg.Currency, &rg.CreatedAt); err != nil {
		return taxonomy.Region{}, err
	}
	rg.Currency = strings.TrimSpace(rg.Currency)
	return rg, nil
}

func scanRegionRows(rows database.Rows) (taxonomy.Region, error) {
	return scanRegion(rows)
}

func (r *PostgresRegionRepository) List(ctx context.Context, p pagination.Params) (pagination.Page[taxonomy.Region], error) {
	return queryPage(ctx, r.db,
		`SELECT COUNT(*) FROM regions`,
		`SELECT `+regionColumns+` FROM regions ORDER BY name, id`,
		nil, p, scanRegionRows,
	)
}

func (r *PostgresRegionRepository) FindByID(ctx context.Context, id uuid.UUID) (taxonomy.Region, error) {
	rg, err := scanRegion(r.db.QueryRow(ctx, `SELECT `+regionColumns+` FROM regions WHERE id = $1`, id))
	return rg, notFoundIfNoRows(err)
}

// FindByIDs keeps the order of ids so "first region with a known currency"
// is deterministic for callers.
func (r *PostgresRegionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]taxonomy.Region, error) {
	if len(ids) == 0 {
		return []taxonomy.Region{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+regionColumns+` FROM regions WHERE id = ANY($1::text[]::uuid[])`,
		idStrings(ids),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]taxonomy.Region, len(ids))
	for rows.Next() {
		rg, err := scanRegion(rows)
		if err != nil {
			return nil, err
		}
		byID[rg.ID] = rg
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]taxonomy.Region, 0, len(byID))
	for _, id := range ids {
		if rg, ok := byID[id]; ok {
			out = append(out, rg)
			delete(byID, id)
		}
	}
	return out, nil
}

func (r *PostgresRegionRepository) Create(ctx context.Context, name, currency string) (taxonomy.Region, error) {
	return scanRegion(r.db.QueryRow(ctx,
		`INSERT INTO regions (id, name, currency) VALUES ($1, $2, $3) RETURNING `+regionColumns,
		uuid.New(), strings.TrimSpace(name), currency,
	))
}

func (r *PostgresRegionRepository) Update(ctx context.Context, id uuid.UUID, name, currency string) (taxonomy.Region, error) {
	rg, err := scanRegion(r.db.QueryRow(ctx,
		`UPDATE regions SET name = $2, currency = $3 WHERE id = $1 RETURNING `+regionColumns,
		id, strings.TrimSpace(name), currency,
	))
	return rg, notFoundIfNoRows(err)
}

func (r *PostgresRegionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM regions WHERE id = $1`, id))
}
