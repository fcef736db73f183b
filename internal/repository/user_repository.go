package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/pagination"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (user.User, error)
	FindByEmail(ctx context.Context, email string) (user.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, p pagination.Params) (pagination.Page[user.User], error)
	UpdateProfile(ctx context.Context, id uuid.UUID, fullName *string) (user.User, error)
	SetTFA(ctx context.Context, id uuid.UUID, secret *string, enabled bool) error
	LinkGoogle(ctx context.Context, id uuid.UUID, googleID string) error
	SetCVFileKey(ctx context.Context, id uuid.UUID, key *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, COALESCE(password_hash, ''), role, full_name, tfa_secret, tfa_enabled,
	google_id, cv_file_key, created_at, updated_at`

func scanUser(row database.Row) (user.User, error) {
	var (
		u    user.User
		role string
	)
	if err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &role, &u.FullName, &u.TFASecret, &u.TFAEnabled,
		&u.GoogleID, &u.CVFileKey, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}

func scanUserRows(rows database.Rows) (user.User, error) {
	return scanUser(rows)
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if !u.Role.Valid() {
		u.Role = user.RoleUser
	}
	var hash *string
	if u.PasswordHash != "" {
		hash = &u.PasswordHash
	}
	created, err := scanUser(r.db.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, role, full_name, google_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		u.ID, u.Email, hash, string(u.Role), u.FullName, u.GoogleID,
	))
	if err != nil {
		return user.User{}, err
	}
	return created, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	return u, notFoundIfNoRows(err)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	return u, notFoundIfNoRows(err)
}

func (r *PostgresUserRepository) FindByGoogleID(ctx context.Context, googleID string) (user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID))
	return u, notFoundIfNoRows(err)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) List(ctx context.Context, p pagination.Params) (pagination.Page[user.User], error) {
	return queryPage(ctx, r.db,
		`SELECT COUNT(*) FROM users`,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id`,
		nil, p, scanUserRows,
	)
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fullName *string) (user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`UPDATE users SET full_name = $2, updated_at = now() WHERE id = $1 RETURNING `+userColumns,
		id, fullName,
	))
	return u, notFoundIfNoRows(err)
}

func (r *PostgresUserRepository) SetTFA(ctx context.Context, id uuid.UUID, secret *string, enabled bool) error {
	return affectedOrNotFound(r.db.Exec(ctx,
		`UPDATE users SET tfa_secret = $2, tfa_enabled = $3, updated_at = now() WHERE id = $1`,
		id, secret, enabled,
	))
}

func (r *PostgresUserRepository) LinkGoogle(ctx context.Context, id uuid.UUID, googleID string) error {
	return affectedOrNotFound(r.db.Exec(ctx,
		`UPDATE users SET google_id = $2, updated_at = now() WHERE id = $1`,
		id, googleID,
	))
}

func (r *PostgresUserRepository) SetCVFileKey(ctx context.Context, id uuid.UUID, key *string) error {
	return affectedOrNotFound(r.db.Exec(ctx,
		`UPDATE users SET cv_file_key = $2, updated_at = now() WHERE id = $1`,
		id, key,
	))
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id))
}
