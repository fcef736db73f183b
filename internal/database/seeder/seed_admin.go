package seeder

import (
	"context"
	"strings"

	"jobboard/internal/database"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminSeeder creates the admin account, or promotes an existing user with
// the same email. The password of an existing account is left unchanged.
type AdminSeeder struct {
	Email    string
	Password string
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" {
		return errors.New("admin email is required")
	}
	if len(s.Password) < 8 {
		return errors.New("admin password must be at least 8 characters")
	}
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "role"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO users (id, email, password_hash, role) VALUES ($1, $2, $3, 'admin')
		 ON CONFLICT (email) DO UPDATE SET role = 'admin', updated_at = now()`,
		uuid.New(),
		email,
		string(hash),
	)
	return err
}
