package usecase

import (
	"jobboard/internal/database"
	"jobboard/internal/repository"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("dependency unavailable")
)

// notFound marks a domain sentinel so handlers can answer 404 with its text.
func notFound(err error) error {
	return errors.Mark(err, ErrNotFound)
}

// translate maps repository sentinels onto usecase ones. nf replaces
// repository.ErrNotFound so the caller sees which entity was missing.
func translate(err error, nf error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound(nf)
	case errors.Is(err, database.ErrDuplicate), errors.Is(err, database.ErrForeignKey):
		return errors.Mark(err, ErrConflict)
	default:
		return err
	}
}
