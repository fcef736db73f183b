package repository

import (
	"context"
	"strconv"
	"strings"

	"jobboard/internal/database"
	"jobboard/internal/pkg/pagination"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// ErrNotFound is returned by every Find/Update/Delete that matched no row.
var ErrNotFound = errors.New("record not found")

// Array columns are read as comma-joined text so both the pgx pool and the
// database/sql adapter can scan them into plain strings.
func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitIDs(s string) ([]uuid.UUID, error) {
	parts := splitList(s)
	out := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(p)
		if err != nil {
			return nil, errors.Wrapf(err, "parse uuid %q", p)
		}
		out = append(out, id)
	}
	return out, nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil || *id == uuid.Nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func uuidPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

func notFoundIfNoRows(err error) error {
	if err == nil {
		return nil
	}
	if database.IsNoRows(err) {
		return ErrNotFound
	}
	return err
}

func affectedOrNotFound(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func count(ctx context.Context, q database.Querier, query string, args ...any) (int, error) {
	var n int64
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

// queryPage runs a COUNT then a LIMIT/OFFSET select built from the same
// FROM/WHERE tail. selectSQL must end right before LIMIT.
func queryPage[T any](
	ctx context.Context,
	db database.Querier,
	countSQL, selectSQL string,
	args []any,
	p pagination.Params,
	scan func(database.Rows) (T, error),
) (pagination.Page[T], error) {
	p = p.Normalize()

	total, err := count(ctx, db, countSQL, args...)
	if err != nil {
		return pagination.Page[T]{}, err
	}

	n := len(args)
	q := selectSQL + " LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2)
	rows, err := db.Query(ctx, q, append(append([]any{}, args...), p.Limit, p.Offset())...)
	if err != nil {
		return pagination.Page[T]{}, err
	}
	defer rows.Close()

	items := make([]T, 0, p.Limit)
	for rows.Next() {
		it, err := scan(rows)
		if err != nil {
			return pagination.Page[T]{}, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return pagination.Page[T]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

// argList numbers positional parameters while a query is assembled.
type argList struct {
	args []any
}

func (a *argList) add(v any) string {
	a.args = append(a.args, v)
	return "$" + strconv.Itoa(len(a.args))
}
