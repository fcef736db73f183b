package matching

import (
	"context"

	"jobboard/internal/pkg/pagination"
)

// FetchFunc loads one 1-based page of candidates.
type FetchFunc[T any] func(ctx context.Context, page int) (pagination.Page[T], error)

// FilterPage keeps the items accepted by keep and rewrites itemCount.
func FilterPage[T any](p pagination.Page[T], keep func(T) bool) pagination.Page[T] {
	out := make([]T, 0, len(p.Items))
	for _, it := range p.Items {
		if keep(it) {
			out = append(out, it)
		}
	}
	p.Items = out
	p.Meta.ItemCount = len(out)
	return p
}

// AdvancePages fetches from page start onwards until a page has at least one
// item after filtering. It stops once the page index passes the total page
// count or maxScan pages were fetched (maxScan <= 0 means no ceiling), and
// then returns the last fetched page, which may be empty.
func AdvancePages[T any](ctx context.Context, start, maxScan int, fetch FetchFunc[T], keep func(T) bool) (pagination.Page[T], error) {
	if start < 1 {
		start = 1
	}

	var last pagination.Page[T]
	for page, scanned := start, 0; ; page++ {
		if err := ctx.Err(); err != nil {
			return pagination.Page[T]{}, err
		}

		fetched, err := fetch(ctx, page)
		if err != nil {
			return pagination.Page[T]{}, err
		}
		scanned++

		last = FilterPage(fetched, keep)
		if len(last.Items) > 0 {
			return last, nil
		}
		if page+1 > fetched.Meta.TotalPages {
			return last, nil
		}
		if maxScan > 0 && scanned >= maxScan {
			return last, nil
		}
	}
}
