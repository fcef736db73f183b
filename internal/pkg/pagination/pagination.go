package pagination

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params are the limit/page query parameters. Pages are 1-based.
type Params struct {
	Limit int
	Page  int
}

func (p Params) Normalize() Params {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	return p
}

func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

type Meta struct {
	ItemCount    int `json:"itemCount"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

type Page[T any] struct {
	Items []T `json:"items"`
	Meta  Meta `json:"meta"`
}

func TotalPages(totalItems, limit int) int {
	if limit <= 0 || totalItems <= 0 {
		return 0
	}
	return (totalItems + limit - 1) / limit
}

func NewPage[T any](items []T, totalItems int, p Params) Page[T] {
	p = p.Normalize()
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Meta: Meta{
			ItemCount:    len(items),
			TotalItems:   totalItems,
			ItemsPerPage: p.Limit,
			TotalPages:   TotalPages(totalItems, p.Limit),
			CurrentPage:  p.Page,
		},
	}
}

// Map converts the items of a page while keeping its meta.
func Map[T, U any](in Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(in.Items))
	for _, it := range in.Items {
		out = append(out, fn(it))
	}
	return Page[U]{Items: out, Meta: in.Meta}
}
