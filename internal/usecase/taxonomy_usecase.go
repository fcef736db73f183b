package usecase

import (
	"context"
	"strings"

	"jobboard/internal/domain/taxonomy"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrIndustryNotFound = errors.New("industry not found")
	ErrRoleNotFound     = errors.New("role not found")
	ErrRegionNotFound   = errors.New("region not found")
)

// NamedUsecase serves the name-only reference tables (industries, roles).
type NamedUsecase[T any] struct {
	repo     repository.NamedRepository[T]
	notFound error
}

func NewIndustryUsecase(repo repository.NamedRepository[taxonomy.Industry]) *NamedUsecase[taxonomy.Industry] {
	return &NamedUsecase[taxonomy.Industry]{repo: repo, notFound: ErrIndustryNotFound}
}

func NewRoleUsecase(repo repository.NamedRepository[taxonomy.JobRole]) *NamedUsecase[taxonomy.JobRole] {
	return &NamedUsecase[taxonomy.JobRole]{repo: repo, notFound: ErrRoleNotFound}
}

func (u *NamedUsecase[T]) List(ctx context.Context, p pagination.Params) (pagination.Page[T], error) {
	return u.repo.List(ctx, p)
}

func (u *NamedUsecase[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	v, err := u.repo.FindByID(ctx, id)
	return v, translate(err, u.notFound)
}

func (u *NamedUsecase[T]) Create(ctx context.Context, name string) (T, error) {
	name, err := requireName(name)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := u.repo.Create(ctx, name)
	return v, translate(err, u.notFound)
}

func (u *NamedUsecase[T]) Update(ctx context.Context, id uuid.UUID, name string) (T, error) {
	name, err := requireName(name)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := u.repo.Update(ctx, id, name)
	return v, translate(err, u.notFound)
}

func (u *NamedUsecase[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(u.repo.Delete(ctx, id), u.notFound)
}

type RegionUsecase struct {
	regions repository.RegionRepository
}

func NewRegionUsecase(regions repository.RegionRepository) *RegionUsecase {
	return &RegionUsecase{regions: regions}
}

func (u *RegionUsecase) List(ctx context.Context, p pagination.Params) (pagination.Page[taxonomy.Region], error) {
	return u.regions.List(ctx, p)
}

func (u *RegionUsecase) Get(ctx context.Context, id uuid.UUID) (taxonomy.Region, error) {
	r, err := u.regions.FindByID(ctx, id)
	return r, translate(err, ErrRegionNotFound)
}

func (u *RegionUsecase) Create(ctx context.Context, name, currency string) (taxonomy.Region, error) {
	name, currency, err := validateRegion(name, currency)
	if err != nil {
		return taxonomy.Region{}, err
	}
	r, err := u.regions.Create(ctx, name, currency)
	return r, translate(err, ErrRegionNotFound)
}

func (u *RegionUsecase) Update(ctx context.Context, id uuid.UUID, name, currency string) (taxonomy.Region, error) {
	name, currency, err := validateRegion(name, currency)
	if err != nil {
		return taxonomy.Region{}, err
	}
	r, err := u.regions.Update(ctx, id, name, currency)
	return r, translate(err, ErrRegionNotFound)
}

func (u *RegionUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(u.regions.Delete(ctx, id), ErrRegionNotFound)
}

// validateRegion defaults the currency from the region table when omitted.
func validateRegion(name, currency string) (string, string, error) {
	name = strings.TrimSpace(name)
	currency = taxonomy.NormalizeCurrency(currency)
	if currency == "" {
		currency, _ = taxonomy.CurrencyForRegion(name)
	}

	v := validation.New()
	if name == "" {
		v.Add("name", "is required")
	}
	switch {
	case currency == "":
		v.Add("currency", "is required for regions outside the currency table")
	case !taxonomy.IsValidCurrency(currency):
		v.Add("currency", "must be an ISO 4217 code")
	}
	return name, currency, v.Err()
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		v := validation.New()
		v.Add("name", "is required")
		return "", v
	}
	return name, nil
}
