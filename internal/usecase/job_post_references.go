package usecase

import (
	"context"

	"jobboard/internal/domain/jobpost"
	"jobboard/internal/domain/taxonomy"
	"jobboard/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// References checks that every id a posting input points at exists and
// derives the fields that come from referenced rows.
type References struct {
	companies  repository.CompanyRepository
	firms      repository.RecruiterFirmRepository
	roles      repository.NamedRepository[taxonomy.JobRole]
	industries repository.NamedRepository[taxonomy.Industry]
	regions    repository.RegionRepository
}

func NewReferences(
	companies repository.CompanyRepository,
	firms repository.RecruiterFirmRepository,
	roles repository.NamedRepository[taxonomy.JobRole],
	industries repository.NamedRepository[taxonomy.Industry],
	regions repository.RegionRepository,
) *References {
	return &References{companies: companies, firms: firms, roles: roles, industries: industries, regions: regions}
}

// Resolve fails with a not-found error for the first unknown reference. When
// the input carries no company-size tags the owning company's size is used.
// It returns the resolved regions in input order.
func (r *References) Resolve(ctx context.Context, in *jobpost.Input) ([]taxonomy.Region, error) {
	if in.CompanyID != nil {
		c, err := r.companies.FindByID(ctx, *in.CompanyID)
		if err != nil {
			return nil, translate(err, jobpost.ErrCompanyNotFound)
		}
		if len(in.CompanySizes) == 0 {
			in.CompanySizes = c.SizeTags()
		}
	}
	if in.RecruiterFirmID != nil {
		ok, err := r.firms.Exists(ctx, *in.RecruiterFirmID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, notFound(jobpost.ErrRecruiterFirmNotFound)
		}
	}

	in.RoleIDs = dedupe(in.RoleIDs)
	roles, err := r.roles.FindByIDs(ctx, in.RoleIDs)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(in.RoleIDs) {
		return nil, notFound(jobpost.ErrRoleNotFound)
	}

	in.IndustryIDs = dedupe(in.IndustryIDs)
	industries, err := r.industries.FindByIDs(ctx, in.IndustryIDs)
	if err != nil {
		return nil, err
	}
	if len(industries) != len(in.IndustryIDs) {
		return nil, notFound(jobpost.ErrIndustryNotFound)
	}

	in.RegionIDs = dedupe(in.RegionIDs)
	regions, err := r.regions.FindByIDs(ctx, in.RegionIDs)
	if err != nil {
		return nil, err
	}
	if len(regions) != len(in.RegionIDs) {
		return nil, notFound(jobpost.ErrRegionNotFound)
	}
	return regions, nil
}

// RegionCurrency returns the static-table currency of the first region that
// has one.
func RegionCurrency(regions []taxonomy.Region) (string, bool) {
	for _, rg := range regions {
		if c, ok := taxonomy.CurrencyForRegion(rg.Name); ok {
			return c, true
		}
	}
	return "", false
}

// CurrencyFor returns "" when no region resolves to a known currency.
func (r *References) CurrencyFor(ctx context.Context, regionIDs []uuid.UUID) (string, error) {
	regions, err := r.regions.FindByIDs(ctx, dedupe(regionIDs))
	if err != nil {
		return "", err
	}
	c, _ := RegionCurrency(regions)
	return c, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, errors.Wrapf(err, "parse id %q", s)
		}
		out = append(out, id)
	}
	return out, nil
}

func optionalID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
