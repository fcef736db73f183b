// Package matching turns a stored search preference into candidate filters
// and walks candidate pages until one survives post-filtering.
package matching

import (
	"jobboard/internal/domain/exclusion"
	"jobboard/internal/domain/jobpost"
	"jobboard/internal/domain/preference"

	"github.com/google/uuid"
)

// Criteria is the SQL-side filter over job postings. Set filters are always
// applied except ContractTypes, so an empty IndustryIDs/RoleIDs/RegionIDs list
// matches nothing rather than everything.
type Criteria struct {
	ContractTypes    []string
	ExperienceLevels []string
	IndustryIDs      []uuid.UUID
	RoleIDs          []uuid.UUID
	RegionIDs        []uuid.UUID
	MinSalary        *int
}

func BuildCriteria(p preference.SearchPreference) Criteria {
	return Criteria{
		ContractTypes:    nonNilStrings(p.ContractTypes),
		ExperienceLevels: nonNilStrings(p.ExperienceLevels),
		IndustryIDs:      nonNilIDs(p.IndustryIDs),
		RoleIDs:          nonNilIDs(p.JobRoleIDs),
		RegionIDs:        nonNilIDs(p.RegionIDs),
		MinSalary:        p.MinSalary,
	}
}

// Unsatisfiable reports whether the criteria can be decided empty without a
// query.
func (c Criteria) Unsatisfiable() bool {
	return len(c.ExperienceLevels) == 0 || len(c.IndustryIDs) == 0 ||
		len(c.RoleIDs) == 0 || len(c.RegionIDs) == 0
}

// CompanySizeCompatible: untagged postings always pass, tagged postings need
// one tag in common with a non-empty preference.
func CompanySizeCompatible(preferred, tags []string) bool {
	if len(preferred) == 0 || len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		for _, p := range preferred {
			if t == p {
				return true
			}
		}
	}
	return false
}

// Keep returns the in-memory post-filter applied to every fetched page.
func Keep(excluded exclusion.Sets, companySizes []string) func(jobpost.JobPosting) bool {
	return func(p jobpost.JobPosting) bool {
		if excluded.Contains(p.ID) {
			return false
		}
		return CompanySizeCompatible(companySizes, p.CompanySizes)
	}
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func nonNilIDs(in []uuid.UUID) []uuid.UUID {
	if in == nil {
		return []uuid.UUID{}
	}
	return in
}
