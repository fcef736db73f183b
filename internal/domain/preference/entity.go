package preference

import (
	"time"

	"github.com/google/uuid"
)

// SearchPreference is the stored match criteria of one user. JobRoleIDs are
// the "jobs" a user is looking for.
type SearchPreference struct {
	UserID               uuid.UUID
	ContractTypes        []string
	ExperienceLevels     []string
	MinSalary            *int
	IndustryIDs          []uuid.UUID
	JobRoleIDs           []uuid.UUID
	RegionIDs            []uuid.UUID
	NeedsVisaSponsorship *bool
	WillingToTravel      *bool
	Languages            []string
	CompanySizes         []string
	UpdatedAt            time.Time
}

// Empty is what a user without a stored preference matches with.
func Empty(userID uuid.UUID) SearchPreference {
	return SearchPreference{
		UserID:           userID,
		ContractTypes:    []string{},
		ExperienceLevels: []string{},
		IndustryIDs:      []uuid.UUID{},
		JobRoleIDs:       []uuid.UUID{},
		RegionIDs:        []uuid.UUID{},
		Languages:        []string{},
		CompanySizes:     []string{},
	}
}
