package jobpost

import (
	"strings"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/taxonomy"
	"jobboard/internal/pkg/validation"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrNotFound              = errors.New("job posting not found")
	ErrOwnerConflict         = errors.New("exactly one of companyId and recruiterFirmId must be set")
	ErrCompanyNotFound       = errors.New("company not found")
	ErrRecruiterFirmNotFound = errors.New("recruiter firm not found")
	ErrRoleNotFound          = errors.New("role not found")
	ErrIndustryNotFound      = errors.New("industry not found")
	ErrRegionNotFound        = errors.New("region not found")
)

// Input is the create/update payload for a posting, shared by the admin API
// and the synchronizer.
type Input struct {
	Title            string
	URL              *string
	ContractType     ContractType
	ExperienceLevel  ExperienceLevel
	MinSalary        *int
	MaxSalary        *int
	Currency         string
	Description      string
	Responsibilities string
	Requirements     string
	Benefits         string
	VisaSponsorship  bool
	RequiresTravel   bool
	Languages        []string
	CompanySizes     []string
	ExpirationDays   int
	CompanyID        *uuid.UUID
	RecruiterFirmID  *uuid.UUID
	RoleIDs          []uuid.UUID
	IndustryIDs      []uuid.UUID
	RegionIDs        []uuid.UUID
}

// Normalize trims strings and fills defaults in place.
func (in *Input) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Currency = taxonomy.NormalizeCurrency(in.Currency)
	if in.URL != nil {
		u := strings.TrimSpace(*in.URL)
		if u == "" {
			in.URL = nil
		} else {
			in.URL = &u
		}
	}
	if in.ExpirationDays <= 0 {
		in.ExpirationDays = DefaultExpirationDays
	}
	if in.Languages == nil {
		in.Languages = []string{}
	}
	if in.CompanySizes == nil {
		in.CompanySizes = []string{}
	}
}

// Validate reports every field problem at once. Owner exclusivity failures
// also match ErrOwnerConflict.
func (in Input) Validate() error {
	v := validation.New()

	if in.Title == "" {
		v.Add("title", "is required")
	}
	if !in.ContractType.Valid() {
		v.Add("contractType", "is invalid")
	}
	if !in.ExperienceLevel.Valid() {
		v.Add("experienceLevel", "is invalid")
	}
	if in.Currency == "" {
		v.Add("currency", "is required")
	} else if !taxonomy.IsValidCurrency(in.Currency) {
		v.Add("currency", "is not a supported ISO 4217 code")
	}
	if in.MinSalary != nil && *in.MinSalary < 0 {
		v.Add("minSalary", "must not be negative")
	}
	if in.MinSalary != nil && in.MaxSalary != nil && *in.MaxSalary < *in.MinSalary {
		v.Add("maxSalary", "must be greater than or equal to minSalary")
	}
	for _, s := range in.CompanySizes {
		if !company.IsValidSize(s) {
			v.Add("companySizes", "contains an unknown size")
			break
		}
	}

	hasCompany := in.CompanyID != nil && *in.CompanyID != uuid.Nil
	hasFirm := in.RecruiterFirmID != nil && *in.RecruiterFirmID != uuid.Nil
	ownerInvalid := hasCompany == hasFirm
	if ownerInvalid {
		v.Add("companyId", ErrOwnerConflict.Error())
	}

	if err := v.Err(); err != nil {
		if ownerInvalid {
			return errors.Mark(err, ErrOwnerConflict)
		}
		return err
	}
	return nil
}
