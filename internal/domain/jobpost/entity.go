package jobpost

import (
	"time"

	"github.com/google/uuid"
)

type ContractType string

const (
	ContractFullTime   ContractType = "full_time"
	ContractPartTime   ContractType = "part_time"
	ContractContract   ContractType = "contract"
	ContractInternship ContractType = "internship"
	ContractFreelance  ContractType = "freelance"
)

var ContractTypes = []ContractType{
	ContractFullTime, ContractPartTime, ContractContract, ContractInternship, ContractFreelance,
}

func (c ContractType) Valid() bool {
	for _, v := range ContractTypes {
		if v == c {
			return true
		}
	}
	return false
}

type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "entry"
	LevelJunior ExperienceLevel = "junior"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
	LevelLead   ExperienceLevel = "lead"
)

var ExperienceLevels = []ExperienceLevel{LevelEntry, LevelJunior, LevelMid, LevelSenior, LevelLead}

func (l ExperienceLevel) Valid() bool {
	for _, v := range ExperienceLevels {
		if v == l {
			return true
		}
	}
	return false
}

const DefaultExpirationDays = 30

// JobPosting is owned by exactly one of CompanyID or RecruiterFirmID.
type JobPosting struct {
	ID               uuid.UUID
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
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p JobPosting) ExpiresAt() time.Time {
	days := p.ExpirationDays
	if days <= 0 {
		days = DefaultExpirationDays
	}
	return p.CreatedAt.AddDate(0, 0, days)
}
