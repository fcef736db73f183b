package dto

import (
	"time"

	"jobboard/internal/domain/jobpost"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
)

type JobPostRequest struct {
	Title            string      `json:"title"`
	URL              *string     `json:"url"`
	ContractType     string      `json:"contractType"`
	ExperienceLevel  string      `json:"experienceLevel"`
	MinSalary        *int        `json:"minSalary"`
	MaxSalary        *int        `json:"maxSalary"`
	Currency         string      `json:"currency"`
	Description      string      `json:"description"`
	Responsibilities string      `json:"responsibilities"`
	Requirements     string      `json:"requirements"`
	Benefits         string      `json:"benefits"`
	VisaSponsorship  bool        `json:"visaSponsorship"`
	RequiresTravel   bool        `json:"requiresTravel"`
	Languages        []string    `json:"languages"`
	CompanySizes     []string    `json:"companySizes"`
	ExpirationDays   int         `json:"expirationDays"`
	CompanyID        *uuid.UUID  `json:"companyId"`
	RecruiterFirmID  *uuid.UUID  `json:"recruiterFirmId"`
	RoleIDs          []uuid.UUID `json:"jobs"`
	IndustryIDs      []uuid.UUID `json:"industries"`
	RegionIDs        []uuid.UUID `json:"regions"`
}

func (r JobPostRequest) ToInput() jobpost.Input {
	return jobpost.Input{
		Title:            r.Title,
		URL:              r.URL,
		ContractType:     jobpost.ContractType(r.ContractType),
		ExperienceLevel:  jobpost.ExperienceLevel(r.ExperienceLevel),
		MinSalary:        r.MinSalary,
		MaxSalary:        r.MaxSalary,
		Currency:         r.Currency,
		Description:      r.Description,
		Responsibilities: r.Responsibilities,
		Requirements:     r.Requirements,
		Benefits:         r.Benefits,
		VisaSponsorship:  r.VisaSponsorship,
		RequiresTravel:   r.RequiresTravel,
		Languages:        r.Languages,
		CompanySizes:     r.CompanySizes,
		ExpirationDays:   r.ExpirationDays,
		CompanyID:        r.CompanyID,
		RecruiterFirmID:  r.RecruiterFirmID,
		RoleIDs:          r.RoleIDs,
		IndustryIDs:      r.IndustryIDs,
		RegionIDs:        r.RegionIDs,
	}
}

type JobPostResponse struct {
	ID               uuid.UUID   `json:"id"`
	Title            string      `json:"title"`
	URL              *string     `json:"url"`
	ContractType     string      `json:"contractType"`
	ExperienceLevel  string      `json:"experienceLevel"`
	MinSalary        *int        `json:"minSalary"`
	MaxSalary        *int        `json:"maxSalary"`
	Currency         string      `json:"currency"`
	Description      string      `json:"description"`
	Responsibilities string      `json:"responsibilities"`
	Requirements     string      `json:"requirements"`
	Benefits         string      `json:"benefits"`
	VisaSponsorship  bool        `json:"visaSponsorship"`
	RequiresTravel   bool        `json:"requiresTravel"`
	Languages        []string    `json:"languages"`
	CompanySizes     []string    `json:"companySizes"`
	ExpirationDays   int         `json:"expirationDays"`
	ExpiresAt        time.Time   `json:"expiresAt"`
	CompanyID        *uuid.UUID  `json:"companyId"`
	RecruiterFirmID  *uuid.UUID  `json:"recruiterFirmId"`
	RoleIDs          []uuid.UUID `json:"jobs"`
	IndustryIDs      []uuid.UUID `json:"industries"`
	RegionIDs        []uuid.UUID `json:"regions"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

func NewJobPostResponse(p jobpost.JobPosting) JobPostResponse {
	return JobPostResponse{
		ID:               p.ID,
		Title:            p.Title,
		URL:              p.URL,
		ContractType:     string(p.ContractType),
		ExperienceLevel:  string(p.ExperienceLevel),
		MinSalary:        p.MinSalary,
		MaxSalary:        p.MaxSalary,
		Currency:         p.Currency,
		Description:      p.Description,
		Responsibilities: p.Responsibilities,
		Requirements:     p.Requirements,
		Benefits:         p.Benefits,
		VisaSponsorship:  p.VisaSponsorship,
		RequiresTravel:   p.RequiresTravel,
		Languages:        p.Languages,
		CompanySizes:     p.CompanySizes,
		ExpirationDays:   p.ExpirationDays,
		ExpiresAt:        p.ExpiresAt(),
		CompanyID:        p.CompanyID,
		RecruiterFirmID:  p.RecruiterFirmID,
		RoleIDs:          p.RoleIDs,
		IndustryIDs:      p.IndustryIDs,
		RegionIDs:        p.RegionIDs,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// SyncRequest optionally narrows a sync to a single source url.
type SyncRequest struct {
	URL string `json:"url"`
}

type SyncResponse struct {
	usecase.SyncReport
}

type SyncURLResponse struct {
	URL     string `json:"url"`
	Created bool   `json:"created"`
}
