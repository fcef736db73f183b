package dto

import (
	"time"

	"jobboard/internal/domain/preference"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	FullName   *string   `json:"fullName"`
	TFAEnabled bool      `json:"tfaEnabled"`
	HasCV      bool      `json:"hasCv"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Role:       string(u.Role),
		FullName:   u.FullName,
		TFAEnabled: u.TFAEnabled,
		HasCV:      u.CVFileKey != nil,
		CreatedAt:  u.CreatedAt,
	}
}

type UpdateMeRequest struct {
	FullName *string `json:"fullName"`
}

type PreferenceRequest struct {
	ContractTypes        []string    `json:"contractTypes"`
	ExperienceLevels     []string    `json:"experienceLevels"`
	MinSalary            *int        `json:"minSalary"`
	IndustryIDs          []uuid.UUID `json:"industries"`
	JobRoleIDs           []uuid.UUID `json:"jobs"`
	RegionIDs            []uuid.UUID `json:"locations"`
	NeedsVisaSponsorship *bool       `json:"needsVisaSponsorship"`
	WillingToTravel      *bool       `json:"willingToTravel"`
	Languages            []string    `json:"languages"`
	CompanySizes         []string    `json:"companySizes"`
}

func (r PreferenceRequest) ToPreference(userID uuid.UUID) preference.SearchPreference {
	return preference.SearchPreference{
		UserID:               userID,
		ContractTypes:        r.ContractTypes,
		ExperienceLevels:     r.ExperienceLevels,
		MinSalary:            r.MinSalary,
		IndustryIDs:          r.IndustryIDs,
		JobRoleIDs:           r.JobRoleIDs,
		RegionIDs:            r.RegionIDs,
		NeedsVisaSponsorship: r.NeedsVisaSponsorship,
		WillingToTravel:      r.WillingToTravel,
		Languages:            r.Languages,
		CompanySizes:         r.CompanySizes,
	}
}

type PreferenceResponse struct {
	ContractTypes        []string    `json:"contractTypes"`
	ExperienceLevels     []string    `json:"experienceLevels"`
	MinSalary            *int        `json:"minSalary"`
	IndustryIDs          []uuid.UUID `json:"industries"`
	JobRoleIDs           []uuid.UUID `json:"jobs"`
	RegionIDs            []uuid.UUID `json:"locations"`
	NeedsVisaSponsorship *bool       `json:"needsVisaSponsorship"`
	WillingToTravel      *bool       `json:"willingToTravel"`
	Languages            []string    `json:"languages"`
	CompanySizes         []string    `json:"companySizes"`
}

func NewPreferenceResponse(p preference.SearchPreference) PreferenceResponse {
	return PreferenceResponse{
		ContractTypes:        p.ContractTypes,
		ExperienceLevels:     p.ExperienceLevels,
		MinSalary:            p.MinSalary,
		IndustryIDs:          p.IndustryIDs,
		JobRoleIDs:           p.JobRoleIDs,
		RegionIDs:            p.RegionIDs,
		NeedsVisaSponsorship: p.NeedsVisaSponsorship,
		WillingToTravel:      p.WillingToTravel,
		Languages:            p.Languages,
		CompanySizes:         p.CompanySizes,
	}
}

type URLResponse struct {
	URL string `json:"url"`
}
