package dto

import (
	"time"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/recruiter"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type CompanyRequest struct {
	Name        string  `json:"name"`
	Website     *string `json:"website"`
	Description *string `json:"description"`
	Size        *string `json:"size"`
}

func (r CompanyRequest) ToInput() repository.CompanyInput {
	return repository.CompanyInput{Name: r.Name, Website: r.Website, Description: r.Description, Size: r.Size}
}

type CompanyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Website     *string   `json:"website"`
	Description *string   `json:"description"`
	Size        *string   `json:"size"`
	HasLogo     bool      `json:"hasLogo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewCompanyResponse(c company.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Website:     c.Website,
		Description: c.Description,
		Size:        c.Size,
		HasLogo:     c.LogoFileKey != nil,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type RecruiterFirmRequest struct {
	Name        string  `json:"name"`
	Website     *string `json:"website"`
	Description *string `json:"description"`
}

func (r RecruiterFirmRequest) ToInput() repository.RecruiterFirmInput {
	return repository.RecruiterFirmInput{Name: r.Name, Website: r.Website, Description: r.Description}
}

type RecruiterFirmResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Website     *string   `json:"website"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewRecruiterFirmResponse(f recruiter.Firm) RecruiterFirmResponse {
	return RecruiterFirmResponse{
		ID:          f.ID,
		Name:        f.Name,
		Website:     f.Website,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
