package dto

import (
	"time"

	"jobboard/internal/domain/taxonomy"

	"github.com/google/uuid"
)

type NameRequest struct {
	Name string `json:"name"`
}

type RegionRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

type NamedResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewIndustryResponse(i taxonomy.Industry) NamedResponse {
	return NamedResponse{ID: i.ID, Name: i.Name, CreatedAt: i.CreatedAt}
}

func NewRoleResponse(r taxonomy.JobRole) NamedResponse {
	return NamedResponse{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt}
}

type RegionResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewRegionResponse(r taxonomy.Region) RegionResponse {
	return RegionResponse{ID: r.ID, Name: r.Name, Currency: r.Currency, CreatedAt: r.CreatedAt}
}
