package handler

import (
	"context"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/domain/taxonomy"
	"jobboard/internal/pkg/pagination"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// NamedUsecase is the CRUD surface shared by industries and roles.
type NamedUsecase[T any] interface {
	List(ctx context.Context, p pagination.Params) (pagination.Page[T], error)
	Get(ctx context.Context, id uuid.UUID) (T, error)
	Create(ctx context.Context, name string) (T, error)
	Update(ctx context.Context, id uuid.UUID, name string) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type NamedHandler[T any] struct {
	uc     NamedUsecase[T]
	toResp func(T) dto.NamedResponse
}

func NewIndustryHandler(uc NamedUsecase[taxonomy.Industry]) *NamedHandler[taxonomy.Industry] {
	return &NamedHandler[taxonomy.Industry]{uc: uc, toResp: dto.NewIndustryResponse}
}

func NewRoleHandler(uc NamedUsecase[taxonomy.JobRole]) *NamedHandler[taxonomy.JobRole] {
	return &NamedHandler[taxonomy.JobRole]{uc: uc, toResp: dto.NewRoleResponse}
}

func (h *NamedHandler[T]) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	r.Get("", h.List)
	r.Get("/:id", h.Get)
	r.Post("", g.Admin(h.Create))
	r.Put("/:id", g.Admin(h.Update))
	r.Delete("/:id", g.Admin(h.Delete))
}

func (h *NamedHandler[T]) List(c fiber.Ctx) error {
	page, err := h.uc.List(c.Context(), pageParams(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, pagination.Map(page, h.toResp))
}

func (h *NamedHandler[T]) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	v, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, h.toResp(v))
}

func (h *NamedHandler[T]) Create(c fiber.Ctx) error {
	var req dto.NameRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	v, err := h.uc.Create(c.Context(), req.Name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, h.toResp(v))
}

func (h *NamedHandler[T]) Update(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.NameRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	v, err := h.uc.Update(c.Context(), id, req.Name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, h.toResp(v))
}

func (h *NamedHandler[T]) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}

type RegionUsecase interface {
	List(ctx context.Context, p pagination.Params) (pagination.Page[taxonomy.Region], error)
	Get(ctx context.Context, id uuid.UUID) (taxonomy.Region, error)
	Create(ctx context.Context, name, currency string) (taxonomy.Region, error)
	Update(ctx context.Context, id uuid.UUID, name, currency string) (taxonomy.Region, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type RegionHandler struct {
	uc RegionUsecase
}

func NewRegionHandler(uc RegionUsecase) *RegionHandler {
	return &RegionHandler{uc: uc}
}

func (h *RegionHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	r.Get("", h.List)
	r.Get("/:id", h.Get)
	r.Post("", g.Admin(h.Create))
	r.Put("/:id", g.Admin(h.Update))
	r.Delete("/:id", g.Admin(h.Delete))
}

func (h *RegionHandler) List(c fiber.Ctx) error {
	page, err := h.uc.List(c.Context(), pageParams(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, pagination.Map(page, dto.NewRegionResponse))
}

func (h *RegionHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	reg, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewRegionResponse(reg))
}

func (h *RegionHandler) Create(c fiber.Ctx) error {
	var req dto.RegionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	reg, err := h.uc.Create(c.Context(), req.Name, req.Currency)
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NewRegionResponse(reg))
}

func (h *RegionHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.RegionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	reg, err := h.uc.Update(c.Context(), id, req.Name, req.Currency)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewRegionResponse(reg))
}

func (h *RegionHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}
