package handler

import (
	"context"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/recruiter"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CompanyUsecase interface {
	List(ctx context.Context, p pagination.Params) (pagination.Page[company.Company], error)
	Get(ctx context.Context, id uuid.UUID) (company.Company, error)
	Create(ctx context.Context, in repository.CompanyInput) (company.Company, error)
	Update(ctx context.Context, id uuid.UUID, in repository.CompanyInput) (company.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadLogo(ctx context.Context, id uuid.UUID, up usecase.Upload) (company.Company, error)
	LogoURL(ctx context.Context, id uuid.UUID) (string, error)
}

type CompanyHandler struct {
	uc CompanyUsecase
}

func NewCompanyHandler(uc CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	r.Get("", h.List)
	r.Get("/:id", h.Get)
	r.Get("/:id/logo", h.LogoURL)
	r.Post("", g.Admin(h.Create))
	r.Put("/:id", g.Admin(h.Update))
	r.Delete("/:id", g.Admin(h.Delete))
	r.Post("/:id/logo", g.Admin(h.UploadLogo))
}

func (h *CompanyHandler) List(c fiber.Ctx) error {
	page, err := h.uc.List(c.Context(), pageParams(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, pagination.Map(page, dto.NewCompanyResponse))
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	co, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) Create(c fiber.Ctx) error {
	var req dto.CompanyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	co, err := h.uc.Create(c.Context(), req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CompanyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	co, err := h.uc.Update(c.Context(), id, req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}

func (h *CompanyHandler) UploadLogo(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	up, done, err := upload(c, "file")
	if err != nil {
		return err
	}
	defer done()

	co, err := h.uc.UploadLogo(c.Context(), id, up)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) LogoURL(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	url, err := h.uc.LogoURL(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.URLResponse{URL: url})
}

type RecruiterFirmUsecase interface {
	List(ctx context.Context, p pagination.Params) (pagination.Page[recruiter.Firm], error)
	Get(ctx context.Context, id uuid.UUID) (recruiter.Firm, error)
	Create(ctx context.Context, in repository.RecruiterFirmInput) (recruiter.Firm, error)
	Update(ctx context.Context, id uuid.UUID, in repository.RecruiterFirmInput) (recruiter.Firm, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type RecruiterFirmHandler struct {
	uc RecruiterFirmUsecase
}

func NewRecruiterFirmHandler(uc RecruiterFirmUsecase) *RecruiterFirmHandler {
	return &RecruiterFirmHandler{uc: uc}
}

func (h *RecruiterFirmHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	r.Get("", h.List)
	r.Get("/:id", h.Get)
	r.Post("", g.Admin(h.Create))
	r.Put("/:id", g.Admin(h.Update))
	r.Delete("/:id", g.Admin(h.Delete))
}

func (h *RecruiterFirmHandler) List(c fiber.Ctx) error {
	page, err := h.uc.List(c.Context(), pageParams(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, pagination.Map(page, dto.NewRecruiterFirmResponse))
}

func (h *RecruiterFirmHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	f, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewRecruiterFirmResponse(f))
}

func (h *RecruiterFirmHandler) Create(c fiber.Ctx) error {
	var req dto.RecruiterFirmRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	f, err := h.uc.Create(c.Context(), req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NewRecruiterFirmResponse(f))
}

func (h *RecruiterFirmHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.RecruiterFirmRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	f, err := h.uc.Update(c.Context(), id, req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewRecruiterFirmResponse(f))
}

func (h *RecruiterFirmHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}
