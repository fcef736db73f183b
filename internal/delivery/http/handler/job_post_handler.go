package handler

import (
	"context"
	"strings"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/jobpost"
	"jobboard/internal/infrastructure/dynamo"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobPostUsecase interface {
	List(ctx context.Context, p pagination.Params) (pagination.Page[jobpost.JobPosting], error)
	Get(ctx context.Context, id uuid.UUID) (jobpost.JobPosting, error)
	Create(ctx context.Context, in jobpost.Input) (jobpost.JobPosting, error)
	Update(ctx context.Context, id uuid.UUID, in jobpost.Input) (jobpost.JobPosting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SyncUsecase interface {
	Sync(ctx context.Context) (usecase.SyncReport, error)
	SyncURL(ctx context.Context, url string) (bool, error)
}

type JobPostHandler struct {
	uc   JobPostUsecase
	sync SyncUsecase
}

func NewJobPostHandler(uc JobPostUsecase, sync SyncUsecase) *JobPostHandler {
	return &JobPostHandler{uc: uc, sync: sync}
}

func (h *JobPostHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	r.Post("/sync", g.Admin(h.Sync))

	r.Get("", h.List)
	r.Get("/:id", h.Get)
	r.Post("", g.Admin(h.Create))
	r.Put("/:id", g.Admin(h.Update))
	r.Delete("/:id", g.Admin(h.Delete))
}

func (h *JobPostHandler) List(c fiber.Ctx) error {
	page, err := h.uc.List(c.Context(), pageParams(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, pagination.Map(page, dto.NewJobPostResponse))
}

func (h *JobPostHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	jp, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewJobPostResponse(jp))
}

func (h *JobPostHandler) Create(c fiber.Ctx) error {
	var req dto.JobPostRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	jp, err := h.uc.Create(c.Context(), req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, dto.NewJobPostResponse(jp))
}

func (h *JobPostHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.JobPostRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	jp, err := h.uc.Update(c.Context(), id, req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewJobPostResponse(jp))
}

func (h *JobPostHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}

// Sync runs a full pass, or pulls a single posting when the body names a url.
func (h *JobPostHandler) Sync(c fiber.Ctx) error {
	var req dto.SyncRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &req); err != nil {
			return err
		}
	}

	if url := strings.TrimSpace(req.URL); url != "" {
		isNew, err := h.sync.SyncURL(c.Context(), url)
		if err != nil {
			if errors.Is(err, dynamo.ErrItemNotFound) {
				return middleware.NewAppError(fiber.StatusNotFound, "Source item not found", nil, err)
			}
			return mapUsecaseError(err)
		}
		return ok(c, dto.SyncURLResponse{URL: url, Created: isNew})
	}

	report, err := h.sync.Sync(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "job posts synchronized", dto.SyncResponse{SyncReport: report})
}
