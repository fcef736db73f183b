package handler

import (
	"context"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/domain/jobpost"
	"jobboard/internal/domain/preference"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/usecase"
	ucuser "jobboard/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (user.User, error)
	GetPreferences(ctx context.Context, userID uuid.UUID) (preference.SearchPreference, error)
	SavePreferences(ctx context.Context, p preference.SearchPreference) (preference.SearchPreference, error)
	Skip(ctx context.Context, userID, postID uuid.UUID) error
	Save(ctx context.Context, userID, postID uuid.UUID) error
	Unsave(ctx context.Context, userID, postID uuid.UUID) error
	Apply(ctx context.Context, userID, postID uuid.UUID) error
	ListSaved(ctx context.Context, userID uuid.UUID, p pagination.Params) (pagination.Page[jobpost.JobPosting], error)
	ListApplied(ctx context.Context, userID uuid.UUID, p pagination.Params) (pagination.Page[jobpost.JobPosting], error)
	UploadCV(ctx context.Context, userID uuid.UUID, up usecase.Upload) error
	CVURL(ctx context.Context, userID uuid.UUID) (string, error)
	List(ctx context.Context, p pagination.Params) (pagination.Page[user.User], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MatchUsecase interface {
	GetMatches(ctx context.Context, userID uuid.UUID, p pagination.Params) (pagination.Page[jobpost.JobPosting], error)
}

type UserHandler struct {
	uc      UserUsecase
	matches MatchUsecase
}

func NewUserHandler(uc UserUsecase, matches MatchUsecase) *UserHandler {
	return &UserHandler{uc: uc, matches: matches}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	r.Get("/me", g.User(h.GetMe))
	r.Put("/me", g.User(h.UpdateMe))
	r.Get("/me/preferences", g.User(h.GetPreferences))
	r.Put("/me/preferences", g.User(h.SavePreferences))
	r.Get("/me/matches", g.User(h.Matches))
	r.Post("/me/skipped/:jobPostId", g.User(h.Skip))
	r.Get("/me/saved", g.User(h.ListSaved))
	r.Post("/me/saved/:jobPostId", g.User(h.Save))
	r.Delete("/me/saved/:jobPostId", g.User(h.Unsave))
	r.Get("/me/applied", g.User(h.ListApplied))
	r.Post("/me/applied/:jobPostId", g.User(h.Apply))
	r.Post("/me/cv", g.User(h.UploadCV))
	r.Get("/me/cv", g.User(h.CVURL))

	r.Get("", g.Admin(h.List))
	r.Delete("/:id", g.Admin(h.Delete))
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	usr, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewUserResponse(usr))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateMeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, err := h.uc.UpdateMe(c.Context(), userID, ucuser.UpdateMeInput{FullName: req.FullName})
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewUserResponse(usr))
}

func (h *UserHandler) GetPreferences(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	p, err := h.uc.GetPreferences(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewPreferenceResponse(p))
}

func (h *UserHandler) SavePreferences(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.PreferenceRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.SavePreferences(c.Context(), req.ToPreference(userID))
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewPreferenceResponse(p))
}

func (h *UserHandler) Matches(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	page, err := h.matches.GetMatches(c.Context(), userID, pageParams(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, pagination.Map(page, dto.NewJobPostResponse))
}

func (h *UserHandler) Skip(c fiber.Ctx) error {
	return h.mark(c, h.uc.Skip)
}

func (h *UserHandler) Save(c fiber.Ctx) error {
	return h.mark(c, h.uc.Save)
}

func (h *UserHandler) Unsave(c fiber.Ctx) error {
	return h.mark(c, h.uc.Unsave)
}

func (h *UserHandler) Apply(c fiber.Ctx) error {
	return h.mark(c, h.uc.Apply)
}

func (h *UserHandler) mark(c fiber.Ctx, fn func(context.Context, uuid.UUID, uuid.UUID) error) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "jobPostId")
	if err != nil {
		return err
	}
	if err := fn(c.Context(), userID, postID); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}

func (h *UserHandler) ListSaved(c fiber.Ctx) error {
	return h.listPosts(c, h.uc.ListSaved)
}

func (h *UserHandler) ListApplied(c fiber.Ctx) error {
	return h.listPosts(c, h.uc.ListApplied)
}

func (h *UserHandler) listPosts(c fiber.Ctx, fn func(context.Context, uuid.UUID, pagination.Params) (pagination.Page[jobpost.JobPosting], error)) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	page, err := fn(c.Context(), userID, pageParams(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, pagination.Map(page, dto.NewJobPostResponse))
}

func (h *UserHandler) UploadCV(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	up, done, err := upload(c, "file")
	if err != nil {
		return err
	}
	defer done()

	if err := h.uc.UploadCV(c.Context(), userID, up); err != nil {
		return mapUsecaseError(err)
	}
	return created(c, nil)
}

func (h *UserHandler) CVURL(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	url, err := h.uc.CVURL(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.URLResponse{URL: url})
}

func (h *UserHandler) List(c fiber.Ctx) error {
	page, err := h.uc.List(c.Context(), pageParams(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, pagination.Map(page, dto.NewUserResponse))
}

func (h *UserHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}
