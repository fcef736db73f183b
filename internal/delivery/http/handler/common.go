package handler

import (
	"mime/multipart"

	"jobboard/internal/database"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/oauth"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/pkg/response"
	"jobboard/internal/pkg/tfa"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Guards wrap route handlers with access checks. Authenticate validates the
// caller and fills the request locals.
type Guards struct {
	Authenticate func(fiber.Ctx) error
}

func (g Guards) User(next fiber.Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := g.Authenticate(c); err != nil {
			return err
		}
		return next(c)
	}
}

func (g Guards) Admin(next fiber.Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := g.Authenticate(c); err != nil {
			return err
		}
		if err := middleware.CheckRole(c, user.RoleAdmin); err != nil {
			return err
		}
		return next(c)
	}
}

func currentUserID(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func pathID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func pageParams(c fiber.Ctx) pagination.Params {
	return pagination.Params{
		Limit: fiber.Query[int](c, "limit"),
		Page:  fiber.Query[int](c, "page"),
	}.Normalize()
}

func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	return nil
}

func upload(c fiber.Ctx, field string) (usecase.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return usecase.Upload{}, nil, middleware.NewAppError(fiber.StatusBadRequest, "Missing file field "+field, nil, err)
	}
	f, err := fh.Open()
	if err != nil {
		return usecase.Upload{}, nil, middleware.NewAppError(fiber.StatusBadRequest, "Unreadable upload", nil, err)
	}
	return usecase.Upload{
		Filename:    fh.Filename,
		ContentType: contentType(fh),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func ok(c fiber.Ctx, data any) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func created(c fiber.Ctx, data any) error {
	return response.Success(c, fiber.StatusCreated, "created", data)
}

// mapUsecaseError turns usecase and domain sentinels into AppErrors.
// Anything unrecognised becomes a 500 whose message is hidden.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, validation.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", validation.Fields(err), err)

	case errors.Is(err, ucauth.ErrTooManyAttempts):
		return middleware.NewAppError(fiber.StatusTooManyRequests, "Too many login attempts", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, tfa.ErrInvalidCode):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid TFA code", nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	case errors.Is(err, usecase.ErrInvalidTFAToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid TFA token", nil, err)
	case errors.Is(err, usecase.ErrInvalidOAuthState):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid OAuth state", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, ucauth.ErrTFANotSetUp),
		errors.Is(err, ucauth.ErrTFAAlreadyEnabled),
		errors.Is(err, ucauth.ErrTFANotEnabled):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)

	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)

	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, err.Error(), nil, err)
	case errors.Is(err, repository.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)

	case errors.Is(err, user.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, usecase.ErrSyncInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Sync already running", nil, err)
	case errors.Is(err, usecase.ErrConflict),
		errors.Is(err, database.ErrDuplicate),
		errors.Is(err, database.ErrForeignKey):
		return middleware.NewAppError(fiber.StatusConflict, response.MessageConflict, nil, err)

	case errors.Is(err, usecase.ErrUnavailable), errors.Is(err, oauth.ErrNotConfigured):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
