package handler

import (
	"context"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/tfa"
	"jobboard/internal/usecase"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, usecase.Tokens, error)
	Login(ctx context.Context, in ucauth.LoginInput) (usecase.LoginResult, error)
	AuthenticateTFA(ctx context.Context, tfaToken, code string) (user.User, usecase.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (usecase.Tokens, error)
	GenerateTFA(ctx context.Context, userID uuid.UUID) (tfa.Secret, error)
	EnableTFA(ctx context.Context, userID uuid.UUID, code string) error
	DisableTFA(ctx context.Context, userID uuid.UUID, code string) error
	GoogleAuthURL(ctx context.Context) (string, error)
	GoogleCallback(ctx context.Context, state, code string) (user.User, usecase.Tokens, error)
}

type AuthHandler struct {
	uc AuthUsecase
}

func NewAuthHandler(uc AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/tfa/authenticate", h.AuthenticateTFA)
	r.Get("/google", h.GoogleRedirect)
	r.Get("/google/callback", h.GoogleCallback)

	r.Post("/tfa/generate", g.User(h.GenerateTFA))
	r.Post("/tfa/enable", g.User(h.EnableTFA))
	r.Post("/tfa/disable", g.User(h.DisableTFA))
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, tokens, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return created(c, authResponse(usr, tokens))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapUsecaseError(err)
	}

	if res.TFARequired {
		return ok(c, dto.LoginResponse{TFARequired: true, TFAToken: res.TFAToken})
	}
	u := dto.NewUserResponse(res.User)
	return ok(c, dto.LoginResponse{
		User:         &u,
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	})
}

func (h *AuthHandler) AuthenticateTFA(c fiber.Ctx) error {
	var req dto.TFAAuthenticateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, tokens, err := h.uc.AuthenticateTFA(c.Context(), req.TFAToken, req.Code)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, authResponse(usr, tokens))
}

// Refresh expects the refresh token as the bearer credential.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, found := middleware.BearerToken(c.Get("Authorization"))
	if !found {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	tokens, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken})
}

func (h *AuthHandler) GenerateTFA(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	sec, err := h.uc.GenerateTFA(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.TFASecretResponse{Secret: sec.Secret, OTPAuthURL: sec.URL})
}

func (h *AuthHandler) EnableTFA(c fiber.Ctx) error {
	return h.toggleTFA(c, h.uc.EnableTFA)
}

func (h *AuthHandler) DisableTFA(c fiber.Ctx) error {
	return h.toggleTFA(c, h.uc.DisableTFA)
}

func (h *AuthHandler) toggleTFA(c fiber.Ctx, fn func(context.Context, uuid.UUID, string) error) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.TFACodeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := fn(c.Context(), userID, req.Code); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}

func (h *AuthHandler) GoogleRedirect(c fiber.Ctx) error {
	url, err := h.uc.GoogleAuthURL(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return c.Redirect().Status(fiber.StatusFound).To(url)
}

func (h *AuthHandler) GoogleCallback(c fiber.Ctx) error {
	usr, tokens, err := h.uc.GoogleCallback(c.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, authResponse(usr, tokens))
}

func authResponse(u user.User, t usecase.Tokens) dto.AuthResponse {
	return dto.AuthResponse{
		User:          dto.NewUserResponse(u),
		TokenResponse: dto.TokenResponse{AccessToken: t.AccessToken, RefreshToken: t.RefreshToken},
	}
}
