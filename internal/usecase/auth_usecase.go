package usecase

import (
	"context"
	"time"

	"jobboard/internal/domain/notification"
	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/oauth"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/tfa"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

const oauthStateTTL = 10 * time.Minute

var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInvalidTFAToken     = errors.New("invalid tfa token")
	ErrInvalidOAuthState   = errors.New("invalid oauth state")
)

type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult carries tokens, or a TFA token when a second factor is needed.
type LoginResult struct {
	User        user.User
	Tokens      Tokens
	TFARequired bool
	TFAToken    string
}

type GoogleProvider interface {
	AuthCodeURL(state string) (string, error)
	Exchange(ctx context.Context, code string) (oauth.Profile, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (user.User, error)
}

// StateStore keeps short-lived values such as OAuth states.
type StateStore interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Auth struct {
	svc      *ucauth.Service
	users    UserFinder
	jwt      jwt.Service
	google   GoogleProvider
	states   StateStore
	notifier Notifier
}

func NewAuthUsecase(
	svc *ucauth.Service,
	users UserFinder,
	jwtSvc jwt.Service,
	google GoogleProvider,
	states StateStore,
	notifier Notifier,
) *Auth {
	return &Auth{svc: svc, users: users, jwt: jwtSvc, google: google, states: states, notifier: notifier}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, Tokens, error) {
	usr, err := u.svc.Register(ctx, in)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	tokens, err := u.issue(usr)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	return usr, tokens, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (LoginResult, error) {
	usr, err := u.svc.Login(ctx, in)
	if err != nil {
		return LoginResult{}, err
	}
	if usr.TFAEnabled {
		tok, err := u.jwt.GenerateTFAToken(usr.ID)
		if err != nil {
			return LoginResult{}, errors.Wrap(err, "issue tfa token")
		}
		return LoginResult{User: usr, TFARequired: true, TFAToken: tok}, nil
	}
	tokens, err := u.issue(usr)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: usr, Tokens: tokens}, nil
}

// AuthenticateTFA completes a login that stopped at the second factor.
func (u *Auth) AuthenticateTFA(ctx context.Context, tfaToken, code string) (user.User, Tokens, error) {
	claims, err := u.jwt.ValidateToken(tfaToken, jwt.TokenTypeTFA)
	if err != nil {
		return user.User{}, Tokens{}, errors.Mark(err, ErrInvalidTFAToken)
	}
	usr, err := u.svc.VerifyTFA(ctx, claims.UserID, code)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	tokens, err := u.issue(usr)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	return usr, tokens, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if refreshToken == "" {
		return Tokens{}, ErrUnauthorized
	}
	claims, err := u.jwt.ValidateToken(refreshToken, jwt.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Tokens{}, ErrRefreshTokenExpired
		}
		return Tokens{}, ErrInvalidRefreshToken
	}
	usr, err := u.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return Tokens{}, translate(err, ErrInvalidRefreshToken)
	}
	return u.issue(usr)
}

func (u *Auth) GenerateTFA(ctx context.Context, userID uuid.UUID) (tfa.Secret, error) {
	return u.svc.GenerateTFA(ctx, userID)
}

func (u *Auth) EnableTFA(ctx context.Context, userID uuid.UUID, code string) error {
	if err := u.svc.EnableTFA(ctx, userID, code); err != nil {
		return err
	}
	u.notify(ctx, userID, notification.KindTFAEnabled, "Two-factor authentication enabled")
	return nil
}

func (u *Auth) DisableTFA(ctx context.Context, userID uuid.UUID, code string) error {
	if err := u.svc.DisableTFA(ctx, userID, code); err != nil {
		return err
	}
	u.notify(ctx, userID, notification.KindTFADisabled, "Two-factor authentication disabled")
	return nil
}

// GoogleAuthURL returns the consent-screen URL. The state is remembered so
// the callback can be matched to this request.
func (u *Auth) GoogleAuthURL(ctx context.Context) (string, error) {
	state := uuid.NewString()
	url, err := u.google.AuthCodeURL(state)
	if err != nil {
		return "", err
	}
	if err := u.states.SetJSON(ctx, stateKey(state), true, oauthStateTTL); err != nil {
		return "", errors.Mark(errors.Wrap(err, "store oauth state"), ErrUnavailable)
	}
	return url, nil
}

func (u *Auth) GoogleCallback(ctx context.Context, state, code string) (user.User, Tokens, error) {
	if state == "" || code == "" {
		return user.User{}, Tokens{}, ErrInvalidOAuthState
	}
	var ok bool
	found, err := u.states.GetJSON(ctx, stateKey(state), &ok)
	if err != nil || !found || !ok {
		return user.User{}, Tokens{}, ErrInvalidOAuthState
	}
	_ = u.states.Delete(ctx, stateKey(state))

	profile, err := u.google.Exchange(ctx, code)
	if err != nil {
		return user.User{}, Tokens{}, errors.Mark(err, ErrUnauthorized)
	}
	if !profile.EmailVerified {
		return user.User{}, Tokens{}, errors.Mark(errors.New("google email not verified"), ErrUnauthorized)
	}

	usr, err := u.svc.FindOrCreateGoogle(ctx, ucauth.GoogleIdentity{
		Subject: profile.Subject,
		Email:   profile.Email,
		Name:    profile.Name,
	})
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	tokens, err := u.issue(usr)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	return usr, tokens, nil
}

func (u *Auth) issue(usr user.User) (Tokens, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email, string(usr.Role))
	if err != nil {
		return Tokens{}, errors.Wrap(err, "issue access token")
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return Tokens{}, errors.Wrap(err, "issue refresh token")
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (u *Auth) notify(ctx context.Context, userID uuid.UUID, kind, title string) {
	if u.notifier == nil {
		return
	}
	_, _ = u.notifier.Notify(ctx, userID, kind, title, "")
}

func stateKey(state string) string {
	return "auth:oauth-state:" + state
}
