package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/pkg/tfa"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = user.ErrEmailTaken
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrTooManyAttempts        = errors.New("too many login attempts")
	ErrTFANotSetUp            = errors.New("tfa secret not generated")
	ErrTFAAlreadyEnabled      = errors.New("tfa already enabled")
	ErrTFANotEnabled          = errors.New("tfa not enabled")
)

const minPasswordLength = 8

type RegisterInput struct {
	Email    string
	Password string
	FullName *string
}

type LoginInput struct {
	Email    string
	Password string
}

// Throttle counts events per key inside a sliding expiry window.
type Throttle interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Count(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, key string) error
}

// GoogleIdentity is the verified subset of a Google profile.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

type Service struct {
	users       repository.UserRepository
	throttle    Throttle
	totp        *tfa.TOTP
	maxAttempts int
	window      time.Duration
	log         *zap.SugaredLogger
}

func NewService(users repository.UserRepository, throttle Throttle, totp *tfa.TOTP, maxAttempts int, window time.Duration, log *zap.SugaredLogger) *Service {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &Service{
		users:       users,
		throttle:    throttle,
		totp:        totp,
		maxAttempts: maxAttempts,
		window:      window,
		log:         logger.Component(log, "auth"),
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	v := validation.New()
	if _, err := mail.ParseAddress(email); email == "" || err != nil {
		v.Add("email", "must be a valid email address")
	}
	if len(strings.TrimSpace(in.Password)) < minPasswordLength {
		v.Add("password", "must be at least 8 characters")
	}
	if err := v.Err(); err != nil {
		return user.User{}, err
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, err
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, errors.Wrap(err, "hash password")
	}

	created, err := s.users.Create(ctx, user.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleUser,
		FullName:     trimmedOrNil(in.FullName),
	})
	if err != nil {
		// lost a race with a concurrent registration
		if exists, exErr := s.users.ExistsByEmail(ctx, email); exErr == nil && exists {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, err
	}
	return created.Sanitized(), nil
}

// Login checks credentials. The returned user still carries its TFA flag so
// the caller can decide whether a second factor is needed.
func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	key := attemptsKey(email)
	n, err := s.throttle.Count(ctx, key)
	if err != nil {
		s.log.Warnw("read login attempts", logger.FieldKey, key, logger.FieldError, err)
	}
	if n >= int64(s.maxAttempts) {
		return user.User{}, ErrTooManyAttempts
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return user.User{}, err
	}
	if err != nil || !u.HasPassword() ||
		bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		if _, err := s.throttle.Incr(ctx, key, s.window); err != nil {
			s.log.Warnw("count failed login", logger.FieldKey, key, logger.FieldError, err)
		}
		return user.User{}, ErrInvalidCredentials
	}

	if err := s.throttle.Delete(ctx, key); err != nil {
		s.log.Warnw("reset login attempts", logger.FieldKey, key, logger.FieldError, err)
	}
	return u.Sanitized(), nil
}

// GenerateTFA stores a fresh, not yet enabled secret for the user.
func (s *Service) GenerateTFA(ctx context.Context, userID uuid.UUID) (tfa.Secret, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return tfa.Secret{}, err
	}
	if u.TFAEnabled {
		return tfa.Secret{}, ErrTFAAlreadyEnabled
	}
	sec, err := s.totp.Generate(u.Email)
	if err != nil {
		return tfa.Secret{}, err
	}
	if err := s.users.SetTFA(ctx, u.ID, &sec.Secret, false); err != nil {
		return tfa.Secret{}, err
	}
	return sec, nil
}

func (s *Service) EnableTFA(ctx context.Context, userID uuid.UUID, code string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.TFAEnabled {
		return ErrTFAAlreadyEnabled
	}
	if u.TFASecret == nil {
		return ErrTFANotSetUp
	}
	if err := s.totp.Validate(code, *u.TFASecret); err != nil {
		return err
	}
	return s.users.SetTFA(ctx, u.ID, u.TFASecret, true)
}

func (s *Service) DisableTFA(ctx context.Context, userID uuid.UUID, code string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !u.TFAEnabled || u.TFASecret == nil {
		return ErrTFANotEnabled
	}
	if err := s.totp.Validate(code, *u.TFASecret); err != nil {
		return err
	}
	return s.users.SetTFA(ctx, u.ID, nil, false)
}

// VerifyTFA checks a code for a user that has TFA enabled.
func (s *Service) VerifyTFA(ctx context.Context, userID uuid.UUID, code string) (user.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	if !u.TFAEnabled || u.TFASecret == nil {
		return user.User{}, ErrTFANotEnabled
	}
	if err := s.totp.Validate(code, *u.TFASecret); err != nil {
		return user.User{}, err
	}
	return u.Sanitized(), nil
}

// FindOrCreateGoogle resolves a Google identity to a local user: by Google
// id first, then by email (linking the account), else a new password-less user.
func (s *Service) FindOrCreateGoogle(ctx context.Context, id GoogleIdentity) (user.User, error) {
	u, err := s.users.FindByGoogleID(ctx, id.Subject)
	if err == nil {
		return u.Sanitized(), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return user.User{}, err
	}

	email := normalizeEmail(id.Email)
	u, err = s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.users.LinkGoogle(ctx, u.ID, id.Subject); err != nil {
			return user.User{}, err
		}
		u.GoogleID = &id.Subject
		return u.Sanitized(), nil
	case !errors.Is(err, repository.ErrNotFound):
		return user.User{}, err
	}

	subject := id.Subject
	created, err := s.users.Create(ctx, user.User{
		Email:    email,
		Role:     user.RoleUser,
		FullName: trimmedOrNil(&id.Name),
		GoogleID: &subject,
	})
	if err != nil {
		return user.User{}, err
	}
	s.log.Infow("user created from google sign-in", logger.FieldUserID, created.ID)
	return created.Sanitized(), nil
}

func attemptsKey(email string) string {
	return "auth:login-attempts:" + email
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
