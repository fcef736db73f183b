package jwt

import (
	"time"

	"jobboard/internal/config"

	"github.com/cockroachdb/errors"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
	// TokenTypeTFA is issued after a correct password when TFA is enabled and
	// is only accepted by the TFA authenticate endpoint.
	TokenTypeTFA = "tfa"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email, role string) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	GenerateTFAToken(userID uuid.UUID) (string, error)
	ValidateToken(tokenString string, tokenType string) (Claims, error)
}

type HMACService struct {
	secrets map[string][]byte
	ttls    map[string]time.Duration

	now func() time.Time
}

func NewHMACService(cfg config.JWTConfig) *HMACService {
	return &HMACService{
		secrets: map[string][]byte{
			TokenTypeAccess:  []byte(cfg.AccessSecret),
			TokenTypeRefresh: []byte(cfg.RefreshSecret),
			TokenTypeTFA:     []byte(cfg.TFASecret),
		},
		ttls: map[string]time.Duration{
			TokenTypeAccess:  cfg.AccessExpiresIn,
			TokenTypeRefresh: cfg.RefreshExpiresIn,
			TokenTypeTFA:     cfg.TFAExpiresIn,
		},
		now: time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email, role string) (string, error) {
	return s.generate(Claims{UserID: userID, Email: email, Role: role, TokenType: TokenTypeAccess})
}

func (s *HMACService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.generate(Claims{UserID: userID, TokenType: TokenTypeRefresh})
}

func (s *HMACService) GenerateTFAToken(userID uuid.UUID) (string, error) {
	return s.generate(Claims{UserID: userID, TokenType: TokenTypeTFA})
}

// ValidateToken verifies the signature with the secret of tokenType and
// rejects tokens of any other type.
func (s *HMACService) ValidateToken(tokenString string, tokenType string) (Claims, error) {
	secret, _, err := s.secretAndExpiry(tokenType)
	if err != nil {
		return Claims{}, err
	}

	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid || c.TokenType != tokenType || c.UserID == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

func (s *HMACService) generate(c Claims) (string, error) {
	secret, expIn, err := s.secretAndExpiry(c.TokenType)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	c.RegisteredClaims = jwtlib.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(expIn)),
		Subject:   c.UserID.String(),
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(secret)
}

func (s *HMACService) secretAndExpiry(tokenType string) ([]byte, time.Duration, error) {
	secret, ok := s.secrets[tokenType]
	if !ok || len(secret) == 0 {
		return nil, 0, ErrTokenInvalid
	}
	ttl := s.ttls[tokenType]
	if ttl <= 0 {
		return nil, 0, ErrTokenInvalid
	}
	return secret, ttl, nil
}
