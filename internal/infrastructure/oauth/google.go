// Package oauth implements the Google sign-in code flow.
package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"jobboard/internal/config"

	"github.com/cockroachdb/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const defaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

var (
	ErrNotConfigured = errors.New("google oauth not configured")
	ErrExchange      = errors.New("oauth code exchange failed")
)

type Profile struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

type Google struct {
	cfg         *oauth2.Config
	userInfoURL string
}

func NewGoogle(cfg config.OAuthConfig) *Google {
	return &Google{
		cfg: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Endpoint:     endpoints.Google,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: defaultUserInfoURL,
	}
}

// WithEndpoints points the client at other token/userinfo URLs.
func (g *Google) WithEndpoints(ep oauth2.Endpoint, userInfoURL string) *Google {
	cp := *g.cfg
	cp.Endpoint = ep
	return &Google{cfg: &cp, userInfoURL: userInfoURL}
}

func (g *Google) Configured() bool {
	return g != nil && g.cfg.ClientID != "" && g.cfg.ClientSecret != ""
}

func (g *Google) AuthCodeURL(state string) (string, error) {
	if !g.Configured() {
		return "", ErrNotConfigured
	}
	return g.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// Exchange trades an authorization code for the signed-in user's profile.
func (g *Google) Exchange(ctx context.Context, code string) (Profile, error) {
	if !g.Configured() {
		return Profile{}, ErrNotConfigured
	}
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return Profile{}, errors.Mark(errors.Wrap(err, "exchange code"), ErrExchange)
	}

	resp, err := g.cfg.Client(ctx, tok).Get(g.userInfoURL)
	if err != nil {
		return Profile{}, errors.Wrap(err, "fetch userinfo")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Profile{}, errors.Mark(errors.Newf("userinfo status %d", resp.StatusCode), ErrExchange)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Profile{}, errors.Wrap(err, "decode userinfo")
	}
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.Subject == "" || p.Email == "" {
		return Profile{}, errors.Mark(errors.New("userinfo missing subject or email"), ErrExchange)
	}
	return p, nil
}
