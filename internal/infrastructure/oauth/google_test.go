package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"jobboard/internal/config"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestGoogle_NotConfigured(t *testing.T) {
	g := NewGoogle(config.OAuthConfig{})

	_, err := g.AuthCodeURL("state")
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestGoogle_AuthCodeURLCarriesState(t *testing.T) {
	g := NewGoogle(config.OAuthConfig{GoogleClientID: "id", GoogleClientSecret: "secret", GoogleRedirectURL: "http://localhost/cb"})

	raw, err := g.AuthCodeURL("abc")
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "abc", u.Query().Get("state"))
	assert.Equal(t, "id", u.Query().Get("client_id"))
}

func TestGoogle_Exchange(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "at", "token_type": "Bearer", "expires_in": 3600})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(Profile{Subject: "g-1", Email: "Ada@Example.com", EmailVerified: true, Name: "Ada"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g := NewGoogle(config.OAuthConfig{GoogleClientID: "id", GoogleClientSecret: "secret"}).
		WithEndpoints(oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}, srv.URL+"/userinfo")

	p, err := g.Exchange(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "g-1", p.Subject)
	assert.Equal(t, "ada@example.com", p.Email)
}
