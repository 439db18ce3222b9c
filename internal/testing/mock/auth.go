// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mock provides test doubles for the services the CLI talks to.
package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/globus/globus-cli/internal/config"
)

// GoodCode is the only authorization code AuthServer accepts.
const GoodCode = "good-code"

// Identity is the user AuthServer logs in.
var Identity = config.Identity{
	ID:       "b0c5a5c4-0000-4000-8000-000000000001",
	Username: "ada@globusid.org",
	Email:    "ada@example.org",
	Name:     "Ada Lovelace",
}

// Tokens issued by AuthServer.
const (
	AuthAccessToken      = "auth-access-token"
	AuthRefreshToken     = "auth-refresh-token"
	TransferAccessToken  = "transfer-access-token"
	TransferRefreshToken = "transfer-refresh-token"
)

// AuthServer is a Globus Auth stand-in serving /token and /revoke.
type AuthServer struct {
	*httptest.Server

	mu      sync.Mutex
	forms   map[string]url.Values
	revoked []string
	idToken string
}

// NewAuthServer starts an AuthServer that is closed when the test ends.
func NewAuthServer(t testing.TB) *AuthServer {
	t.Helper()

	idToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                Identity.ID,
		"preferred_username": Identity.Username,
		"email":              Identity.Email,
		"name":               Identity.Name,
	}).SignedString([]byte("mock-signing-key"))
	if err != nil {
		t.Fatalf("sign id_token: %v", err)
	}

	s := &AuthServer{forms: map[string]url.Values{}, idToken: idToken}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// AuthConfig points the default client configuration at the server.
func (s *AuthServer) AuthConfig() config.AuthConfig {
	ac := config.Default().Auth
	ac.AuthURL = s.URL + "/authorize"
	ac.TokenURL = s.URL + "/token"
	ac.RevokeURL = s.URL + "/revoke"
	return ac
}

// LastForm returns the last form posted to path.
func (s *AuthServer) LastForm(path string) url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forms[path]
}

// Revoked returns every token revoked so far.
func (s *AuthServer) Revoked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.revoked...)
}

func (s *AuthServer) handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.forms[r.URL.Path] = r.PostForm
	s.mu.Unlock()

	switch r.URL.Path {
	case "/token":
		s.token(w, r)
	case "/revoke":
		tok := r.PostForm.Get("token")
		if tok == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.revoked = append(s.revoked, tok)
		s.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	default:
		http.NotFound(w, r)
	}
}

func (s *AuthServer) token(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.PostForm.Get("code") != GoodCode || r.PostForm.Get("code_verifier") == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error":             "invalid_grant",
			"error_description": "authorization code expired",
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"access_token":    AuthAccessToken,
		"refresh_token":   AuthRefreshToken,
		"expires_in":      172800,
		"token_type":      "Bearer",
		"resource_server": "auth.globus.org",
		"id_token":        s.idToken,
		"other_tokens": []map[string]any{{
			"access_token":    TransferAccessToken,
			"refresh_token":   TransferRefreshToken,
			"expires_in":      172800,
			"token_type":      "Bearer",
			"resource_server": "transfer.api.globus.org",
		}},
	})
}

// WriteConfig writes dir/config.yaml pointing at the server, with tokens
// kept in the encrypted file backend, and returns its path.
func (s *AuthServer) WriteConfig(t testing.TB, dir string, id config.Identity) string {
	t.Helper()

	f, err := config.NewFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("config file: %v", err)
	}
	cfg := config.Default()
	cfg.Auth = s.AuthConfig()
	cfg.Auth.TokenStorage = "file"
	cfg.Identity = id
	if err := f.Save(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	return f.Path()
}
