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

package auth

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globus/globus-cli/internal/config"
	"github.com/globus/globus-cli/internal/secrets"
	"github.com/globus/globus-cli/internal/testing/mock"
	globuserrors "github.com/globus/globus-cli/pkg/errors"
)

type memBackend struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemBackend() *memBackend { return &memBackend{data: map[string]string{}} }

func (m *memBackend) Name() string { return "memory" }
func (m *memBackend) Available() bool { return true }

func (m *memBackend) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", secrets.ErrSecretNotFound
	}
	return v, nil
}

func (m *memBackend) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; !ok {
		return secrets.ErrSecretNotFound
	}
	delete(m.data, key)
	return nil
}

func testIDToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return s
}

func TestFlowAuthorizeURL(t *testing.T) {
	ac := config.Default().Auth
	flow := NewFlow(ac, nil, nil)

	u, err := url.Parse(flow.AuthorizeURL())
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "auth.globus.org", u.Host)
	assert.Equal(t, ac.ClientID, q.Get("client_id"))
	assert.Equal(t, ac.RedirectURL, q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.NotEmpty(t, q.Get("code_challenge"))
	assert.NotEmpty(t, q.Get("state"))
	assert.Contains(t, q.Get("scope"), "urn:globus:auth:scope:transfer.api.globus.org:all")

	other := NewFlow(ac, nil, nil)
	assert.NotEqual(t, q.Get("state"), mustQuery(t, other.AuthorizeURL()).Get("state"), "state must be fresh per flow")
}

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Query()
}

func TestFlowExchange(t *testing.T) {
	srv := mock.NewAuthServer(t)
	flow := NewFlow(srv.AuthConfig(), srv.Client(), nil)

	res, err := flow.Exchange(context.Background(), mock.GoodCode)
	require.NoError(t, err)

	last := srv.LastForm("/token")
	assert.Equal(t, "authorization_code", last.Get("grant_type"))
	assert.NotEmpty(t, last.Get("code_verifier"), "PKCE verifier must be sent")
	assert.Equal(t, config.DefaultClientID, last.Get("client_id"))

	assert.Equal(t, mock.AuthAccessToken, res.Tokens.Auth.AccessToken)
	assert.Equal(t, mock.AuthRefreshToken, res.Tokens.Auth.RefreshToken)
	assert.Equal(t, mock.TransferAccessToken, res.Tokens.Transfer.AccessToken)
	assert.Equal(t, mock.TransferRefreshToken, res.Tokens.Transfer.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(48*time.Hour), res.Tokens.Transfer.ExpiresAt, time.Minute)
	assert.Equal(t, mock.Identity, res.Identity)
}

func TestFlowExchangeRejected(t *testing.T) {
	srv := mock.NewAuthServer(t)
	flow := NewFlow(srv.AuthConfig(), srv.Client(), nil)

	_, err := flow.Exchange(context.Background(), "stale-code")
	var apiErr *globuserrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "invalid_grant", apiErr.Code)
	assert.Equal(t, "authorization code expired", apiErr.Message)
}

func TestParseIDToken(t *testing.T) {
	id, err := ParseIDToken(testIDToken(t, jwt.MapClaims{"sub": "abc", "preferred_username": "u@x"}))
	require.NoError(t, err)
	assert.Equal(t, "abc", id.ID)
	assert.Equal(t, "u@x", id.Username)
	assert.False(t, id.Complete())

	_, err = ParseIDToken("not-a-jwt")
	assert.Error(t, err)

	_, err = ParseIDToken(testIDToken(t, jwt.MapClaims{"email": "x@y"}))
	assert.Error(t, err, "sub is required")
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	backend := newMemBackend()
	store := NewStore(backend)

	set, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, TokenSet{}, set)

	require.NoError(t, store.Save(ctx, TokenSet{
		Auth:     Token{AccessToken: "a-at", RefreshToken: "a-rt"},
		Transfer: Token{AccessToken: "t-at"},
	}))
	assert.Len(t, backend.data, 3, "empty tokens are not written")

	set, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a-rt", set.Auth.RefreshToken)
	assert.Equal(t, "t-at", set.Transfer.AccessToken)
	assert.Empty(t, set.Transfer.RefreshToken)

	removed, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.Empty(t, backend.data)

	removed, err = store.Clear(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestLoggedIn(t *testing.T) {
	ctx := context.Background()
	full := config.Identity{ID: "1", Username: "u", Email: "e", Name: "n"}
	tokens := TokenSet{
		Auth:     Token{RefreshToken: "a-rt"},
		Transfer: Token{RefreshToken: "t-rt"},
	}

	tests := []struct {
		name   string
		id     config.Identity
		tokens TokenSet
		want   bool
	}{
		{name: "everything present", id: full, tokens: tokens, want: true},
		{name: "no tokens", id: full, tokens: TokenSet{}, want: false},
		{name: "missing transfer refresh", id: full, tokens: TokenSet{Auth: tokens.Auth}, want: false},
		{name: "incomplete identity", id: config.Identity{ID: "1", Username: "u"}, tokens: tokens, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(newMemBackend())
			require.NoError(t, store.Save(ctx, tt.tokens))

			got, err := LoggedIn(ctx, store, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRevoke(t *testing.T) {
	srv := mock.NewAuthServer(t)
	ac := srv.AuthConfig()

	require.NoError(t, Revoke(context.Background(), srv.Client(), ac, "auth-refresh-token"))
	assert.Equal(t, []string{"auth-refresh-token"}, srv.Revoked())
	assert.Equal(t, ac.ClientID, srv.LastForm("/revoke").Get("client_id"))

	err := Revoke(context.Background(), srv.Client(), ac, "")
	var apiErr *globuserrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}
