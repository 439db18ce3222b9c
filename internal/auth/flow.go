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
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/globus/globus-cli/internal/config"
	globuslog "github.com/globus/globus-cli/internal/log"
	globuserrors "github.com/globus/globus-cli/pkg/errors"
)

// DefaultHTTPTimeout bounds each call to Globus Auth.
const DefaultHTTPTimeout = 30 * time.Second

// NewHTTPClient returns a client whose requests are logged through logger.
func NewHTTPClient(logger *slog.Logger) *http.Client {
	return &http.Client{
		Timeout:   DefaultHTTPTimeout,
		Transport: globuslog.NewTransport(http.DefaultTransport, logger),
	}
}

// Flow is one run of the native app authorization code grant with PKCE.
// The user opens AuthorizeURL in a browser and pastes back the code.
type Flow struct {
	conf     *oauth2.Config
	client   *http.Client
	logger   *slog.Logger
	verifier string
	state    string
}

// Result is what a successful exchange yields.
type Result struct {
	Tokens   TokenSet
	Identity config.Identity
}

// NewFlow starts a flow for the configured client. A fresh PKCE verifier and
// state are generated for every flow.
func NewFlow(ac config.AuthConfig, client *http.Client, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if client == nil {
		client = NewHTTPClient(logger)
	}

	return &Flow{
		conf: &oauth2.Config{
			ClientID: ac.ClientID,
			Endpoint: oauth2.Endpoint{
				AuthURL:   ac.AuthURL,
				TokenURL:  ac.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			RedirectURL: ac.RedirectURL,
			Scopes:      ac.Scopes,
		},
		client:   client,
		logger:   globuslog.WithComponent(logger, "auth"),
		verifier: oauth2.GenerateVerifier(),
		state:    uuid.NewString(),
	}
}

// AuthorizeURL returns the URL the user must visit to log in.
func (f *Flow) AuthorizeURL() string {
	return f.conf.AuthCodeURL(f.state,
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(f.verifier),
	)
}

// Exchange trades an authorization code for tokens and reads the identity
// from the returned id_token.
func (f *Flow) Exchange(ctx context.Context, code string) (*Result, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.client)

	tok, err := f.conf.Exchange(ctx, code, oauth2.VerifierOption(f.verifier))
	if err != nil {
		return nil, f.apiError(err)
	}

	result := &Result{
		Tokens: TokenSet{
			Auth: Token{
				AccessToken:  tok.AccessToken,
				RefreshToken: tok.RefreshToken,
				ExpiresAt:    tok.Expiry,
			},
		},
	}

	transfer, ok := otherToken(tok, ResourceServerTransfer)
	if !ok {
		return nil, fmt.Errorf("token response did not include tokens for %s", ResourceServerTransfer)
	}
	result.Tokens.Transfer = transfer

	rawID, _ := tok.Extra("id_token").(string)
	if rawID == "" {
		return nil, errors.New("token response did not include an id_token")
	}
	result.Identity, err = ParseIDToken(rawID)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("login exchange complete",
		"username", result.Identity.Username,
		globuslog.ResourceServerKey, ResourceServerTransfer,
		"transfer_token", globuslog.SanitizeToken(transfer.AccessToken),
	)
	return result, nil
}

// otherToken finds the grant for resourceServer among the dependent
// tokens Globus Auth returns next to the primary one.
func otherToken(tok *oauth2.Token, resourceServer string) (Token, bool) {
	others, _ := tok.Extra("other_tokens").([]interface{})
	for _, o := range others {
		entry, ok := o.(map[string]interface{})
		if !ok || entry["resource_server"] != resourceServer {
			continue
		}

		t := Token{}
		t.AccessToken, _ = entry["access_token"].(string)
		t.RefreshToken, _ = entry["refresh_token"].(string)
		if secs, ok := entry["expires_in"].(float64); ok && secs > 0 {
			t.ExpiresAt = time.Now().Add(time.Duration(secs) * time.Second)
		}
		return t, t.AccessToken != ""
	}
	return Token{}, false
}

func (f *Flow) apiError(err error) error {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) || re.Response == nil {
		return fmt.Errorf("token exchange failed: %w", err)
	}

	service := ResourceServerAuth
	if u, perr := url.Parse(f.conf.Endpoint.TokenURL); perr == nil && u.Host != "" {
		service = u.Host
	}
	return &globuserrors.APIError{
		Service:    service,
		StatusCode: re.Response.StatusCode,
		Code:       re.ErrorCode,
		Message:    re.ErrorDescription,
	}
}
