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
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/globus/globus-cli/internal/config"
	globuserrors "github.com/globus/globus-cli/pkg/errors"
)

// Revoke asks Globus Auth to invalidate token.
func Revoke(ctx context.Context, client *http.Client, ac config.AuthConfig, token string) error {
	form := url.Values{
		"token":     {token},
		"client_id": {ac.ClientID},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ac.RevokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build revoke request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("revoke request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode >= 300 {
		return &globuserrors.APIError{
			Service:    req.URL.Host,
			StatusCode: resp.StatusCode,
			Message:    "token revocation failed",
		}
	}
	return nil
}

// LoggedIn reports whether both refresh tokens are stored and the identity
// is fully recorded.
func LoggedIn(ctx context.Context, store *Store, id config.Identity) (bool, error) {
	if !id.Complete() {
		return false, nil
	}
	set, err := store.Load(ctx)
	if err != nil {
		return false, err
	}
	return set.Auth.RefreshToken != "" && set.Transfer.RefreshToken != "", nil
}
