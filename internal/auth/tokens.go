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

// Package auth implements the Globus Auth native app login and the
// storage of the resulting tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/globus/globus-cli/internal/secrets"
)

// Resource servers the CLI holds tokens for.
const (
	ResourceServerAuth     = "auth.globus.org"
	ResourceServerTransfer = "transfer.api.globus.org"
)

// Keys under which tokens are kept in the secrets backend.
const (
	KeyAuthAccess      = "auth_at"
	KeyAuthRefresh     = "auth_rt"
	KeyTransferAccess  = "transfer_at"
	KeyTransferRefresh = "transfer_rt"
)

// AllKeys lists every token key the CLI writes.
func AllKeys() []string {
	return []string{KeyAuthAccess, KeyAuthRefresh, KeyTransferAccess, KeyTransferRefresh}
}

// Token is one resource server's grant.
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// TokenSet holds the grants returned by a login.
type TokenSet struct {
	Auth     Token
	Transfer Token
}

// Store keeps tokens in a secrets backend. Expiry times are not secret and
// live in the config file instead.
type Store struct {
	backend secrets.Backend
}

// NewStore creates a Store over backend.
func NewStore(backend secrets.Backend) *Store {
	return &Store{backend: backend}
}

// Save writes every non-empty token in set.
func (s *Store) Save(ctx context.Context, set TokenSet) error {
	for key, value := range map[string]string{
		KeyAuthAccess:      set.Auth.AccessToken,
		KeyAuthRefresh:     set.Auth.RefreshToken,
		KeyTransferAccess:  set.Transfer.AccessToken,
		KeyTransferRefresh: set.Transfer.RefreshToken,
	} {
		if value == "" {
			continue
		}
		if err := s.backend.Set(ctx, key, value); err != nil {
			return fmt.Errorf("failed to store %s: %w", key, err)
		}
	}
	return nil
}

// Load reads the stored tokens. Missing tokens are left empty.
func (s *Store) Load(ctx context.Context) (TokenSet, error) {
	var set TokenSet
	for key, dst := range map[string]*string{
		KeyAuthAccess:      &set.Auth.AccessToken,
		KeyAuthRefresh:     &set.Auth.RefreshToken,
		KeyTransferAccess:  &set.Transfer.AccessToken,
		KeyTransferRefresh: &set.Transfer.RefreshToken,
	} {
		v, err := s.get(ctx, key)
		if err != nil {
			return TokenSet{}, err
		}
		*dst = v
	}
	return set, nil
}

// Clear deletes every stored token and returns how many existed.
func (s *Store) Clear(ctx context.Context) (int, error) {
	removed := 0
	for _, key := range AllKeys() {
		err := s.backend.Delete(ctx, key)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, secrets.ErrSecretNotFound):
		default:
			return removed, fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return removed, nil
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	v, err := s.backend.Get(ctx, key)
	if errors.Is(err, secrets.ErrSecretNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return v, nil
}
