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

// Package config loads and stores the CLI's configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	globuserrors "github.com/globus/globus-cli/pkg/errors"
)

// Default Globus Auth settings for the CLI's native app client.
const (
	DefaultClientID    = "95fdeba8-fac2-42bd-a357-e068d82ff78e"
	DefaultAuthURL     = "https://auth.globus.org/v2/oauth2/authorize"
	DefaultTokenURL    = "https://auth.globus.org/v2/oauth2/token"
	DefaultRedirectURL = "https://auth.globus.org/v2/web/auth-code"
	DefaultRevokeURL   = "https://auth.globus.org/v2/oauth2/token/revoke"
)

// DefaultScopes are requested on login.
var DefaultScopes = []string{
	"openid",
	"profile",
	"email",
	"urn:globus:auth:scope:auth.globus.org:view_identity_set",
	"urn:globus:auth:scope:transfer.api.globus.org:all",
}

// Config represents the complete CLI configuration.
type Config struct {
	// Auth configures the OAuth2 client used by login.
	Auth AuthConfig `yaml:"auth"`

	// Identity records who is logged in. Written by login, cleared by logout.
	Identity Identity `yaml:"identity,omitempty"`

	// Tokens records token metadata. The tokens themselves live in the
	// secrets backend, never in this file.
	Tokens TokenInfo `yaml:"tokens,omitempty"`

	// Log configures logging behavior.
	Log LogConfig `yaml:"log,omitempty"`
}

// AuthConfig configures the Globus Auth client.
type AuthConfig struct {
	// ClientID is the native app client ID.
	// Environment: GLOBUS_CLI_CLIENT_ID
	ClientID string `yaml:"client_id"`

	AuthURL     string   `yaml:"auth_url"`
	TokenURL    string   `yaml:"token_url"`
	RedirectURL string   `yaml:"redirect_url"`
	RevokeURL   string   `yaml:"revoke_url"`
	Scopes      []string `yaml:"scopes"`

	// TokenStorage selects where tokens are kept: auto, keychain or file.
	TokenStorage string `yaml:"token_storage,omitempty"`
}

// Identity is the primary identity of the logged-in user.
type Identity struct {
	ID       string `yaml:"id,omitempty" json:"id"`
	Username string `yaml:"username,omitempty" json:"username"`
	Email    string `yaml:"email,omitempty" json:"email"`
	Name     string `yaml:"name,omitempty" json:"name"`
}

// Complete reports whether every identity field is set.
func (i Identity) Complete() bool {
	return i.ID != "" && i.Username != "" && i.Email != "" && i.Name != ""
}

// TokenInfo holds token expiry times.
type TokenInfo struct {
	AuthExpiresAt     time.Time `yaml:"auth_expires_at,omitempty"`
	TransferExpiresAt time.Time `yaml:"transfer_expires_at,omitempty"`
}

// LogConfig configures logging behavior. Environment variables read by
// internal/log take precedence.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Default returns a configuration with the CLI's built-in defaults.
func Default() *Config {
	return &Config{
		Auth: AuthConfig{
			ClientID:    DefaultClientID,
			AuthURL:     DefaultAuthURL,
			TokenURL:    DefaultTokenURL,
			RedirectURL: DefaultRedirectURL,
			RevokeURL:   DefaultRevokeURL,
			Scopes:      append([]string(nil), DefaultScopes...),
		},
	}
}

// Load reads the configuration file at configPath. A missing file is not an
// error: the defaults are returned instead. If configPath is empty the
// default location is used.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, &globuserrors.ConfigError{
				Key:    "config_file",
				Reason: "failed to determine config location",
				Cause:  err,
			}
		}
		configPath = p
	}

	cfg := Default()
	if err := cfg.loadFromFile(configPath); err != nil {
		return nil, &globuserrors.ConfigError{
			Key:    "config_file",
			Reason: fmt.Sprintf("failed to load from %s", configPath),
			Cause:  err,
		}
	}

	cfg.applyDefaults()
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills in zero values so partial files work.
func (c *Config) applyDefaults() {
	if c.Auth.ClientID == "" {
		c.Auth.ClientID = DefaultClientID
	}
	if c.Auth.AuthURL == "" {
		c.Auth.AuthURL = DefaultAuthURL
	}
	if c.Auth.TokenURL == "" {
		c.Auth.TokenURL = DefaultTokenURL
	}
	if c.Auth.RedirectURL == "" {
		c.Auth.RedirectURL = DefaultRedirectURL
	}
	if c.Auth.RevokeURL == "" {
		c.Auth.RevokeURL = DefaultRevokeURL
	}
	if len(c.Auth.Scopes) == 0 {
		c.Auth.Scopes = append([]string(nil), DefaultScopes...)
	}
}

func (c *Config) loadFromFile(path string) error {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("GLOBUS_CLI_CLIENT_ID"); val != "" {
		c.Auth.ClientID = val
	}
}

// Validate checks the auth endpoints are usable URLs.
func (c *Config) Validate() error {
	for key, val := range map[string]string{
		"auth.auth_url":     c.Auth.AuthURL,
		"auth.token_url":    c.Auth.TokenURL,
		"auth.redirect_url": c.Auth.RedirectURL,
		"auth.revoke_url":   c.Auth.RevokeURL,
	} {
		if !strings.HasPrefix(val, "https://") && !strings.HasPrefix(val, "http://") {
			return &globuserrors.ConfigError{Key: key, Reason: fmt.Sprintf("%q is not an http(s) URL", val)}
		}
	}
	return nil
}
