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

package shared

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/globus/globus-cli/internal/auth"
	"github.com/globus/globus-cli/internal/cli/prompt"
	"github.com/globus/globus-cli/internal/config"
	"github.com/globus/globus-cli/internal/secrets"
)

// Env is what the auth commands work against: the loaded config, the token
// store and the means to talk to the user and to Globus Auth.
type Env struct {
	Config     *config.Config
	File       *config.File
	Tokens     *auth.Store
	HTTPClient *http.Client
	Prompter   prompt.Prompter
	Logger     *slog.Logger
}

// promptOverride replaces the terminal prompter in tests.
var promptOverride prompt.Prompter

// SetPrompterForTest makes OpenEnv return p as the prompter until the
// returned function is called.
func SetPrompterForTest(p prompt.Prompter) (restore func()) {
	prev := promptOverride
	promptOverride = p
	return func() { promptOverride = prev }
}

// OpenEnv loads the config named by --config (or the default location) and
// opens the token backend it selects.
func OpenEnv(ctx context.Context) (*Env, error) {
	file, err := config.NewFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	cfg, err := file.Load()
	if err != nil {
		return nil, err
	}

	backend, err := secrets.Open(secrets.Options{
		Backend: cfg.Auth.TokenStorage,
		Dir:     filepath.Dir(file.Path()),
		Logger:  Logger(),
	})
	if err != nil {
		return nil, NewFailedError("cannot access token storage", err)
	}

	var p prompt.Prompter = prompt.NewSurveyPrompter(!IsNonInteractive())
	if promptOverride != nil {
		p = promptOverride
	}

	return &Env{
		Config:     cfg,
		File:       file,
		Tokens:     auth.NewStore(backend),
		HTTPClient: auth.NewHTTPClient(Logger()),
		Prompter:   p,
		Logger:     Logger(),
	}, nil
}

// LoggedIn reports whether a complete login is recorded.
func (e *Env) LoggedIn(ctx context.Context) (bool, error) {
	return auth.LoggedIn(ctx, e.Tokens, e.Config.Identity)
}
