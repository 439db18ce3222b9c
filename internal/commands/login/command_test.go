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

package login

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globus/globus-cli/internal/auth"
	"github.com/globus/globus-cli/internal/cli/prompt"
	"github.com/globus/globus-cli/internal/commands/shared"
	"github.com/globus/globus-cli/internal/config"
	"github.com/globus/globus-cli/internal/secrets"
	"github.com/globus/globus-cli/internal/testing/mock"
	globuserrors "github.com/globus/globus-cli/pkg/errors"
)

func setup(t *testing.T) (*mock.AuthServer, string) {
	t.Helper()
	t.Setenv(secrets.MasterKeyEnv, "login-test-master-key")

	srv := mock.NewAuthServer(t)
	path := srv.WriteConfig(t, t.TempDir(), config.Identity{})
	shared.SetConfigPathForTest(path)
	t.Cleanup(func() { shared.SetConfigPathForTest("") })
	return srv, path
}

func run(t *testing.T, p prompt.Prompter, args ...string) (string, error) {
	t.Helper()
	restore := shared.SetPrompterForTest(p)
	defer restore()

	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func storedToken(t *testing.T, configPath, key string) string {
	t.Helper()
	backend, err := secrets.NewFileBackend(filepath.Join(filepath.Dir(configPath), secrets.TokenFileName), "")
	require.NoError(t, err)
	v, err := backend.Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

func TestLogin(t *testing.T) {
	srv, path := setup(t)

	mp := prompt.NewMockPrompter(true, mock.GoodCode)
	out, err := run(t, mp)
	require.NoError(t, err)

	rule := strings.Repeat("-", len(linkPrompt))
	assert.Contains(t, out, linkPrompt+":\n"+rule+"\n"+srv.URL+"/authorize?")
	assert.Contains(t, out, "You have successfully logged in to the Globus CLI as "+mock.Identity.Username)
	assert.Contains(t, out, "globus logout")
	assert.Equal(t, []string{"PromptString(Enter the resulting Authorization Code here)"}, mp.CallLog())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, mock.Identity, cfg.Identity)
	assert.False(t, cfg.Tokens.AuthExpiresAt.IsZero())
	assert.False(t, cfg.Tokens.TransferExpiresAt.IsZero())

	assert.Equal(t, mock.AuthRefreshToken, storedToken(t, path, auth.KeyAuthRefresh))
	assert.Equal(t, mock.TransferRefreshToken, storedToken(t, path, auth.KeyTransferRefresh))
	assert.Equal(t, mock.TransferAccessToken, storedToken(t, path, auth.KeyTransferAccess))
}

func TestLoginAlreadyLoggedIn(t *testing.T) {
	setup(t)

	_, err := run(t, prompt.NewMockPrompter(true, mock.GoodCode))
	require.NoError(t, err)

	mp := prompt.NewMockPrompter(true)
	out, err := run(t, mp)
	require.NoError(t, err)
	assert.Contains(t, out, "You are already logged in!")
	assert.Contains(t, out, "globus login --force")
	assert.Empty(t, mp.CallLog(), "no prompt when already logged in")

	mp = prompt.NewMockPrompter(true, mock.GoodCode)
	out, err = run(t, mp, "--force")
	require.NoError(t, err)
	assert.NotContains(t, out, "already logged in")
	assert.Contains(t, out, "successfully logged in")
	assert.Len(t, mp.CallLog(), 1)
}

func TestLoginBadCode(t *testing.T) {
	_, path := setup(t)

	_, err := run(t, prompt.NewMockPrompter(true, "expired-code"))
	require.Error(t, err)
	assert.Equal(t, shared.ExitFailed, shared.ExitCode(err))

	var apiErr *globuserrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_grant", apiErr.Code)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Identity{}, cfg.Identity, "nothing recorded on failure")
}

func TestLoginNonInteractive(t *testing.T) {
	setup(t)

	_, err := run(t, prompt.NewMockPrompter(false))
	require.ErrorIs(t, err, prompt.ErrNonInteractive)
}
