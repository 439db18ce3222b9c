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

// Package logout implements globus logout.
package logout

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/globus/globus-cli/internal/auth"
	"github.com/globus/globus-cli/internal/commands/shared"
	"github.com/globus/globus-cli/internal/config"
	globuslog "github.com/globus/globus-cli/internal/log"
)

const notLoggedIn = `You are not logged in to the Globus CLI.

Login with
  globus login
`

const loggedOut = `You are now successfully logged out of the Globus CLI.

You may also want to logout of any browser session you have with Globus:
  https://auth.globus.org/v2/web/logout
`

// NewCommand creates the logout command.
func NewCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Logout of the Globus CLI",
		Long: `Logout of the Globus CLI. Stored tokens are revoked and removed, and
the recorded identity is cleared.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func runLogout(cmd *cobra.Command, yes bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	env, err := shared.OpenEnv(ctx)
	if err != nil {
		return err
	}
	logger := globuslog.WithCommand(env.Logger, cmd.CommandPath())

	tokens, err := env.Tokens.Load(ctx)
	if err != nil {
		return shared.NewFailedError("cannot read stored credentials", err)
	}
	if tokens == (auth.TokenSet{}) && env.Config.Identity == (config.Identity{}) {
		fmt.Fprint(out, notLoggedIn)
		return nil
	}

	if !yes && env.Prompter.IsInteractive() {
		ok, err := env.Prompter.Confirm(ctx, "Are you sure you want to logout?", false)
		if err != nil {
			return shared.NewFailedError("logout aborted", err)
		}
		if !ok {
			return shared.NewFailedError("logout aborted", nil)
		}
	}

	// Revocation is best effort: local credentials are removed regardless.
	for _, tok := range []string{
		tokens.Auth.RefreshToken, tokens.Auth.AccessToken,
		tokens.Transfer.RefreshToken, tokens.Transfer.AccessToken,
	} {
		if tok == "" {
			continue
		}
		if err := auth.Revoke(ctx, env.HTTPClient, env.Config.Auth, tok); err != nil {
			logger.Warn("token revocation failed", "token", globuslog.SanitizeToken(tok), "error", err)
		}
	}

	removed, err := env.Tokens.Clear(ctx)
	if err != nil {
		return shared.NewFailedError("cannot remove stored credentials", err)
	}
	logger.Debug("removed stored tokens", "count", removed)

	err = env.File.Update(func(c *config.Config) error {
		c.Identity = config.Identity{}
		c.Tokens = config.TokenInfo{}
		return nil
	})
	if err != nil {
		return shared.NewFailedError("cannot save config", err)
	}

	fmt.Fprint(out, loggedOut)
	return nil
}
