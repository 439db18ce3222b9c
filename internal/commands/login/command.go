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

// Package login implements globus login.
package login

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/globus/globus-cli/internal/auth"
	"github.com/globus/globus-cli/internal/commands/shared"
	"github.com/globus/globus-cli/internal/config"
	globuslog "github.com/globus/globus-cli/internal/log"
)

const sharedEpilog = `

You can always check your current identity with
  globus whoami

Logout of the Globus CLI with
  globus logout
`

const loggedInEpilog = `
You have successfully logged in to the Globus CLI as %s
` + sharedEpilog

const alreadyLoggedIn = `You are already logged in!

You may force a new login with
  globus login --force
` + sharedEpilog

const linkPrompt = "Please login to Globus here"

// NewCommand creates the login command.
func NewCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Globus to get credentials for the Globus CLI",
		Long: `Get credentials for the Globus CLI. Necessary before any Globus CLI
commands which require authentication will work.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Do a fresh login, ignoring any existing credentials")
	return cmd
}

func runLogin(cmd *cobra.Command, force bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := shared.OpenEnv(ctx)
	if err != nil {
		return err
	}
	logger := globuslog.WithCommand(env.Logger, cmd.CommandPath())

	if !force {
		loggedIn, err := env.LoggedIn(ctx)
		if err != nil {
			return shared.NewFailedError("cannot read stored credentials", err)
		}
		if loggedIn {
			logger.Debug("already logged in", "username", env.Config.Identity.Username)
			fmt.Fprint(cmd.OutOrStdout(), alreadyLoggedIn)
			return nil
		}
	}

	return doLoginFlow(ctx, cmd.OutOrStdout(), env)
}

func doLoginFlow(ctx context.Context, out io.Writer, env *shared.Env) error {
	flow := auth.NewFlow(env.Config.Auth, env.HTTPClient, env.Logger)

	fmt.Fprintln(out, shared.Framed(linkPrompt, flow.AuthorizeURL()))

	code, err := env.Prompter.PromptString(ctx, "Enter the resulting Authorization Code here", "")
	if err != nil {
		return shared.NewFailedError("login aborted", err)
	}

	result, err := flow.Exchange(ctx, code)
	if err != nil {
		return shared.NewFailedError("login failed", err)
	}

	if err := env.Tokens.Save(ctx, result.Tokens); err != nil {
		return shared.NewFailedError("cannot store credentials", err)
	}

	err = env.File.Update(func(c *config.Config) error {
		c.Identity = result.Identity
		c.Tokens.AuthExpiresAt = result.Tokens.Auth.ExpiresAt
		c.Tokens.TransferExpiresAt = result.Tokens.Transfer.ExpiresAt
		return nil
	})
	if err != nil {
		return shared.NewFailedError("cannot save config", err)
	}

	fmt.Fprintf(out, loggedInEpilog, result.Identity.Username)
	return nil
}
