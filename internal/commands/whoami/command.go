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

// Package whoami implements globus whoami.
package whoami

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/globus/globus-cli/internal/commands/completion"
	"github.com/globus/globus-cli/internal/commands/shared"
	"github.com/globus/globus-cli/internal/config"
	"github.com/globus/globus-cli/internal/jq"
	globuserrors "github.com/globus/globus-cli/pkg/errors"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewCommand creates the whoami command.
func NewCommand() *cobra.Command {
	var (
		format string
		filter string
	)

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently logged-in identity",
		Long: `Show the identity the Globus CLI is logged in as.

The text format prints the username; with --verbose it prints every
recorded field. The json format prints the identity object, and --jq
applies a jq filter to it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := completion.ValidateChoice(cmd, "format", format)
			if err != nil {
				return shared.NewUsageError("", err)
			}
			return runWhoami(cmd, f, filter)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "F", FormatText, "Output format")
	cmd.Flags().StringVar(&filter, "jq", "", "jq filter applied to the JSON output")
	if err := completion.ChoiceFlag(cmd, "format", []string{FormatJSON, FormatText}, false); err != nil {
		panic(err)
	}
	return cmd
}

func runWhoami(cmd *cobra.Command, format, filter string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if filter != "" {
		if _, err := jq.Compile(filter); err != nil {
			return shared.NewUsageError("", err)
		}
	}

	file, err := config.NewFile(shared.GetConfigPath())
	if err != nil {
		return err
	}
	cfg, err := file.Load()
	if err != nil {
		return err
	}

	id := cfg.Identity
	if id.Username == "" {
		return shared.NewFailedError("", &globuserrors.AuthError{
			Message: "No login information available. Please try logging in again.",
			Hint:    "Run 'globus login' to authenticate",
		})
	}

	out := cmd.OutOrStdout()
	switch {
	case filter != "":
		results, err := jq.NewExecutor(0).Run(ctx, filter, id)
		if err != nil {
			return shared.NewFailedError("jq filter failed", err)
		}
		return jq.Write(out, results)
	case format == FormatJSON:
		return shared.EmitJSON(out, id)
	case shared.GetVerbose():
		writeVerbose(out, id)
		return nil
	default:
		_, err := fmt.Fprintln(out, id.Username)
		return err
	}
}

func writeVerbose(w io.Writer, id config.Identity) {
	for _, row := range [][2]string{
		{"Username:", id.Username},
		{"Name:", id.Name},
		{"ID:", id.ID},
		{"Email:", id.Email},
	} {
		fmt.Fprintf(w, "%s %s\n", shared.RenderLabel(fmt.Sprintf("%-9s", row[0])), row[1])
	}
}
