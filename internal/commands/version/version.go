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

// Package version implements globus version.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/globus/globus-cli/internal/commands/completion"
	"github.com/globus/globus-cli/internal/commands/shared"
)

// VersionInfo contains version metadata
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the version and exit",
		Long:  `Display the installed version of the Globus CLI. With --verbose, also show build details.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := completion.ValidateChoice(cmd, "format", format)
			if err != nil {
				return shared.NewUsageError("", err)
			}
			return runVersion(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "F", "text", "Output format")
	if err := completion.ChoiceFlag(cmd, "format", []string{"json", "text"}, false); err != nil {
		panic(err)
	}
	return cmd
}

func runVersion(cmd *cobra.Command, format string) error {
	v, c, b := shared.GetVersion()

	info := VersionInfo{
		Version:   v,
		Commit:    c,
		BuildDate: b,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return shared.EmitJSON(out, info)
	}

	fmt.Fprintf(out, "%s %s\n", shared.RenderLabel("Installed Version:"), info.Version)
	if shared.GetVerbose() {
		fmt.Fprintf(out, "%s %s\n", shared.RenderLabel("Commit:"), info.Commit)
		fmt.Fprintf(out, "%s %s\n", shared.RenderLabel("Build Date:"), info.BuildDate)
		fmt.Fprintf(out, "%s %s (%s)\n", shared.RenderLabel("Go:"), info.GoVersion, info.Platform)
	}
	return nil
}
