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

package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/globus/globus-cli/internal/commands/shared"
	"github.com/globus/globus-cli/internal/config"
	globuslog "github.com/globus/globus-cli/internal/log"
)

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	shared.SetVersion(v, c, b)
}

// NewRootCommand creates the root Cobra command for the Globus CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "globus",
		Short: "Interact with Globus from the command line",
		Long: `The Globus CLI lets you interact with Globus services from your shell.

Run 'globus login' to get started, and 'globus completion bash' or
'globus completion zsh' to set up tab completion.`,
		Version:       versionString(),
		SilenceUsage:  true, // Don't show usage on errors
		SilenceErrors: true, // We handle errors ourselves for proper exit codes
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			shared.SetLogger(globuslog.WithCommand(newLogger(), cmd.CommandPath()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	verbose, debug, config := shared.RegisterFlagPointers()

	cmd.PersistentFlags().BoolVarP(verbose, "verbose", "v", false, "Control level of output")
	cmd.PersistentFlags().BoolVar(debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(config, "config", "", "Path to config file (default: ~/.config/globus/config.yaml)")
	_ = cmd.PersistentFlags().MarkHidden("debug")

	// Handled by RunEager before cobra sees argv. Registered so that cobra
	// accepts them and completion never offers them.
	cmd.Flags().String(flagName(FlagShellComplete), "", "Print completions for the given shell")
	_ = cmd.Flags().MarkHidden(flagName(FlagShellComplete))
	for _, f := range []string{FlagCompleter, FlagBashCompleter, FlagZshCompleter} {
		cmd.Flags().Bool(flagName(f), false, "Print a shell completion script")
		_ = cmd.Flags().MarkHidden(flagName(f))
	}

	return cmd
}

// newLogger builds the process logger: environment first, then the config
// file's log section, then --debug.
func newLogger() *slog.Logger {
	cfg := globuslog.FromEnv()
	if c, err := config.Load(shared.GetConfigPath()); err == nil {
		cfg.Apply(c.Log.Level, c.Log.Format)
	}
	if shared.GetDebug() {
		cfg.Level = "debug"
		cfg.AddSource = true
	}
	return globuslog.New(cfg)
}

func versionString() string {
	v, c, b := shared.GetVersion()
	return v + " (commit " + c + ", built " + b + ")"
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return shared.GetVersion()
}

// HandleExitError handles exit errors with proper exit codes
func HandleExitError(err error) {
	shared.HandleExitError(err)
}
