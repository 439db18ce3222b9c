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

package completion

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/globus/globus-cli/internal/commands/shared"
	"github.com/globus/globus-cli/internal/complete"
)

// NewCommand creates the completion command for printing shell driver scripts.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh]",
		Short: "Print a shell completion script",
		Long: `Print the script that wires shell tab-completion to globus.

Bash:
  # To load completions for the current session:
  $ eval "$(globus completion bash)"

  # To load completions for each session:
  $ globus completion bash >> ~/.bashrc

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ globus completion zsh > "${fpath[1]}/_globus"

The same scripts are printed by the --bash-completer and --zsh-completer flags.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh"},
		Args:                  cobra.ExactArgs(1),
		RunE:                  runCompletion,
	}

	return cmd
}

func runCompletion(cmd *cobra.Command, args []string) error {
	var shell complete.Shell
	switch args[0] {
	case "bash":
		shell = complete.ShellBash
	case "zsh":
		shell = complete.ShellZsh
	default:
		return shared.NewUsageError(fmt.Sprintf("unsupported shell %q (want bash or zsh)", args[0]), nil)
	}

	script, err := complete.Script(shell, cmd.Root().Name())
	if err != nil {
		return shared.NewUsageError("cannot generate completion script", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), script)
	return err
}
