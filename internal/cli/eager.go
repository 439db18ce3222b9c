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
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/globus/globus-cli/internal/commands/shared"
	"github.com/globus/globus-cli/internal/complete"
)

// Eager root flags. They run before any other option processing and end
// the process.
const (
	FlagShellComplete = complete.ShellCompleteFlag
	FlagCompleter     = "--completer"
	FlagBashCompleter = "--bash-completer"
	FlagZshCompleter  = "--zsh-completer"
)

func flagName(flag string) string {
	return strings.TrimPrefix(flag, "--")
}

// ScanEager finds the first eager flag in args. The value of
// --shell-complete may follow as the next word or after '='.
//
// Words after "--" are never eager. Before it, an eager flag is found even
// where it would be the value of another option, as in
// "globus whoami --jq --completer": telling values apart needs every
// command's flag set, and the driver scripts only ever put the flag first.
func ScanEager(args []string) (flag, value string, found bool) {
	for i, arg := range args {
		switch arg {
		case "--":
			return "", "", false
		case FlagCompleter, FlagBashCompleter, FlagZshCompleter:
			return arg, "", true
		case FlagShellComplete:
			if i+1 < len(args) {
				value = args[i+1]
			}
			return arg, value, true
		}
		if v, ok := strings.CutPrefix(arg, FlagShellComplete+"="); ok {
			return FlagShellComplete, v, true
		}
	}
	return "", "", false
}

// RunEager handles an eager flag in args. It reports whether one was
// present; if so the caller must exit without executing root, using the
// exit code of the returned error.
func RunEager(w io.Writer, root *cobra.Command, args []string, env complete.LookupEnv, logger *slog.Logger) (bool, error) {
	flag, value, found := ScanEager(args)
	if !found {
		return false, nil
	}

	switch flag {
	case FlagShellComplete:
		shell, err := complete.ParseShell(value)
		if err != nil {
			return true, shared.NewUsageError(
				fmt.Sprintf("invalid value for %s: %q is not one of BASH, ZSH", FlagShellComplete, value), err)
		}
		return true, complete.Complete(w, complete.FromCobra(root), shell, env, logger)
	case FlagZshCompleter:
		return true, writeScript(w, complete.ShellZsh, root.Name())
	default:
		return true, writeScript(w, complete.ShellBash, root.Name())
	}
}

func writeScript(w io.Writer, shell complete.Shell, prog string) error {
	script, err := complete.Script(shell, prog)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, script)
	return err
}
