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

package complete

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"unicode/utf8"
)

// Shell identifies the completion protocol a shell driver speaks.
type Shell string

const (
	ShellBash Shell = "BASH"
	ShellZsh  Shell = "ZSH"
)

// Environment variables set by the driver scripts.
const (
	EnvBashLine  = "COMP_LINE"
	EnvBashPoint = "COMP_POINT"
	EnvZshLine   = "COMMANDLINE"
)

// ErrUnsupportedShell means the driver asked for a protocol we do not speak.
var ErrUnsupportedShell = errors.New("unsupported shell completion")

// SupportedShells lists the accepted shell identifiers.
func SupportedShells() []Shell {
	return []Shell{ShellBash, ShellZsh}
}

// ParseShell validates a shell identifier. Matching is exact.
func ParseShell(s string) (Shell, error) {
	for _, sh := range SupportedShells() {
		if string(sh) == s {
			return sh, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedShell, s)
}

// LookupEnv reads a variable from the invocation environment.
// os.LookupEnv satisfies it.
type LookupEnv func(key string) (string, bool)

// Complete reads the shell's line from env, completes it against root and
// writes the shell-specific answer to w. Missing variables produce an
// empty answer rather than an error.
func Complete(w io.Writer, root *Node, shell Shell, env LookupEnv, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var (
		req Request
		ok  bool
	)
	switch shell {
	case ShellBash:
		line, _ := env(EnvBashLine)
		req, ok = BashRequest(line, cursor(env, line))
	case ShellZsh:
		line, _ := env(EnvZshLine)
		req, ok = ZshRequest(line)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedShell, shell)
	}

	var cands []Candidate
	if ok {
		cands = Candidates(root, req)
	}

	logger.Debug("shell completion",
		slog.String("shell", string(shell)),
		slog.Any("completed", req.Completed),
		slog.String("current", req.Current),
		slog.Bool("quoted", req.Quoted),
		slog.Int("candidates", len(cands)),
	)

	if shell == ShellZsh {
		return WriteZsh(w, cands)
	}
	return WriteBash(w, cands)
}

// cursor returns COMP_POINT, falling back to the end of the line when it is
// unset or unparsable.
func cursor(env LookupEnv, line string) int {
	end := utf8.RuneCountInString(line)
	raw, ok := env(EnvBashPoint)
	if !ok {
		return end
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n > end {
		return end
	}
	return n
}
