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
	"fmt"
	"io"
	"strings"
)

// zshHelpEscaper makes help text safe inside the single-quoted _arguments spec.
// A single quote closes the quoting, adds a double-quoted ', and reopens it.
var zshHelpEscaper = strings.NewReplacer(
	`"`, `\"`,
	`'`, `'"'"'`,
	"`", "\\`",
	`$`, `\$`,
)

// WriteBash writes candidate names separated by tabs, without a trailing
// newline. Bash has nowhere to show help text so it is dropped.
func WriteBash(w io.Writer, cands []Candidate) error {
	names := make([]string, len(cands))
	for i, c := range cands {
		names[i] = c.Name
	}
	_, err := io.WriteString(w, strings.Join(names, "\t"))
	return err
}

// WriteZsh writes an _arguments call describing each candidate with its help.
func WriteZsh(w io.Writer, cands []Candidate) error {
	entries := make([]string, len(cands))
	for i, c := range cands {
		entries[i] = fmt.Sprintf(`%s\:"%s"`, c.Name, EscapeZshHelp(c.Help))
	}
	_, err := fmt.Fprintf(w, "_arguments '*: :((%s))'", strings.Join(entries, "\n"))
	return err
}

// EscapeZshHelp escapes ", ', ` and $ for embedding in a single-quoted zsh string.
func EscapeZshHelp(help string) string {
	return zshHelpEscaper.Replace(help)
}
