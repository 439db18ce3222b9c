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
	"strings"
)

// ShellCompleteFlag is the hidden root flag the driver scripts invoke.
const ShellCompleteFlag = "--shell-complete"

const bashDriver = `_{{prog}}_completion () {
  local IFS=$'\t'
  if type {{prog}} > /dev/null; then
    COMPREPLY=( $( env COMP_LINE="$COMP_LINE" COMP_POINT="$COMP_POINT" \
                   {{prog}} {{flag}} BASH ) )
  else
    COMPREPLY=( )
  fi
  return 0
}
complete -F _{{prog}}_completion -o default {{prog}};
`

const zshDriver = `#compdef {{prog}}
_{{prog}} () {
    if type {{prog}} > /dev/null; then
      eval "$(env COMMANDLINE="${words[1,$CURRENT]}" \
              {{prog}} {{flag}} ZSH)"
    fi
}
compdef _{{prog}} {{prog}}
`

// Script returns the shell function that wires prog's completion into shell.
func Script(shell Shell, prog string) (string, error) {
	var tmpl string
	switch shell {
	case ShellBash:
		tmpl = bashDriver
	case ShellZsh:
		tmpl = zshDriver
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedShell, shell)
	}
	r := strings.NewReplacer("{{prog}}", prog, "{{flag}}", ShellCompleteFlag)
	return r.Replace(tmpl), nil
}
