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

import "strings"

type splitState int

const (
	stateBetween splitState = iota
	stateWord
	stateSingle
	stateDouble
)

// Split breaks a shell line into words using POSIX quoting rules.
//
// Quote characters are removed, and a backslash outside single quotes escapes
// the next character. An unterminated quote (or a trailing backslash) does not
// fail the split: the partial word is returned as the last element and quoted
// is set to true.
func Split(line string) (words []string, quoted bool) {
	var (
		cur     strings.Builder
		state   = stateBetween
		escaped bool
	)

	flush := func() {
		words = append(words, cur.String())
		cur.Reset()
	}

	for _, r := range line {
		if escaped {
			escaped = false
			switch {
			case r == '\n':
				// line continuation: neither text nor a word boundary
				continue
			case state == stateDouble && !strings.ContainsRune("$`\"\\", r):
				cur.WriteByte('\\')
				cur.WriteRune(r)
			default:
				cur.WriteRune(r)
			}
			if state == stateBetween {
				state = stateWord
			}
			continue
		}

		switch state {
		case stateSingle:
			if r == '\'' {
				state = stateWord
				continue
			}
			cur.WriteRune(r)

		case stateDouble:
			switch r {
			case '"':
				state = stateWord
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}

		case stateBetween, stateWord:
			switch {
			case isSpace(r):
				if state == stateWord {
					flush()
					state = stateBetween
				}
			case r == '\'':
				state = stateSingle
			case r == '"':
				state = stateDouble
			case r == '\\':
				escaped = true
			default:
				cur.WriteRune(r)
				state = stateWord
			}
		}
	}

	if escaped || state == stateSingle || state == stateDouble {
		flush()
		return words, true
	}
	if state == stateWord {
		flush()
	}
	return words, false
}

// Join quotes words so that Split(Join(words)) returns them unchanged.
func Join(words []string) string {
	quotedWords := make([]string, len(words))
	for i, w := range words {
		quotedWords[i] = quoteWord(w)
	}
	return strings.Join(quotedWords, " ")
}

func quoteWord(w string) string {
	if w == "" {
		return "''"
	}
	if !strings.ContainsAny(w, " \t\r\n'\"\\$`") {
		return w
	}
	return "'" + strings.ReplaceAll(w, "'", `'\''`) + "'"
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
