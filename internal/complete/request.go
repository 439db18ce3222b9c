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
	"unicode/utf8"
)

// BashRequest builds a request from bash's COMP_LINE and COMP_POINT.
//
// The full line supplies the completed words and the line up to the cursor
// supplies the current word. point counts characters and is clamped to the
// line. It returns false when the line holds nothing to complete.
func BashRequest(line string, point int) (Request, bool) {
	words, quoted := Split(line)
	if len(words) == 0 {
		return Request{}, false
	}

	before, _ := Split(prefixRunes(line, point))
	var cur string
	if len(before) > 0 {
		cur = before[len(before)-1]
	}

	if endsWord(line, quoted) {
		return Request{Completed: words[1:], Quoted: quoted}, true
	}
	if len(words) == 1 {
		return Request{Current: cur, Quoted: quoted}, true
	}
	return Request{
		Completed: words[1 : len(words)-1],
		Current:   cur,
		Quoted:    quoted,
	}, true
}

// ZshRequest builds a request from a line zsh already cut at the cursor.
func ZshRequest(line string) (Request, bool) {
	words, quoted := Split(line)
	if len(words) == 0 {
		return Request{}, false
	}
	words = words[1:]

	if len(words) == 0 || endsWord(line, quoted) {
		return Request{Completed: words, Quoted: quoted}, true
	}
	return Request{
		Completed: words[:len(words)-1],
		Current:   words[len(words)-1],
		Quoted:    quoted,
	}, true
}

// endsWord reports whether trailing whitespace closes the last word, which
// it cannot do inside an open quote.
func endsWord(line string, quoted bool) bool {
	if quoted || line == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(line)
	return isSpace(r)
}

func prefixRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
