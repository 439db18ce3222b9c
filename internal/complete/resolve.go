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

// endOfOptions stops option scanning; every later word is positional.
const endOfOptions = "--"

// ParseState is the tree position reached by walking a list of completed words.
// It is created per request and never shared.
type ParseState struct {
	// Node is the deepest command the words resolved to.
	Node *Node

	// Consumed maps each option seen along the walk to its last raw value.
	// Flags record the spelling that was used.
	Consumed map[*Option]string

	// Remaining holds the words left after the walk. For a leaf these are
	// its positional arguments.
	Remaining []string
}

// Resolve walks args down the tree starting at root, leniently.
//
// Known options are consumed along with their values, unknown dash-prefixed
// words are skipped, and the first positional word at a group must name one
// of its children. If it does not, Resolve returns false: there is no tree
// position from which to complete.
func Resolve(root *Node, args []string) (*ParseState, bool) {
	state := &ParseState{
		Node:      root,
		Consumed:  make(map[*Option]string),
		Remaining: args,
	}

	for state.Node.IsBranching() && len(state.Remaining) > 0 {
		next := state.consumeOptions(state.Remaining)
		if next >= len(state.Remaining) {
			state.Remaining = nil
			break
		}

		child, ok := state.Node.Child(state.Remaining[next])
		if !ok {
			return nil, false
		}
		state.Node = child
		state.Remaining = state.Remaining[next+1:]
	}

	if !state.Node.IsBranching() {
		state.Remaining = state.consumeLeaf(state.Remaining)
	}
	return state, true
}

// consumeOptions records the options at the head of words and returns the
// index of the first positional word, or len(words) if there is none.
func (s *ParseState) consumeOptions(words []string) int {
	for i := 0; i < len(words); i++ {
		w := words[i]
		if w == endOfOptions {
			return i + 1
		}
		if !isOptionLike(w) {
			return i
		}
		i += s.bind(words, i)
	}
	return len(words)
}

// consumeLeaf records every option in words and returns the positionals.
func (s *ParseState) consumeLeaf(words []string) []string {
	var positional []string
	for i := 0; i < len(words); i++ {
		w := words[i]
		if w == endOfOptions {
			positional = append(positional, words[i+1:]...)
			break
		}
		if !isOptionLike(w) {
			positional = append(positional, w)
			continue
		}
		i += s.bind(words, i)
	}
	return positional
}

// bind records words[i] if it names an option at the current node and
// returns how many extra words it swallowed as a value.
func (s *ParseState) bind(words []string, i int) int {
	w := words[i]
	opt, ok := s.Node.Lookup(w)
	if !ok {
		if opt, value, inline := s.Node.lookupInline(w); inline {
			s.Consumed[opt] = value
		}
		// unknown options are tolerated
		return 0
	}

	if !opt.TakesValue() || isNegation(opt, w) {
		s.Consumed[opt] = w
		return 0
	}
	if i+1 < len(words) {
		s.Consumed[opt] = words[i+1]
		return 1
	}
	s.Consumed[opt] = ""
	return 0
}

func isOptionLike(w string) bool {
	return len(w) > 1 && strings.HasPrefix(w, "-")
}

func isNegation(opt *Option, w string) bool {
	for _, n := range opt.Negations {
		if n == w {
			return true
		}
	}
	return false
}
