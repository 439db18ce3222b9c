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
	"strings"

	"golang.org/x/text/cases"
)

// Candidate is one completion offered to the shell.
type Candidate struct {
	Name string
	Help string
}

// Request is what the shell asked to complete.
type Request struct {
	// Completed holds the fully typed words after the program name.
	Completed []string
	// Current is the word under the cursor. Empty means no word is in progress.
	Current string
	// Quoted is true when Current sits inside an unterminated quote.
	Quoted bool
}

// last returns the final completed word, or "" if there is none.
func (r Request) last() string {
	if len(r.Completed) == 0 {
		return ""
	}
	return r.Completed[len(r.Completed)-1]
}

type matchFunc func(name, prefix string) bool

func matchCase(name, prefix string) bool {
	return strings.HasPrefix(name, prefix)
}

func matchFold(name, prefix string) bool {
	fold := cases.Fold()
	return strings.HasPrefix(fold.String(name), fold.String(prefix))
}

// Candidates resolves req against the tree rooted at root and returns the
// filtered completions. An unknown command name yields no candidates.
func Candidates(root *Node, req Request) []Candidate {
	state, ok := Resolve(root, req.Completed)
	if !ok {
		return nil
	}
	return Generate(state, req)
}

// Generate picks the kind of completion expected at state and filters it by
// the current word. The first matching rule wins:
//
//  1. the previous word named a closed-choice option: its values
//  2. the current word starts with "-" and is not quoted: option names
//  3. the node is a group and the word is not quoted: sub-command names
//  4. otherwise nothing
func Generate(state *ParseState, req Request) []Candidate {
	if state == nil {
		return nil
	}

	match := matchFunc(matchCase)
	var out []Candidate

	if opt := choiceOption(state.Node, req.last()); opt != nil {
		if !opt.CaseSensitive {
			match = matchFold
		}
		for _, v := range opt.Choices {
			out = append(out, Candidate{Name: v, Help: opt.Help})
		}
	} else if strings.HasPrefix(req.Current, "-") && !req.Quoted {
		out = optionCandidates(state.Node, req.Current)
	} else if state.Node.IsBranching() && !req.Quoted {
		for _, c := range state.Node.Children() {
			if c.Hidden {
				continue
			}
			out = append(out, Candidate{Name: c.Name, Help: c.ShortHelp})
		}
	}

	if req.Current == "" {
		return out
	}
	filtered := out[:0]
	for _, c := range out {
		if match(c.Name, req.Current) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// choiceOption returns the closed-choice option at n spelled word, if any.
// Later declarations win, matching how a parser would bind the name.
func choiceOption(n *Node, word string) *Option {
	if word == "" {
		return nil
	}
	var found *Option
	for _, o := range n.Options {
		if o.Kind != ValueChoice {
			continue
		}
		for _, name := range o.Names {
			if name == word {
				found = o
			}
		}
	}
	return found
}

// optionCandidates lists the visible option spellings at n. Short spellings
// are only offered once cur already looks like a short option.
func optionCandidates(n *Node, cur string) []Candidate {
	wantShort := len(cur) > 1 && cur[1] != '-'

	var out []Candidate
	for _, o := range n.Options {
		if o.Hidden {
			continue
		}
		for _, name := range o.AllNames() {
			if strings.HasPrefix(name, "--") || wantShort {
				out = append(out, Candidate{Name: name, Help: o.Help})
			}
		}
	}
	return out
}
