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

// NodeKind distinguishes command groups from executable commands.
type NodeKind int

const (
	// Leaf is an executable command with no children.
	Leaf NodeKind = iota
	// Branching is a command group whose children are further commands.
	Branching
)

// ValueKind describes what an option expects after its name.
type ValueKind int

const (
	// ValueFlag options take no value.
	ValueFlag ValueKind = iota
	// ValueFreeText options take an arbitrary value.
	ValueFreeText
	// ValueChoice options take one of a fixed set of values.
	ValueChoice
)

// Option describes one option recognised at a node.
type Option struct {
	// Names are the primary spellings, e.g. "--format" and "-F".
	Names []string
	// Negations are secondary spellings that turn the option off, e.g. "--no-color".
	Negations []string

	Kind ValueKind

	// Choices holds the allowed values of a ValueChoice option, in declaration order.
	Choices []string
	// CaseSensitive selects the prefix comparison used for Choices.
	CaseSensitive bool

	// Hidden options are valid on the command line but never offered.
	Hidden bool
	Help   string
}

// AllNames returns the primary names followed by the negations.
func (o *Option) AllNames() []string {
	names := make([]string, 0, len(o.Names)+len(o.Negations))
	names = append(names, o.Names...)
	return append(names, o.Negations...)
}

// Matches reports whether token is one of the option's spellings.
func (o *Option) Matches(token string) bool {
	for _, n := range o.AllNames() {
		if n == token {
			return true
		}
	}
	return false
}

// TakesValue reports whether the token after the option name is its value.
func (o *Option) TakesValue() bool {
	return o.Kind != ValueFlag
}

// Node is a command in the static tree the completion engine walks.
// Nodes are built once and never modified afterwards.
type Node struct {
	Name      string
	ShortHelp string
	Kind      NodeKind

	// Hidden commands resolve normally but are never offered as candidates.
	Hidden bool

	Options  []*Option
	children []*Node
}

// NewLeaf returns an executable command node.
func NewLeaf(name, shortHelp string, opts ...*Option) *Node {
	return &Node{Name: name, ShortHelp: shortHelp, Kind: Leaf, Options: opts}
}

// NewGroup returns a branching node holding children in the given order.
func NewGroup(name, shortHelp string, children []*Node, opts ...*Option) *Node {
	return &Node{
		Name:      name,
		ShortHelp: shortHelp,
		Kind:      Branching,
		Options:   opts,
		children:  children,
	}
}

// IsBranching reports whether the node is a command group.
func (n *Node) IsBranching() bool {
	return n.Kind == Branching
}

// Child looks a sub-command up by exact name.
func (n *Node) Child(name string) (*Node, bool) {
	if !n.IsBranching() {
		return nil, false
	}
	for _, c := range n.children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Children returns the sub-commands in declaration order.
func (n *Node) Children() []*Node {
	return n.children
}

// ChildNames lists every sub-command name, hidden ones included.
func (n *Node) ChildNames() []string {
	names := make([]string, 0, len(n.children))
	for _, c := range n.children {
		names = append(names, c.Name)
	}
	return names
}

// Lookup finds the option declared at this node that token names.
func (n *Node) Lookup(token string) (*Option, bool) {
	for _, o := range n.Options {
		if o.Matches(token) {
			return o, true
		}
	}
	return nil, false
}

// lookupInline splits "--name=value" or "-xVALUE" when the prefix names a
// value-taking option at this node.
func (n *Node) lookupInline(token string) (*Option, string, bool) {
	if strings.HasPrefix(token, "--") {
		name, value, found := strings.Cut(token, "=")
		if !found {
			return nil, "", false
		}
		if o, ok := n.Lookup(name); ok && o.TakesValue() {
			return o, value, true
		}
		return nil, "", false
	}
	if len(token) > 2 && token[0] == '-' {
		if o, ok := n.Lookup(token[:2]); ok && o.TakesValue() {
			return o, token[2:], true
		}
	}
	return nil, "", false
}
