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
	"reflect"
	"testing"
)

// testTree builds:
//
//	globus [--verbose/-v] [--config PATH] [--debug (hidden)]
//	├── login [--force]
//	├── logout
//	├── whoami [--format/-F json|text (no case)] [--jq EXPR] [--color/--no-color]
//	└── endpoint
//	    ├── search [--filter-scope all|my-endpoints (case)] QUERY
//	    └── show ENDPOINT_ID
func testTree() *Node {
	return NewGroup("globus", "Globus CLI", []*Node{
		NewLeaf("login", "Login to Globus",
			&Option{Names: []string{"--force"}, Kind: ValueFlag, Help: "Do a fresh login"},
		),
		NewLeaf("logout", "Logout of Globus"),
		NewLeaf("whoami", "Show the current identity",
			&Option{
				Names:   []string{"--format", "-F"},
				Kind:    ValueChoice,
				Choices: []string{"json", "text"},
				Help:    "Output format",
			},
			&Option{Names: []string{"--jq"}, Kind: ValueFreeText, Help: "jq filter"},
			&Option{Names: []string{"--color"}, Negations: []string{"--no-color"}, Kind: ValueFlag, Help: "Colorize"},
		),
		NewGroup("endpoint", "Manage endpoints", []*Node{
			NewLeaf("search", "Search endpoints",
				&Option{
					Names:         []string{"--filter-scope"},
					Kind:          ValueChoice,
					Choices:       []string{"all", "my-endpoints", "My-Other"},
					CaseSensitive: true,
					Help:          "Scope",
				},
			),
			NewLeaf("show", "Show an endpoint"),
		}),
	},
		&Option{Names: []string{"--verbose", "-v"}, Kind: ValueFlag, Help: "Verbose output"},
		&Option{Names: []string{"--config"}, Kind: ValueFreeText, Help: "Config file"},
		&Option{Names: []string{"--debug"}, Kind: ValueFlag, Hidden: true, Help: "Debug logging"},
	)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		wantFound     bool
		wantNode      string
		wantRemaining []string
	}{
		{name: "no args stays at root", args: nil, wantFound: true, wantNode: "globus"},
		{name: "descends into leaf", args: []string{"login"}, wantFound: true, wantNode: "login"},
		{name: "descends two levels", args: []string{"endpoint", "search"}, wantFound: true, wantNode: "search"},
		{name: "stops at group", args: []string{"endpoint"}, wantFound: true, wantNode: "endpoint"},
		{name: "unknown command", args: []string{"baz"}, wantFound: false},
		{name: "unknown nested command", args: []string{"endpoint", "baz"}, wantFound: false},
		{name: "root option before command", args: []string{"-v", "whoami"}, wantFound: true, wantNode: "whoami"},
		{name: "option value is not a command", args: []string{"--config", "login", "whoami"}, wantFound: true, wantNode: "whoami"},
		{name: "option value alone", args: []string{"--config", "x.yaml"}, wantFound: true, wantNode: "globus"},
		{name: "inline option value", args: []string{"--config=x.yaml", "logout"}, wantFound: true, wantNode: "logout"},
		{name: "unknown options skipped", args: []string{"--nope", "-x", "login"}, wantFound: true, wantNode: "login"},
		{name: "dangling value option", args: []string{"--config"}, wantFound: true, wantNode: "globus"},
		{name: "end of options", args: []string{"--", "login"}, wantFound: true, wantNode: "login"},
		{name: "end of options then unknown", args: []string{"--", "-v"}, wantFound: false},
		{name: "lone dash is positional", args: []string{"-"}, wantFound: false},
		{
			name:          "leaf keeps positionals",
			args:          []string{"endpoint", "search", "--filter-scope", "all", "tutorial"},
			wantFound:     true,
			wantNode:      "search",
			wantRemaining: []string{"tutorial"},
		},
		{
			name:          "leaf after end of options",
			args:          []string{"endpoint", "show", "--", "--filter-scope"},
			wantFound:     true,
			wantNode:      "show",
			wantRemaining: []string{"--filter-scope"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, found := Resolve(testTree(), tt.args)
			if found != tt.wantFound {
				t.Fatalf("Resolve(%q) found = %v, want %v", tt.args, found, tt.wantFound)
			}
			if !found {
				if state != nil {
					t.Errorf("expected nil state when not found, got %+v", state)
				}
				return
			}
			if state.Node.Name != tt.wantNode {
				t.Errorf("Resolve(%q) node = %q, want %q", tt.args, state.Node.Name, tt.wantNode)
			}
			if len(tt.wantRemaining) > 0 && !reflect.DeepEqual(state.Remaining, tt.wantRemaining) {
				t.Errorf("Resolve(%q) remaining = %q, want %q", tt.args, state.Remaining, tt.wantRemaining)
			}
		})
	}
}

func TestResolveRecordsConsumedOptions(t *testing.T) {
	root := testTree()
	state, ok := Resolve(root, []string{"--config", "a.yaml", "--config=b.yaml", "whoami", "-F", "json", "--no-color"})
	if !ok {
		t.Fatal("expected context to resolve")
	}

	values := make(map[string]string)
	for opt, v := range state.Consumed {
		values[opt.Names[0]] = v
	}

	want := map[string]string{
		"--config": "b.yaml",
		"--format": "json",
		"--color":  "--no-color",
	}
	if !reflect.DeepEqual(values, want) {
		t.Errorf("consumed = %v, want %v", values, want)
	}
}

func TestResolveConsumedOnlyFromWalkedNodes(t *testing.T) {
	root := testTree()
	state, ok := Resolve(root, []string{"endpoint", "search", "--format", "json"})
	if !ok {
		t.Fatal("expected context to resolve")
	}
	// --format belongs to whoami, not search
	for opt := range state.Consumed {
		if opt.Names[0] == "--format" {
			t.Error("option from another branch leaked into the parse state")
		}
	}
}

func TestResolveNeverPanics(t *testing.T) {
	inputs := [][]string{
		{""},
		{"-"},
		{"--"},
		{"--", "--"},
		{"--config"},
		{"-F"},
		{"whoami", "-F"},
		{"whoami", "-Fjson", "--jq="},
		{"=", "--=", "-="},
		{"endpoint", "search", "--"},
	}
	for _, args := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Resolve(%q) panicked: %v", args, r)
				}
			}()
			Resolve(testTree(), args)
		}()
	}
}
