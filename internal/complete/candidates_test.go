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

func names(cands []Candidate) []string {
	var out []string
	for _, c := range cands {
		out = append(out, c.Name)
	}
	return out
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{
			name: "all root commands",
			req:  Request{},
			want: []string{"login", "logout", "whoami", "endpoint"},
		},
		{
			name: "prefix filters commands",
			req:  Request{Current: "lo"},
			want: []string{"login", "logout"},
		},
		{
			name: "command prefix is case sensitive",
			req:  Request{Current: "LO"},
			want: nil,
		},
		{
			name: "long options at leaf",
			req:  Request{Completed: []string{"login"}, Current: "--f"},
			want: []string{"--force"},
		},
		{
			name: "single dash offers long names only",
			req:  Request{Completed: []string{"whoami"}, Current: "-"},
			want: []string{"--format", "--jq", "--color", "--no-color"},
		},
		{
			name: "short option prefix includes short names",
			req:  Request{Completed: []string{"whoami"}, Current: "-F"},
			want: []string{"-F"},
		},
		{
			name: "negations are offered",
			req:  Request{Completed: []string{"whoami"}, Current: "--no"},
			want: []string{"--no-color"},
		},
		{
			name: "hidden options never offered",
			req:  Request{Current: "--d"},
			want: nil,
		},
		{
			name: "root options exclude hidden",
			req:  Request{Current: "--"},
			want: []string{"--verbose", "--config"},
		},
		{
			name: "choice values after option",
			req:  Request{Completed: []string{"whoami", "--format"}},
			want: []string{"json", "text"},
		},
		{
			name: "choice values after short spelling",
			req:  Request{Completed: []string{"whoami", "-F"}, Current: "t"},
			want: []string{"text"},
		},
		{
			name: "case insensitive choice",
			req:  Request{Completed: []string{"whoami", "--format"}, Current: "JS"},
			want: []string{"json"},
		},
		{
			name: "case sensitive choice",
			req:  Request{Completed: []string{"endpoint", "search", "--filter-scope"}, Current: "my"},
			want: []string{"my-endpoints"},
		},
		{
			name: "choice wins over option prefix",
			req:  Request{Completed: []string{"whoami", "--format"}, Current: "-"},
			want: nil,
		},
		{
			name: "nested group commands",
			req:  Request{Completed: []string{"endpoint"}},
			want: []string{"search", "show"},
		},
		{
			name: "leaf with free text has nothing",
			req:  Request{Completed: []string{"whoami", "--jq"}},
			want: nil,
		},
		{
			name: "leaf without dash has nothing",
			req:  Request{Completed: []string{"login"}, Current: "x"},
			want: nil,
		},
		{
			name: "unknown command aborts",
			req:  Request{Completed: []string{"baz"}, Current: "--"},
			want: nil,
		},
		{
			name: "quoted suppresses options",
			req:  Request{Completed: []string{"login"}, Current: "-- ", Quoted: true},
			want: nil,
		},
		{
			name: "quoted suppresses commands",
			req:  Request{Current: "lo", Quoted: true},
			want: nil,
		},
		{
			name: "quoted still completes choices",
			req:  Request{Completed: []string{"whoami", "--format"}, Current: "j", Quoted: true},
			want: []string{"json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Candidates(testTree(), tt.req))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Candidates(%+v) = %q, want %q", tt.req, got, tt.want)
			}
		})
	}
}

func TestCandidatesCarryHelp(t *testing.T) {
	got := Candidates(testTree(), Request{Current: "lo"})
	want := []Candidate{
		{Name: "login", Help: "Login to Globus"},
		{Name: "logout", Help: "Logout of Globus"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}

	got = Candidates(testTree(), Request{Completed: []string{"login"}, Current: "--f"})
	want = []Candidate{{Name: "--force", Help: "Do a fresh login"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCaseInsensitiveChoiceFiltering(t *testing.T) {
	root := NewGroup("globus", "", []*Node{
		NewLeaf("paint", "",
			&Option{
				Names:   []string{"--color"},
				Kind:    ValueChoice,
				Choices: []string{"Red", "Green", "Blue"},
				Help:    "Paint color",
			},
		),
	})

	got := Candidates(root, Request{Completed: []string{"paint", "--color"}, Current: "gr"})
	want := []Candidate{{Name: "Green", Help: "Paint color"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestGenerateNilState(t *testing.T) {
	if got := Generate(nil, Request{Current: "lo"}); len(got) != 0 {
		t.Errorf("expected no candidates for unresolved context, got %+v", got)
	}
}

func TestHiddenCommandsResolveButAreNotOffered(t *testing.T) {
	secret := NewLeaf("secret", "internal", &Option{Names: []string{"--x"}, Kind: ValueFlag})
	secret.Hidden = true
	root := NewGroup("globus", "", []*Node{NewLeaf("login", ""), secret})

	if got := names(Candidates(root, Request{})); !reflect.DeepEqual(got, []string{"login"}) {
		t.Errorf("got %q, want only login", got)
	}
	if got := names(Candidates(root, Request{Completed: []string{"secret"}, Current: "--"})); !reflect.DeepEqual(got, []string{"--x"}) {
		t.Errorf("got %q, want --x", got)
	}
}
