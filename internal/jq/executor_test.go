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

package jq

import (
	"bytes"
	"context"
	"reflect"
	"testing"
)

type identity struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func TestRun(t *testing.T) {
	e := NewExecutor(0)
	data := identity{Username: "ada@globusid.org", Email: "ada@example.org"}

	tests := []struct {
		name string
		expr string
		want []any
	}{
		{name: "field", expr: ".username", want: []any{"ada@globusid.org"}},
		{name: "identity", expr: ".", want: []any{map[string]any{"username": "ada@globusid.org", "email": "ada@example.org"}}},
		{name: "multiple outputs", expr: ".username, .email", want: []any{"ada@globusid.org", "ada@example.org"}},
		{name: "no outputs", expr: "empty", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Run(context.Background(), tt.expr, data)
			if err != nil {
				t.Fatalf("Run(%q) error: %v", tt.expr, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Run(%q) = %#v, want %#v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	e := NewExecutor(0)

	if _, err := e.Run(context.Background(), ".username |", identity{}); err == nil {
		t.Error("expected parse error")
	}
	if _, err := e.Run(context.Background(), "undefined_fn(1)", identity{}); err == nil {
		t.Error("expected compile error")
	}
	if _, err := e.Run(context.Background(), `error("boom")`, identity{}); err == nil {
		t.Error("expected runtime error")
	}
}

func TestCompile(t *testing.T) {
	if _, err := Compile(".a.b"); err != nil {
		t.Errorf("Compile(.a.b) error: %v", err)
	}
	if _, err := Compile("[1,"); err == nil {
		t.Error("expected error for unterminated array")
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []any{"a", map[string]any{"k": 1}}); err != nil {
		t.Fatal(err)
	}
	want := "\"a\"\n{\n  \"k\": 1\n}\n"
	if buf.String() != want {
		t.Errorf("Write() = %q, want %q", buf.String(), want)
	}
}
