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

package shared

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	pkgerrors "github.com/globus/globus-cli/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "plain error", err: errors.New("boom"), want: ExitFailed},
		{name: "usage", err: NewUsageError("bad shell", nil), want: ExitUsage},
		{name: "wrapped usage", err: fmt.Errorf("outer: %w", NewUsageError("bad shell", nil)), want: ExitUsage},
		{name: "failed", err: NewFailedError("login failed", errors.New("x")), want: ExitFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	cause := errors.New("secret not found")

	if got := NewFailedError("logout failed", cause).Error(); got != "logout failed: secret not found" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&ExitError{Code: 1, Cause: cause}).Error(); got != "secret not found" {
		t.Errorf("Error() without message = %q", got)
	}
	if !errors.Is(NewFailedError("x", cause), cause) {
		t.Error("ExitError should unwrap to its cause")
	}
}

func TestPrintError(t *testing.T) {
	authErr := &pkgerrors.AuthError{
		Message: "you are not logged in",
		Hint:    "Run 'globus login' to authenticate",
	}

	var buf bytes.Buffer
	PrintError(&buf, NewFailedError("", authErr))

	out := buf.String()
	if !strings.Contains(out, "Error: you are not logged in") {
		t.Errorf("missing message: %q", out)
	}
	if !strings.Contains(out, "Suggestion: Run 'globus login' to authenticate") {
		t.Errorf("missing suggestion: %q", out)
	}

	buf.Reset()
	PrintError(&buf, errors.New("plain"))
	if strings.Contains(buf.String(), "Suggestion") {
		t.Errorf("unexpected suggestion: %q", buf.String())
	}
}
