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

package secrets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeychain struct {
	available bool
}

func (f fakeKeychain) Name() string { return "keychain" }
func (f fakeKeychain) Get(context.Context, string) (string, error) { return "", ErrSecretNotFound }
func (f fakeKeychain) Set(context.Context, string, string) error { return nil }
func (f fakeKeychain) Delete(context.Context, string) error { return ErrSecretNotFound }
func (f fakeKeychain) Available() bool { return f.available }

func withKeychain(t *testing.T, available bool) {
	t.Helper()
	orig := newKeychain
	newKeychain = func() Backend { return fakeKeychain{available: available} }
	t.Cleanup(func() { newKeychain = orig })
}

func TestOpen(t *testing.T) {
	t.Setenv(MasterKeyEnv, "")

	tests := []struct {
		name      string
		keychain  bool
		opts      Options
		wantName  string
		wantError bool
	}{
		{name: "auto prefers keychain", keychain: true, opts: Options{}, wantName: "keychain"},
		{name: "auto falls back to file", keychain: false, opts: Options{MasterKey: "k"}, wantName: "file"},
		{name: "auto with nothing usable", keychain: false, opts: Options{}, wantError: true},
		{name: "file forced", keychain: true, opts: Options{Backend: BackendFile, MasterKey: "k"}, wantName: "file"},
		{name: "keychain forced but missing", keychain: false, opts: Options{Backend: BackendKeychain}, wantError: true},
		{name: "unknown backend", keychain: true, opts: Options{Backend: "vault"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withKeychain(t, tt.keychain)
			tt.opts.Dir = t.TempDir()

			backend, err := Open(tt.opts)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, backend.Name())
		})
	}
}
