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
	"fmt"
	"log/slog"
	"path/filepath"
)

// Backend names accepted by Options.Backend.
const (
	BackendAuto     = "auto"
	BackendKeychain = "keychain"
	BackendFile     = "file"
)

// Options selects and configures a backend.
type Options struct {
	// Backend is "auto", "keychain" or "file". Empty means auto.
	Backend string

	// Dir holds the encrypted file and master.key for the file backend.
	Dir string

	// MasterKey overrides GLOBUS_CLI_MASTER_KEY.
	MasterKey string

	Logger *slog.Logger
}

// newKeychain is replaced in tests.
var newKeychain = func() Backend { return NewKeychainBackend() }

// Open returns the first usable backend. In auto mode the keychain is
// preferred and the encrypted file is the fallback.
func Open(opts Options) (Backend, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	openFile := func() (Backend, error) {
		fb, err := NewFileBackend(filepath.Join(opts.Dir, TokenFileName), opts.MasterKey)
		if err != nil {
			return nil, err
		}
		if !fb.Available() {
			return nil, fmt.Errorf("%w: file backend has no master key (set %s)", ErrBackendUnavailable, MasterKeyEnv)
		}
		return fb, nil
	}

	switch opts.Backend {
	case BackendKeychain:
		kb := newKeychain()
		if !kb.Available() {
			return nil, fmt.Errorf("%w: keychain service unavailable", ErrBackendUnavailable)
		}
		return kb, nil
	case BackendFile:
		return openFile()
	case "", BackendAuto:
		if kb := newKeychain(); kb.Available() {
			logger.Debug("using token backend", "backend", kb.Name())
			return kb, nil
		}
		logger.Debug("keychain unavailable, falling back to encrypted file", "dir", opts.Dir)
		return openFile()
	default:
		return nil, fmt.Errorf("unknown secrets backend %q (want auto, keychain or file)", opts.Backend)
	}
}
