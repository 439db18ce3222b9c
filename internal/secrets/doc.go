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

/*
Package secrets stores OAuth tokens outside the config file.

Two backends are provided:

	keychain - OS keychain (macOS Keychain, Linux Secret Service, Windows Credential Manager)
	file     - AES-256-GCM encrypted file, key derived with Argon2id

Open picks the keychain when it is reachable and falls back to the
encrypted file otherwise. The file backend needs a master key from
GLOBUS_CLI_MASTER_KEY or from master.key in the config directory.

	backend, err := secrets.Open(secrets.Options{Dir: dir})
	if err != nil {
	    return err
	}
	err = backend.Set(ctx, "transfer_rt", token)
*/
package secrets
