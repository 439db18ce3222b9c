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

// Package complete answers interactive tab-completion requests for the CLI.
//
// A request flows through four stages:
//   - Split re-tokenizes the raw shell line, tolerating an open quote
//   - Resolve walks the completed words down the command tree
//   - Generate decides between choice values, option names and sub-command names
//   - WriteBash / WriteZsh encode the candidates for the calling shell
//
// The command tree is built once from cobra with FromCobra and only read
// afterwards. Every request is a pure function of the tree and the line; an
// unknown command name produces an empty answer, never an error.
package complete
