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

// Package completion holds the globus completion command and the helpers
// commands use to declare completable flag values.
//
// Flag helpers follow one pattern:
//   - the value list lives on the flag as a pflag annotation, so the
//     --shell-complete engine and cobra's __complete agree
//   - completion functions never fail loudly; a panic yields no candidates
package completion
