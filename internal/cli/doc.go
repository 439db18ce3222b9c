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
Package cli provides the root command of the Globus CLI.

This package creates the main Cobra command and handles global concerns like
version information, persistent flags, logger setup and the eager completion
flags. Individual commands are implemented in the internal/commands
subpackages.

# Command Tree

	globus
	├── login         Get credentials for the Globus CLI
	├── logout        Revoke and remove stored credentials
	├── whoami        Show the logged-in identity
	└── completion    Print a shell completion script

# Usage

From main.go:

	cli.SetVersion(version, commit, date)
	rootCmd := cli.NewRootCommand()
	// ... add commands ...
	if handled, err := cli.RunEager(os.Stdout, rootCmd, os.Args[1:], os.LookupEnv, logger); handled {
	    // exit
	}
	if err := rootCmd.Execute(); err != nil {
	    cli.HandleExitError(err)
	}

# Global Flags

	--verbose, -v    Control level of output
	--config         Path to config file
	--debug          Debug logging (hidden)

# Eager Flags

These hidden root flags are found anywhere in argv before Cobra parses it.
They do their work and end the process:

	--shell-complete BASH|ZSH    Answer a completion request from a driver script
	--completer, --bash-completer
	                             Print the bash driver script
	--zsh-completer              Print the zsh driver script

# Error Handling

  - Exit 0: Success
  - Exit 1: General error
  - Exit 2: Invalid usage
*/
package cli
