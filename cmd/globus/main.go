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

package main

import (
	"os"

	"github.com/globus/globus-cli/internal/cli"
	"github.com/globus/globus-cli/internal/commands/completion"
	"github.com/globus/globus-cli/internal/commands/login"
	"github.com/globus/globus-cli/internal/commands/logout"
	versioncmd "github.com/globus/globus-cli/internal/commands/version"
	"github.com/globus/globus-cli/internal/commands/whoami"
	globuslog "github.com/globus/globus-cli/internal/log"
)

// Version information (injected via ldflags at build time)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.SetVersion(version, commit, buildDate)

	rootCmd := cli.NewRootCommand()
	rootCmd.AddCommand(login.NewCommand())
	rootCmd.AddCommand(logout.NewCommand())
	rootCmd.AddCommand(whoami.NewCommand())
	rootCmd.AddCommand(completion.NewCommand())
	rootCmd.AddCommand(versioncmd.NewVersionCommand())

	// Completion requests and driver scripts bypass cobra entirely so that
	// nothing else is written to stdout.
	logger := globuslog.WithComponent(globuslog.New(globuslog.FromEnv()), "complete")
	if handled, err := cli.RunEager(os.Stdout, rootCmd, os.Args[1:], os.LookupEnv, logger); handled {
		if err != nil {
			cli.HandleExitError(err)
		}
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		cli.HandleExitError(err)
	}
}
