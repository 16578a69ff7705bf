/* Copyright 2025 saasnotes Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/saasnotes/saasnotes/pkg/cli/infra"
	"github.com/saasnotes/saasnotes/pkg/cli/log"

	// commands
	"github.com/saasnotes/saasnotes/pkg/cli/cmd/add"
	"github.com/saasnotes/saasnotes/pkg/cli/cmd/edit"
	"github.com/saasnotes/saasnotes/pkg/cli/cmd/find"
	"github.com/saasnotes/saasnotes/pkg/cli/cmd/login"
	"github.com/saasnotes/saasnotes/pkg/cli/cmd/logout"
	"github.com/saasnotes/saasnotes/pkg/cli/cmd/ls"
	"github.com/saasnotes/saasnotes/pkg/cli/cmd/remove"
	"github.com/saasnotes/saasnotes/pkg/cli/cmd/root"
	"github.com/saasnotes/saasnotes/pkg/cli/cmd/stats"
	"github.com/saasnotes/saasnotes/pkg/cli/cmd/upgrade"
	"github.com/saasnotes/saasnotes/pkg/cli/cmd/version"
	"github.com/saasnotes/saasnotes/pkg/cli/cmd/view"
	"github.com/saasnotes/saasnotes/pkg/cli/cmd/whoami"
)

// apiEndpoint and versionTag are populated during link time
var apiEndpoint string
var versionTag = "master"

// parseDBPath extracts --dbPath flag value from command line arguments
// regardless of where it appears (before or after subcommand).
// Returns empty string if not found.
func parseDBPath(args []string) string {
	for i, arg := range args {
		if strings.HasPrefix(arg, "--dbPath=") {
			return strings.TrimPrefix(arg, "--dbPath=")
		}
		if arg == "--dbPath" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func main() {
	// --dbPath can appear after the subcommand, so parse it before cobra runs
	dbPath := parseDBPath(os.Args[1:])

	ctx, err := infra.Init(versionTag, apiEndpoint, dbPath)
	if err != nil {
		panic(errors.Wrap(err, "initializing context"))
	}
	defer ctx.DB.Close()

	root.Register(login.NewCmd(*ctx))
	root.Register(logout.NewCmd(*ctx))
	root.Register(whoami.NewCmd(*ctx))
	root.Register(ls.NewCmd(*ctx))
	root.Register(find.NewCmd(*ctx))
	root.Register(view.NewCmd(*ctx))
	root.Register(add.NewCmd(*ctx))
	root.Register(edit.NewCmd(*ctx))
	root.Register(remove.NewCmd(*ctx))
	root.Register(stats.NewCmd(*ctx))
	root.Register(upgrade.NewCmd(*ctx))
	root.Register(version.NewCmd(*ctx))

	if err := root.Execute(); err != nil {
		log.Errorf("%s\n", err.Error())
		os.Exit(1)
	}
}
