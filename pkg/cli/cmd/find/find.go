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

package find

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/saasnotes/saasnotes/pkg/cli/collection"
	"github.com/saasnotes/saasnotes/pkg/cli/context"
	"github.com/saasnotes/saasnotes/pkg/cli/gate"
	"github.com/saasnotes/saasnotes/pkg/cli/infra"
	"github.com/saasnotes/saasnotes/pkg/cli/log"
	"github.com/saasnotes/saasnotes/pkg/cli/output"
	"github.com/saasnotes/saasnotes/pkg/cli/session"
)

var example = `
 * Find notes by a keyword
 saasnotes find standup

 * Find notes by multiple keywords
 saasnotes find "standup monday"`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("Missing a search keyword")
	}

	return nil
}

// NewCmd returns a new find command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "find <keyword>",
		Aliases: []string{"f", "search"},
		Short:   "Find notes by a keyword",
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	return cmd
}

func newRun(ctx context.NotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		term := strings.Join(args, " ")

		store := session.NewStore(&ctx)

		_, err := gate.RequireUser(store)
		if errors.Cause(err) == session.ErrNotLoggedIn {
			log.Error("not logged in. Run `saasnotes login`\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "resolving session")
		}

		coll := collection.NewRemote(&ctx)
		if err := coll.Load(term); err != nil {
			return errors.Wrap(err, "searching notes")
		}

		notes := coll.Notes()
		if len(notes) == 0 {
			log.Plainf("no notes matching %s\n", term)
			return nil
		}

		output.NoteList(notes)

		return nil
	}
}
