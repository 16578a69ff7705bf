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

package ls

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/saasnotes/saasnotes/pkg/cli/client"
	"github.com/saasnotes/saasnotes/pkg/cli/collection"
	"github.com/saasnotes/saasnotes/pkg/cli/context"
	"github.com/saasnotes/saasnotes/pkg/cli/gate"
	"github.com/saasnotes/saasnotes/pkg/cli/infra"
	"github.com/saasnotes/saasnotes/pkg/cli/log"
	"github.com/saasnotes/saasnotes/pkg/cli/output"
	"github.com/saasnotes/saasnotes/pkg/cli/session"
)

var example = `
 * List all notes in the workspace
 saasnotes ls`

// NewCmd returns a new ls command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"l", "list"},
		Short:   "List the notes in the workspace",
		Example: example,
		RunE:    NewRun(ctx),
	}

	return cmd
}

// NewRun returns a new run function
func NewRun(ctx context.NotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		store := session.NewStore(&ctx)

		user, err := gate.RequireUser(store)
		if errors.Cause(err) == session.ErrNotLoggedIn {
			log.Error("not logged in. Run `saasnotes login`\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "resolving session")
		}

		coll := collection.NewRemote(&ctx)
		if err := coll.Load(""); err != nil {
			return errors.Wrap(err, "loading notes")
		}

		notes := coll.Notes()
		if len(notes) == 0 {
			log.Plain("no notes yet\n")
		} else {
			output.NoteList(notes)
		}

		if user.Tenant.MaxNotes != client.UnlimitedNotes {
			log.Plainf("\n%d/%d notes used\n", coll.Len(), user.Tenant.MaxNotes)

			if !coll.CanCreate(user.Tenant.MaxNotes) {
				log.Warnf("note limit reached. Run `saasnotes upgrade` to lift the limit.\n")
			}
		}

		return nil
	}
}
