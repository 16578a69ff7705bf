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

package remove

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/saasnotes/saasnotes/pkg/cli/collection"
	"github.com/saasnotes/saasnotes/pkg/cli/context"
	"github.com/saasnotes/saasnotes/pkg/cli/gate"
	"github.com/saasnotes/saasnotes/pkg/cli/infra"
	"github.com/saasnotes/saasnotes/pkg/cli/log"
	"github.com/saasnotes/saasnotes/pkg/cli/session"
	"github.com/saasnotes/saasnotes/pkg/cli/ui"
)

var example = `
  * Remove a note by its index
  saasnotes remove 1`

var yesFlag bool

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new remove command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <note index>",
		Short:   "Remove a note",
		Aliases: []string{"rm", "d", "delete"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.BoolVarP(&yesFlag, "yes", "y", false, "skip the confirmation")

	return cmd
}

func newRun(ctx context.NotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrap(err, "invalid note index")
		}

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

		note, err := coll.Get(idx)
		if err != nil {
			return errors.Wrap(err, "finding the note")
		}

		if !collection.CanModify(user, note) {
			log.Error("you can only remove your own notes\n")
			return nil
		}

		if !yesFlag {
			ok, err := ui.Confirm(fmt.Sprintf("remove note \"%s\"?", note.Title), false)
			if err != nil {
				return errors.Wrap(err, "getting confirmation")
			}
			if !ok {
				log.Warnf("aborted\n")
				return nil
			}
		}

		if err := coll.Delete(note.ID); err != nil {
			return errors.Wrap(err, "removing note")
		}

		log.Successf("removed %s\n", note.Title)

		return nil
	}
}
