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

package edit

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/saasnotes/saasnotes/pkg/cli/collection"
	"github.com/saasnotes/saasnotes/pkg/cli/context"
	"github.com/saasnotes/saasnotes/pkg/cli/draft"
	"github.com/saasnotes/saasnotes/pkg/cli/gate"
	"github.com/saasnotes/saasnotes/pkg/cli/infra"
	"github.com/saasnotes/saasnotes/pkg/cli/log"
	"github.com/saasnotes/saasnotes/pkg/cli/output"
	"github.com/saasnotes/saasnotes/pkg/cli/session"
	"github.com/saasnotes/saasnotes/pkg/cli/ui"
)

var titleFlag string
var contentFlag string

var example = `
  * Edit a note by its index
  saasnotes edit 3

  * Edit a note without launching an editor
  saasnotes edit 3 -c "new content"

  * Rename a note
  saasnotes edit 3 -t "new title"
`

// NewCmd returns a new edit command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <note index>",
		Short:   "Edit a note",
		Aliases: []string{"e"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&titleFlag, "title", "t", "", "a new title for the note")
	f.StringVarP(&contentFlag, "content", "c", "", "a new content for the note")

	return cmd
}

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

func getDraft(ctx context.NotesCtx, d *draft.Draft) error {
	if titleFlag != "" {
		d.Title = titleFlag
	}
	if contentFlag != "" {
		d.Content = contentFlag
	}
	if titleFlag != "" || contentFlag != "" {
		return nil
	}

	fpath, err := ui.GetTmpContentPath(ctx)
	if err != nil {
		return errors.Wrap(err, "getting temporary content file path")
	}

	seed := ui.ComposeNote(d.Title, d.Content)
	if err := os.WriteFile(fpath, []byte(seed), 0644); err != nil {
		return errors.Wrap(err, "seeding the temporary content file")
	}

	raw, err := ui.GetEditorInput(ctx, fpath)
	if err != nil {
		return errors.Wrap(err, "getting editor input")
	}

	d.Title, d.Content = ui.ParseNote(raw)

	return nil
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
			log.Error("you can only edit your own notes\n")
			return nil
		}

		d := draft.FromNote(note)
		if err := getDraft(ctx, d); err != nil {
			return errors.Wrap(err, "getting draft")
		}

		err = d.Submit(func(title, content string) error {
			_, updateErr := coll.Update(note.ID, title, content)
			return updateErr
		})
		if err != nil {
			return errors.Wrap(err, "updating note")
		}

		before := ui.ComposeNote(note.Title, note.Content)
		after := ui.ComposeNote(d.Title, d.Content)
		log.Plain(output.Diff(before, after))

		log.Successf("edited %s\n", d.Title)

		return nil
	}
}
