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

package add

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/saasnotes/saasnotes/pkg/cli/client"
	"github.com/saasnotes/saasnotes/pkg/cli/collection"
	"github.com/saasnotes/saasnotes/pkg/cli/context"
	"github.com/saasnotes/saasnotes/pkg/cli/draft"
	"github.com/saasnotes/saasnotes/pkg/cli/gate"
	"github.com/saasnotes/saasnotes/pkg/cli/infra"
	"github.com/saasnotes/saasnotes/pkg/cli/log"
	"github.com/saasnotes/saasnotes/pkg/cli/output"
	"github.com/saasnotes/saasnotes/pkg/cli/session"
	"github.com/saasnotes/saasnotes/pkg/cli/ui"
	"github.com/saasnotes/saasnotes/pkg/cli/updates"
)

var titleFlag string
var contentFlag string

var example = `
 * Open an editor to write a note. The first line is the title.
 saasnotes add

 * Skip the editor by providing the title and the content directly
 saasnotes add -t "git tip" -c "time is a part of the commit hash"

 * Send stdin content to a note
 echo "a branch is just a pointer to a commit" | saasnotes add -t "git tip"`

// NewCmd returns a new add command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a new note",
		Aliases: []string{"a", "n", "new"},
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&titleFlag, "title", "t", "", "The title for the note")
	f.StringVarP(&contentFlag, "content", "c", "", "The content for the note")

	return cmd
}

func getDraft(ctx context.NotesCtx) (string, string, error) {
	if titleFlag != "" && contentFlag != "" {
		return titleFlag, contentFlag, nil
	}

	// check for piped content
	fInfo, _ := os.Stdin.Stat()
	if fInfo.Mode()&os.ModeCharDevice == 0 {
		c, err := ui.ReadStdInput()
		if err != nil {
			return "", "", errors.Wrap(err, "getting piped input")
		}

		if titleFlag != "" {
			return titleFlag, c, nil
		}

		title, content := ui.ParseNote(c)
		return title, content, nil
	}

	fpath, err := ui.GetTmpContentPath(ctx)
	if err != nil {
		return "", "", errors.Wrap(err, "getting temporary content file path")
	}

	if titleFlag != "" || contentFlag != "" {
		seed := ui.ComposeNote(titleFlag, contentFlag)
		if err := os.WriteFile(fpath, []byte(seed), 0644); err != nil {
			return "", "", errors.Wrap(err, "seeding the temporary content file")
		}
	}

	raw, err := ui.GetEditorInput(ctx, fpath)
	if err != nil {
		return "", "", errors.Wrap(err, "getting editor input")
	}

	title, content := ui.ParseNote(raw)
	return title, content, nil
}

func newRun(ctx context.NotesCtx) infra.RunEFunc {
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

		if !coll.CanCreate(user.Tenant.MaxNotes) {
			log.Errorf("note limit reached (%d/%d). Run `saasnotes upgrade` to lift the limit.\n", coll.Len(), user.Tenant.MaxNotes)
			return nil
		}

		title, content, err := getDraft(ctx)
		if err != nil {
			return errors.Wrap(err, "getting draft")
		}

		d := draft.New()
		d.Title = title
		d.Content = content

		var note client.Note
		err = d.Submit(func(title, content string) error {
			var createErr error
			note, createErr = coll.Create(title, content)
			return createErr
		})

		var limitErr *client.NoteLimitError
		if errors.As(errors.Cause(err), &limitErr) {
			log.Errorf("note limit reached (%d/%d). Run `saasnotes upgrade` to lift the limit.\n", limitErr.Current, limitErr.Limit)
			return nil
		} else if err != nil {
			return errors.Wrap(err, "creating note")
		}

		log.Successf("added %s\n", note.Title)
		output.NoteInfo(0, note)

		if err := updates.Check(ctx); err != nil {
			log.Error(errors.Wrap(err, "automatically checking updates").Error())
		}

		return nil
	}
}
