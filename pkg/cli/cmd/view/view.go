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

package view

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/saasnotes/saasnotes/pkg/cli/cmd/ls"
	"github.com/saasnotes/saasnotes/pkg/cli/collection"
	"github.com/saasnotes/saasnotes/pkg/cli/context"
	"github.com/saasnotes/saasnotes/pkg/cli/gate"
	"github.com/saasnotes/saasnotes/pkg/cli/infra"
	"github.com/saasnotes/saasnotes/pkg/cli/log"
	"github.com/saasnotes/saasnotes/pkg/cli/output"
	"github.com/saasnotes/saasnotes/pkg/cli/session"
	"github.com/saasnotes/saasnotes/pkg/cli/utils"
)

var example = `
 * List all notes
 saasnotes view

 * View a particular note by its index
 saasnotes view 0
 `

var contentOnly bool

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new view command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "view <note index?>",
		Aliases: []string{"v"},
		Short:   "List notes or view a note content",
		Example: example,
		RunE:    newRun(ctx),
		PreRunE: preRun,
	}

	f := cmd.Flags()
	f.BoolVarP(&contentOnly, "content-only", "", false, "print the note content only")

	return cmd
}

func newRun(ctx context.NotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			if contentOnly {
				return errors.New("--content-only flag is only valid when viewing a note")
			}

			return ls.NewRun(ctx)(cmd, args)
		}

		if !utils.IsNumber(args[0]) {
			return errors.New("invalid note index")
		}

		return NewRun(ctx, contentOnly)(cmd, args)
	}
}

// NewRun returns a new run function that shows a single note
func NewRun(ctx context.NotesCtx, contentOnly bool) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrap(err, "invalid note index")
		}

		store := session.NewStore(&ctx)

		_, err = gate.RequireUser(store)
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

		if contentOnly {
			output.NoteContent(note)
		} else {
			output.NoteInfo(idx, note)
		}

		return nil
	}
}
