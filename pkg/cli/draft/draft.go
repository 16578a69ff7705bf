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

// Package draft holds the transient form state for creating or editing a
// single note
package draft

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/saasnotes/saasnotes/pkg/cli/client"
	"github.com/saasnotes/saasnotes/pkg/cli/validate"
)

// ErrSaveInFlight is an error for submitting a draft while a save is running
var ErrSaveInFlight = errors.New("a save is already in flight")

// SaveFunc reports a completed draft to its destination. Title and content
// are trimmed and validated before it is invoked.
type SaveFunc func(title, content string) error

// Draft is the editable state of one note
type Draft struct {
	Title   string
	Content string

	saving bool
}

// New returns an empty draft for creating a note
func New() *Draft {
	return &Draft{}
}

// FromNote returns a draft initialized from the note's current state, for
// editing
func FromNote(note client.Note) *Draft {
	return &Draft{
		Title:   note.Title,
		Content: note.Content,
	}
}

// Saving returns true while a save is in flight
func (d *Draft) Saving() bool {
	return d.saving
}

// Submit validates the trimmed fields and invokes save with them. Invalid
// drafts never dispatch. A second submission is blocked while one is in
// flight, and the in-flight flag is reset on every path out, including a
// panic in save, so the draft is never left permanently blocked.
func (d *Draft) Submit(save SaveFunc) error {
	if d.saving {
		return ErrSaveInFlight
	}

	title := strings.TrimSpace(d.Title)
	content := strings.TrimSpace(d.Content)

	if err := validate.NoteTitle(title); err != nil {
		return err
	}
	if err := validate.NoteContent(content); err != nil {
		return err
	}

	d.saving = true
	defer func() {
		d.saving = false
	}()

	return save(title, content)
}
