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

// Package collection holds the session-scoped note list for the current
// tenant and keeps it consistent with server responses
package collection

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/saasnotes/saasnotes/pkg/cli/client"
	"github.com/saasnotes/saasnotes/pkg/cli/context"
	"github.com/saasnotes/saasnotes/pkg/cli/validate"
)

// ErrNotLoaded is an error for mutating a collection that has never loaded
var ErrNotLoaded = errors.New("the note collection has not loaded")

// ErrNotFound is an error for referencing a note missing from the collection
var ErrNotFound = errors.New("no such note in the collection")

// API is the server surface the collection needs
type API interface {
	GetNotes(search string) ([]client.Note, error)
	CreateNote(title, content string) (client.Note, error)
	UpdateNote(id, title, content string) (client.Note, error)
	DeleteNote(id string) error
}

// remoteAPI adapts the client package to the API interface
type remoteAPI struct {
	ctx *context.NotesCtx
}

func (r remoteAPI) GetNotes(search string) ([]client.Note, error) {
	resp, err := client.GetNotes(*r.ctx, search)
	if err != nil {
		return nil, err
	}

	return resp.Notes, nil
}

func (r remoteAPI) CreateNote(title, content string) (client.Note, error) {
	resp, err := client.CreateNote(*r.ctx, title, content)
	if err != nil {
		return client.Note{}, err
	}

	return resp.Note, nil
}

func (r remoteAPI) UpdateNote(id, title, content string) (client.Note, error) {
	resp, err := client.UpdateNote(*r.ctx, id, title, content)
	if err != nil {
		return client.Note{}, err
	}

	return resp.Note, nil
}

func (r remoteAPI) DeleteNote(id string) error {
	return client.DeleteNote(*r.ctx, id)
}

// State is the lifecycle state of a collection
type State int

const (
	// StateIdle means no load has ever been issued
	StateIdle State = iota
	// StateLoading means a load is in flight
	StateLoading
	// StateLoaded means the collection reflects the last applied response
	StateLoaded
	// StateErrored means the most recent load failed
	StateErrored
)

// Collection is an in-memory, ordered note list scoped to the last issued
// search term. Order is the server-returned order; local mutations never
// reorder other notes.
type Collection struct {
	mu    sync.Mutex
	api   API
	state State
	term  string
	notes []client.Note

	// seq increases with every issued load. A response is applied only if
	// it belongs to the load issued last, so a stale response can never
	// clobber a newer one.
	seq uint64
}

// New returns a collection backed by the given API
func New(api API) *Collection {
	return &Collection{api: api}
}

// NewRemote returns a collection backed by the notes server
func NewRemote(ctx *context.NotesCtx) *Collection {
	return New(remoteAPI{ctx: ctx})
}

// State returns the current lifecycle state
func (c *Collection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Term returns the search term the collection corresponds to
func (c *Collection) Term() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.term
}

// Notes returns a copy of the current note list
func (c *Collection) Notes() []client.Note {
	c.mu.Lock()
	defer c.mu.Unlock()

	ret := make([]client.Note, len(c.notes))
	copy(ret, c.notes)

	return ret
}

// Len returns the number of notes currently held
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.notes)
}

// Load queries the server, optionally filtered by the search term, and
// replaces the entire collection with the response. Loads may overlap; the
// response of the latest issued load wins and earlier responses are
// discarded.
func (c *Collection) Load(term string) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = StateLoading
	c.term = term
	c.mu.Unlock()

	notes, err := c.api.GetNotes(term)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		// superseded by a newer load
		return nil
	}

	if err != nil {
		c.state = StateErrored
		return errors.Wrap(err, "fetching notes")
	}

	c.notes = notes
	c.state = StateLoaded

	return nil
}

// Create validates the draft locally, sends it, and prepends the canonical
// note from the response. A quota failure carries the server's literal
// current/limit counts and leaves the collection untouched, as does any
// other failure.
func (c *Collection) Create(title, content string) (client.Note, error) {
	if err := validateDraft(title, content); err != nil {
		return client.Note{}, err
	}

	c.mu.Lock()
	if c.state != StateLoaded {
		c.mu.Unlock()
		return client.Note{}, ErrNotLoaded
	}
	c.mu.Unlock()

	note, err := c.api.CreateNote(title, content)
	if err != nil {
		return client.Note{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = append([]client.Note{note}, c.notes...)

	return note, nil
}

// Update validates the draft locally, sends it, and replaces the matching
// note in place. The note's position in the ordering is preserved.
func (c *Collection) Update(id, title, content string) (client.Note, error) {
	if err := validateDraft(title, content); err != nil {
		return client.Note{}, err
	}

	c.mu.Lock()
	if c.state != StateLoaded {
		c.mu.Unlock()
		return client.Note{}, ErrNotLoaded
	}
	c.mu.Unlock()

	note, err := c.api.UpdateNote(id, title, content)
	if err != nil {
		return client.Note{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notes {
		if c.notes[i].ID == id {
			c.notes[i] = note
			break
		}
	}

	return note, nil
}

// Delete removes the matching note after the server confirms the deletion.
// On failure the collection is left untouched. Confirmation of the
// destructive action is the caller's responsibility.
func (c *Collection) Delete(id string) error {
	c.mu.Lock()
	if c.state != StateLoaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	c.mu.Unlock()

	if err := c.api.DeleteNote(id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notes {
		if c.notes[i].ID == id {
			c.notes = append(c.notes[:i], c.notes[i+1:]...)
			break
		}
	}

	return nil
}

// Get returns the note at the given zero-based position
func (c *Collection) Get(idx int) (client.Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLoaded {
		return client.Note{}, ErrNotLoaded
	}
	if idx < 0 || idx >= len(c.notes) {
		return client.Note{}, ErrNotFound
	}

	return c.notes[idx], nil
}

// CanCreate derives whether another note fits under the tenant quota. It is
// recomputed from the current collection length on every call and never
// cached, so it cannot go stale after a create or delete.
func (c *Collection) CanCreate(maxNotes int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return maxNotes == client.UnlimitedNotes || len(c.notes) < maxNotes
}

// CanModify reports whether the acting user may edit or delete the note:
// the author may, and so may any admin. This is a UI affordance only; the
// server revalidates on every mutating call.
func CanModify(user *client.User, note client.Note) bool {
	if user == nil {
		return false
	}

	return note.Author.ID == user.ID || user.Role == client.RoleAdmin
}

func validateDraft(title, content string) error {
	if err := validate.NoteTitle(title); err != nil {
		return err
	}
	if err := validate.NoteContent(content); err != nil {
		return err
	}

	return nil
}
