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

package collection

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saasnotes/saasnotes/pkg/cli/client"
	"github.com/saasnotes/saasnotes/pkg/cli/validate"
)

// fakeAPI implements API with overridable function fields
type fakeAPI struct {
	getNotes   func(search string) ([]client.Note, error)
	createNote func(title, content string) (client.Note, error)
	updateNote func(id, title, content string) (client.Note, error)
	deleteNote func(id string) error
}

func (f *fakeAPI) GetNotes(search string) ([]client.Note, error) {
	return f.getNotes(search)
}

func (f *fakeAPI) CreateNote(title, content string) (client.Note, error) {
	return f.createNote(title, content)
}

func (f *fakeAPI) UpdateNote(id, title, content string) (client.Note, error) {
	return f.updateNote(id, title, content)
}

func (f *fakeAPI) DeleteNote(id string) error {
	return f.deleteNote(id)
}

func testNotes() []client.Note {
	return []client.Note{
		{ID: "n3", Title: "third", Content: "c3", Author: client.NoteAuthor{ID: "u1"}},
		{ID: "n2", Title: "second", Content: "c2", Author: client.NoteAuthor{ID: "u2"}},
		{ID: "n1", Title: "first", Content: "c1", Author: client.NoteAuthor{ID: "u1"}},
	}
}

func loadedCollection(t *testing.T, api *fakeAPI) *Collection {
	t.Helper()

	if api.getNotes == nil {
		api.getNotes = func(search string) ([]client.Note, error) {
			return testNotes(), nil
		}
	}

	c := New(api)
	require.NoError(t, c.Load(""))
	require.Equal(t, StateLoaded, c.State(), "collection should be loaded")

	return c
}

func noteIDs(notes []client.Note) []string {
	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}

	return ids
}

func TestLoadReplacesCollection(t *testing.T) {
	api := &fakeAPI{
		getNotes: func(search string) ([]client.Note, error) {
			if search == "second" {
				return testNotes()[1:2], nil
			}
			return testNotes(), nil
		},
	}

	c := New(api)
	assert.Equal(t, StateIdle, c.State(), "state mismatch before any load")

	require.NoError(t, c.Load(""))
	assert.Equal(t, []string{"n3", "n2", "n1"}, noteIDs(c.Notes()), "note order mismatch")

	require.NoError(t, c.Load("second"))
	assert.Equal(t, []string{"n2"}, noteIDs(c.Notes()), "filtered notes mismatch")
	assert.Equal(t, "second", c.Term(), "term mismatch")
}

func TestLoadFailure(t *testing.T) {
	calls := 0
	api := &fakeAPI{
		getNotes: func(search string) ([]client.Note, error) {
			calls++
			if calls > 1 {
				return nil, errors.New("connection refused")
			}
			return testNotes(), nil
		},
	}

	c := New(api)
	require.NoError(t, c.Load(""))

	err := c.Load("")
	require.Error(t, err, "second load should fail")
	assert.Equal(t, StateErrored, c.State(), "state mismatch after failure")
}

func TestLoadLatestRequestWins(t *testing.T) {
	// The "a" request resolves after the "ab" request. The displayed
	// collection must correspond to "ab".
	aIssued := make(chan struct{})
	abIssued := make(chan struct{})
	releaseA := make(chan struct{})
	releaseAB := make(chan struct{})

	api := &fakeAPI{
		getNotes: func(search string) ([]client.Note, error) {
			switch search {
			case "a":
				close(aIssued)
				<-releaseA
				return []client.Note{{ID: "stale", Title: "a", Content: "c"}}, nil
			case "ab":
				close(abIssued)
				<-releaseAB
				return []client.Note{{ID: "fresh", Title: "ab", Content: "c"}}, nil
			}
			return nil, nil
		},
	}

	c := New(api)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.Load("a")
	}()

	// Issue the "ab" load only once "a" is in flight, then complete the
	// newer request first and the stale one last.
	<-aIssued
	go func() {
		defer wg.Done()
		c.Load("ab")
	}()
	<-abIssued

	close(releaseAB)
	close(releaseA)
	wg.Wait()

	assert.Equal(t, []string{"fresh"}, noteIDs(c.Notes()), "stale response must be discarded")
	assert.Equal(t, StateLoaded, c.State(), "state mismatch")
}

func TestCreatePrepends(t *testing.T) {
	api := &fakeAPI{
		createNote: func(title, content string) (client.Note, error) {
			return client.Note{ID: "n4", Title: title, Content: content}, nil
		},
	}
	c := loadedCollection(t, api)

	note, err := c.Create("fourth", "c4")
	require.NoError(t, err)

	assert.Equal(t, "n4", note.ID, "created note mismatch")
	assert.Equal(t, []string{"n4", "n3", "n2", "n1"}, noteIDs(c.Notes()), "new note should be prepended")
}

func TestCreateQuotaExceeded(t *testing.T) {
	api := &fakeAPI{
		createNote: func(title, content string) (client.Note, error) {
			return client.Note{}, &client.NoteLimitError{Message: "Note limit reached", Current: 3, Limit: 3}
		},
	}
	c := loadedCollection(t, api)

	_, err := c.Create("fourth", "c4")

	var limitErr *client.NoteLimitError
	require.ErrorAs(t, err, &limitErr, "expected a note limit error")
	assert.Equal(t, 3, limitErr.Current, "current mismatch")
	assert.Equal(t, 3, limitErr.Limit, "limit mismatch")
	assert.Equal(t, []string{"n3", "n2", "n1"}, noteIDs(c.Notes()), "collection must be untouched")
}

func TestCreateValidationSkipsDispatch(t *testing.T) {
	dispatched := false
	api := &fakeAPI{
		createNote: func(title, content string) (client.Note, error) {
			dispatched = true
			return client.Note{}, nil
		},
	}
	c := loadedCollection(t, api)

	_, err := c.Create("  ", "content")
	assert.ErrorIs(t, err, validate.ErrTitleEmpty, "error mismatch")
	assert.False(t, dispatched, "a whitespace-only title must not reach the network")

	_, err = c.Create("title", "\n ")
	assert.ErrorIs(t, err, validate.ErrContentEmpty, "error mismatch")
	assert.False(t, dispatched, "an empty content must not reach the network")
}

func TestUpdatePreservesPosition(t *testing.T) {
	api := &fakeAPI{
		updateNote: func(id, title, content string) (client.Note, error) {
			return client.Note{ID: id, Title: title, Content: content}, nil
		},
	}
	c := loadedCollection(t, api)

	_, err := c.Update("n2", "renamed", "edited")
	require.NoError(t, err)

	notes := c.Notes()
	assert.Equal(t, []string{"n3", "n2", "n1"}, noteIDs(notes), "order must be unchanged")
	assert.Equal(t, "renamed", notes[1].Title, "title should be updated in place")
	assert.Equal(t, "edited", notes[1].Content, "content should be updated in place")
}

func TestDeleteRemovesOne(t *testing.T) {
	api := &fakeAPI{
		deleteNote: func(id string) error {
			return nil
		},
	}
	c := loadedCollection(t, api)

	require.NoError(t, c.Delete("n2"))

	assert.Equal(t, []string{"n3", "n1"}, noteIDs(c.Notes()), "exactly the deleted note should be removed")
}

func TestDeleteFailureLeavesCollection(t *testing.T) {
	api := &fakeAPI{
		deleteNote: func(id string) error {
			return &client.HTTPError{StatusCode: 403, Message: "Not authorized to delete this note"}
		},
	}
	c := loadedCollection(t, api)

	err := c.Delete("n2")
	require.Error(t, err)
	assert.Equal(t, []string{"n3", "n2", "n1"}, noteIDs(c.Notes()), "collection must be untouched on failure")
}

func TestMutationsRequireLoad(t *testing.T) {
	c := New(&fakeAPI{})

	_, err := c.Create("title", "content")
	assert.ErrorIs(t, err, ErrNotLoaded, "create before load")

	_, err = c.Update("n1", "title", "content")
	assert.ErrorIs(t, err, ErrNotLoaded, "update before load")

	assert.ErrorIs(t, c.Delete("n1"), ErrNotLoaded, "delete before load")
}

func TestCanCreate(t *testing.T) {
	api := &fakeAPI{
		deleteNote: func(id string) error {
			return nil
		},
	}
	c := loadedCollection(t, api)

	assert.False(t, c.CanCreate(3), "a full collection must block creation")
	assert.True(t, c.CanCreate(client.UnlimitedNotes), "unlimited quota must allow creation")

	// Quota is recomputed from the collection length, with no refetch.
	require.NoError(t, c.Delete("n1"))
	assert.True(t, c.CanCreate(3), "creation must unblock after a delete")
}

func TestCanModify(t *testing.T) {
	note := client.Note{ID: "n1", Author: client.NoteAuthor{ID: "u1"}}

	author := &client.User{ID: "u1", Role: client.RoleMember}
	other := &client.User{ID: "u2", Role: client.RoleMember}
	admin := &client.User{ID: "u3", Role: client.RoleAdmin}

	assert.True(t, CanModify(author, note), "the author may modify")
	assert.False(t, CanModify(other, note), "another member may not modify")
	assert.True(t, CanModify(admin, note), "an admin may modify")
	assert.False(t, CanModify(nil, note), "no user may not modify")
}
