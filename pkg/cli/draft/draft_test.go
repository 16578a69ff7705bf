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

package draft

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saasnotes/saasnotes/pkg/cli/client"
	"github.com/saasnotes/saasnotes/pkg/cli/validate"
)

func TestFromNote(t *testing.T) {
	note := client.Note{ID: "n1", Title: "standup", Content: "notes from monday"}

	d := FromNote(note)

	assert.Equal(t, "standup", d.Title, "title mismatch")
	assert.Equal(t, "notes from monday", d.Content, "content mismatch")
	assert.False(t, d.Saving(), "a fresh draft is not saving")
}

func TestSubmitTrimsFields(t *testing.T) {
	d := &Draft{Title: "  standup ", Content: "\nnotes from monday  "}

	var gotTitle, gotContent string
	err := d.Submit(func(title, content string) error {
		gotTitle = title
		gotContent = content
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "standup", gotTitle, "title should be trimmed")
	assert.Equal(t, "notes from monday", gotContent, "content should be trimmed")
}

func TestSubmitWhitespaceOnlyTitle(t *testing.T) {
	d := &Draft{Title: "  ", Content: "content"}

	dispatched := false
	err := d.Submit(func(title, content string) error {
		dispatched = true
		return nil
	})

	assert.ErrorIs(t, err, validate.ErrTitleEmpty, "error mismatch")
	assert.False(t, dispatched, "an invalid draft must not dispatch")
}

func TestSubmitResetsSavingOnFailure(t *testing.T) {
	d := &Draft{Title: "t", Content: "c"}

	saveErr := errors.New("network error")
	err := d.Submit(func(title, content string) error {
		assert.True(t, d.Saving(), "saving should be set during the call")
		return saveErr
	})

	assert.Equal(t, saveErr, errors.Cause(err), "error should propagate")
	assert.False(t, d.Saving(), "saving must reset after a failure")
}

func TestSubmitResetsSavingOnPanic(t *testing.T) {
	d := &Draft{Title: "t", Content: "c"}

	func() {
		defer func() {
			recover()
		}()
		d.Submit(func(title, content string) error {
			panic("boom")
		})
	}()

	assert.False(t, d.Saving(), "saving must reset after a panic")
}

func TestSubmitBlocksDuplicate(t *testing.T) {
	d := &Draft{Title: "t", Content: "c"}

	var nested error
	err := d.Submit(func(title, content string) error {
		nested = d.Submit(func(string, string) error { return nil })
		return nil
	})
	require.NoError(t, err)

	assert.ErrorIs(t, nested, ErrSaveInFlight, "a duplicate submission must be blocked")
	assert.False(t, d.Saving(), "saving must reset after success")
}
