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

package ui

import (
	"fmt"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/saasnotes/saasnotes/pkg/assert"
	"github.com/saasnotes/saasnotes/pkg/cli/context"
)

func newTestCtx(t *testing.T) context.NotesCtx {
	t.Helper()

	return context.NotesCtx{
		Paths: context.Paths{
			Cache: t.TempDir(),
		},
	}
}

func TestGetTmpContentPath(t *testing.T) {
	t.Run("no collision", func(t *testing.T) {
		ctx := newTestCtx(t)

		res, err := GetTmpContentPath(ctx)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		expected := fmt.Sprintf("%s/%s", ctx.Paths.Cache, "SAASNOTES_TMPCONTENT_0.md")
		assert.Equal(t, res, expected, "filename did not match")
	})

	t.Run("one existing session", func(t *testing.T) {
		// set up
		ctx := newTestCtx(t)

		p := fmt.Sprintf("%s/%s", ctx.Paths.Cache, "SAASNOTES_TMPCONTENT_0.md")
		if _, err := os.Create(p); err != nil {
			t.Fatal(errors.Wrap(err, "preparing the conflicting file"))
		}

		// execute
		res, err := GetTmpContentPath(ctx)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		// test
		expected := fmt.Sprintf("%s/%s", ctx.Paths.Cache, "SAASNOTES_TMPCONTENT_1.md")
		assert.Equal(t, res, expected, "filename did not match")
	})

	t.Run("two existing sessions", func(t *testing.T) {
		// set up
		ctx := newTestCtx(t)

		p1 := fmt.Sprintf("%s/%s", ctx.Paths.Cache, "SAASNOTES_TMPCONTENT_0.md")
		if _, err := os.Create(p1); err != nil {
			t.Fatal(errors.Wrap(err, "preparing the conflicting file"))
		}
		p2 := fmt.Sprintf("%s/%s", ctx.Paths.Cache, "SAASNOTES_TMPCONTENT_1.md")
		if _, err := os.Create(p2); err != nil {
			t.Fatal(errors.Wrap(err, "preparing the conflicting file"))
		}

		// execute
		res, err := GetTmpContentPath(ctx)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		// test
		expected := fmt.Sprintf("%s/%s", ctx.Paths.Cache, "SAASNOTES_TMPCONTENT_2.md")
		assert.Equal(t, res, expected, "filename did not match")
	})
}

func TestComposeNote(t *testing.T) {
	res := ComposeNote("standup", "notes from monday")
	assert.Equal(t, res, "standup\nnotes from monday", "composed note did not match")
}

func TestParseNote(t *testing.T) {
	testCases := []struct {
		name            string
		input           string
		expectedTitle   string
		expectedContent string
	}{
		{
			name:            "title and content",
			input:           "standup\nnotes from monday",
			expectedTitle:   "standup",
			expectedContent: "notes from monday",
		},
		{
			name:            "title only",
			input:           "standup",
			expectedTitle:   "standup",
			expectedContent: "",
		},
		{
			name:            "title with trailing newline",
			input:           "standup\n",
			expectedTitle:   "standup",
			expectedContent: "",
		},
		{
			name:            "multiline content",
			input:           "standup\nline one\nline two\n",
			expectedTitle:   "standup",
			expectedContent: "line one\nline two",
		},
		{
			name:            "windows line endings",
			input:           "standup\r\nnotes from monday\r\n",
			expectedTitle:   "standup",
			expectedContent: "notes from monday",
		},
		{
			name:            "surrounding whitespace",
			input:           "  standup  \n  notes from monday  ",
			expectedTitle:   "standup",
			expectedContent: "notes from monday",
		},
		{
			name:            "empty input",
			input:           "",
			expectedTitle:   "",
			expectedContent: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			title, content := ParseNote(tc.input)

			assert.Equal(t, title, tc.expectedTitle, "title mismatch")
			assert.Equal(t, content, tc.expectedContent, "content mismatch")
		})
	}
}
