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

package validate

import (
	"strings"
	"testing"

	"github.com/saasnotes/saasnotes/pkg/assert"
)

func TestNoteTitle(t *testing.T) {
	testCases := []struct {
		title    string
		expected error
	}{
		{title: "shopping list", expected: nil},
		{title: "", expected: ErrTitleEmpty},
		{title: "   ", expected: ErrTitleEmpty},
		{title: "\t\n", expected: ErrTitleEmpty},
		{title: strings.Repeat("a", 200), expected: nil},
		{title: strings.Repeat("a", 201), expected: ErrTitleTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			got := NoteTitle(tc.title)
			assert.Equal(t, got, tc.expected, "result mismatch")
		})
	}
}

func TestNoteContent(t *testing.T) {
	testCases := []struct {
		content  string
		expected error
	}{
		{content: "pick up milk", expected: nil},
		{content: "", expected: ErrContentEmpty},
		{content: "  \n ", expected: ErrContentEmpty},
		{content: strings.Repeat("b", 10000), expected: nil},
		{content: strings.Repeat("b", 10001), expected: ErrContentTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.content, func(t *testing.T) {
			got := NoteContent(tc.content)
			assert.Equal(t, got, tc.expected, "result mismatch")
		})
	}
}
