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
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	// MaxTitleLen is the maximum number of characters in a note title
	MaxTitleLen = 200
	// MaxContentLen is the maximum number of characters in a note content
	MaxContentLen = 10000
)

// ErrTitleEmpty is an error for an empty note title
var ErrTitleEmpty = errors.New("The note title is empty")

// ErrTitleTooLong is an error for a note title over the length cap
var ErrTitleTooLong = errors.New("The note title is too long")

// ErrContentEmpty is an error for an empty note content
var ErrContentEmpty = errors.New("The note content is empty")

// ErrContentTooLong is an error for a note content over the length cap
var ErrContentTooLong = errors.New("The note content is too long")

// NoteTitle validates a note title
func NoteTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleEmpty
	}

	if utf8.RuneCountInString(title) > MaxTitleLen {
		return ErrTitleTooLong
	}

	return nil
}

// NoteContent validates a note content
func NoteContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrContentEmpty
	}

	if utf8.RuneCountInString(content) > MaxContentLen {
		return ErrContentTooLong
	}

	return nil
}
