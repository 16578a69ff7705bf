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

// Package output provides functions to print informations on the terminal
// in a consistent manner
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/saasnotes/saasnotes/pkg/cli/client"
	"github.com/saasnotes/saasnotes/pkg/cli/log"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const timeFormat = "Jan 2, 2006 3:04pm (MST)"

// NoteInfo prints a note information
func NoteInfo(idx int, note client.Note) {
	log.Infof("title: %s\n", note.Title)
	log.Infof("author: %s\n", note.Author.Email)
	log.Infof("created at: %s\n", note.CreatedAt.Local().Format(timeFormat))
	log.Infof("note index: %d\n", idx)
	log.Infof("note id: %s\n", note.ID)

	fmt.Printf("\n------------------------content------------------------\n")
	fmt.Printf("%s", note.Content)
	fmt.Printf("\n-------------------------------------------------------\n")
}

// NoteContent prints the raw content of a note
func NoteContent(note client.Note) {
	fmt.Printf("%s", note.Content)
}

// NoteList prints an index-prefixed listing of notes
func NoteList(notes []client.Note) {
	for idx, note := range notes {
		line := fmt.Sprintf("%s %s %s\n",
			log.ColorYellow.Sprintf("(%d)", idx),
			note.Title,
			log.ColorGray.Sprintf("%s, %s", note.Author.Email, note.CreatedAt.Local().Format("Jan 2, 2006")),
		)
		log.Plain(line)
	}
}

// TenantInfo prints the workspace information of the given user
func TenantInfo(user client.User) {
	log.Infof("workspace: %s\n", user.Tenant.Name)
	log.Infof("slug: %s\n", user.Tenant.Slug)
	log.Infof("plan: %s\n", user.Tenant.Plan)
}

// TenantStats prints the usage statistics of a workspace
func TenantStats(tenant client.Tenant, stats client.TenantStats) {
	log.Infof("members: %d\n", stats.Users)

	if tenant.MaxNotes == client.UnlimitedNotes {
		log.Infof("notes: %d\n", stats.Notes)
		return
	}

	log.Infof("notes: %d/%d\n", stats.Notes, tenant.MaxNotes)
	log.Infof("remaining: %d\n", stats.NotesRemaining)
}

// Diff renders a line-by-line diff between two texts, with deleted lines
// in red and inserted lines in green
func Diff(s1, s2 string) string {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = time.Hour

	s1Chars, s2Chars, arr := dmp.DiffLinesToRunes(s1, s2)
	diffs := dmp.DiffMainRunes(s1Chars, s2Chars, false)
	diffs = dmp.DiffCharsToLines(diffs, arr)

	var sb strings.Builder
	for _, d := range diffs {
		lines := strings.SplitAfter(d.Text, "\n")

		for _, line := range lines {
			if line == "" {
				continue
			}

			switch d.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString(log.ColorRed.Sprintf("- %s", line))
			case diffmatchpatch.DiffInsert:
				sb.WriteString(log.ColorGreen.Sprintf("+ %s", line))
			default:
				sb.WriteString(fmt.Sprintf("  %s", line))
			}
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n")
			}
		}
	}

	return sb.String()
}
