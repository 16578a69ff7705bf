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

package main

import (
	"testing"

	"github.com/saasnotes/saasnotes/pkg/assert"
)

func TestParseDBPath(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "no flag",
			args:     []string{"ls"},
			expected: "",
		},
		{
			name:     "equals form",
			args:     []string{"ls", "--dbPath=./custom.db"},
			expected: "./custom.db",
		},
		{
			name:     "space form",
			args:     []string{"ls", "--dbPath", "./custom.db"},
			expected: "./custom.db",
		},
		{
			name:     "before subcommand",
			args:     []string{"--dbPath=./custom.db", "ls"},
			expected: "./custom.db",
		},
		{
			name:     "dangling flag",
			args:     []string{"ls", "--dbPath"},
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseDBPath(tc.args)
			assert.Equal(t, got, tc.expected, "result mismatch")
		})
	}
}
