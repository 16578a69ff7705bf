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

// Package testutils provides shared helpers for CLI tests
package testutils

import (
	"testing"

	"github.com/saasnotes/saasnotes/pkg/cli/context"
	"github.com/saasnotes/saasnotes/pkg/cli/database"
	"github.com/saasnotes/saasnotes/pkg/clock"
)

// InitCtx returns a runtime context backed by an in-memory database,
// pointed at the given API endpoint
func InitCtx(t *testing.T, apiEndpoint string) *context.NotesCtx {
	t.Helper()

	db := database.InitTestMemoryDB(t)

	return &context.NotesCtx{
		APIEndpoint: apiEndpoint,
		Version:     "test",
		DB:          db,
		Clock:       clock.New(),
	}
}
