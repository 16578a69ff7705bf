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

// Package context defines the saasnotes runtime context
package context

import (
	"net/http"

	"github.com/saasnotes/saasnotes/pkg/cli/database"
	"github.com/saasnotes/saasnotes/pkg/clock"
)

// Paths contain directory definitions
type Paths struct {
	Home   string
	Config string
	Data   string
	Cache  string
}

// NotesCtx is a context holding the information of the current runtime
type NotesCtx struct {
	Paths             Paths
	APIEndpoint       string
	Version           string
	DB                *database.DB
	SessionToken      string
	Editor            string
	Clock             clock.Clock
	EnableUpdateCheck bool
	HTTPClient        *http.Client
}

// Redact replaces private information from the context with a set of
// placeholder values.
func Redact(ctx NotesCtx) NotesCtx {
	var sessionToken string
	if ctx.SessionToken != "" {
		sessionToken = "1"
	} else {
		sessionToken = "0"
	}
	ctx.SessionToken = sessionToken

	return ctx
}
