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

// Package gate decides whether a requested view may proceed given the
// session state. It is the single client-side authorization checkpoint;
// the server independently enforces authorization on every call.
package gate

import (
	"github.com/saasnotes/saasnotes/pkg/cli/client"
	"github.com/saasnotes/saasnotes/pkg/cli/session"
)

// View classifies what the user is trying to reach
type View int

const (
	// ViewLogin is the login view, reachable only without a session
	ViewLogin View = iota
	// ViewProtected is any view that requires a session
	ViewProtected
)

// Decision is the outcome for a requested view
type Decision int

const (
	// Wait means the session is still resolving and no decision can be
	// made yet. Deciding before resolution completes would misdirect a
	// user whose token is still being verified.
	Wait Decision = iota
	// Proceed means the requested view may go ahead
	Proceed
	// RedirectLogin means the user must authenticate first
	RedirectLogin
	// RedirectHome means the user is already authenticated and the login
	// view does not apply
	RedirectHome
)

// Decide is a pure function of the session state and the requested view
func Decide(view View, user *client.User, resolving bool) Decision {
	if resolving {
		return Wait
	}

	if view == ViewProtected && user == nil {
		return RedirectLogin
	}
	if view == ViewLogin && user != nil {
		return RedirectHome
	}

	return Proceed
}

// RequireUser resolves the store's session and returns the user, or
// ErrNotLoggedIn when the gate denies access. It is the entry check for
// every protected command.
func RequireUser(store *session.Store) (*client.User, error) {
	if store.Resolving() {
		if err := store.Resolve(); err != nil {
			return nil, err
		}
	}

	if Decide(ViewProtected, store.User(), store.Resolving()) != Proceed {
		return nil, session.ErrNotLoggedIn
	}

	return store.User(), nil
}
