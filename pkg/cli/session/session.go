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

// Package session manages the persisted bearer token and the identity
// derived from it
package session

import (
	"github.com/pkg/errors"
	"github.com/saasnotes/saasnotes/pkg/cli/client"
	"github.com/saasnotes/saasnotes/pkg/cli/consts"
	"github.com/saasnotes/saasnotes/pkg/cli/context"
	"github.com/saasnotes/saasnotes/pkg/cli/database"
	"github.com/saasnotes/saasnotes/pkg/cli/log"
)

// ErrNotLoggedIn is an error for session operations that require a login
var ErrNotLoggedIn = errors.New("not logged in")

// Store holds the current session: the persisted token on the context and
// the in-memory identity resolved from it. The token outlives the process;
// the user never does and must be re-derived on every start.
type Store struct {
	ctx       *context.NotesCtx
	user      *client.User
	resolving bool
}

// NewStore returns a session store for the given runtime context. The store
// starts in the resolving state until Resolve or Login completes.
func NewStore(ctx *context.NotesCtx) *Store {
	return &Store{ctx: ctx, resolving: true}
}

// User returns the resolved identity, or nil if no user is known
func (s *Store) User() *client.User {
	return s.user
}

// Resolving returns true until the initial token resolution has completed
func (s *Store) Resolving() bool {
	return s.resolving
}

// Login exchanges credentials for a token, persists the token, and sets the
// identity from the response. On any failure the session state is left
// untouched.
func (s *Store) Login(email, password string) error {
	resp, err := client.Login(*s.ctx, email, password)
	if err != nil {
		return err
	}

	if err := persistToken(s.ctx.DB, resp.Token); err != nil {
		return errors.Wrap(err, "persisting token")
	}

	s.ctx.SessionToken = resp.Token
	user := resp.User
	s.user = &user
	s.resolving = false

	return nil
}

// Resolve derives the identity from the persisted token, if any. An
// unverifiable token is treated as equivalent to no session: it is
// discarded and the user is left empty. The resolving state always ends,
// whatever the outcome.
func (s *Store) Resolve() (err error) {
	defer func() {
		s.resolving = false
	}()

	if s.ctx.SessionToken == "" {
		return nil
	}

	resp, getMeErr := client.GetMe(*s.ctx)
	if getMeErr != nil {
		log.Debug("discarding unverifiable token: %s\n", getMeErr)

		if discardErr := discardToken(s.ctx.DB); discardErr != nil {
			return errors.Wrap(discardErr, "discarding token")
		}
		s.ctx.SessionToken = ""

		return nil
	}

	user := resp.User
	s.user = &user

	return nil
}

// Logout discards the persisted token and clears the identity. It is local
// only and makes no server call.
func (s *Store) Logout() error {
	if s.ctx.SessionToken == "" {
		return ErrNotLoggedIn
	}

	if err := discardToken(s.ctx.DB); err != nil {
		return errors.Wrap(err, "discarding token")
	}

	s.ctx.SessionToken = ""
	s.user = nil

	return nil
}

func persistToken(db *database.DB, token string) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning a transaction")
	}

	if err := database.UpsertSystem(tx, consts.SystemSessionToken, token); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "upserting session token")
	}

	return tx.Commit()
}

func discardToken(db *database.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning a transaction")
	}

	if err := database.DeleteSystem(tx, consts.SystemSessionToken); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting session token")
	}

	return tx.Commit()
}
