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

package login

import (
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/saasnotes/saasnotes/pkg/cli/client"
	"github.com/saasnotes/saasnotes/pkg/cli/context"
	"github.com/saasnotes/saasnotes/pkg/cli/gate"
	"github.com/saasnotes/saasnotes/pkg/cli/infra"
	"github.com/saasnotes/saasnotes/pkg/cli/log"
	"github.com/saasnotes/saasnotes/pkg/cli/session"
	"github.com/saasnotes/saasnotes/pkg/cli/ui"
)

var example = `
  saasnotes login`

var apiEndpointFlag string

// NewCmd returns a new login command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Login to the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVar(&apiEndpointFlag, "apiEndpoint", "", "API endpoint to connect to (defaults to value in config)")

	return cmd
}

// getServerDisplayURL returns the URL of the server to be displayed to
// the user, based on the configured API endpoint
func getServerDisplayURL(ctx context.NotesCtx) string {
	u, err := url.Parse(ctx.APIEndpoint)
	if err != nil {
		return ""
	}
	if u.Scheme == "" || u.Host == "" {
		return ""
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host)
}

func newRun(ctx context.NotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if apiEndpointFlag != "" {
			ctx.APIEndpoint = apiEndpointFlag
		}

		store := session.NewStore(&ctx)
		if err := store.Resolve(); err != nil {
			return errors.Wrap(err, "resolving session")
		}

		if gate.Decide(gate.ViewLogin, store.User(), store.Resolving()) == gate.RedirectHome {
			log.Plainf("already logged in as %s\n", store.User().Email)
			return nil
		}

		if serverURL := getServerDisplayURL(ctx); serverURL != "" {
			log.Plainf("logging in to %s\n", serverURL)
		}

		var email, password string
		if err := ui.PromptInput("email", &email); err != nil {
			return errors.Wrap(err, "getting email input")
		}
		if email == "" {
			return errors.New("email is empty")
		}
		if err := ui.PromptPassword("password", &password); err != nil {
			return errors.Wrap(err, "getting password input")
		}
		if password == "" {
			return errors.New("password is empty")
		}

		err := store.Login(email, password)
		if errors.Cause(err) == client.ErrInvalidLogin {
			log.Error("wrong email and password combination\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "logging in")
		}

		user := store.User()
		log.Successf("logged in as %s (%s)\n", user.Email, user.Tenant.Name)

		return nil
	}
}
