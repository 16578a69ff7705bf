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

package upgrade

import (
	"fmt"

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
  saasnotes upgrade`

// NewCmd returns a new upgrade command
func NewCmd(ctx context.NotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "upgrade",
		Short:   "Upgrade the workspace to the pro plan",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

func newRun(ctx context.NotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		store := session.NewStore(&ctx)

		user, err := gate.RequireUser(store)
		if errors.Cause(err) == session.ErrNotLoggedIn {
			log.Error("not logged in. Run `saasnotes login`\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "resolving session")
		}

		if user.Role != client.RoleAdmin {
			log.Error("only admins can upgrade the workspace\n")
			return nil
		}
		if user.Tenant.Plan == client.PlanPro {
			log.Plainf("%s is already on the pro plan\n", user.Tenant.Name)
			return nil
		}

		ok, err := ui.Confirm(fmt.Sprintf("upgrade %s to the pro plan?", user.Tenant.Name), false)
		if err != nil {
			return errors.Wrap(err, "getting confirmation")
		}
		if !ok {
			log.Warnf("aborted\n")
			return nil
		}

		if err := client.UpgradeTenant(ctx, user.Tenant.Slug); err != nil {
			return errors.Wrap(err, "upgrading the workspace")
		}

		// refresh the identity so the new plan is reflected
		if err := store.Resolve(); err != nil {
			return errors.Wrap(err, "refreshing session")
		}
		if u := store.User(); u != nil {
			user = u
		}

		log.Successf("upgraded %s to the pro plan. Notes are no longer limited.\n", user.Tenant.Name)

		return nil
	}
}
