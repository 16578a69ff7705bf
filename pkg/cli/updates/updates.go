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

// Package updates checks for a newer release of the program
package updates

import (
	gocontext "context"
	"strconv"
	"strings"

	"github.com/google/go-github/github"
	"github.com/pkg/errors"

	"github.com/saasnotes/saasnotes/pkg/cli/consts"
	"github.com/saasnotes/saasnotes/pkg/cli/context"
	"github.com/saasnotes/saasnotes/pkg/cli/database"
	"github.com/saasnotes/saasnotes/pkg/cli/log"
)

const (
	repoOwner = "saasnotes"
	repoName  = "saasnotes"

	// checkInterval is the minimum number of seconds between two checks
	checkInterval = 3600 * 24 * 7
)

type version struct {
	major int
	minor int
	patch int
}

func parseVersion(s string) (version, error) {
	var ret version

	s = strings.TrimPrefix(s, "v")
	parts := strings.SplitN(s, ".", 3)
	if len(parts) != 3 {
		return ret, errors.Errorf("invalid version %s", s)
	}

	var err error
	if ret.major, err = strconv.Atoi(parts[0]); err != nil {
		return ret, errors.Wrapf(err, "parsing major version of %s", s)
	}
	if ret.minor, err = strconv.Atoi(parts[1]); err != nil {
		return ret, errors.Wrapf(err, "parsing minor version of %s", s)
	}
	if ret.patch, err = strconv.Atoi(parts[2]); err != nil {
		return ret, errors.Wrapf(err, "parsing patch version of %s", s)
	}

	return ret, nil
}

func (v version) newerThan(other version) bool {
	if v.major != other.major {
		return v.major > other.major
	}
	if v.minor != other.minor {
		return v.minor > other.minor
	}
	return v.patch > other.patch
}

func shouldCheck(ctx context.NotesCtx) (bool, error) {
	if !ctx.EnableUpdateCheck {
		return false, nil
	}

	var lastCheckedStr string
	err := database.GetSystem(ctx.DB, consts.SystemLastUpdateCheck, &lastCheckedStr)
	if err != nil {
		return false, errors.Wrap(err, "getting last update check time")
	}

	lastChecked, err := strconv.ParseInt(lastCheckedStr, 10, 64)
	if err != nil {
		return false, errors.Wrap(err, "parsing last update check time")
	}

	now := ctx.Clock.Now().Unix()

	return now-lastChecked >= checkInterval, nil
}

func touchLastCheck(ctx context.NotesCtx) error {
	nowStr := strconv.FormatInt(ctx.Clock.Now().Unix(), 10)

	tx, err := ctx.DB.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning a transaction")
	}
	if err := database.UpsertSystem(tx, consts.SystemLastUpdateCheck, nowStr); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "updating last update check time")
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	return nil
}

func fetchLatestTag() (string, error) {
	client := github.NewClient(nil)

	release, _, err := client.Repositories.GetLatestRelease(gocontext.Background(), repoOwner, repoName)
	if err != nil {
		return "", errors.Wrap(err, "fetching the latest release")
	}

	return release.GetTagName(), nil
}

// Check checks for a newer release and prints a notice if one exists.
// It is throttled so that at most one check happens per interval.
func Check(ctx context.NotesCtx) error {
	ok, err := shouldCheck(ctx)
	if err != nil {
		return errors.Wrap(err, "checking eligibility")
	}
	if !ok {
		return nil
	}

	// Record the check regardless of its outcome so that a failing check
	// does not run on every invocation
	if err := touchLastCheck(ctx); err != nil {
		return errors.Wrap(err, "recording the check time")
	}

	current, err := parseVersion(ctx.Version)
	if err != nil {
		log.Debug("skipping update check for version %s\n", ctx.Version)
		return nil
	}

	tag, err := fetchLatestTag()
	if err != nil {
		return errors.Wrap(err, "getting the latest release")
	}

	latest, err := parseVersion(tag)
	if err != nil {
		return errors.Wrap(err, "parsing the latest version")
	}

	if latest.newerThan(current) {
		log.Infof("a newer version %s is available. Please upgrade.\n", tag)
	}

	return nil
}
