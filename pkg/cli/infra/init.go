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

// Package infra provides operations and definitions for the
// local infrastructure for saasnotes
package infra

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/saasnotes/saasnotes/pkg/cli/client"
	"github.com/saasnotes/saasnotes/pkg/cli/config"
	"github.com/saasnotes/saasnotes/pkg/cli/consts"
	"github.com/saasnotes/saasnotes/pkg/cli/context"
	"github.com/saasnotes/saasnotes/pkg/cli/database"
	"github.com/saasnotes/saasnotes/pkg/cli/log"
	"github.com/saasnotes/saasnotes/pkg/cli/utils"
	"github.com/saasnotes/saasnotes/pkg/clock"
	"github.com/saasnotes/saasnotes/pkg/dirs"
)

const (
	// DefaultAPIEndpoint is the default API endpoint used when none is configured
	DefaultAPIEndpoint = "http://localhost:3001/api"

	// envAPIEndpoint overrides the configured API endpoint when set
	envAPIEndpoint = "SAASNOTES_API_ENDPOINT"
)

// RunEFunc is a function type of saasnotes commands
type RunEFunc func(*cobra.Command, []string) error

func getDBPath(paths context.Paths, customPath string) string {
	if customPath != "" {
		return customPath
	}

	return fmt.Sprintf("%s/%s/%s", paths.Data, consts.AppDirName, consts.DBFileName)
}

// newBaseCtx creates a minimal context with paths and database connection.
// This base context is used for file and database initialization before
// being enriched with config values by setupCtx.
func newBaseCtx(versionTag, customDBPath string) (context.NotesCtx, error) {
	paths := context.Paths{
		Home:   dirs.Home,
		Config: dirs.ConfigHome,
		Data:   dirs.DataHome,
		Cache:  dirs.CacheHome,
	}

	if err := context.InitAppDirs(paths); err != nil {
		return context.NotesCtx{}, errors.Wrap(err, "creating app dirs")
	}

	dbPath := getDBPath(paths, customDBPath)

	db, err := database.Open(dbPath)
	if err != nil {
		return context.NotesCtx{}, errors.Wrap(err, "connecting to db")
	}

	ctx := context.NotesCtx{
		Paths:   paths,
		Version: versionTag,
		DB:      db,
	}

	return ctx, nil
}

// Init initializes the saasnotes environment and returns a new runtime context.
// apiEndpoint is used when creating a new config file.
func Init(versionTag, apiEndpoint, dbPath string) (*context.NotesCtx, error) {
	// optional overrides from a .env file in the working directory
	godotenv.Load()

	ctx, err := newBaseCtx(versionTag, dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "initializing a context")
	}

	if err := initConfigFile(ctx, apiEndpoint); err != nil {
		return nil, errors.Wrap(err, "generating the config file")
	}

	if err := database.InitSchema(ctx.DB); err != nil {
		return nil, errors.Wrap(err, "initializing database")
	}
	if err := InitSystem(ctx); err != nil {
		return nil, errors.Wrap(err, "initializing system data")
	}

	ctx, err = setupCtx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "setting up the context")
	}

	log.Debug("context: %+v\n", context.Redact(ctx))

	return &ctx, nil
}

// setupCtx enriches the base context with values from config file and database.
// This is called after files and database have been initialized.
func setupCtx(ctx context.NotesCtx) (context.NotesCtx, error) {
	db := ctx.DB

	var sessionToken string
	err := db.QueryRow("SELECT value FROM system WHERE key = ?", consts.SystemSessionToken).Scan(&sessionToken)
	if err != nil && err != sql.ErrNoRows {
		return ctx, errors.Wrap(err, "finding session token")
	}

	cf, err := config.Read(ctx)
	if err != nil {
		return ctx, errors.Wrap(err, "reading config")
	}

	apiEndpoint := cf.APIEndpoint
	if override := os.Getenv(envAPIEndpoint); override != "" {
		apiEndpoint = override
	}

	ret := context.NotesCtx{
		Paths:             ctx.Paths,
		Version:           ctx.Version,
		DB:                ctx.DB,
		SessionToken:      sessionToken,
		APIEndpoint:       apiEndpoint,
		Editor:            cf.Editor,
		Clock:             clock.New(),
		EnableUpdateCheck: cf.EnableUpdateCheck,
		HTTPClient:        client.NewRateLimitedHTTPClient(),
	}

	return ret, nil
}

func initSystemKV(db *database.DB, key string, val string) error {
	var count int
	if err := db.QueryRow("SELECT count(*) FROM system WHERE key = ?", key).Scan(&count); err != nil {
		return errors.Wrapf(err, "counting %s", key)
	}

	if count > 0 {
		return nil
	}

	if _, err := db.Exec("INSERT INTO system (key, value) VALUES (?, ?)", key, val); err != nil {
		return errors.Wrapf(err, "inserting %s %s", key, val)
	}

	return nil
}

// InitSystem inserts system data if missing
func InitSystem(ctx context.NotesCtx) error {
	log.Debug("initializing the system\n")

	db := ctx.DB

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning a transaction")
	}

	nowStr := strconv.FormatInt(time.Now().Unix(), 10)
	if err := initSystemKV(tx, consts.SystemLastUpdateCheck, nowStr); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "initializing system config for %s", consts.SystemLastUpdateCheck)
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	return nil
}

// getEditorCommand returns the system's editor command with appropriate flags,
// if necessary, to make the command wait until editor is close to exit.
func getEditorCommand() string {
	editor := os.Getenv("EDITOR")

	var ret string

	switch editor {
	case "atom":
		ret = "atom -w"
	case "subl":
		ret = "subl -n -w"
	case "code":
		ret = "code -n -w"
	case "mate":
		ret = "mate -w"
	case "vim":
		ret = "vim"
	case "nano":
		ret = "nano"
	case "emacs":
		ret = "emacs"
	case "nvim":
		ret = "nvim"
	default:
		ret = "vi"
	}

	return ret
}

// initConfigFile populates a new config file if it does not exist yet
func initConfigFile(ctx context.NotesCtx, apiEndpoint string) error {
	path := config.GetPath(ctx)
	ok, err := utils.FileExists(path)
	if err != nil {
		return errors.Wrap(err, "checking if config exists")
	}
	if ok {
		return nil
	}

	endpoint := apiEndpoint
	if endpoint == "" {
		endpoint = DefaultAPIEndpoint
	}

	cf := config.Config{
		Editor:            getEditorCommand(),
		APIEndpoint:       endpoint,
		EnableUpdateCheck: true,
	}

	if err := config.Write(ctx, cf); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return nil
}
