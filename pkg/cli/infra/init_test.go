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

package infra

import (
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/saasnotes/saasnotes/pkg/assert"
	"github.com/saasnotes/saasnotes/pkg/cli/config"
	"github.com/saasnotes/saasnotes/pkg/cli/context"
	"github.com/saasnotes/saasnotes/pkg/cli/database"
	"github.com/saasnotes/saasnotes/pkg/dirs"
)

func TestInitSystemKV(t *testing.T) {
	// Setup
	db := database.InitTestMemoryDB(t)

	var originalCount int
	database.MustScan(t, "counting system configs", db.QueryRow("SELECT count(*) FROM system"), &originalCount)

	// Execute
	tx, err := db.Begin()
	if err != nil {
		t.Fatal(errors.Wrap(err, "beginning a transaction"))
	}

	if err := initSystemKV(tx, "testKey", "testVal"); err != nil {
		tx.Rollback()
		t.Fatal(errors.Wrap(err, "executing"))
	}

	tx.Commit()

	// Test
	var count int
	database.MustScan(t, "counting system configs", db.QueryRow("SELECT count(*) FROM system"), &count)
	assert.Equal(t, count, originalCount+1, "system count mismatch")

	var val string
	database.MustScan(t, "getting system value",
		db.QueryRow("SELECT value FROM system WHERE key = ?", "testKey"), &val)
	assert.Equal(t, val, "testVal", "system value mismatch")
}

func TestInitSystemKV_existing(t *testing.T) {
	// Setup
	db := database.InitTestMemoryDB(t)

	database.MustExec(t, "inserting a system config", db, "INSERT INTO system (key, value) VALUES (?, ?)", "testKey", "testVal")

	var originalCount int
	database.MustScan(t, "counting system configs", db.QueryRow("SELECT count(*) FROM system"), &originalCount)

	// Execute
	tx, err := db.Begin()
	if err != nil {
		t.Fatal(errors.Wrap(err, "beginning a transaction"))
	}

	if err := initSystemKV(tx, "testKey", "newTestVal"); err != nil {
		tx.Rollback()
		t.Fatal(errors.Wrap(err, "executing"))
	}

	tx.Commit()

	// Test
	var count int
	database.MustScan(t, "counting system configs", db.QueryRow("SELECT count(*) FROM system"), &count)
	assert.Equal(t, count, originalCount, "system count mismatch")

	var val string
	database.MustScan(t, "getting system value",
		db.QueryRow("SELECT value FROM system WHERE key = ?", "testKey"), &val)
	assert.Equal(t, val, "testVal", "system value should not have been updated")
}

func TestGetDBPath(t *testing.T) {
	paths := context.Paths{Data: "/data"}

	t.Run("default", func(t *testing.T) {
		got := getDBPath(paths, "")
		assert.Equal(t, got, "/data/saasnotes/saasnotes.db", "db path mismatch")
	})

	t.Run("custom", func(t *testing.T) {
		got := getDBPath(paths, "./custom.db")
		assert.Equal(t, got, "./custom.db", "db path mismatch")
	})
}

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()

	t.Setenv("XDG_CONFIG_HOME", fmt.Sprintf("%s/config", tmpDir))
	t.Setenv("XDG_DATA_HOME", fmt.Sprintf("%s/data", tmpDir))
	t.Setenv("XDG_CACHE_HOME", fmt.Sprintf("%s/cache", tmpDir))
	dirs.Reload()
	t.Cleanup(dirs.Reload)

	endpoint := "http://127.0.0.1:3001/api"
	ctx, err := Init("test-version", endpoint, "")
	if err != nil {
		t.Fatal(errors.Wrap(err, "initializing"))
	}
	defer ctx.DB.Close()

	assert.Equal(t, ctx.APIEndpoint, endpoint, "API endpoint mismatch")
	assert.Equal(t, ctx.Version, "test-version", "version mismatch")
	assert.Equal(t, ctx.SessionToken, "", "session token should be empty")
	assert.Equal(t, ctx.EnableUpdateCheck, true, "update check should default to enabled")

	cf, err := config.Read(*ctx)
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading config"))
	}
	assert.Equal(t, cf.APIEndpoint, endpoint, "config endpoint mismatch")
	assert.NotEqual(t, cf.Editor, "", "editor should have a default")
}

func TestInit_endpointOverride(t *testing.T) {
	tmpDir := t.TempDir()

	t.Setenv("XDG_CONFIG_HOME", fmt.Sprintf("%s/config", tmpDir))
	t.Setenv("XDG_DATA_HOME", fmt.Sprintf("%s/data", tmpDir))
	t.Setenv("XDG_CACHE_HOME", fmt.Sprintf("%s/cache", tmpDir))
	t.Setenv(envAPIEndpoint, "http://override:4001/api")
	dirs.Reload()
	t.Cleanup(dirs.Reload)

	ctx, err := Init("test-version", "", "")
	if err != nil {
		t.Fatal(errors.Wrap(err, "initializing"))
	}
	defer ctx.DB.Close()

	assert.Equal(t, ctx.APIEndpoint, "http://override:4001/api", "environment should override the configured endpoint")
}
