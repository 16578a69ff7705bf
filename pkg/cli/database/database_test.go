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

package database

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/saasnotes/saasnotes/pkg/assert"
)

func TestUpsertSystem(t *testing.T) {
	db := InitTestMemoryDB(t)

	if err := UpsertSystem(db, "session_token", "t1"); err != nil {
		t.Fatal(errors.Wrap(err, "inserting"))
	}

	var got string
	MustScan(t, "getting inserted value",
		db.QueryRow("SELECT value FROM system WHERE key = ?", "session_token"), &got)
	assert.Equal(t, got, "t1", "inserted value mismatch")

	if err := UpsertSystem(db, "session_token", "t2"); err != nil {
		t.Fatal(errors.Wrap(err, "updating"))
	}

	var count int
	MustScan(t, "counting rows",
		db.QueryRow("SELECT count(*) FROM system WHERE key = ?", "session_token"), &count)
	assert.Equal(t, count, 1, "row count mismatch after upsert")

	MustScan(t, "getting updated value",
		db.QueryRow("SELECT value FROM system WHERE key = ?", "session_token"), &got)
	assert.Equal(t, got, "t2", "updated value mismatch")
}

func TestDeleteSystem(t *testing.T) {
	db := InitTestMemoryDB(t)
	MustExec(t, "seeding a value", db, "INSERT INTO system (key, value) VALUES (?, ?)", "session_token", "t1")

	if err := DeleteSystem(db, "session_token"); err != nil {
		t.Fatal(errors.Wrap(err, "deleting"))
	}

	var got string
	err := db.QueryRow("SELECT value FROM system WHERE key = ?", "session_token").Scan(&got)
	assert.Equal(t, err, sql.ErrNoRows, "expected no rows after delete")
}

func TestGetSystem(t *testing.T) {
	db := InitTestMemoryDB(t)
	MustExec(t, "seeding a value", db, "INSERT INTO system (key, value) VALUES (?, ?)", "session_token", "t1")

	var got string
	if err := GetSystem(db, "session_token", &got); err != nil {
		t.Fatal(errors.Wrap(err, "getting"))
	}

	assert.Equal(t, got, "t1", "value mismatch")
}
