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

// Package database provides connections to the local SQLite database
// that persists the session token between invocations
package database

import (
	"database/sql"

	"github.com/pkg/errors"
)

// DB wraps either a database connection or an open transaction so that
// helpers can run against both.
type DB struct {
	conn *sql.DB
	tx   *sql.Tx
}

// Open opens a database connection at the given path
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening database connection")
	}

	return &DB{conn: conn}, nil
}

// Begin starts a transaction and returns a DB bound to it
func (d *DB) Begin() (*DB, error) {
	if d.tx != nil {
		return nil, errors.New("transaction already in progress")
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return nil, errors.Wrap(err, "beginning a transaction")
	}

	return &DB{conn: d.conn, tx: tx}, nil
}

// Commit commits the transaction
func (d *DB) Commit() error {
	if d.tx == nil {
		return errors.New("not in a transaction")
	}

	return d.tx.Commit()
}

// Rollback aborts the transaction
func (d *DB) Rollback() error {
	if d.tx == nil {
		return errors.New("not in a transaction")
	}

	return d.tx.Rollback()
}

// Close closes the underlying connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Exec runs the given statement against the transaction, if any, or the connection
func (d *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	if d.tx != nil {
		return d.tx.Exec(query, args...)
	}

	return d.conn.Exec(query, args...)
}

// QueryRow runs the given query expected to return at most one row
func (d *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	if d.tx != nil {
		return d.tx.QueryRow(query, args...)
	}

	return d.conn.QueryRow(query, args...)
}

// InitSchema creates the tables if they do not exist
func InitSchema(db *DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS system
		(
			key text NOT NULL,
			value text NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_system_key ON system(key);`)
	if err != nil {
		return errors.Wrap(err, "creating system table")
	}

	return nil
}
