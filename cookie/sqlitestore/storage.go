// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package sqlitestore persists cookie jar entries in a SQLite database.
package sqlitestore

import (
	"database/sql"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"

	"github.com/xmidt-org/redirectaux/cookie"
)

// Memory is the filename that selects a private in-memory database.
const Memory = "memory"

const schema = `CREATE TABLE IF NOT EXISTS cookies (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	domain TEXT NOT NULL,
	path TEXT NOT NULL,
	name TEXT NOT NULL,
	value TEXT NOT NULL,
	host_only INTEGER NOT NULL,
	secure INTEGER NOT NULL,
	http_only INTEGER NOT NULL,
	expires INTEGER NOT NULL,
	UNIQUE (domain, path, name)
)`

// Storage is a cookie.Storage backed by SQLite.  Insertion order is the
// autoincrement sequence, which an upsert does not change.
type Storage struct {
	db         *sql.DB
	writeMutex *sync.Mutex
}

var _ cookie.Storage = (*Storage)(nil)

// Open opens or creates the database file and prepares the schema.  The
// filename Memory (or the empty string) opens an in-memory database that
// lives as long as the returned Storage.
func Open(filename string) (*Storage, error) {
	if filename == "" || filename == Memory {
		filename = ":memory:"
	}

	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, err
	}

	// an in-memory database exists per connection
	db.SetMaxOpenConns(1)

	s, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// New prepares the schema in an existing database.  The caller retains
// ownership of db, but may release it through Close.
func New(db *sql.DB) (*Storage, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &Storage{
		db:         db,
		writeMutex: &sync.Mutex{},
	}, nil
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Entries returns all stored cookies ordered by insertion.
func (s *Storage) Entries() ([]cookie.Entry, error) {
	rows, err := s.db.Query(`SELECT
		domain, path, name, value, host_only, secure, http_only, expires
		FROM cookies ORDER BY seq`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var entries []cookie.Entry
	for rows.Next() {
		var (
			e       cookie.Entry
			expires int64
		)

		if err := rows.Scan(&e.Domain, &e.Path, &e.Name, &e.Value, &e.HostOnly, &e.Secure, &e.HttpOnly, &expires); err != nil {
			return entries, err
		}

		if expires != 0 {
			e.Expires = time.Unix(0, expires)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Upsert inserts the entry or replaces the value and attributes of an
// existing entry with the same key.
func (s *Storage) Upsert(e cookie.Entry) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()

	var expires int64
	if !e.Expires.IsZero() {
		expires = e.Expires.UnixNano()
	}

	_, err := s.db.Exec(`INSERT INTO cookies
		(domain, path, name, value, host_only, secure, http_only, expires) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (domain, path, name) DO UPDATE SET
		value = excluded.value,
		host_only = excluded.host_only,
		secure = excluded.secure,
		http_only = excluded.http_only,
		expires = excluded.expires`,
		e.Domain, e.Path, e.Name, e.Value, e.HostOnly, e.Secure, e.HttpOnly, expires)
	return err
}

// Delete removes the cookie with the given key.
func (s *Storage) Delete(k cookie.Key) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err := s.db.Exec("DELETE FROM cookies WHERE domain = ? AND path = ? AND name = ?", k.Domain, k.Path, k.Name)
	return err
}
