// Copyright (C) 2025 Mono Technologies Inc.
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

package state

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite3 driver
)

// Revision is one saved version of a config file.
type Revision struct {
	ID        int64
	Path      string
	Reason    string
	Checksum  string
	CreatedAt time.Time
	Size      int
	Data      []byte // only populated by Get
}

// History stores every saved revision of a config file in SQLite so earlier
// versions can be listed and restored.
type History struct {
	path string
	db   *sql.DB
}

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	h := &History{path: path, db: db}
	if err := h.initializeSchema(); err != nil {
		h.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) initializeSchema() error {
	revisionsTableSQL := `
		CREATE TABLE IF NOT EXISTS revisions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			config_path TEXT NOT NULL,
			reason      TEXT NOT NULL,
			checksum    TEXT NOT NULL,
			created_at  INTEGER NOT NULL,
			data        BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_revisions_path ON revisions(config_path, id);
	`

	if _, err := h.db.Exec(revisionsTableSQL); err != nil {
		return fmt.Errorf("failed to create revisions table: %w", err)
	}
	return nil
}

// Record stores data as the newest revision of configPath. A save whose
// content matches the newest revision is not stored again; its id is returned.
func (h *History) Record(configPath string, data []byte, reason string) (int64, error) {
	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])

	var lastID int64
	var lastChecksum string
	err := h.db.QueryRow(
		`SELECT id, checksum FROM revisions WHERE config_path = ? ORDER BY id DESC LIMIT 1`,
		configPath,
	).Scan(&lastID, &lastChecksum)
	switch {
	case err == nil && lastChecksum == checksum:
		return lastID, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return 0, fmt.Errorf("failed to read latest revision: %w", err)
	}

	res, err := h.db.Exec(
		`INSERT INTO revisions (config_path, reason, checksum, created_at, data) VALUES (?, ?, ?, ?, ?)`,
		configPath, reason, checksum, time.Now().UnixNano(), data,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert revision: %w", err)
	}
	return res.LastInsertId()
}

// List returns the newest revisions of configPath first, without content.
// A limit of zero or less returns all of them.
func (h *History) List(configPath string, limit int) ([]Revision, error) {
	query := `SELECT id, config_path, reason, checksum, created_at, length(data)
		FROM revisions WHERE config_path = ? ORDER BY id DESC`
	args := []interface{}{configPath}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query revisions: %w", err)
	}
	defer rows.Close()

	var revisions []Revision
	for rows.Next() {
		var rev Revision
		var created int64
		if err := rows.Scan(&rev.ID, &rev.Path, &rev.Reason, &rev.Checksum, &created, &rev.Size); err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		rev.CreatedAt = time.Unix(0, created)
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}

// Get returns a revision with its content.
func (h *History) Get(id int64) (*Revision, error) {
	var rev Revision
	var created int64
	err := h.db.QueryRow(
		`SELECT id, config_path, reason, checksum, created_at, data FROM revisions WHERE id = ?`, id,
	).Scan(&rev.ID, &rev.Path, &rev.Reason, &rev.Checksum, &created, &rev.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("revision %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read revision %d: %w", id, err)
	}
	rev.CreatedAt = time.Unix(0, created)
	rev.Size = len(rev.Data)
	return &rev, nil
}

// Prune keeps the newest keep revisions of configPath and deletes the rest.
func (h *History) Prune(configPath string, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := h.db.Exec(
		`DELETE FROM revisions WHERE config_path = ? AND id NOT IN (
			SELECT id FROM revisions WHERE config_path = ? ORDER BY id DESC LIMIT ?
		)`,
		configPath, configPath, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune revisions: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database connection
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}
