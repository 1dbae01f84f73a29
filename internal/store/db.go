// Package store caches per-file picture metadata so rescans can skip EXIF
// decoding for files that have not changed.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/photominer/internal/debug"
)

// Meta is the cached metadata for one picture
type Meta struct {
	Path         string
	ModTime      time.Time
	HasExif      bool
	CreationDate time.Time
}

type DB struct {
	conn *sql.DB
}

func NewDB() *DB {
	return &DB{}
}

// DefaultPath returns the database location inside the user config dir
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	return filepath.Join(configDir, "photominer", "photominer.db")
}

// Open initializes the database connection and schema
func (d *DB) Open(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return fmt.Errorf("set journal mode: %w", err)
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return fmt.Errorf("set synchronous: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS images (
		path TEXT PRIMARY KEY,
		mod_time INTEGER NOT NULL,
		has_exif INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return fmt.Errorf("create images table: %w", err)
	}

	d.conn = db
	debug.Log(debug.STORE, "opened %s", dbPath)
	return nil
}

// Lookup returns the cached metadata for path if it was recorded for the
// same modification time.
func (d *DB) Lookup(path string, modTime time.Time) (Meta, bool) {
	if d.conn == nil {
		return Meta{}, false
	}

	var mod, created int64
	var hasExif bool
	err := d.conn.QueryRow(
		"SELECT mod_time, has_exif, created_at FROM images WHERE path = ?", path,
	).Scan(&mod, &hasExif, &created)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			debug.Log(debug.STORE, "lookup %s: %v", path, err)
		}
		return Meta{}, false
	}
	if mod != modTime.UnixNano() {
		return Meta{}, false
	}
	return Meta{
		Path:         path,
		ModTime:      modTime,
		HasExif:      hasExif,
		CreationDate: time.Unix(0, created),
	}, true
}

// Put records metadata for a picture, replacing any previous entry
func (d *DB) Put(m Meta) error {
	if d.conn == nil {
		return nil
	}
	_, err := d.conn.Exec(
		"INSERT OR REPLACE INTO images (path, mod_time, has_exif, created_at) VALUES (?, ?, ?, ?)",
		m.Path, m.ModTime.UnixNano(), m.HasExif, m.CreationDate.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("store %s: %w", m.Path, err)
	}
	return nil
}

// Prune deletes cached entries below root that are not in keep
func (d *DB) Prune(root string, keep map[string]bool) (int, error) {
	if d.conn == nil {
		return 0, nil
	}

	prefix := filepath.Clean(root) + string(filepath.Separator)
	rows, err := d.conn.Query("SELECT path FROM images WHERE substr(path, 1, ?) = ?", len(prefix), prefix)
	if err != nil {
		return 0, fmt.Errorf("list cached images: %w", err)
	}
	var stale []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err == nil && !keep[p] {
			stale = append(stale, p)
		}
	}
	rows.Close()

	for _, p := range stale {
		if _, err := d.conn.Exec("DELETE FROM images WHERE path = ?", p); err != nil {
			return 0, fmt.Errorf("delete %s: %w", p, err)
		}
	}
	if len(stale) > 0 {
		debug.Log(debug.STORE, "pruned %d entries under %s", len(stale), root)
	}
	return len(stale), nil
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}
