package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by Archive.Get for names without a stored file.
var ErrNotFound = errors.New("store: file not found")

// Archive keeps every file of a pyramid in a single SQLite database.
type Archive struct {
	db         *sql.DB
	insertStmt *sql.Stmt
}

// OpenArchive opens or creates the archive at given path. Rewriting a name
// replaces its previous content.
func OpenArchive(archivePath string) (*Archive, error) {
	db, err := sql.Open("sqlite3", archivePath)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		CREATE TABLE IF NOT EXISTS files (name TEXT PRIMARY KEY NOT NULL, data BLOB NOT NULL);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: initialize %s: %w", archivePath, err)
	}

	insertStmt, err := db.Prepare("INSERT OR REPLACE INTO files (name, data) VALUES (?, ?)")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Archive{
		db:         db,
		insertStmt: insertStmt,
	}, nil
}

// Put stores data as name.
func (a *Archive) Put(name string, data []byte) error {
	_, err := a.insertStmt.Exec(name, data)
	return err
}

// Get returns the data stored as name.
func (a *Archive) Get(name string) ([]byte, error) {
	var data []byte
	switch err := a.db.QueryRow("SELECT data FROM files WHERE name = ?", name).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	case nil:
		return data, nil
	default:
		return nil, err
	}
}

// Names returns the names of all stored files in lexical order.
func (a *Archive) Names() ([]string, error) {
	rows, err := a.db.Query("SELECT name FROM files ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Close releases the database file.
func (a *Archive) Close() error {
	if err := a.insertStmt.Close(); err != nil {
		return err
	}
	return a.db.Close()
}

// Open returns the existing pyramid at target: an Archive for a regular file
// and a Dir for a directory. Nothing is created.
func Open(target string) (Store, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}

	switch {
	case info.Mode().IsRegular():
		return OpenArchive(target)
	case info.IsDir():
		return &Dir{root: target}, nil
	}

	return nil, fmt.Errorf("store: %s is neither a file nor a directory", target)
}
