package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// ErrUnsupportedDriver is returned for a driver without embedded migrations.
var ErrUnsupportedDriver = errors.New("no migrations for driver")

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

type dialect struct {
	name string
	dir  string
}

var dialects = map[string]dialect{
	"pgx":     {name: "postgres", dir: "postgres"},
	"sqlite3": {name: "sqlite3", dir: "sqlite"},
}

// Migrate applies every pending migration of the given database/sql driver
// ("pgx" or "sqlite3") to db.
func Migrate(db *sql.DB, driver string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("migration error: %w %q", ErrUnsupportedDriver, driver)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(d.name); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, d.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
