package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/TWRT/equipeapp/internal/models"
)

const (
	DriverModernc = "sqlite"
	DriverCgo     = "sqlite3"
)

// timeLayout is sortable as text and keeps second precision. Values are
// always UTC.
const timeLayout = "2006-01-02 15:04:05"

func InitDB(driver, dbPath string) (*sql.DB, error) {
	if driver != DriverModernc && driver != DriverCgo {
		return nil, fmt.Errorf("%w: unsupported driver %q", models.ErrStorageUnavailable, driver)
	}

	db, err := sql.Open(driver, dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", models.ErrStorageUnavailable, dbPath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: connect %s: %w", models.ErrStorageUnavailable, dbPath, err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create tables: %w", models.ErrStorageUnavailable, err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS tasks (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        title TEXT NOT NULL,
        description TEXT,
        assignee TEXT,
        priority TEXT,
        status TEXT,
        created_at TEXT,
        updated_at TEXT
    );
    `

	_, err := db.Exec(schema)
	return err
}
