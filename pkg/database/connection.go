package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// ConnectDB establishes a connection to the SQLite database
func ConnectDB(dbPath string) (*sql.DB, error) {
	// Expand tilde to home directory if present
	if strings.HasPrefix(dbPath, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbPath = homeDir + dbPath[1:]
	}

	// Create the directory structure if it doesn't exist
	dbDir := filepath.Dir(dbPath)
	if dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, err
		}
	}

	// Connect to SQLite database
	// SQLite will create the database file if it doesn't exist
	return sql.Open("sqlite3", dbPath)
}

// EnsureSchema creates the database schema if it doesn't exist
func EnsureSchema(db *sql.DB) error {
	// Plans table: one row per date-ranged plan
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS plans (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			color TEXT NOT NULL DEFAULT '#2d8a4e',
			startdate TEXT NOT NULL,
			enddate TEXT NOT NULL,
			created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			lastmodified TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return err
	}

	// Routine days: the full block list for one weekday of one plan,
	// stored as a JSON document and always replaced as a whole
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS routine_days (
			plan_id TEXT NOT NULL,
			day_key TEXT NOT NULL,
			blocks TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (plan_id, day_key)
		)
	`); err != nil {
		return err
	}

	// User-defined block types with display colors
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS custom_types (
			typekey TEXT PRIMARY KEY,
			color TEXT NOT NULL
		)
	`)
	return err
}
