package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are embedded in version order; the migrations table
// tracks which have been applied.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_regions",
		SQL: `
			CREATE TABLE IF NOT EXISTS regions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				min_lat REAL NOT NULL,
				max_lat REAL NOT NULL,
				min_lng REAL NOT NULL,
				max_lng REAL NOT NULL,
				dem_path TEXT NOT NULL,
				dem_meta_path TEXT NOT NULL,
				active INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
	},
	{
		Version: 2,
		Name:    "index_regions_active",
		SQL:     `CREATE INDEX IF NOT EXISTS idx_regions_active ON regions(active)`,
	},
	{
		Version: 3,
		Name:    "index_regions_bounds",
		SQL:     `CREATE INDEX IF NOT EXISTS idx_regions_bounds ON regions(min_lat, max_lat, min_lng, max_lng)`,
	},
}

// Migrate applies all pending migrations to the given connection
func Migrate(conn *sql.DB) error {
	if _, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM migrations").Scan(&current); err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		err := Transaction(conn, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
			}
			if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Printf("[migrations] Applied %d_%s", m.Version, m.Name)
	}

	return nil
}
