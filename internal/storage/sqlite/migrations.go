package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the cache schema.
// These run on startup to ensure tables exist. Rows are keyed by event so
// multiple events sharing one cache file do not collide.
const schema = `
CREATE TABLE IF NOT EXISTS config_cache (
    event_id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS guest_cache (
    event_id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
