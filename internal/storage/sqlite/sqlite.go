// Package sqlite provides a SQLite-backed implementation of the storage.Cache
// interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/dmoreno/invitado/internal/models"
	"github.com/dmoreno/invitado/internal/storage"
)

// Ensure Cache implements storage.Cache
var _ storage.Cache = (*Cache)(nil)

// Cache implements storage.Cache using SQLite.
type Cache struct {
	db *sql.DB
}

// New creates a Cache backed by the database at dbPath, creating parent
// directories and the schema as needed.
func New(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveConfig upserts the configuration document for an event.
func (c *Cache) SaveConfig(ctx context.Context, eventID string, raw []byte) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO config_cache (event_id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(event_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		eventID, string(raw), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save config for %q: %w", eventID, err)
	}
	return nil
}

// LoadConfig returns the cached configuration document for an event.
func (c *Cache) LoadConfig(ctx context.Context, eventID string) ([]byte, error) {
	var data string
	err := c.db.QueryRowContext(ctx,
		"SELECT data FROM config_cache WHERE event_id = ?", eventID,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config for %q: %w", eventID, err)
	}
	return []byte(data), nil
}

// SaveGuests replaces the cached guest list for an event.
func (c *Cache) SaveGuests(ctx context.Context, eventID string, guests []models.Guest) error {
	data, err := json.Marshal(guests)
	if err != nil {
		return fmt.Errorf("failed to marshal guest list: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO guest_cache (event_id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(event_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		eventID, string(data), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save guest list for %q: %w", eventID, err)
	}
	return nil
}

// LoadGuests returns the cached guest list for an event.
func (c *Cache) LoadGuests(ctx context.Context, eventID string) ([]models.Guest, error) {
	var data string
	err := c.db.QueryRowContext(ctx,
		"SELECT data FROM guest_cache WHERE event_id = ?", eventID,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load guest list for %q: %w", eventID, err)
	}

	var guests []models.Guest
	if err := json.Unmarshal([]byte(data), &guests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guest list for %q: %w", eventID, err)
	}
	return guests, nil
}
