// Package storage provides the local durable cache behind the configuration
// store and the guest dashboard.
package storage

import (
	"context"
	"errors"

	"github.com/dmoreno/invitado/internal/models"
)

// ErrNotCached is returned when no local copy exists for an event.
var ErrNotCached = errors.New("no cached data for event")

// Cache is the local persistence layer. It mirrors state so the UI can render
// before (or without) the remote store answering; the remote copy stays
// authoritative for other sessions.
//
// Writes are best-effort from the caller's point of view: a failed cache
// write must never invalidate in-memory state.
type Cache interface {
	// SaveConfig stores the serialized configuration document for an event.
	SaveConfig(ctx context.Context, eventID string, raw []byte) error

	// LoadConfig returns the serialized configuration for an event, or
	// ErrNotCached when none was saved.
	LoadConfig(ctx context.Context, eventID string) ([]byte, error)

	// SaveGuests replaces the cached guest list for an event.
	SaveGuests(ctx context.Context, eventID string, guests []models.Guest) error

	// LoadGuests returns the cached guest list for an event, or ErrNotCached.
	LoadGuests(ctx context.Context, eventID string) ([]models.Guest, error)

	// Close releases any resources held by the cache.
	Close() error
}
