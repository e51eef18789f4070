// Package remote defines the hosted document store the configuration and
// guest data sync to, as a path-addressed document API.
//
// Documents live under collection paths ("events/boda-2026",
// "events/boda-2026/guests/A1B2"). The store treats the remote copy as an
// eventually-consistent mirror: last write wins, no conflict detection.
package remote

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no document exists at the requested path.
var ErrNotFound = errors.New("document not found")

// Document is a schemaless JSON document plus the path it was read from.
type Document struct {
	Path string
	Data map[string]any
}

// ID returns the last path segment, the document's id within its collection.
func (d Document) ID() string {
	for i := len(d.Path) - 1; i >= 0; i-- {
		if d.Path[i] == '/' {
			return d.Path[i+1:]
		}
	}
	return d.Path
}

// Client is the document API surface the store depends on.
type Client interface {
	// Get fetches the document at path, or ErrNotFound.
	Get(ctx context.Context, path string) (map[string]any, error)

	// Set writes doc at path. With merge, top-level fields are combined
	// with the existing document instead of replacing it.
	Set(ctx context.Context, path string, doc map[string]any, merge bool) error

	// Delete removes the document at path. Deleting a missing document is
	// not an error.
	Delete(ctx context.Context, path string) error

	// Query lists a collection's documents ordered by the named field,
	// descending when desc is set.
	Query(ctx context.Context, collection, orderBy string, desc bool) ([]Document, error)
}
