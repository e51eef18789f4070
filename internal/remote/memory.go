package remote

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Ensure Memory implements Client
var _ Client = (*Memory)(nil)

// Memory is an in-process Client. It backs tests and offline runs, the same
// way the storage.Cache interface allows swapping persistence backends.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]map[string]any

	// Fail fields, when set, make the corresponding operation return that
	// error. Tests use them to exercise failure paths.
	FailGet    error
	FailSet    error
	FailDelete error
	FailQuery  error
}

// NewMemory creates an empty in-memory document store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]map[string]any)}
}

// Get fetches the document at path.
func (m *Memory) Get(ctx context.Context, path string) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailGet != nil {
		return nil, m.FailGet
	}
	doc, ok := m.docs[path]
	if !ok {
		return nil, fmt.Errorf("remote.Get %s: %w", path, ErrNotFound)
	}
	return deepCopy(doc), nil
}

// Set writes doc at path.
func (m *Memory) Set(ctx context.Context, path string, doc map[string]any, merge bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSet != nil {
		return m.FailSet
	}
	if merge {
		if existing, ok := m.docs[path]; ok {
			combined := deepCopy(existing)
			for k, v := range doc {
				combined[k] = v
			}
			m.docs[path] = combined
			return nil
		}
	}
	m.docs[path] = deepCopy(doc)
	return nil
}

// Delete removes the document at path.
func (m *Memory) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailDelete != nil {
		return m.FailDelete
	}
	delete(m.docs, path)
	return nil
}

// Query lists the direct children of a collection path.
func (m *Memory) Query(ctx context.Context, collection, orderBy string, desc bool) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailQuery != nil {
		return nil, m.FailQuery
	}

	prefix := collection + "/"
	var docs []Document
	for path, data := range m.docs {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		if strings.Contains(path[len(prefix):], "/") {
			continue // grandchild of a sub-collection
		}
		docs = append(docs, Document{Path: path, Data: deepCopy(data)})
	}

	sort.Slice(docs, func(i, j int) bool {
		a := fmt.Sprint(docs[i].Data[orderBy])
		b := fmt.Sprint(docs[j].Data[orderBy])
		if a == b {
			return docs[i].Path < docs[j].Path
		}
		if desc {
			return a > b
		}
		return a < b
	})
	return docs, nil
}

// Len returns the number of stored documents.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

func deepCopy(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if sub, ok := v.(map[string]any); ok {
			out[k] = deepCopy(sub)
			continue
		}
		out[k] = v
	}
	return out
}
