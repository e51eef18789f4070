// Package store owns the canonical event configuration: it deep-merges
// partial updates, notifies subscribers, mirrors state to the local cache and
// pushes it to the remote document store.
//
// Consistency model: in-memory state is always the most current. The local
// cache write is best-effort, the remote push asynchronous and last-write-
// wins. A failed push never rolls back in-memory or cached state.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmoreno/invitado/internal/merge"
	"github.com/dmoreno/invitado/internal/models"
	"github.com/dmoreno/invitado/internal/remote"
	"github.com/dmoreno/invitado/internal/storage"
)

// ErrDocumentTooLarge is surfaced when the serialized configuration exceeds
// the remote store's per-document limit and the push is refused.
var ErrDocumentTooLarge = errors.New("configuration document exceeds remote size limit")

// DefaultMaxDocumentBytes sits just under the hosted store's 1 MiB hard cap.
const DefaultMaxDocumentBytes = 1_040_000

// Patch is a partial configuration update. Recognized top-level sections:
// wedding and ui (deep-merged), api (shallow-merged), timeline (replaced).
type Patch = map[string]any

// Subscriber reacts to configuration changes with the post-merge state.
type Subscriber func(models.Config)

type subscription struct {
	id int
	fn Subscriber
}

// Store is the reactive configuration container for one event.
type Store struct {
	eventID string
	cache   storage.Cache
	remote  remote.Client
	log     *slog.Logger

	maxDocBytes int
	onPushError func(error)

	mu     sync.RWMutex
	raw    map[string]any // canonical document form
	state  models.Config  // typed snapshot derived from raw
	subs   []subscription
	nextID int

	pushes sync.WaitGroup
}

// Option configures a Store.
type Option func(*Store)

// WithMaxDocumentBytes overrides the remote per-document size limit.
func WithMaxDocumentBytes(n int) Option {
	return func(s *Store) { s.maxDocBytes = n }
}

// WithPushErrorFunc registers the callback that surfaces remote push
// failures (network errors, size-guard refusals) to the UI.
func WithPushErrorFunc(fn func(error)) Option {
	return func(s *Store) { s.onPushError = fn }
}

// WithLogger overrides the store's logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New creates a Store for eventID seeded with the default configuration,
// then overlays whatever the local cache holds. Cache read failures are
// logged and ignored: the defaults remain valid state.
func New(eventID string, cache storage.Cache, rc remote.Client, opts ...Option) *Store {
	s := &Store{
		eventID:     eventID,
		cache:       cache,
		remote:      rc,
		log:         slog.Default().With("component", "store", "event", eventID),
		maxDocBytes: DefaultMaxDocumentBytes,
		onPushError: func(error) {},
		raw:         encodeConfig(models.Default()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.normalize()
	s.state = decodeConfig(s.raw, s.log)

	if raw, err := s.cache.LoadConfig(context.Background(), eventID); err == nil {
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			s.log.Error("cached configuration is corrupt, ignoring", "error", err)
		} else {
			s.applyLocked(doc)
			s.log.Debug("state loaded from local cache")
		}
	} else if !errors.Is(err, storage.ErrNotCached) {
		s.log.Warn("cache read failed, starting from defaults", "error", err)
	}
	return s
}

// EventID returns the event this store is scoped to.
func (s *Store) EventID() string {
	return s.eventID
}

// GetState returns the current typed snapshot. Callers must not mutate the
// nested objects outside of SetState.
func (s *Store) GetState() models.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// RawState returns a deep copy of the configuration in document form,
// including fields the typed snapshot does not model.
func (s *Store) RawState() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := json.Marshal(s.raw)
	if err != nil {
		return map[string]any{}
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return map[string]any{}
	}
	return doc
}

// Subscribe registers a callback invoked with the new state after every
// SetState, in registration order. The returned function removes the
// registration.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// SetState merges a partial update into the configuration, notifies
// subscribers synchronously, persists to the local cache and, unless
// skipRemote, pushes the full state to the remote store in the background.
func (s *Store) SetState(patch Patch, skipRemote bool) {
	s.mu.Lock()
	s.applyLocked(patch)
	cfg := s.state
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		notify(sub.fn, cfg, s.log)
	}

	s.persistLocal()

	if !skipRemote {
		s.pushes.Add(1)
		go func() {
			defer s.pushes.Done()
			s.pushRemote(context.Background())
		}()
	}
}

// LoadFromRemote fetches the event document and applies it without an
// immediate redundant push. A missing document is not an error; the caller
// decides the fallback on network failure.
func (s *Store) LoadFromRemote(ctx context.Context) error {
	doc, err := s.remote.Get(ctx, "events/"+s.eventID)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			s.log.Info("no remote configuration yet")
			return nil
		}
		return err
	}
	s.SetState(doc, true)
	s.log.Info("state loaded from remote")
	return nil
}

// Flush waits for in-flight remote pushes. Shutdown and tests use it.
func (s *Store) Flush() {
	s.pushes.Wait()
}

// applyLocked merges patch into raw and refreshes the typed snapshot.
// Callers hold s.mu.
func (s *Store) applyLocked(patch Patch) {
	if w, ok := patch["wedding"].(map[string]any); ok {
		s.raw["wedding"] = merge.Maps(asMap(s.raw["wedding"]), w)
	}
	if u, ok := patch["ui"].(map[string]any); ok {
		s.raw["ui"] = merge.Maps(asMap(s.raw["ui"]), u)
	}
	if a, ok := patch["api"].(map[string]any); ok {
		s.raw["api"] = merge.Shallow(asMap(s.raw["api"]), a)
	}
	if tl, ok := patch["timeline"]; ok && tl != nil {
		s.raw["timeline"] = tl
	}
	s.state = decodeConfig(s.raw, s.log)
}

// normalize guarantees the wedding, ui and api sections exist as objects.
func (s *Store) normalize() {
	for _, key := range []string{"wedding", "ui", "api"} {
		if _, ok := s.raw[key].(map[string]any); !ok {
			s.raw[key] = map[string]any{}
		}
	}
}

func (s *Store) persistLocal() {
	s.mu.RLock()
	data, err := json.Marshal(s.raw)
	s.mu.RUnlock()
	if err != nil {
		s.log.Error("failed to serialize state for cache", "error", err)
		return
	}
	if err := s.cache.SaveConfig(context.Background(), s.eventID, data); err != nil {
		// Log-only: the in-memory state stays valid and the remote copy
		// still receives the push.
		s.log.Warn("local cache write failed", "error", err)
	}
}

func notify(fn Subscriber, cfg models.Config, log *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("subscriber panicked", "panic", r)
		}
	}()
	fn(cfg)
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func encodeConfig(cfg models.Config) map[string]any {
	data, err := json.Marshal(cfg)
	if err != nil {
		return map[string]any{}
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return map[string]any{}
	}
	return doc
}

func decodeConfig(raw map[string]any, log *slog.Logger) models.Config {
	data, err := json.Marshal(raw)
	if err != nil {
		log.Error("failed to serialize raw state", "error", err)
		return models.Config{}
	}
	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Error("raw state does not decode as configuration", "error", err)
	}
	return cfg
}
