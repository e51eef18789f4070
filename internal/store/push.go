package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/dmoreno/invitado/internal/metrics"
)

// placeholderPhotoMinBytes: anything shorter is a stub value, not a real
// inline-encoded image.
const placeholderPhotoMinBytes = 100

// pushRemote serializes the full state and writes it to the event document.
// The push is refused outright when the document would exceed the remote
// store's limit: the local cache stays the only copy until the caller
// shrinks the payload.
func (s *Store) pushRemote(ctx context.Context) {
	s.scrubPlaceholderPhoto()

	s.mu.RLock()
	doc := make(map[string]any, len(s.raw)+2)
	for k, v := range s.raw {
		doc[k] = v
	}
	doc["eventName"] = s.state.Wedding.Names
	doc["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	data, err := json.Marshal(doc)
	s.mu.RUnlock()

	if err != nil {
		s.log.Error("failed to serialize state for remote push", "error", err)
		s.onPushError(err)
		return
	}

	if len(data) > s.maxDocBytes {
		metrics.ConfigPushBlocked.Inc()
		s.log.Error("push refused: document over remote limit",
			"size_bytes", len(data), "limit_bytes", s.maxDocBytes)
		s.onPushError(ErrDocumentTooLarge)
		return
	}

	// Detach from the live state: doc still shares the nested section maps
	// with s.raw, which a concurrent SetState mutates in place. The remote
	// client must only ever see this push's snapshot.
	var snapshot map[string]any
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.log.Error("failed to snapshot state for remote push", "error", err)
		s.onPushError(err)
		return
	}

	if err := s.remote.Set(ctx, "events/"+s.eventID, snapshot, true); err != nil {
		metrics.ConfigPushes.WithLabelValues("error").Inc()
		s.log.Error("remote push failed", "error", err)
		s.onPushError(err)
		return
	}

	metrics.ConfigPushes.WithLabelValues("ok").Inc()
	s.log.Debug("remote push ok", "size_bytes", len(data))
}

// scrubPlaceholderPhoto clears stub photo values before they reach the
// remote store. The generator seeds a placeholder image URL that must never
// be persisted as if it were the couple's photo.
func (s *Store) scrubPlaceholderPhoto() {
	s.mu.Lock()
	defer s.mu.Unlock()

	wedding := asMap(s.raw["wedding"])
	photo, _ := wedding["photo"].(string)
	if photo == "" {
		return
	}
	if strings.Contains(photo, "placehold.co") || strings.Contains(photo, "placeholder") || len(photo) < placeholderPhotoMinBytes {
		s.log.Debug("clearing placeholder photo before push")
		wedding["photo"] = ""
		s.state = decodeConfig(s.raw, s.log)
	}
}
