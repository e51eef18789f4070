package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmoreno/invitado/internal/links"
	"github.com/dmoreno/invitado/internal/models"
)

// guestsCollection returns the event's guest sub-collection path.
func (s *Store) guestsCollection() string {
	return "events/" + s.eventID + "/guests"
}

// SaveGuest creates or updates a guest document and returns its id. A new
// guest gets a generated short id, Pendiente attendance and active=true.
// An empty link or type is left out of the written document, so a re-save
// that omits them (a CSV re-import without those columns) merges over an
// existing record without clobbering its link or variant.
func (s *Store) SaveGuest(ctx context.Context, g models.Guest) (string, error) {
	if g.ID == "" {
		g.ID = links.NewToken()
		g.Active = true
		if g.Type == "" {
			g.Type = "f"
		}
	}
	if g.Attendance == "" {
		g.Attendance = models.AttendancePending
	}
	if g.Adults <= 0 {
		g.Adults = 1
	}
	if g.Kids < 0 {
		g.Kids = 0
	}
	if g.Allergies == "" {
		g.Allergies = "N/A"
	}
	g.Timestamp = time.Now().UTC()

	doc := map[string]any{
		"guest":      g.Name,
		"attendance": string(g.Attendance),
		"adults":     g.Adults,
		"kids":       g.Kids,
		"allergies":  g.Allergies,
		"active":     g.Active,
		"timestamp":  g.Timestamp.Format(time.RFC3339),
	}
	if g.Type != "" {
		doc["type"] = g.Type
	}
	if g.Link != "" {
		doc["link"] = g.Link
	}

	if err := s.remote.Set(ctx, s.guestsCollection()+"/"+g.ID, doc, true); err != nil {
		return "", fmt.Errorf("save guest %s: %w", g.ID, err)
	}
	s.log.Info("guest saved", "id", g.ID, "name", g.Name)
	return g.ID, nil
}

// UpdateGuest merges only the given fields into an existing guest document,
// leaving everything else (link, type, active) untouched. The RSVP flow uses
// it so a guest's answer never clobbers administrator-owned fields.
func (s *Store) UpdateGuest(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	if err := s.remote.Set(ctx, s.guestsCollection()+"/"+id, fields, true); err != nil {
		return fmt.Errorf("update guest %s: %w", id, err)
	}
	s.log.Info("guest updated", "id", id)
	return nil
}

// DeleteGuest permanently removes a guest document. There is no undo.
func (s *Store) DeleteGuest(ctx context.Context, id string) error {
	if err := s.remote.Delete(ctx, s.guestsCollection()+"/"+id); err != nil {
		return fmt.Errorf("delete guest %s: %w", id, err)
	}
	s.log.Info("guest deleted", "id", id)
	return nil
}

// ToggleGuestStatus soft-enables or disables an invitation without deleting
// the record.
func (s *Store) ToggleGuestStatus(ctx context.Context, id string, active bool) error {
	err := s.remote.Set(ctx, s.guestsCollection()+"/"+id, map[string]any{"active": active}, true)
	if err != nil {
		return fmt.Errorf("toggle guest %s: %w", id, err)
	}
	s.log.Info("guest status changed", "id", id, "active", active)
	return nil
}

// GetGuests fetches the event's guest collection, newest first, and
// refreshes the local guest cache on success.
func (s *Store) GetGuests(ctx context.Context) ([]models.Guest, error) {
	docs, err := s.remote.Query(ctx, s.guestsCollection(), "timestamp", true)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}

	guests := make([]models.Guest, 0, len(docs))
	for _, d := range docs {
		guests = append(guests, guestFromDoc(d.ID(), d.Data))
	}

	if err := s.cache.SaveGuests(ctx, s.eventID, guests); err != nil {
		s.log.Warn("guest cache write failed", "error", err)
	}
	return guests, nil
}

// CachedGuests returns the last guest list persisted locally, for rendering
// before the remote store answers.
func (s *Store) CachedGuests(ctx context.Context) ([]models.Guest, error) {
	return s.cache.LoadGuests(ctx, s.eventID)
}

// guestFromDoc maps a remote document onto a Guest, defaulting the fields
// older documents may omit.
func guestFromDoc(id string, data map[string]any) models.Guest {
	g := models.Guest{
		Attendance: models.AttendancePending,
		Allergies:  "N/A",
		Active:     true,
	}
	if raw, err := json.Marshal(data); err == nil {
		_ = json.Unmarshal(raw, &g)
	}
	g.ID = id
	return g
}
