package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmoreno/invitado/internal/models"
	"github.com/dmoreno/invitado/internal/storage"
)

func TestCache(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "invitado-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cache, err := New(filepath.Join(tempDir, "cache.db"))
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()

	t.Run("LoadConfig before any save returns ErrNotCached", func(t *testing.T) {
		_, err := cache.LoadConfig(ctx, "boda-2026")
		if !errors.Is(err, storage.ErrNotCached) {
			t.Errorf("err = %v, want ErrNotCached", err)
		}
	})

	t.Run("SaveConfig then LoadConfig roundtrips", func(t *testing.T) {
		doc := []byte(`{"wedding":{"names":"Dora & Gregorio"}}`)
		if err := cache.SaveConfig(ctx, "boda-2026", doc); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}

		got, err := cache.LoadConfig(ctx, "boda-2026")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if string(got) != string(doc) {
			t.Errorf("LoadConfig = %s, want %s", got, doc)
		}
	})

	t.Run("SaveConfig overwrites prior document", func(t *testing.T) {
		updated := []byte(`{"wedding":{"names":"Ana & Luis"}}`)
		if err := cache.SaveConfig(ctx, "boda-2026", updated); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}

		got, err := cache.LoadConfig(ctx, "boda-2026")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if string(got) != string(updated) {
			t.Errorf("LoadConfig = %s, want updated document", got)
		}
	})

	t.Run("events do not collide", func(t *testing.T) {
		other := []byte(`{"wedding":{"names":"Otro Evento"}}`)
		if err := cache.SaveConfig(ctx, "boda-2027", other); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}

		got, err := cache.LoadConfig(ctx, "boda-2026")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if string(got) == string(other) {
			t.Error("documents for different events collided")
		}
	})

	t.Run("guest list roundtrips", func(t *testing.T) {
		guests := []models.Guest{
			{ID: "A1B2", Name: "Familia Rivera", Attendance: models.AttendancePending, Adults: 2, Active: true},
			{ID: "C3D4", Name: "Marta", Attendance: models.AttendanceConfirms, Adults: 1, Kids: 2, Active: true},
		}
		if err := cache.SaveGuests(ctx, "boda-2026", guests); err != nil {
			t.Fatalf("SaveGuests failed: %v", err)
		}

		got, err := cache.LoadGuests(ctx, "boda-2026")
		if err != nil {
			t.Fatalf("LoadGuests failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d guests, want 2", len(got))
		}
		if got[0].ID != "A1B2" || got[1].Kids != 2 {
			t.Errorf("guest fields lost in roundtrip: %+v", got)
		}
	})

	t.Run("LoadGuests without cache returns ErrNotCached", func(t *testing.T) {
		_, err := cache.LoadGuests(ctx, "sin-cache")
		if !errors.Is(err, storage.ErrNotCached) {
			t.Errorf("err = %v, want ErrNotCached", err)
		}
	})
}
