package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmoreno/invitado/internal/dashboard"
	"github.com/dmoreno/invitado/internal/models"
	"github.com/dmoreno/invitado/internal/remote"
	"github.com/dmoreno/invitado/internal/storage/sqlite"
	"github.com/dmoreno/invitado/internal/store"
)

func newTestModel(t *testing.T, names ...string) model {
	t.Helper()

	cache, err := sqlite.New(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })

	st := store.New("boda-2026", cache, remote.NewMemory())
	for _, name := range names {
		if _, err := st.SaveGuest(context.Background(), models.Guest{Name: name}); err != nil {
			t.Fatalf("seed guest %q: %v", name, err)
		}
	}

	dash := dashboard.New(st)
	if err := dash.Load(context.Background()); err != nil {
		t.Fatalf("load dashboard: %v", err)
	}

	m := newModel(dash)
	updated, _ := m.Update(loadedMsg{})
	return updated.(model)
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{}
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		updated, cmd := m.Update(keyMsg(k))
		m = updated.(model)
		// Run any returned command synchronously and feed its message back.
		if cmd != nil {
			if msg := cmd(); msg != nil {
				updated, _ = m.Update(msg)
				m = updated.(model)
			}
		}
	}
	return m
}

func TestViewListsGuests(t *testing.T) {
	m := newTestModel(t, "Ana María", "Beto Díaz")
	view := m.View()
	for _, want := range []string{"Ana María", "Beto Díaz", "Invitados"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestSearchFiltersRows(t *testing.T) {
	m := newTestModel(t, "Ana María", "Beto Díaz", "Mario López")
	m = press(t, m, "/", "m", "a", "r")

	view := m.View()
	if !strings.Contains(view, "Mario López") || !strings.Contains(view, "Ana María") {
		t.Errorf("search 'mar' lost a matching row:\n%s", view)
	}
	if strings.Contains(view, "Beto Díaz") {
		t.Errorf("search 'mar' kept a non-matching row:\n%s", view)
	}

	// Leaving search keeps the filter; esc again clears the status only.
	m = press(t, m, "enter")
	if got := len(m.dash.Filtered()); got != 2 {
		t.Errorf("filtered rows = %d after closing search, want 2", got)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m := newTestModel(t, "Ana María")

	m = press(t, m, "d")
	if got := len(m.dash.Filtered()); got != 1 {
		t.Fatalf("single d deleted the guest")
	}

	m = press(t, m, "d")
	if got := len(m.dash.Filtered()); got != 0 {
		t.Errorf("second d did not delete the guest (%d rows left)", got)
	}
}

func TestToggleKey(t *testing.T) {
	m := newTestModel(t, "Ana María")

	m = press(t, m, "t")
	rows := m.dash.Filtered()
	if len(rows) != 1 {
		t.Fatalf("guest disappeared on toggle")
	}
	if rows[0].Active {
		t.Error("guest still active after toggle")
	}
}
