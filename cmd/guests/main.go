// Command guests is a terminal dashboard over the event's guest list:
// filter, sort, paginate, copy invitation links, toggle and delete.
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmoreno/invitado/internal/config"
	"github.com/dmoreno/invitado/internal/dashboard"
	"github.com/dmoreno/invitado/internal/remote"
	"github.com/dmoreno/invitado/internal/storage/sqlite"
	"github.com/dmoreno/invitado/internal/store"
	"github.com/dmoreno/invitado/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The TUI owns the terminal; keep log output away from it.
	logging.SetupWithLevel(slog.LevelError)
	cfg := config.Load()

	cache, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open local cache: %w", err)
	}
	defer cache.Close()

	var rc remote.Client
	if cfg.RemoteBaseURL != "" {
		rc = remote.NewHTTPClient(cfg.RemoteBaseURL, cfg.RemoteToken)
	} else {
		rc = remote.NewMemory()
	}

	st := store.New(cfg.EventID, cache, rc)
	dash := dashboard.New(st)

	p := tea.NewProgram(newModel(dash), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
