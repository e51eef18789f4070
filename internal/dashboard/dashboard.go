// Package dashboard implements the guest-list view: a read-through cached
// fetch of the guest collection with client-side filtering, multi-key
// sorting, fixed-size pagination, aggregate statistics and bulk CSV import.
//
// All view operations recompute from the full fetched set, so filtering and
// sorting are non-destructive and repeatable.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dmoreno/invitado/internal/models"
	"github.com/dmoreno/invitado/internal/storage"
)

// DefaultPageSize is the guest-table page size.
const DefaultPageSize = 10

// Sortable column keys.
const (
	SortByIndex      = "index"
	SortByTimestamp  = "timestamp"
	SortByName       = "guest"
	SortByAttendance = "attendance"
	SortByAdults     = "adults"
	SortByKids       = "kids"
)

// Service is the slice of the store the dashboard depends on.
type Service interface {
	GetGuests(ctx context.Context) ([]models.Guest, error)
	CachedGuests(ctx context.Context) ([]models.Guest, error)
	SaveGuest(ctx context.Context, g models.Guest) (string, error)
	DeleteGuest(ctx context.Context, id string) error
	ToggleGuestStatus(ctx context.Context, id string, active bool) error
}

// Dashboard holds the fetched guest set and the current view state.
type Dashboard struct {
	svc      Service
	log      *slog.Logger
	pageSize int

	all      []models.Guest
	index    map[string]int // guest id -> display row number (oldest = 1)
	filtered []models.Guest
	search   string
	sortKey  string
	sortAsc  bool
	page     int
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithPageSize overrides the page size.
func WithPageSize(n int) Option {
	return func(d *Dashboard) { d.pageSize = n }
}

// WithLogger overrides the dashboard's logger.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dashboard) { d.log = log }
}

// New creates an empty dashboard. The default view is newest first.
func New(svc Service, opts ...Option) *Dashboard {
	d := &Dashboard{
		svc:      svc,
		log:      slog.Default().With("component", "dashboard"),
		pageSize: DefaultPageSize,
		sortKey:  SortByTimestamp,
		sortAsc:  false,
		page:     1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// LoadCached populates the view from the local cache so the table renders
// before the remote store answers. Returns false when nothing was cached.
func (d *Dashboard) LoadCached(ctx context.Context) bool {
	guests, err := d.svc.CachedGuests(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotCached) {
			d.log.Warn("guest cache read failed", "error", err)
		}
		return false
	}
	d.setData(guests)
	return true
}

// Refresh fetches the authoritative guest collection. On failure the
// previously loaded rows stay in place and the error is surfaced.
func (d *Dashboard) Refresh(ctx context.Context) error {
	guests, err := d.svc.GetGuests(ctx)
	if err != nil {
		return fmt.Errorf("refresh guests: %w", err)
	}
	d.setData(guests)
	return nil
}

// Load renders from cache immediately (when possible) and then refreshes.
func (d *Dashboard) Load(ctx context.Context) error {
	d.LoadCached(ctx)
	return d.Refresh(ctx)
}

// setData installs a freshly fetched set and recomputes the view under the
// current filter and sort.
func (d *Dashboard) setData(guests []models.Guest) {
	d.all = guests
	d.index = make(map[string]int, len(guests))
	// Rows arrive newest first; number them so the oldest guest is 1.
	for i, g := range guests {
		d.index[g.ID] = len(guests) - i
	}
	d.applyFilter()
	d.applySort()
	d.page = 1
}

// Filter recomputes the visible set as a case-insensitive substring match on
// the guest display name, always against the full fetched set.
func (d *Dashboard) Filter(search string) {
	d.search = strings.ToLower(search)
	d.applyFilter()
	d.applySort()
	d.page = 1
}

func (d *Dashboard) applyFilter() {
	// Fresh slice every time: rows handed out by Filtered/Rows stay valid
	// after the next filter instead of being overwritten in place.
	filtered := make([]models.Guest, 0, len(d.all))
	for _, g := range d.all {
		if d.search == "" || strings.Contains(strings.ToLower(g.Name), d.search) {
			filtered = append(filtered, g)
		}
	}
	d.filtered = filtered
}

// Sort orders by key, toggling direction when the same key is re-selected
// and resetting to ascending otherwise.
func (d *Dashboard) Sort(key string) {
	if d.sortKey == key {
		d.sortAsc = !d.sortAsc
	} else {
		d.sortKey = key
		d.sortAsc = true
	}
	d.applySort()
}

// SortState returns the current sort key and direction.
func (d *Dashboard) SortState() (key string, asc bool) {
	return d.sortKey, d.sortAsc
}

func (d *Dashboard) applySort() {
	key, asc := d.sortKey, d.sortAsc
	sort.SliceStable(d.filtered, func(i, j int) bool {
		a, b := d.filtered[i], d.filtered[j]
		var less bool
		switch key {
		case SortByAdults:
			less = a.Adults < b.Adults
			if a.Adults == b.Adults {
				return false
			}
		case SortByKids:
			less = a.Kids < b.Kids
			if a.Kids == b.Kids {
				return false
			}
		case SortByIndex:
			ia, ib := d.index[a.ID], d.index[b.ID]
			less = ia < ib
			if ia == ib {
				return false
			}
		case SortByTimestamp:
			less = a.Timestamp.Before(b.Timestamp)
			if a.Timestamp.Equal(b.Timestamp) {
				return false
			}
		case SortByName:
			less = strings.ToLower(a.Name) < strings.ToLower(b.Name)
			if strings.EqualFold(a.Name, b.Name) {
				return false
			}
		case SortByAttendance:
			less = a.Attendance < b.Attendance
			if a.Attendance == b.Attendance {
				return false
			}
		default:
			return false
		}
		if asc {
			return less
		}
		return !less
	})
}

// Filtered returns the current filtered, sorted set.
func (d *Dashboard) Filtered() []models.Guest {
	return d.filtered
}

// RowNumber returns a guest's stable display number (oldest = 1).
func (d *Dashboard) RowNumber(id string) int {
	return d.index[id]
}

// ToggleActive flips a guest's active flag and reloads on success.
func (d *Dashboard) ToggleActive(ctx context.Context, id string) error {
	var current, found = false, false
	for _, g := range d.all {
		if g.ID == id {
			current, found = g.Active, true
			break
		}
	}
	if !found {
		return fmt.Errorf("guest %s not loaded", id)
	}
	if err := d.svc.ToggleGuestStatus(ctx, id, !current); err != nil {
		return err
	}
	return d.Refresh(ctx)
}

// Delete permanently removes a guest and reloads on success. Confirmation is
// the caller's responsibility; there is no undo.
func (d *Dashboard) Delete(ctx context.Context, id string) error {
	if err := d.svc.DeleteGuest(ctx, id); err != nil {
		return err
	}
	return d.Refresh(ctx)
}

// Guest returns a loaded guest by id, for pre-populating the edit form.
func (d *Dashboard) Guest(id string) (models.Guest, bool) {
	for _, g := range d.all {
		if g.ID == id {
			return g, true
		}
	}
	return models.Guest{}, false
}
