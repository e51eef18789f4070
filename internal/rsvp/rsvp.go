// Package rsvp handles public attendance submissions. A submission arrives
// through a personal invitation link; the link's allotment caps how many
// seats the guest can claim, and the answer merges into the existing guest
// record without touching administrator-owned fields.
package rsvp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/dmoreno/invitado/internal/links"
	"github.com/dmoreno/invitado/internal/metrics"
	"github.com/dmoreno/invitado/internal/models"
)

// Store is the slice of the configuration store the service writes through.
type Store interface {
	UpdateGuest(ctx context.Context, id string, fields map[string]any) error
}

// Submission is one guest's answer.
type Submission struct {
	GuestID   string `json:"id" validate:"required"`
	Attending bool   `json:"attending"`
	Adults    int    `json:"adults" validate:"gte=0"`
	Kids      int    `json:"kids" validate:"gte=0"`
	Allergies string `json:"allergies" validate:"max=500"`
}

// Result is what was actually recorded after clamping.
type Result struct {
	Attendance models.Attendance `json:"attendance"`
	Adults     int               `json:"adults"`
	Kids       int               `json:"kids"`
}

// Service validates and persists submissions.
type Service struct {
	store    Store
	validate *validator.Validate
	log      *slog.Logger
}

// New creates the RSVP service.
func New(store Store) *Service {
	return &Service{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      slog.Default().With("component", "rsvp"),
	}
}

// Submit records an answer. Requested seat counts above the invitation's
// allotment are clamped down, never rejected: the guest sees a saved
// confirmation for the capped party size.
func (s *Service) Submit(ctx context.Context, inv links.Invitation, sub Submission) (Result, error) {
	if err := s.validate.Struct(sub); err != nil {
		return Result{}, fmt.Errorf("invalid submission: %w", err)
	}
	if inv.ID != "" && sub.GuestID != inv.ID {
		return Result{}, fmt.Errorf("submission guest %q does not match invitation %q", sub.GuestID, inv.ID)
	}

	res := Result{
		Attendance: models.AttendanceDeclines,
		Adults:     clamp(sub.Adults, inv.Adults),
		Kids:       clamp(sub.Kids, inv.Kids),
	}
	answer := "no"
	if sub.Attending {
		res.Attendance = models.AttendanceConfirms
		answer = "yes"
		if res.Adults < 1 && inv.Adults >= 1 {
			// Attending with zero adults makes no sense; count the guest.
			res.Adults = 1
		}
	} else {
		res.Adults, res.Kids = 0, 0
	}

	allergies := sub.Allergies
	if allergies == "" {
		allergies = "N/A"
	}

	fields := map[string]any{
		"attendance": string(res.Attendance),
		"adults":     res.Adults,
		"kids":       res.Kids,
		"allergies":  allergies,
	}
	if err := s.store.UpdateGuest(ctx, sub.GuestID, fields); err != nil {
		return Result{}, fmt.Errorf("record rsvp for %s: %w", sub.GuestID, err)
	}

	metrics.RSVPSubmissions.WithLabelValues(answer).Inc()
	s.log.Info("rsvp recorded", "guest", sub.GuestID, "attendance", res.Attendance,
		"adults", res.Adults, "kids", res.Kids)
	return res, nil
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
