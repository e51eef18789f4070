package models

import (
	"strings"
	"time"
)

// Attendance is a guest's answer to the invitation. The stored strings are
// the Spanish values the remote documents already carry.
type Attendance string

const (
	AttendancePending  Attendance = "Pendiente"
	AttendanceConfirms Attendance = "Confirma"
	AttendanceDeclines Attendance = "Declina"
)

// Confirmed reports whether the guest accepted, tolerating the case and
// whitespace variations found in imported rows.
func (a Attendance) Confirmed() bool {
	return strings.EqualFold(strings.TrimSpace(string(a)), string(AttendanceConfirms))
}

// Declined reports whether the guest declined.
func (a Attendance) Declined() bool {
	return strings.EqualFold(strings.TrimSpace(string(a)), string(AttendanceDeclines))
}

// Guest is one invited party: identity, RSVP answer and party-size allotment.
type Guest struct {
	ID         string     `json:"id"`
	Name       string     `json:"guest"`
	Attendance Attendance `json:"attendance"`
	Adults     int        `json:"adults"`
	Kids       int        `json:"kids"`
	Allergies  string     `json:"allergies,omitempty"`
	Type       string     `json:"type,omitempty"` // invitation variant: "f" in person, "c" virtual
	Link       string     `json:"link,omitempty"`
	Active     bool       `json:"active"`
	Timestamp  time.Time  `json:"timestamp,omitempty"`
}
