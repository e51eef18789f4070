// Package links builds and parses the shareable artifacts derived from the
// configuration: personal invitation URLs, the add-to-calendar URL and the
// localized date strings the invitation page displays.
package links

import (
	"crypto/rand"
	"net/url"
	"strconv"
)

// Query parameter names carried by an invitation URL. The public page reads
// these to personalize the greeting and cap the RSVP quantity inputs.
const (
	ParamName   = "n"  // guest display name
	ParamID     = "u"  // guest id
	ParamAdults = "ca" // allotted adults
	ParamKids   = "cc" // allotted kids
	ParamType   = "t"  // invitation variant
)

// Invitation identifies one invited party and its allotment.
type Invitation struct {
	Guest  string
	ID     string
	Adults int
	Kids   int
	Type   string // "f" in person, "c" virtual
}

// AdultOptions lists the selectable adult counts, 1 up to the allotment.
func (inv Invitation) AdultOptions() []int {
	opts := make([]int, 0, inv.Adults)
	for n := 1; n <= inv.Adults; n++ {
		opts = append(opts, n)
	}
	return opts
}

// KidOptions lists the selectable kid counts, 0 up to the allotment.
func (inv Invitation) KidOptions() []int {
	opts := make([]int, 0, inv.Kids+1)
	for n := 0; n <= inv.Kids; n++ {
		opts = append(opts, n)
	}
	return opts
}

// URL renders the shareable invitation link on top of the configured base URL.
func (inv Invitation) URL(base string) string {
	params := url.Values{}
	params.Set(ParamName, inv.Guest)
	params.Set(ParamID, inv.ID)
	params.Set(ParamAdults, strconv.Itoa(inv.Adults))
	params.Set(ParamKids, strconv.Itoa(inv.Kids))
	params.Set(ParamType, inv.Type)
	return base + "?" + params.Encode()
}

// ParseInvitation reads an invitation from request query parameters,
// defaulting the allotment the way the generator seeds new invitations
// (2 adults, 0 kids, in-person).
func ParseInvitation(values url.Values) Invitation {
	inv := Invitation{
		Guest:  values.Get(ParamName),
		ID:     values.Get(ParamID),
		Adults: 2,
		Kids:   0,
		Type:   "f",
	}
	if n, err := strconv.Atoi(values.Get(ParamAdults)); err == nil && n >= 0 {
		inv.Adults = n
	}
	if n, err := strconv.Atoi(values.Get(ParamKids)); err == nil && n >= 0 {
		inv.Kids = n
	}
	if t := values.Get(ParamType); t != "" {
		inv.Type = t
	}
	return inv
}

const tokenChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// TokenLength is the length of generated invitation ids.
const TokenLength = 4

// NewToken returns a short upper-case base-36 identifier, the id format the
// guest collection has always used.
func NewToken() string {
	buf := make([]byte, TokenLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// the id is not a secret, so a fixed fallback beats crashing.
		return "ZZZZ"
	}
	for i, b := range buf {
		buf[i] = tokenChars[int(b)%len(tokenChars)]
	}
	return string(buf)
}
