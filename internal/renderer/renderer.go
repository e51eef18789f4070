// Package renderer projects the configuration state onto the invitation
// page's fixed set of output slots. Project is pure: same state, same
// projection; the page template consumes the result, and slots the template
// omits are simply never read.
package renderer

import (
	"strings"

	"github.com/dmoreno/invitado/internal/links"
	"github.com/dmoreno/invitado/internal/models"
)

// Fallback texts: every slot has a default so the invitation never renders
// blank.
const (
	DefaultSubject        = "Nuestra Boda"
	DefaultRSVPTitle      = "Confirmar Asistencia"
	DefaultConfirmYes     = "Te esperamos"
	DefaultConfirmNo      = "¡Te extrañaremos!"
	DefaultDressCodeTitle = "Código de vestimenta"
	DefaultGiftsTitle     = "Regalos"
)

// TimelineItem is one rendered itinerary row.
type TimelineItem struct {
	Time     string
	Activity string
	Icon     string
	Color    string
}

// Projection is the full set of named output slots the page renders from.
type Projection struct {
	HostNames    string
	HeroDate     string
	DisplayDate  string
	Subject      string
	Message      string
	GuestWelcome string
	PhotoURL     string

	LocationPhysical string
	LocationVirtual  string
	CalendarURL      string

	RSVPTitle       string
	RSVPDescription string
	ShowAdults      bool
	ShowKids        bool
	ShowAllergies   bool

	ConfirmYesTitle       string
	ConfirmYesDescription string
	ConfirmNoTitle        string
	ConfirmNoDescription  string

	ShowLogistics        bool
	ShowDressCode        bool
	DressCodeTitle       string
	DressCodeDescription string
	DressCodeTip         string
	ShowGifts            bool
	GiftsTitle           string
	GiftsDescription     string
	ShowRegistryButton   bool
	RegistryURL          string
	ShowBankButton       bool
	BankDetails          string

	Timeline      []TimelineItem
	TimelineAlign string
	IconColor     string

	ShowCountdown bool
	DateValue     string
}

// Project computes the projection for the given state. The itinerary is
// rebuilt from scratch on every call, in array order.
func Project(cfg models.Config) *Projection {
	w := cfg.Wedding
	ui := cfg.UI

	iconColor := ui.IconColor
	if iconColor == "" {
		iconColor = "#80a040"
	}
	align := ui.TimelineAlign
	if align == "" {
		align = "center"
	}

	p := &Projection{
		HostNames:    w.Names,
		HeroDate:     links.HeroDate(w.Date),
		DisplayDate:  links.DisplayDate(w.Date),
		Subject:      fallback(w.Subject, DefaultSubject),
		Message:      w.Message,
		GuestWelcome: w.DemoGuestName,
		PhotoURL:     photoURL(w.Photo),

		LocationPhysical: w.Location.Physical,
		LocationVirtual:  w.Location.Virtual,
		CalendarURL:      links.CalendarURL(w),

		RSVPTitle:       fallback(w.RSVP.Title, DefaultRSVPTitle),
		RSVPDescription: w.RSVP.Description,
		ShowAdults:      models.Visible(w.RSVP.ShowAdults),
		ShowKids:        models.Visible(w.RSVP.ShowKids),
		ShowAllergies:   models.Visible(w.RSVP.ShowAllergies),

		ConfirmYesTitle:       fallback(w.Confirmation.Yes.Title, DefaultConfirmYes),
		ConfirmYesDescription: w.Confirmation.Yes.Description,
		ConfirmNoTitle:        fallback(w.Confirmation.No.Title, DefaultConfirmNo),
		ConfirmNoDescription:  w.Confirmation.No.Description,

		ShowDressCode:        models.Visible(w.DressCode.Show),
		DressCodeTitle:       fallback(w.DressCode.Title, DefaultDressCodeTitle),
		DressCodeDescription: w.DressCode.Description,
		DressCodeTip:         w.DressCode.Tip,
		ShowGifts:            models.Visible(w.Gifts.Show),
		GiftsTitle:           fallback(w.Gifts.Title, DefaultGiftsTitle),
		GiftsDescription:     w.Gifts.Description,
		ShowRegistryButton:   models.Visible(w.Gifts.RegistryButton.Show) && w.Gifts.RegistryButton.URL != "",
		RegistryURL:          w.Gifts.RegistryButton.URL,
		ShowBankButton:       models.Visible(w.Gifts.BankButton.Show) && w.Gifts.BankButton.Details != "",
		BankDetails:          w.Gifts.BankButton.Details,

		TimelineAlign: align,
		IconColor:     iconColor,

		ShowCountdown: models.Visible(ui.ShowCountdown),
		DateValue:     w.Date,
	}

	// The logistics section disappears only when both of its sub-sections
	// are hidden.
	p.ShowLogistics = p.ShowDressCode || p.ShowGifts

	p.Timeline = make([]TimelineItem, 0, len(cfg.Timeline))
	for _, entry := range cfg.Timeline {
		p.Timeline = append(p.Timeline, TimelineItem{
			Time:     entry.Time,
			Activity: entry.Activity,
			Icon:     entry.Icon,
			Color:    iconColor,
		})
	}

	return p
}

// photoURL drops placeholder values so the page falls back to its static
// backdrop instead of hot-linking a stub image.
func photoURL(photo string) string {
	if photo == "" || strings.Contains(photo, "placeholder") || strings.Contains(photo, "placehold.co") {
		return ""
	}
	return photo
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
