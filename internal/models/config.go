package models

// Config is the full event-describing state: who is getting married, how the
// page looks, where RSVPs go, and the day's itinerary. One Config exists per
// event; the store owns the canonical copy.
type Config struct {
	Wedding  Wedding         `json:"wedding"`
	UI       UI              `json:"ui"`
	API      API             `json:"api"`
	Timeline []TimelineEntry `json:"timeline,omitempty"`
}

// Wedding holds the event identity and invitation content.
type Wedding struct {
	Names         string       `json:"names,omitempty"`
	Subject       string       `json:"subject,omitempty"`
	Message       string       `json:"message,omitempty"`
	Date          string       `json:"date,omitempty"` // local, unzoned: "March 13, 2026 19:30:00" or "2006-01-02 15:04"
	Photo         string       `json:"photo,omitempty"`
	Location      Location     `json:"location"`
	DressCode     DressCode    `json:"dressCode"`
	Gifts         Gifts        `json:"gifts"`
	Gallery       Gallery      `json:"gallery"`
	RSVP          RSVPSection  `json:"rsvp"`
	Confirmation  Confirmation `json:"confirmation"`
	DemoGuestName string       `json:"demoGuestName,omitempty"`
}

// Location describes where the event happens.
type Location struct {
	Physical string `json:"physical,omitempty"`
	Virtual  string `json:"virtual,omitempty"`
}

// DressCode is the optional dress-code block. A nil Show means visible.
type DressCode struct {
	Show        *bool  `json:"show,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Tip         string `json:"tip,omitempty"`
}

// Gifts is the optional gifts block with its two action buttons.
type Gifts struct {
	Show           *bool          `json:"show,omitempty"`
	Title          string         `json:"title,omitempty"`
	Description    string         `json:"description,omitempty"`
	RegistryButton RegistryButton `json:"registryButton"`
	BankButton     BankButton     `json:"bankButton"`
}

// RegistryButton links to an external gift registry.
type RegistryButton struct {
	Show *bool  `json:"show,omitempty"`
	URL  string `json:"url,omitempty"`
}

// BankButton reveals bank transfer details.
type BankButton struct {
	Show    *bool  `json:"show,omitempty"`
	Details string `json:"details,omitempty"`
}

// Gallery labels the shared photo album section.
type Gallery struct {
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	UploadButton string `json:"uploadButton,omitempty"`
	AlbumButton  string `json:"albumButton,omitempty"`
}

// RSVPSection controls which inputs the public RSVP form shows.
type RSVPSection struct {
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	ShowAdults    *bool  `json:"showAdults,omitempty"`
	ShowKids      *bool  `json:"showKids,omitempty"`
	ShowAllergies *bool  `json:"showAllergies,omitempty"`
}

// Confirmation holds the post-submission screens for both answers.
type Confirmation struct {
	Yes ConfirmationScreen `json:"yes"`
	No  ConfirmationScreen `json:"no"`
}

// ConfirmationScreen is one post-submission screen.
type ConfirmationScreen struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// UI holds the presentation knobs.
type UI struct {
	PrimaryBlue   string       `json:"primaryBlue,omitempty"`
	PrimaryOlive  string       `json:"primaryOlive,omitempty"`
	IconColor     string       `json:"iconColor,omitempty"`
	FontPrimary   string       `json:"fontPrimary,omitempty"`
	FontScript    string       `json:"fontScript,omitempty"`
	ShowCountdown *bool        `json:"showCountdown,omitempty"`
	TimelineAlign string       `json:"timelineAlign,omitempty"`
	BgAnimation   BgAnimation  `json:"bgAnimation"`
	BaseURL       string       `json:"baseUrl,omitempty"`
	MusicVolume   float64      `json:"musicVolume,omitempty"`
}

// BgAnimation configures the decorative particle layer.
type BgAnimation struct {
	Enabled *bool   `json:"enabled,omitempty"`
	Type    string  `json:"type,omitempty"`
	Size    float64 `json:"size,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
	Color   string  `json:"color,omitempty"`
}

// API holds opaque integration endpoints.
type API struct {
	SheetWebhook string `json:"sheetWebhook,omitempty"`
}

// TimelineEntry is one itinerary row. Order is significant.
type TimelineEntry struct {
	Time     string `json:"time"` // "HH:MM"
	Activity string `json:"activity"`
	Icon     string `json:"icon"`
}

// Default returns the baseline configuration used before any saved state is
// loaded. Section structs are zero-valued but present, which the store relies
// on: wedding, ui and api are never absent once a store exists.
func Default() Config {
	return Config{
		UI: UI{
			IconColor:     "#80a040",
			FontPrimary:   "Montserrat",
			FontScript:    "Great Vibes",
			TimelineAlign: "center",
			MusicVolume:   0.2,
		},
	}
}

// Visible interprets an optional show flag: unset means shown.
func Visible(b *bool) bool {
	return b == nil || *b
}

// Bool is a convenience for building patches and test fixtures.
func Bool(v bool) *bool {
	return &v
}
