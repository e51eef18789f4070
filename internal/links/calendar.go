package links

import (
	"net/url"
	"time"

	"github.com/dmoreno/invitado/internal/models"
)

// DefaultEventDuration is the assumed length of the celebration when
// building the calendar entry.
const DefaultEventDuration = 5 * time.Hour

const calendarBase = "https://www.google.com/calendar/render"

// compactUTC is the timestamp format the calendar template URL expects.
const compactUTC = "20060102T150405Z"

// CalendarURL builds the add-to-calendar template URL for the event: title,
// five-hour date range, physical location, and a details blob assembled from
// the message plus the virtual-meeting note when one is configured.
// An unparseable date yields "".
func CalendarURL(w models.Wedding) string {
	start, err := ParseEventDate(w.Date)
	if err != nil {
		return ""
	}
	end := start.Add(DefaultEventDuration)

	title := w.Subject
	if w.Names != "" {
		title = "💍 Boda " + w.Names
	}

	details := w.Message
	if w.Location.Virtual != "" {
		if details != "" {
			details += "\n\n"
		}
		details += "Enlace virtual: " + w.Location.Virtual
	}

	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", title)
	params.Set("dates", start.UTC().Format(compactUTC)+"/"+end.UTC().Format(compactUTC))
	params.Set("location", w.Location.Physical)
	params.Set("details", details)
	return calendarBase + "?" + params.Encode()
}
