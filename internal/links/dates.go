package links

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the formats event dates arrive in: the long US-style
// string legacy configurations carry, and the picker output the settings
// screen writes. All are local, unzoned times.
var dateLayouts = []string{
	"January 2, 2006 15:04:05",
	"January 2, 2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

var spanishWeekdays = [...]string{
	"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado",
}

var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// ParseEventDate parses a configured date-time string.
func ParseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized event date %q", value)
}

// HeroDate formats the big header date: "VIERNES | 13 MARZO | 2026".
// An unparseable or empty date yields "".
func HeroDate(value string) string {
	t, err := ParseEventDate(value)
	if err != nil {
		return ""
	}
	weekday := strings.ToUpper(spanishWeekdays[t.Weekday()])
	month := strings.ToUpper(spanishMonths[t.Month()-1])
	return fmt.Sprintf("%s | %d %s | %d", weekday, t.Day(), month, t.Year())
}

// DisplayDate formats the detail date: "13 de Marzo, 2026" plus a second
// line with the 12-hour time, e.g. "7:30 PM".
func DisplayDate(value string) string {
	t, err := ParseEventDate(value)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d de %s, %d\n%s", t.Day(), spanishMonths[t.Month()-1], t.Year(), clock12(t))
}

// clock12 renders a 12-hour clock time with an upper-case AM/PM marker.
func clock12(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	marker := "AM"
	if t.Hour() >= 12 {
		marker = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), marker)
}
