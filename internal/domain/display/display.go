// Package display formats domain values for people.
package display

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/okian/meditrack/internal/domain/model"
)

const (
	noon      = 12
	shortDate = "Jan 2"
)

// Time12h renders "HH:MM" as "h:MM AM/PM". Minutes are copied verbatim.
// Values without a parsable hour are returned unchanged.
func Time12h(hhmm string) string {
	h, m, ok := strings.Cut(hhmm, ":")
	hour, err := strconv.Atoi(h)
	if !ok || err != nil {
		return hhmm
	}
	ampm := "AM"
	if hour >= noon {
		ampm = "PM"
	}
	hour12 := hour % noon
	if hour12 == 0 {
		hour12 = noon
	}
	return strconv.Itoa(hour12) + ":" + m + " " + ampm
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// RelativeDate renders a day key as "Today", "Yesterday" or "Jan 2" relative
// to today. Unparsable keys are returned unchanged.
func RelativeDate(dateKey string, today time.Time) string {
	d, err := time.ParseInLocation(model.DateLayout, dateKey, today.Location())
	if err != nil {
		return dateKey
	}
	switch dateKey {
	case model.DateKey(today):
		return "Today"
	case model.DateKey(today.AddDate(0, 0, -1)):
		return "Yesterday"
	}
	return d.Format(shortDate)
}

// ShortDate renders a day key as "Jan 2".
func ShortDate(dateKey string) string {
	d, err := time.Parse(model.DateLayout, dateKey)
	if err != nil {
		return dateKey
	}
	return d.Format(shortDate)
}
