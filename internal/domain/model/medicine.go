// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Frequency is how many times a medicine is taken per day.
type Frequency string

// Known frequencies. Anything else is carried through as-is and expands to a
// single daily slot.
const (
	FrequencyDaily  Frequency = "daily"
	FrequencyTwice  Frequency = "twice"
	FrequencyThrice Frequency = "thrice"
)

// Known reports whether f is one of the recognised frequencies.
func (f Frequency) Known() bool {
	switch f {
	case FrequencyDaily, FrequencyTwice, FrequencyThrice:
		return true
	}
	return false
}

// DoseStatus classifies a dose event or a schedule slot.
type DoseStatus string

const (
	StatusTaken   DoseStatus = "taken"
	StatusMissed  DoseStatus = "missed"
	StatusPending DoseStatus = "pending"
)

// DoseEvent records a dose the user marked as taken.
// Missed doses are never stored; they are inferred from the clock.
type DoseEvent struct {
	Date   string     `json:"date"` // YYYY-MM-DD
	Time   string     `json:"time"` // HH:MM:SS
	Status DoseStatus `json:"status"`
}

// Medicine is a registered medicine and its dose history.
type Medicine struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Dosage        string      `json:"dosage"`
	Time          string      `json:"time"` // HH:MM, 24h
	Frequency     Frequency   `json:"frequency"`
	Notes         string      `json:"notes,omitempty"`
	LastTakenDate string      `json:"last_taken_date,omitempty"`
	DoseEvents    []DoseEvent `json:"dose_events"`
}

// Validate checks the fields every downstream computation relies on.
// Unknown frequencies are accepted.
func (m *Medicine) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return invalid("missing id")
	}
	if strings.TrimSpace(m.Name) == "" {
		return invalid("missing name")
	}
	if !ValidTime(m.Time) {
		return invalid("time must be HH:MM")
	}
	return nil
}

// ValidTime reports whether s looks like H:MM or HH:MM with an hour in 0-23.
func ValidTime(s string) bool {
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(h) < 1 || len(h) > 2 || len(m) != 2 {
		return false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	_, err = strconv.Atoi(m)
	return err == nil
}

// NormalizeTime zero-pads the hour of a valid time ("6:30" -> "06:30") so it
// compares chronologically with clock-derived keys. Invalid input is returned
// unchanged.
func NormalizeTime(s string) string {
	if !ValidTime(s) {
		return s
	}
	h, m, _ := strings.Cut(s, ":")
	hour, _ := strconv.Atoi(h)
	return fmt.Sprintf("%02d:%s", hour, m)
}

// HasTakenOn reports whether a dose event on date matches slot at minute
// precision.
func (m *Medicine) HasTakenOn(date, slot string) bool {
	for _, e := range m.DoseEvents {
		if e.Date == date && TruncateMinute(e.Time) == slot {
			return true
		}
	}
	return false
}

// TruncateMinute cuts a clock string down to HH:MM.
func TruncateMinute(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}
