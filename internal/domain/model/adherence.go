package model

import "time"

// DateLayout is the calendar-day key used by dose events and the ledger.
const DateLayout = "2006-01-02"

// ClockLayout is the second-precision time recorded on dose events.
const ClockLayout = "15:04:05"

// MinuteLayout is the HH:MM form used by slots and reminder scans.
const MinuteLayout = "15:04"

// AdherenceDay aggregates taken and missed doses for one calendar day.
type AdherenceDay struct {
	Date   string `json:"date"`
	Taken  int    `json:"taken"`
	Missed int    `json:"missed"`
}

// ScheduleSlot is one expected dose today. Derived on every read, never stored.
type ScheduleSlot struct {
	Time     string
	Medicine Medicine
	Status   DoseStatus
}

// DateKey formats t as a ledger day key in t's location.
func DateKey(t time.Time) string { return t.Format(DateLayout) }

// MinuteKey formats t as HH:MM.
func MinuteKey(t time.Time) string { return t.Format(MinuteLayout) }
