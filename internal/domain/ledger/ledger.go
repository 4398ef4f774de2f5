// Package ledger maintains the rolling per-day adherence counters and the
// trailing adherence rate derived from them.
package ledger

import (
	"math"
	"time"

	"github.com/okian/meditrack/internal/domain/model"
)

// Window sizes.
const (
	// MaxDays bounds the ledger; older days are evicted from the front.
	MaxDays = 30
	// RateWindow is how many trailing days the adherence rate covers.
	RateWindow = 7
	// SeedDays is the number of zeroed days a fresh ledger starts with.
	SeedDays = 7

	percent = 100
)

// RecordEvent counts one dose with the given status against date and returns
// the updated ledger. Days are matched by exact key and never re-sorted; a new
// date is appended at the end. Statuses other than taken and missed only
// create the day.
func RecordEvent(days []model.AdherenceDay, date string, status model.DoseStatus) []model.AdherenceDay {
	found := false
	for i := range days {
		if days[i].Date != date {
			continue
		}
		switch status {
		case model.StatusTaken:
			days[i].Taken++
		case model.StatusMissed:
			days[i].Missed++
		}
		found = true
		break
	}

	if !found {
		day := model.AdherenceDay{Date: date}
		switch status {
		case model.StatusTaken:
			day.Taken = 1
		case model.StatusMissed:
			day.Missed = 1
		}
		days = append(days, day)
	}

	return Trim(days, MaxDays)
}

// Trim keeps the newest limit entries.
func Trim(days []model.AdherenceDay, limit int) []model.AdherenceDay {
	if limit < 0 || len(days) <= limit {
		return days
	}
	return days[len(days)-limit:]
}

// Window returns the last n days, or all of them when the ledger is shorter.
func Window(days []model.AdherenceDay, n int) []model.AdherenceDay {
	if n < 0 {
		n = 0
	}
	if len(days) <= n {
		return days
	}
	return days[len(days)-n:]
}

// Totals sums taken and missed over days.
func Totals(days []model.AdherenceDay) (taken, missed int) {
	for _, d := range days {
		taken += d.Taken
		missed += d.Missed
	}
	return taken, missed
}

// Rate is the percentage of doses taken over the trailing RateWindow days,
// rounded to the nearest integer. An empty window is 0.
func Rate(days []model.AdherenceDay) int {
	taken, missed := Totals(Window(days, RateWindow))
	expected := taken + missed
	if expected == 0 {
		return 0
	}
	return int(math.Round(float64(taken) * percent / float64(expected)))
}

// SeedTrailingWeek returns SeedDays zeroed entries ending on today's calendar
// day, oldest first.
func SeedTrailingWeek(today time.Time) []model.AdherenceDay {
	days := make([]model.AdherenceDay, 0, SeedDays)
	for i := SeedDays - 1; i >= 0; i-- {
		days = append(days, model.AdherenceDay{Date: model.DateKey(today.AddDate(0, 0, -i))})
	}
	return days
}
