// Package schedule expands a medicine's base time and frequency into the
// dose slots expected each day.
package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/meditrack/internal/domain/model"
)

const hoursPerDay = 24

// offsets lists the hour offsets from the base time for each frequency.
var offsets = map[model.Frequency][]int{ //nolint:gochecknoglobals // read-only lookup table
	model.FrequencyDaily:  {0},
	model.FrequencyTwice:  {0, 8},
	model.FrequencyThrice: {0, 6, 12},
}

// Expand returns the slot times for m in frequency order.
//
// Every slot, the base one included, has a two-digit hour so slots compare
// chronologically as strings. Offsets wrap past midnight (22:00 twice yields
// 22:00 and 06:00) and are not re-sorted. Minutes are copied verbatim, so a
// malformed "08:75" stays ":75". Unknown frequencies yield the base slot
// alone, and a base time whose hour cannot be parsed is returned unchanged.
func Expand(m model.Medicine) []string {
	offs, ok := offsets[m.Frequency]
	if !ok {
		offs = offsets[model.FrequencyDaily]
	}

	h, minutes, found := strings.Cut(m.Time, ":")
	hour, err := strconv.Atoi(h)
	if !found || err != nil || hour < 0 {
		return []string{m.Time}
	}

	slots := make([]string, 0, len(offs))
	for _, off := range offs {
		slots = append(slots, fmt.Sprintf("%02d:%s", (hour+off)%hoursPerDay, minutes))
	}
	return slots
}

// DosesPerDay is the number of slots Expand yields for m.
func DosesPerDay(m model.Medicine) int {
	return len(Expand(m))
}

// TotalDoses sums DosesPerDay over meds. Overlapping slots are counted once
// per medicine.
func TotalDoses(meds []model.Medicine) int {
	total := 0
	for i := range meds {
		total += DosesPerDay(meds[i])
	}
	return total
}
