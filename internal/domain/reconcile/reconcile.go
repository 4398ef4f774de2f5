// Package reconcile classifies today's dose slots against the dose log and
// records newly taken doses.
package reconcile

import (
	"sort"
	"time"

	"github.com/okian/meditrack/internal/domain/ledger"
	"github.com/okian/meditrack/internal/domain/model"
	"github.com/okian/meditrack/internal/domain/schedule"
)

// Today classifies each of m's slots for the day keyed by today, given the
// current minute now ("HH:MM").
//
// A slot is taken when a dose event on today matches it to the minute. An
// untaken slot is missed once it sorts before now, otherwise pending.
func Today(m model.Medicine, slots []string, today, now string) []model.ScheduleSlot {
	out := make([]model.ScheduleSlot, 0, len(slots))
	for _, slot := range slots {
		status := model.StatusPending
		switch {
		case m.HasTakenOn(today, slot):
			status = model.StatusTaken
		case slot < now:
			status = model.StatusMissed
		}
		out = append(out, model.ScheduleSlot{Time: slot, Medicine: m, Status: status})
	}
	return out
}

// Schedule reconciles every medicine's expanded slots and orders the result
// by slot time. Slots at the same time keep medicine order.
func Schedule(meds []model.Medicine, today, now string) []model.ScheduleSlot {
	var out []model.ScheduleSlot
	for i := range meds {
		out = append(out, Today(meds[i], schedule.Expand(meds[i]), today, now)...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// LogDose records m as taken at the given instant. It appends a dose event,
// stamps the last-taken date and counts the dose in the ledger, returning the
// updated ledger. Repeated calls for the same slot are all recorded.
func LogDose(m *model.Medicine, days []model.AdherenceDay, at time.Time) []model.AdherenceDay {
	date := model.DateKey(at)
	m.DoseEvents = append(m.DoseEvents, model.DoseEvent{
		Date:   date,
		Time:   at.Format(model.ClockLayout),
		Status: model.StatusTaken,
	})
	m.LastTakenDate = date
	return ledger.RecordEvent(days, date, model.StatusTaken)
}
