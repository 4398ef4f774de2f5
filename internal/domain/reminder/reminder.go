// Package reminder detects which medicines are due at the current minute.
package reminder

import (
	"github.com/okian/meditrack/internal/domain/model"
	"github.com/okian/meditrack/internal/domain/schedule"
)

// Reminder asks the user to take a medicine for a specific slot.
type Reminder struct {
	MedicineID string `json:"medicine_id"`
	Name       string `json:"name"`
	Dosage     string `json:"dosage"`
	Date       string `json:"date"`
	Slot       string `json:"slot"`
}

// Key identifies the (medicine, day, slot) a reminder is for.
func (r Reminder) Key() string {
	return r.MedicineID + "|" + r.Date + "|" + r.Slot
}

// Message is the user-facing reminder text.
func (r Reminder) Message() string {
	return "Time to take " + r.Name + " - " + r.Dosage
}

// Scan returns one reminder per medicine that has a slot exactly equal to now
// ("HH:MM") which has not already been taken on today.
//
// Matching is by string equality, so a scan only catches a slot if it runs
// during that minute. Minutes that were not scanned are never revisited.
func Scan(meds []model.Medicine, today, now string) []Reminder {
	var out []Reminder
	for i := range meds {
		m := &meds[i]
		for _, slot := range schedule.Expand(*m) {
			if slot != now || m.HasTakenOn(today, slot) {
				continue
			}
			out = append(out, Reminder{
				MedicineID: m.ID,
				Name:       m.Name,
				Dosage:     m.Dosage,
				Date:       today,
				Slot:       slot,
			})
			break
		}
	}
	return out
}
