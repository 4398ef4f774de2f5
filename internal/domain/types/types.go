// Package types contains the read models returned by the service and API
package types

import (
	"time"

	"github.com/okian/meditrack/internal/domain/display"
	"github.com/okian/meditrack/internal/domain/model"
	"github.com/okian/meditrack/internal/domain/schedule"
)

// MedicineInput is what a user submits to register a medicine
type MedicineInput struct {
	Name      string          `json:"name"`
	Dosage    string          `json:"dosage"`
	Time      string          `json:"time"`
	Frequency model.Frequency `json:"frequency"`
	Notes     string          `json:"notes"`
}

// Medicine is a medicine with its display fields
type Medicine struct {
	model.Medicine
	TimeLabel      string `json:"time_label"`
	FrequencyLabel string `json:"frequency_label"`
	LastTakenLabel string `json:"last_taken_label,omitempty"`
	DosesPerDay    int    `json:"doses_per_day"`
}

// ScheduleEntry is one reconciled dose slot for today
type ScheduleEntry struct {
	Time        string           `json:"time"`
	TimeLabel   string           `json:"time_label"`
	MedicineID  string           `json:"medicine_id"`
	Name        string           `json:"name"`
	Dosage      string           `json:"dosage"`
	Status      model.DoseStatus `json:"status"`
	StatusLabel string           `json:"status_label"`
}

// Stats is the summary block shown above the schedule
type Stats struct {
	TotalMedicines int `json:"total_medicines"`
	TodayDoses     int `json:"today_doses"`
	AdherenceRate  int `json:"adherence_rate"`
}

// ChartDay is one bar of the adherence chart
type ChartDay struct {
	Date   string `json:"date"`
	Label  string `json:"label"`
	Taken  int    `json:"taken"`
	Missed int    `json:"missed"`
}

// NewMedicine decorates m for display relative to today.
func NewMedicine(m model.Medicine, today time.Time) Medicine {
	v := Medicine{
		Medicine:       m,
		TimeLabel:      display.Time12h(m.Time),
		FrequencyLabel: display.Capitalize(string(m.Frequency)),
		DosesPerDay:    schedule.DosesPerDay(m),
	}
	if m.LastTakenDate != "" {
		v.LastTakenLabel = display.RelativeDate(m.LastTakenDate, today)
	}
	if v.DoseEvents == nil {
		v.DoseEvents = []model.DoseEvent{}
	}
	return v
}

// NewScheduleEntry flattens a reconciled slot.
func NewScheduleEntry(s model.ScheduleSlot) ScheduleEntry {
	return ScheduleEntry{
		Time:        s.Time,
		TimeLabel:   display.Time12h(s.Time),
		MedicineID:  s.Medicine.ID,
		Name:        s.Medicine.Name,
		Dosage:      s.Medicine.Dosage,
		Status:      s.Status,
		StatusLabel: display.Capitalize(string(s.Status)),
	}
}

// NewChartDay labels a ledger day.
func NewChartDay(d model.AdherenceDay) ChartDay {
	return ChartDay{
		Date:   d.Date,
		Label:  display.ShortDate(d.Date),
		Taken:  d.Taken,
		Missed: d.Missed,
	}
}
