package reminder_test

import (
	"testing"

	"github.com/okian/meditrack/internal/domain/model"
	"github.com/okian/meditrack/internal/domain/reminder"
	. "github.com/smartystreets/goconvey/convey"
)

const today = "2026-10-15"

func TestScan(t *testing.T) {
	Convey("Given medicines with slots at various times", t, func() {
		meds := []model.Medicine{
			{ID: "a", Name: "Aspirin", Dosage: "100mg", Time: "08:00", Frequency: model.FrequencyDaily},
			{ID: "b", Name: "Ibuprofen", Dosage: "200mg", Time: "00:00", Frequency: model.FrequencyTwice},
			{ID: "c", Name: "Vitamin D", Dosage: "1 tab", Time: "09:00", Frequency: model.FrequencyDaily},
		}

		Convey("When scanning at 08:00", func() {
			got := reminder.Scan(meds, today, "08:00")

			Convey("Then both medicines with an 08:00 slot should fire", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0], ShouldResemble, reminder.Reminder{MedicineID: "a", Name: "Aspirin", Dosage: "100mg", Date: today, Slot: "08:00"})
				So(got[1].MedicineID, ShouldEqual, "b")
				So(got[0].Message(), ShouldEqual, "Time to take Aspirin - 100mg")
				So(got[0].Key(), ShouldEqual, "a|2026-10-15|08:00")
			})
		})

		Convey("When the slot was already taken today", func() {
			meds[0].DoseEvents = []model.DoseEvent{{Date: today, Time: "07:59:59", Status: model.StatusTaken}, {Date: today, Time: "08:00:30", Status: model.StatusTaken}}
			got := reminder.Scan(meds, today, "08:00")

			Convey("Then it should be suppressed", func() {
				So(got, ShouldHaveLength, 1)
				So(got[0].MedicineID, ShouldEqual, "b")
			})
		})

		Convey("When the slot was taken on another day", func() {
			meds[0].DoseEvents = []model.DoseEvent{{Date: "2026-10-14", Time: "08:00:30", Status: model.StatusTaken}}

			Convey("Then it should still fire", func() {
				So(reminder.Scan(meds, today, "08:00"), ShouldHaveLength, 2)
			})
		})

		Convey("When scanning a minute after the slot", func() {
			Convey("Then nothing should fire", func() {
				So(reminder.Scan(meds, today, "08:01"), ShouldBeEmpty)
			})
		})

		Convey("When scanning with no medicines", func() {
			Convey("Then nothing should fire", func() {
				So(reminder.Scan(nil, today, "08:00"), ShouldBeEmpty)
			})
		})
	})
}
