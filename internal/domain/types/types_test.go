package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/meditrack/internal/domain/model"
	types "github.com/okian/meditrack/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewMedicine(t *testing.T) {
	Convey("Given a twice daily medicine taken yesterday", t, func() {
		today := time.Date(2026, 10, 15, 9, 0, 0, 0, time.Local)
		m := model.Medicine{
			ID: "m-1", Name: "Metformin", Dosage: "500mg", Time: "20:30",
			Frequency: model.FrequencyTwice, LastTakenDate: "2026-10-14",
		}

		v := types.NewMedicine(m, today)

		Convey("Then display fields are filled", func() {
			So(v.TimeLabel, ShouldEqual, "8:30 PM")
			So(v.FrequencyLabel, ShouldEqual, "Twice")
			So(v.LastTakenLabel, ShouldEqual, "Yesterday")
			So(v.DosesPerDay, ShouldEqual, 2)
		})

		Convey("Then the JSON is flat with an empty event list", func() {
			raw, err := json.Marshal(v)
			So(err, ShouldBeNil)
			var got map[string]any
			So(json.Unmarshal(raw, &got), ShouldBeNil)
			So(got["id"], ShouldEqual, "m-1")
			So(got["time_label"], ShouldEqual, "8:30 PM")
			So(got["dose_events"], ShouldResemble, []any{})
		})
	})

	Convey("Given a medicine never taken", t, func() {
		v := types.NewMedicine(model.Medicine{ID: "m-2", Name: "X", Time: "00:05", Frequency: "weekly"}, time.Now())

		Convey("Then it has no last-taken label and one dose", func() {
			So(v.LastTakenLabel, ShouldBeEmpty)
			So(v.TimeLabel, ShouldEqual, "12:05 AM")
			So(v.FrequencyLabel, ShouldEqual, "Weekly")
			So(v.DosesPerDay, ShouldEqual, 1)
		})
	})
}

func TestNewScheduleEntry(t *testing.T) {
	Convey("Given a missed slot", t, func() {
		e := types.NewScheduleEntry(model.ScheduleSlot{
			Time:     "08:00",
			Medicine: model.Medicine{ID: "m-1", Name: "Aspirin", Dosage: "100mg"},
			Status:   model.StatusMissed,
		})

		So(e.TimeLabel, ShouldEqual, "8:00 AM")
		So(e.StatusLabel, ShouldEqual, "Missed")
		So(e.MedicineID, ShouldEqual, "m-1")
	})
}

func TestNewChartDay(t *testing.T) {
	Convey("Given a ledger day", t, func() {
		d := types.NewChartDay(model.AdherenceDay{Date: "2026-03-02", Taken: 3, Missed: 1})

		So(d.Label, ShouldEqual, "Mar 2")
		So(d.Taken, ShouldEqual, 3)
		So(d.Missed, ShouldEqual, 1)
	})
}
