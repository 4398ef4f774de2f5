package schedule_test

import (
	"testing"

	"github.com/okian/meditrack/internal/domain/model"
	"github.com/okian/meditrack/internal/domain/schedule"
	. "github.com/smartystreets/goconvey/convey"
)

func med(at string, f model.Frequency) model.Medicine {
	return model.Medicine{ID: "m", Name: "n", Time: at, Frequency: f}
}

func TestExpand(t *testing.T) {
	Convey("Given medicines with each frequency", t, func() {
		Convey("When the frequency is daily", func() {
			Convey("Then there should be one slot at the base time", func() {
				So(schedule.Expand(med("08:30", model.FrequencyDaily)), ShouldResemble, []string{"08:30"})
			})
		})

		Convey("When the frequency is twice", func() {
			Convey("Then the second slot should be eight hours later", func() {
				So(schedule.Expand(med("08:30", model.FrequencyTwice)), ShouldResemble, []string{"08:30", "16:30"})
			})

			Convey("And it should wrap past midnight without re-sorting", func() {
				So(schedule.Expand(med("22:00", model.FrequencyTwice)), ShouldResemble, []string{"22:00", "06:00"})
			})
		})

		Convey("When the frequency is thrice", func() {
			Convey("Then the slots should be six and twelve hours later", func() {
				So(schedule.Expand(med("07:15", model.FrequencyThrice)), ShouldResemble, []string{"07:15", "13:15", "19:15"})
			})

			Convey("And late base times should wrap", func() {
				So(schedule.Expand(med("20:00", model.FrequencyThrice)), ShouldResemble, []string{"20:00", "02:00", "08:00"})
			})
		})

		Convey("When the frequency is unknown or empty", func() {
			Convey("Then there should be a single slot", func() {
				So(schedule.Expand(med("09:00", "weekly")), ShouldResemble, []string{"09:00"})
				So(schedule.Expand(med("09:00", "")), ShouldResemble, []string{"09:00"})
			})
		})

		Convey("When the base hour has one digit", func() {
			Convey("Then every slot should be zero padded", func() {
				So(schedule.Expand(med("6:30", model.FrequencyDaily)), ShouldResemble, []string{"06:30"})
				So(schedule.Expand(med("6:30", model.FrequencyTwice)), ShouldResemble, []string{"06:30", "14:30"})
				So(schedule.Expand(med("6:30", "weekly")), ShouldResemble, []string{"06:30"})
			})
		})

		Convey("When the base time is just after midnight", func() {
			Convey("Then the hour should stay 00", func() {
				So(schedule.Expand(med("00:15", model.FrequencyThrice)), ShouldResemble, []string{"00:15", "06:15", "12:15"})
			})
		})

		Convey("When the minutes are out of range", func() {
			Convey("Then they should pass through unchanged", func() {
				So(schedule.Expand(med("08:75", model.FrequencyTwice)), ShouldResemble, []string{"08:75", "16:75"})
			})
		})

		Convey("When the hour cannot be parsed", func() {
			Convey("Then only the base time should be returned", func() {
				So(schedule.Expand(med("xx:00", model.FrequencyThrice)), ShouldResemble, []string{"xx:00"})
			})
		})
	})
}

func TestDosesPerDay(t *testing.T) {
	Convey("Given a mix of medicines", t, func() {
		meds := []model.Medicine{
			med("08:00", model.FrequencyDaily),
			med("08:00", model.FrequencyTwice),
			med("08:00", model.FrequencyThrice),
			med("08:00", "weekly"),
		}

		Convey("Then each should count its own slots", func() {
			So(schedule.DosesPerDay(meds[0]), ShouldEqual, 1)
			So(schedule.DosesPerDay(meds[1]), ShouldEqual, 2)
			So(schedule.DosesPerDay(meds[2]), ShouldEqual, 3)
			So(schedule.DosesPerDay(meds[3]), ShouldEqual, 1)
		})

		Convey("And the total should not dedupe overlapping slots", func() {
			So(schedule.TotalDoses(meds), ShouldEqual, 7)
			So(schedule.TotalDoses(nil), ShouldEqual, 0)
		})
	})
}
