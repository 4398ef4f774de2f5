package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/meditrack/internal/adapters/http/api"
	"github.com/okian/meditrack/internal/adapters/repository"
	service "github.com/okian/meditrack/internal/app"
	"github.com/okian/meditrack/internal/domain/model"
	"github.com/okian/meditrack/internal/domain/reminder"
	"github.com/okian/meditrack/internal/domain/types"
	"github.com/okian/meditrack/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// brokenDeps fails every mutation with a store-like error.
type brokenDeps struct{}

func (brokenDeps) Medicines(context.Context) []types.Medicine {
	return nil
}

func (brokenDeps) AddMedicine(context.Context, api.MedicineInput) (model.Medicine, error) {
	return model.Medicine{}, errors.New("disk on fire")
}

func (brokenDeps) DeleteMedicine(context.Context, string) error {
	return model.ErrNotStarted
}

func (brokenDeps) MarkTaken(context.Context, string) (model.Medicine, error) {
	return model.Medicine{}, errors.New("disk on fire")
}

func (brokenDeps) Stats(context.Context) types.Stats {
	return types.Stats{}
}

func (brokenDeps) Schedule(context.Context) []types.ScheduleEntry {
	return nil
}

func (brokenDeps) Chart(context.Context) []types.ChartDay {
	return nil
}

func (brokenDeps) DrainReminders(context.Context, int) []reminder.Reminder {
	return nil
}

func newMux(deps api.Dependencies, stats api.StatsProvider) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, stats).Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
	return out
}

func TestServer_Routes(t *testing.T) {
	Convey("Given an API over a started service at 08:00", t, func() {
		now := time.Date(2026, 10, 15, 8, 0, 0, 0, time.Local)
		svc := service.New(
			service.WithStore(repository.NewBlobStore(repository.NewMemoryKV())),
			service.WithClock(func() time.Time { return now }),
			service.WithoutTicker(),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		mux := newMux(svc, svc)

		Convey("The health endpoint serves metrics", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "meditrack_tracker_")
		})

		Convey("Stats start at zero with service details", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode(w)
			So(body["total_medicines"], ShouldEqual, float64(0))
			So(body["adherence_rate"], ShouldEqual, float64(0))
			So(body["service"].(map[string]any)["started"], ShouldEqual, true)
		})

		Convey("The adherence chart has a seeded week", func() {
			w := do(mux, http.MethodGet, "/adherence", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["days"], ShouldHaveLength, 7)
		})

		Convey("Adding with a bad body is rejected", func() {
			So(do(mux, http.MethodPost, "/medicines", "{").Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, http.MethodPost, "/medicines", "").Code, ShouldEqual, http.StatusBadRequest)

			w := do(mux, http.MethodPost, "/medicines", `{"name":"A","dosage":"1","time":"25:00"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["code"], ShouldEqual, "bad_request")
		})

		Convey("Unknown ids are not found", func() {
			So(do(mux, http.MethodDelete, "/medicines/nope", "").Code, ShouldEqual, http.StatusNotFound)
			w := do(mux, http.MethodPost, "/medicines/nope/taken", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decode(w)["code"], ShouldEqual, "not_found")
		})

		Convey("Wrong methods are refused", func() {
			So(do(mux, http.MethodPut, "/medicines", "").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("When a medicine is added", func() {
			w := do(mux, http.MethodPost, "/medicines",
				`{"name":"Aspirin","dosage":"100mg","time":"08:00","frequency":"twice","notes":"after food"}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			med := decode(w)["medicine"].(map[string]any)
			id := med["id"].(string)
			So(id, ShouldNotBeEmpty)

			Convey("Then it is listed with display fields", func() {
				list := decode(do(mux, http.MethodGet, "/medicines", ""))["medicines"].([]any)
				So(list, ShouldHaveLength, 1)
				item := list[0].(map[string]any)
				So(item["time_label"], ShouldEqual, "8:00 AM")
				So(item["frequency_label"], ShouldEqual, "Twice")
				So(item["doses_per_day"], ShouldEqual, float64(2))
			})

			Convey("Then the schedule shows both slots pending", func() {
				sched := decode(do(mux, http.MethodGet, "/schedule", ""))["schedule"].([]any)
				So(sched, ShouldHaveLength, 2)
				So(sched[0].(map[string]any)["status"], ShouldEqual, "pending")
				So(sched[1].(map[string]any)["time"], ShouldEqual, "16:00")
			})

			Convey("Then a reminder can be drained after a scan", func() {
				So(svc.CheckReminders(context.Background()), ShouldHaveLength, 1)
				body := decode(do(mux, http.MethodGet, "/reminders?limit=5", ""))
				rems := body["reminders"].([]any)
				So(rems, ShouldHaveLength, 1)
				So(rems[0].(map[string]any)["message"], ShouldEqual, "Time to take Aspirin - 100mg")
				So(rems[0].(map[string]any)["slot"], ShouldEqual, "08:00")
				So(decode(do(mux, http.MethodGet, "/reminders", ""))["reminders"], ShouldBeEmpty)
			})

			Convey("Then an invalid limit is rejected", func() {
				So(do(mux, http.MethodGet, "/reminders?limit=-1", "").Code, ShouldEqual, http.StatusBadRequest)
			})

			Convey("Then marking it taken updates the schedule and stats", func() {
				w := do(mux, http.MethodPost, "/medicines/"+id+"/taken", "")
				So(w.Code, ShouldEqual, http.StatusOK)
				events := decode(w)["medicine"].(map[string]any)["dose_events"].([]any)
				So(events, ShouldHaveLength, 1)

				sched := decode(do(mux, http.MethodGet, "/schedule", ""))["schedule"].([]any)
				So(sched[0].(map[string]any)["status"], ShouldEqual, "taken")
				So(sched[0].(map[string]any)["status_label"], ShouldEqual, "Taken")
				So(decode(do(mux, http.MethodGet, "/stats", ""))["adherence_rate"], ShouldEqual, float64(100))
			})

			Convey("Then deleting it empties the list", func() {
				So(do(mux, http.MethodDelete, "/medicines/"+id, "").Code, ShouldEqual, http.StatusNoContent)
				So(decode(do(mux, http.MethodGet, "/medicines", ""))["medicines"], ShouldBeEmpty)
			})
		})
	})
}

func TestServer_Errors(t *testing.T) {
	Convey("Given dependencies that fail", t, func() {
		mux := newMux(brokenDeps{}, nil)

		Convey("Store failures are internal errors", func() {
			w := do(mux, http.MethodPost, "/medicines", `{"name":"A","dosage":"1","time":"08:00"}`)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(decode(w)["code"], ShouldEqual, "internal")
		})

		Convey("A stopped service is unavailable", func() {
			So(do(mux, http.MethodDelete, "/medicines/x", "").Code, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("Stats omit service details without a provider", func() {
			body := decode(do(mux, http.MethodGet, "/stats", ""))
			_, ok := body["service"]
			So(ok, ShouldBeFalse)
		})

		Convey("Empty collections encode as arrays", func() {
			So(do(mux, http.MethodGet, "/reminders", "").Body.String(), ShouldContainSubstring, `"reminders":[]`)
		})
	})
}

func TestErrorHelpers(t *testing.T) {
	Convey("Given op-tagged errors", t, func() {
		cause := errors.New("boom")

		Convey("Wrap keeps the cause", func() {
			err := api.Wrap("api.op", cause)
			So(err.Error(), ShouldEqual, "api.op: boom")
			So(errors.Is(err, cause), ShouldBeTrue)
			So(api.Wrap("api.op", nil), ShouldBeNil)
		})

		Convey("WrapKind matches both kind and cause", func() {
			err := api.WrapKind("api.op", api.ErrBadRequest, cause)
			So(err.Error(), ShouldEqual, "api.op: bad request: boom")
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
		})

		Convey("NewKind has no cause", func() {
			err := api.NewKind("api.op", api.ErrEmptyBody)
			So(err.Error(), ShouldEqual, "api.op: empty request body")
			So(errors.Is(err, api.ErrEmptyBody), ShouldBeTrue)
		})
	})
}
