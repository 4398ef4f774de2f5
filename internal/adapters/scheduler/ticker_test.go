package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/meditrack/internal/adapters/scheduler"
	"github.com/okian/meditrack/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestTicker(t *testing.T) {
	Convey("Given a ticker with a long interval", t, func() {
		var calls atomic.Int32
		tk := scheduler.New(func(context.Context) { calls.Add(1) },
			scheduler.WithInterval(time.Hour), scheduler.WithName("reminders"))

		So(tk.Interval(), ShouldEqual, time.Hour)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go tk.Run(ctx)

		Convey("the job runs once immediately", func() {
			deadline := time.Now().Add(2 * time.Second)
			for calls.Load() == 0 && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			So(calls.Load(), ShouldEqual, 1)

			Convey("and shutdown waits for the loop", func() {
				sctx, scancel := context.WithTimeout(context.Background(), time.Second)
				defer scancel()
				So(tk.Shutdown(sctx), ShouldBeNil)
				So(tk.Shutdown(sctx), ShouldBeNil)
			})
		})
	})

	Convey("Given a ticker with a short interval", t, func() {
		var calls atomic.Int32
		tk := scheduler.New(func(context.Context) { calls.Add(1) }, scheduler.WithInterval(10*time.Millisecond))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			tk.Run(ctx)
			close(done)
		}()

		Convey("the job repeats until the context is cancelled", func() {
			deadline := time.Now().Add(2 * time.Second)
			for calls.Load() < 3 && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			So(calls.Load(), ShouldBeGreaterThanOrEqualTo, 3)

			cancel()
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("ticker did not stop")
			}
		})
	})

	Convey("Non-positive intervals keep the default", t, func() {
		tk := scheduler.New(func(context.Context) {}, scheduler.WithInterval(0))
		So(tk.Interval(), ShouldEqual, time.Minute)
	})
}
