package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func medctl(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestMedctl(t *testing.T) {
	convey.Convey("Given a file store in a temp dir", t, func() {
		dir := t.TempDir()
		_ = os.Setenv("MEDITRACK_STORE_BACKEND", "file")
		_ = os.Setenv("MEDITRACK_DATA_DIR", dir)
		defer func() {
			_ = os.Unsetenv("MEDITRACK_STORE_BACKEND")
			_ = os.Unsetenv("MEDITRACK_DATA_DIR")
		}()

		convey.Convey("When no command is given", func() {
			code, _, stderr := medctl()
			convey.So(code, convey.ShouldEqual, exitUsage)
			convey.So(stderr, convey.ShouldContainSubstring, "usage: medctl")
		})

		convey.Convey("When the command is unknown", func() {
			code, _, stderr := medctl("dance")
			convey.So(code, convey.ShouldEqual, exitUsage)
			convey.So(stderr, convey.ShouldContainSubstring, `unknown command "dance"`)
		})

		convey.Convey("When a medicine is added", func() {
			code, stdout, _ := medctl("add", "-name", "Aspirin", "-dosage", "100mg", "-time", "08:00", "-frequency", "twice")
			convey.So(code, convey.ShouldEqual, exitOK)
			id := strings.TrimSpace(stdout)
			convey.So(id, convey.ShouldNotBeEmpty)

			convey.Convey("Then it is persisted in the data dir", func() {
				_, err := os.Stat(filepath.Join(dir, "medicines.json"))
				convey.So(err, convey.ShouldBeNil)
			})

			convey.Convey("Then it is listed", func() {
				code, stdout, _ := medctl("list")
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(stdout, convey.ShouldContainSubstring, "Aspirin")
				convey.So(stdout, convey.ShouldContainSubstring, "8:00 AM")
				convey.So(stdout, convey.ShouldContainSubstring, "Twice")
			})

			convey.Convey("Then the schedule has both slots", func() {
				code, stdout, _ := medctl("-json", "schedule")
				convey.So(code, convey.ShouldEqual, exitOK)
				var entries []map[string]any
				convey.So(json.Unmarshal([]byte(stdout), &entries), convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 2)
			})

			convey.Convey("Then taking it is reflected in stats", func() {
				code, stdout, _ := medctl("take", id)
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(stdout, convey.ShouldContainSubstring, "Aspirin marked as taken")

				code, stdout, _ = medctl("-json", "stats")
				convey.So(code, convey.ShouldEqual, exitOK)
				var stats map[string]any
				convey.So(json.Unmarshal([]byte(stdout), &stats), convey.ShouldBeNil)
				convey.So(stats["total_medicines"], convey.ShouldEqual, float64(1))
				convey.So(stats["today_doses"], convey.ShouldEqual, float64(2))
				convey.So(stats["adherence_rate"], convey.ShouldEqual, float64(100))
			})

			convey.Convey("Then deleting it leaves an empty list", func() {
				code, _, _ := medctl("delete", id)
				convey.So(code, convey.ShouldEqual, exitOK)

				_, stdout, _ := medctl("-json", "list")
				convey.So(strings.TrimSpace(stdout), convey.ShouldEqual, "[]")
			})

			convey.Convey("Then unknown ids fail", func() {
				code, _, stderr := medctl("take", "nope")
				convey.So(code, convey.ShouldEqual, exitError)
				convey.So(stderr, convey.ShouldContainSubstring, "medicine not found")
			})
		})

		convey.Convey("When add input is invalid", func() {
			code, _, stderr := medctl("add", "-name", "Aspirin", "-dosage", "1", "-time", "noon")
			convey.So(code, convey.ShouldEqual, exitError)
			convey.So(stderr, convey.ShouldContainSubstring, "invalid input")
		})

		convey.Convey("When take has no id", func() {
			code, _, stderr := medctl("take")
			convey.So(code, convey.ShouldEqual, exitUsage)
			convey.So(stderr, convey.ShouldContainSubstring, "medctl take <id>")
		})
	})
}
