package qforge

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given a fresh metrics collector", t, func() {
		metrics := NewMetrics()

		Convey("When recording latencies of 1ms to 100ms", func() {
			for i := 1; i <= 100; i++ {
				metrics.recordOperation("teleport", time.Duration(i)*time.Millisecond)
			}

			Convey("It should track counts and percentiles", func() {
				So(metrics.Count("teleport"), ShouldEqual, 100)
				So(metrics.Count("other"), ShouldEqual, 0)
				So(metrics.TotalOperations, ShouldEqual, 100)
				So(metrics.AverageLatency, ShouldEqual, 50500*time.Microsecond)
				So(metrics.P95Latency, ShouldEqual, 96*time.Millisecond)
				So(metrics.P99Latency, ShouldEqual, 100*time.Millisecond)
			})
		})

		Convey("When recording more samples than the window holds", func() {
			for range 1001 {
				metrics.recordOperation("h", time.Millisecond)
			}

			Convey("The window should stay bounded", func() {
				So(metrics.latencyWindow, ShouldHaveLength, 1000)
				So(metrics.TotalOperations, ShouldEqual, 1001)
			})
		})

		Convey("When exporting", func() {
			metrics.recordOperation("cnot", time.Millisecond)
			metrics.recordMeasurements(3)

			exported := metrics.ExportMetrics()

			Convey("Every field should be present", func() {
				So(exported["total_operations"], ShouldEqual, int64(1))
				So(exported["total_measurements"], ShouldEqual, int64(3))
				So(exported["avg_latency_ns"], ShouldEqual, int64(time.Millisecond))
				So(exported["operation_counts"], ShouldResemble, map[string]any{"cnot": int64(1)})
				So(exported, ShouldContainKey, "p95_latency_ns")
				So(exported, ShouldContainKey, "p99_latency_ns")
			})
		})
	})
}
