package qforge

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCreateBellPair(t *testing.T) {
	Convey("Given a core with no states", t, func() {
		qc := newTestCore()

		Convey("A valid pair should report perfect fidelity", func() {
			result, err := qc.CreateBellPair(0, 1)

			So(err, ShouldBeNil)
			So(result.Qubit1, ShouldEqual, 0)
			So(result.Qubit2, ShouldEqual, 1)
			So(result.Fidelity, ShouldEqual, 1.0)
			So(result.EntanglementStrength, ShouldEqual, 0.95)
			So(result.CreationTime, ShouldBeGreaterThanOrEqualTo, 0)
			So(qc.Metrics().Count("hadamard"), ShouldEqual, 1)
			So(qc.Metrics().Count("cnot"), ShouldEqual, 1)
		})

		Convey("The same qubit twice should be refused", func() {
			_, err := qc.CreateBellPair(2, 2)
			So(IsKind(err, KindSameQubit), ShouldBeTrue)
		})

		Convey("Indices at MaxQubits should be refused", func() {
			_, err := qc.CreateBellPair(0, 4)
			So(IsKind(err, KindQubitOutOfRange), ShouldBeTrue)

			_, err = qc.CreateBellPair(4, 0)
			So(IsKind(err, KindQubitOutOfRange), ShouldBeTrue)
		})
	})

	Convey("Given a registered state", t, func() {
		qc := newTestCore()
		_, err := qc.CreateCommState("live", 2)
		So(err, ShouldBeNil)
		So(qc.CreateEntangledState("live"), ShouldBeNil)
		before, _ := qc.GetStateInfo("live")

		result, err := qc.CreateBellPair(0, 1)

		Convey("The pair should leave every amplitude alone", func() {
			So(err, ShouldBeNil)
			So(result.Fidelity, ShouldAlmostEqual, 1.0, epsilon)

			after, _ := qc.GetStateInfo("live")
			So(after.Amplitudes, ShouldResemble, before.Amplitudes)
			So(after.Phases, ShouldResemble, before.Phases)
			So(after.Measurements, ShouldBeEmpty)
		})
	})
}

func TestMeasureQubits(t *testing.T) {
	Convey("Given a core with scripted coin flips", t, func() {
		rng := &scriptedSource{ints: []int{100, 900, 499, 500}}
		qc := newTestCore(WithRandomSource(rng))

		Convey("Each index should get its own fair coin", func() {
			results, err := qc.MeasureQubits([]uint32{0, 1, 2, 3})

			So(err, ShouldBeNil)
			So(results, ShouldResemble, []bool{true, false, true, false})
			So(qc.Metrics().TotalMeasurements, ShouldEqual, 4)
		})

		Convey("An out-of-range index should fail before any draw", func() {
			_, err := qc.MeasureQubits([]uint32{0, 4})
			So(IsKind(err, KindQubitOutOfRange), ShouldBeTrue)

			results, err := qc.MeasureQubits([]uint32{0})
			So(err, ShouldBeNil)
			So(results, ShouldResemble, []bool{true})
		})

		Convey("No indices should give no results", func() {
			results, err := qc.MeasureQubits(nil)
			So(err, ShouldBeNil)
			So(results, ShouldBeEmpty)
		})
	})

	Convey("Given a registered state", t, func() {
		qc := newTestCore()
		_, err := qc.CreateCommState("live", 2)
		So(err, ShouldBeNil)

		_, err = qc.MeasureQubits([]uint32{0, 1})
		So(err, ShouldBeNil)

		Convey("The state should be untouched", func() {
			state, _ := qc.GetStateInfo("live")
			So(state.Amplitudes, ShouldResemble, []float64{1, 0, 0, 0})
			So(state.Measurements, ShouldBeEmpty)
		})
	})
}

func TestSystemStatus(t *testing.T) {
	Convey("Given a core with one state and one circuit", t, func() {
		qc := newTestCore()
		_, err := qc.CreateCommState("s", 2)
		So(err, ShouldBeNil)
		_, err = qc.CreateCircuit("c", 2)
		So(err, ShouldBeNil)

		status := qc.SystemStatus()

		Convey("It should report every monitoring field", func() {
			for _, key := range []string{
				"active_states", "max_qubits", "total_circuits", "average_fidelity",
				"states_below_threshold", "born_rule_measurements", "real_teleportation",
				"proper_phase_gates", "hardware_enabled", "enhanced_gates",
				"circuit_optimization", "error_correction", "hardware_interface", "metrics",
			} {
				So(status, ShouldContainKey, key)
			}
		})

		Convey("The values should reflect the core", func() {
			So(status["active_states"], ShouldEqual, 1)
			So(status["total_circuits"], ShouldEqual, 1)
			So(status["max_qubits"], ShouldEqual, uint32(4))
			So(status["average_fidelity"], ShouldAlmostEqual, 1.0, epsilon)
			So(status["states_below_threshold"], ShouldEqual, 0)
			So(status["hardware_enabled"], ShouldBeFalse)
			So(status["error_correction"], ShouldBeFalse)
			So(status["born_rule_measurements"], ShouldBeTrue)
		})
	})

	Convey("Given a core with no states", t, func() {
		qc := newTestCore()

		So(qc.SystemStatus()["average_fidelity"], ShouldEqual, 1.0)
	})
}

func TestHardwareStatus(t *testing.T) {
	Convey("Given a core on the simulated backend", t, func() {
		qc := newTestCore()
		status := qc.HardwareStatus()

		Convey("It should describe the fallback simulator", func() {
			So(status["available"], ShouldBeFalse)
			So(status["architecture"], ShouldEqual, "Perfect Fidelity Simulation")
			So(status["qubits"], ShouldEqual, uint32(16))
			So(status["operations"], ShouldResemble, []string{"h", "x", "y", "z", "cnot", "t", "s", "phase"})
			So(status["error_rates"], ShouldContainKey, "two_qubit")
		})
	})
}
