package qforge

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantumSpace(t *testing.T) {
	Convey("Given an empty space", t, func() {
		space := newQuantumSpace()
		epoch := time.Unix(1_000, 0)

		Convey("When storing a state twice under one id", func() {
			first := newQuantumStateAt("s", 1, epoch)
			second := newQuantumStateAt("s", 2, epoch)

			So(space.StoreState(first), ShouldBeFalse)
			So(space.StoreState(second), ShouldBeTrue)

			Convey("Only the newer state should be reachable", func() {
				So(space.StateCount(), ShouldEqual, 1)

				state, ok := space.State("s")
				So(ok, ShouldBeTrue)
				So(state, ShouldEqual, second)

				_, ok = space.StateByHandle(first.Handle)
				So(ok, ShouldBeFalse)

				byHandle, ok := space.StateByHandle(second.Handle)
				So(ok, ShouldBeTrue)
				So(byHandle, ShouldEqual, second)
			})
		})

		Convey("When sweeping by age", func() {
			space.StoreState(newQuantumStateAt("edge", 1, epoch))
			space.StoreState(newQuantumStateAt("young", 1, epoch.Add(time.Second)))
			space.StoreCircuit(NewQuantumCircuit("c", 1))

			removed := space.cleanup(epoch.Add(60*time.Second), 60*time.Second)

			Convey("States exactly maxAge old should go, circuits stay", func() {
				So(removed, ShouldEqual, 1)
				_, ok := space.State("edge")
				So(ok, ShouldBeFalse)
				_, ok = space.State("young")
				So(ok, ShouldBeTrue)
				So(space.CircuitCount(), ShouldEqual, 1)
			})
		})

		Convey("When reporting health", func() {
			space.StoreState(newQuantumStateAt("a", 1, epoch))
			space.StoreState(newQuantumStateAt("b", 2, epoch))

			So(space.Fidelities(), ShouldResemble, []float64{1, 1})
			So(space.Norms(), ShouldResemble, []float64{1, 1})
		})

		Convey("Unknown ids should report absence", func() {
			_, ok := space.State("ghost")
			So(ok, ShouldBeFalse)
			_, ok = space.Circuit("ghost")
			So(ok, ShouldBeFalse)
		})
	})
}
