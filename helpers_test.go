package qforge

import "math"

const epsilon = 1e-9

/*
scriptedSource replays fixed draws. The last value of each script repeats
once the script runs out, which keeps long-running tests deterministic.
*/
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	if len(s.floats) > 1 {
		s.floats = s.floats[1:]
	}
	return v
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	if len(s.ints) > 1 {
		s.ints = s.ints[1:]
	}
	return v % n
}

func seededSource(b byte) *QRNG {
	var seed [32]byte
	seed[0] = b
	return NewSeededQRNG(seed)
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func sameAmplitudes(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !closeTo(a[i], b[i]) {
			return false
		}
	}
	return true
}

// samePhasesModTwoPi compares phases up to whole turns.
func samePhasesModTwoPi(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(math.Remainder(a[i]-b[i], 2*math.Pi)) > epsilon {
			return false
		}
	}
	return true
}
