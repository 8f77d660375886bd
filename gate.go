package qforge

import (
	"math"
)

// QuantumGate enumerates the unitary operations a state understands.
type QuantumGate int

const (
	Hadamard QuantumGate = iota
	PauliX
	PauliY
	PauliZ
	CNOT
	Phase
	TGate
	SGate
)

var gateNames = map[QuantumGate]string{
	Hadamard: "hadamard",
	PauliX:   "pauli_x",
	PauliY:   "pauli_y",
	PauliZ:   "pauli_z",
	CNOT:     "cnot",
	Phase:    "phase",
	TGate:    "t",
	SGate:    "s",
}

func (g QuantumGate) String() string {
	if name, ok := gateNames[g]; ok {
		return name
	}
	return "unknown"
}

// Arity is the number of qubit indices the gate consumes.
func (g QuantumGate) Arity() int {
	if g == CNOT {
		return 2
	}
	return 1
}

// IsPauli reports whether the gate is self-inverse X, Y or Z.
func (g QuantumGate) IsPauli() bool {
	return g == PauliX || g == PauliY || g == PauliZ
}

/*
validateGate checks a gate application against a register of qubitCount
qubits. It never mutates anything, so callers can validate whole operation
sequences before touching a state.
*/
func validateGate(op string, gate QuantumGate, qubits []uint32, qubitCount uint32) error {
	if len(qubits) < gate.Arity() {
		return &QuantumOperationError{
			Op: op, Kind: KindArity, Index: uint32(len(qubits)), Bound: uint32(gate.Arity()),
		}
	}

	for _, q := range qubits {
		if q >= qubitCount {
			return outOfRange(op, q, qubitCount)
		}
	}

	if gate == CNOT && qubits[0] == qubits[1] {
		return &QuantumOperationError{Op: op, Kind: KindSameQubit, Index: qubits[0]}
	}

	return nil
}

/*
applyHadamard spreads every amplitude over its pair (i, i^mask) with weight
1/√2, summing the incoming contributions. Both slots inherit the phase of the
index being visited, later indices overwriting earlier ones. The combination
is renormalised afterwards because the real-only model has no negative branch.
*/
func (qs *QuantumState) applyHadamard(qubit uint32) {
	mask := 1 << qubit
	invSqrt2 := 1.0 / math.Sqrt2

	amplitudes := make([]float64, len(qs.Amplitudes))
	phases := make([]float64, len(qs.Phases))

	for i := range qs.Amplitudes {
		flipped := i ^ mask
		amplitudes[i] += qs.Amplitudes[i] * invSqrt2
		amplitudes[flipped] += qs.Amplitudes[i] * invSqrt2

		phases[i] = qs.Phases[i]
		phases[flipped] = qs.Phases[i]
	}

	qs.Amplitudes = amplitudes
	qs.Phases = phases
	qs.normalize()
}

func (qs *QuantumState) applyPauliX(qubit uint32) {
	mask := 1 << qubit

	for i := range qs.Amplitudes {
		if j := i ^ mask; i < j {
			qs.Amplitudes[i], qs.Amplitudes[j] = qs.Amplitudes[j], qs.Amplitudes[i]
			qs.Phases[i], qs.Phases[j] = qs.Phases[j], qs.Phases[i]
		}
	}
}

// applyPauliY swaps like X and books +i on the slot moved into i, -i on j.
func (qs *QuantumState) applyPauliY(qubit uint32) {
	mask := 1 << qubit

	for i := range qs.Amplitudes {
		j := i ^ mask
		if i >= j {
			continue
		}

		amp, phase := qs.Amplitudes[i], qs.Phases[i]

		qs.Amplitudes[i] = qs.Amplitudes[j]
		qs.Phases[i] = qs.Phases[j] + math.Pi/2

		qs.Amplitudes[j] = amp
		qs.Phases[j] = phase - math.Pi/2
	}
}

func (qs *QuantumState) applyCNOT(control, target uint32) {
	controlMask := 1 << control
	targetMask := 1 << target

	for i := range qs.Amplitudes {
		if i&controlMask == 0 {
			continue
		}
		if j := i ^ targetMask; i < j {
			qs.Amplitudes[i], qs.Amplitudes[j] = qs.Amplitudes[j], qs.Amplitudes[i]
			qs.Phases[i], qs.Phases[j] = qs.Phases[j], qs.Phases[i]
		}
	}
}

// shiftPhase adds delta to the phase of every basis state with the qubit set.
func (qs *QuantumState) shiftPhase(qubit uint32, delta float64) {
	mask := 1 << qubit

	for i := range qs.Phases {
		if i&mask != 0 {
			qs.Phases[i] += delta
		}
	}
}
