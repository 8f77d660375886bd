package qforge

import (
	"maps"
	"math"
	"slices"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
)

/*
QuantumState is a multi-qubit register held as 2^n real amplitudes with a
parallel slice of phases. Phases are bookkeeping only: measurement
probabilities come from the amplitudes alone.

Fidelity is always Σ amplitude², recomputed after every mutation.
*/
type QuantumState struct {
	ID           string
	Handle       uuid.UUID
	QubitCount   uint32
	Amplitudes   []float64
	Phases       []float64
	Measurements map[string][]byte
	Fidelity     float64
	CreatedAt    int64
}

// fidelityTolerance absorbs rounding when comparing fidelities.
const fidelityTolerance = 1e-9

// NewQuantumState returns a register in the basis state |0…0⟩. qubitCount
// should not exceed MaxRegisterQubits.
func NewQuantumState(id string, qubitCount uint32) *QuantumState {
	return newQuantumStateAt(id, qubitCount, time.Now())
}

func newQuantumStateAt(id string, qubitCount uint32, now time.Time) *QuantumState {
	size := 1 << qubitCount
	amplitudes := make([]float64, size)
	amplitudes[0] = 1

	qs := &QuantumState{
		ID:           id,
		Handle:       uuid.New(),
		QubitCount:   qubitCount,
		Amplitudes:   amplitudes,
		Phases:       make([]float64, size),
		Measurements: make(map[string][]byte),
		CreatedAt:    now.Unix(),
	}
	qs.updateFidelity()
	return qs
}

/*
ApplyGate validates the qubit indices and then evolves the register. A failed
validation leaves amplitudes and phases exactly as they were.
*/
func (qs *QuantumState) ApplyGate(gate QuantumGate, qubits []uint32) error {
	if err := validateGate("apply_gate", gate, qubits, qs.QubitCount); err != nil {
		return err
	}

	switch gate {
	case Hadamard:
		qs.applyHadamard(qubits[0])
	case PauliX:
		qs.applyPauliX(qubits[0])
	case PauliY:
		qs.applyPauliY(qubits[0])
	case PauliZ, Phase:
		qs.shiftPhase(qubits[0], math.Pi)
	case TGate:
		qs.shiftPhase(qubits[0], math.Pi/4)
	case SGate:
		qs.shiftPhase(qubits[0], math.Pi/2)
	case CNOT:
		qs.applyCNOT(qubits[0], qubits[1])
	}

	qs.updateFidelity()
	return nil
}

// CreateSuperposition spreads the register uniformly and draws random phases.
func (qs *QuantumState) CreateSuperposition(rng RandomSource) error {
	amplitude := 1.0 / math.Sqrt(float64(len(qs.Amplitudes)))

	for i := range qs.Amplitudes {
		qs.Amplitudes[i] = amplitude
		qs.Phases[i] = float64(rng.IntN(1000)) * 2 * math.Pi / 1000
	}

	qs.normalize()
	qs.updateFidelity()
	return nil
}

/*
Measure samples one basis state by the Born rule and collapses onto it.

A single uniform draw u is compared against the running sum of amplitude²
in index order; the lowest index whose cumulative probability reaches u wins.
Should rounding leave every cumulative value below u, the outcome is index 0.
The result is the outcome index as a bit vector, most significant bit first,
and is cached under measurementID.
*/
func (qs *QuantumState) Measure(measurementID string, rng RandomSource) ([]byte, error) {
	r := rng.Float64()

	outcome := 0
	cumulative := 0.0
	for i, amplitude := range qs.Amplitudes {
		cumulative += amplitude * amplitude
		if r <= cumulative {
			outcome = i
			break
		}
	}

	clear(qs.Amplitudes)
	qs.Amplitudes[outcome] = 1
	clear(qs.Phases)

	bits := make([]byte, 0, qs.QubitCount)
	index := outcome
	for range qs.QubitCount {
		bits = append(bits, byte(index&1))
		index >>= 1
	}
	for i, j := 0, len(bits)-1; i < j; i, j = i+1, j-1 {
		bits[i], bits[j] = bits[j], bits[i]
	}

	qs.Measurements[measurementID] = bits
	qs.updateFidelity()

	return append([]byte(nil), bits...), nil
}

// Measurement returns a cached outcome.
func (qs *QuantumState) Measurement(measurementID string) ([]byte, bool) {
	bits, ok := qs.Measurements[measurementID]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), bits...), true
}

// Norm is Σ amplitude².
func (qs *QuantumState) Norm() float64 {
	return floats.Dot(qs.Amplitudes, qs.Amplitudes)
}

// Clone deep-copies the state so it can leave the core safely.
func (qs *QuantumState) Clone() *QuantumState {
	measurements := make(map[string][]byte, len(qs.Measurements))
	for id, bits := range qs.Measurements {
		measurements[id] = append([]byte(nil), bits...)
	}

	clone := *qs
	clone.Amplitudes = append([]float64(nil), qs.Amplitudes...)
	clone.Phases = append([]float64(nil), qs.Phases...)
	clone.Measurements = measurements
	return &clone
}

// Dump renders the state for debug logging.
func (qs *QuantumState) Dump() string {
	return spew.Sdump(struct {
		ID           string
		QubitCount   uint32
		Amplitudes   []float64
		Phases       []float64
		Fidelity     float64
		Measurements []string
	}{
		ID:           qs.ID,
		QubitCount:   qs.QubitCount,
		Amplitudes:   qs.Amplitudes,
		Phases:       qs.Phases,
		Fidelity:     qs.Fidelity,
		Measurements: sortedKeys(qs.Measurements),
	})
}

func (qs *QuantumState) normalize() {
	if norm := qs.Norm(); norm > 0 {
		floats.Scale(1/math.Sqrt(norm), qs.Amplitudes)
	}
}

func (qs *QuantumState) updateFidelity() {
	qs.Fidelity = qs.Norm()
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
