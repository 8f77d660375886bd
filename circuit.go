package qforge

import "slices"

// GateOp is one step of a circuit: a gate and the qubits it acts on.
type GateOp struct {
	Gate   QuantumGate
	Qubits []uint32
}

func (op GateOp) cancels(prev GateOp) bool {
	return op.Gate.IsPauli() && op.Gate == prev.Gate && slices.Equal(op.Qubits, prev.Qubits)
}

/*
QuantumCircuit is an ordered gate sequence compiled against a fixed register
width. Every modelled gate is lossless, so the expected fidelity of any circuit
built from them is 1.0.
*/
type QuantumCircuit struct {
	ID               string
	QubitCount       uint32
	Operations       []GateOp
	Depth            uint32
	ExpectedFidelity float64
}

func NewQuantumCircuit(id string, qubitCount uint32) *QuantumCircuit {
	return &QuantumCircuit{
		ID:               id,
		QubitCount:       qubitCount,
		Operations:       make([]GateOp, 0),
		ExpectedFidelity: 1.0,
	}
}

// AddGate appends a validated gate and bumps the depth.
func (qc *QuantumCircuit) AddGate(gate QuantumGate, qubits []uint32) error {
	if err := validateGate("add_gate", gate, qubits, qc.QubitCount); err != nil {
		return err
	}

	qc.Operations = append(qc.Operations, GateOp{Gate: gate, Qubits: slices.Clone(qubits)})
	qc.Depth++
	qc.ExpectedFidelity = qc.circuitFidelity()

	return nil
}

func (qc *QuantumCircuit) circuitFidelity() float64 {
	return 1.0
}

/*
Execute applies the gates in order. The first gate the state rejects stops
execution; gates already applied stay applied.
*/
func (qc *QuantumCircuit) Execute(state *QuantumState) error {
	for _, op := range qc.Operations {
		if err := state.ApplyGate(op.Gate, op.Qubits); err != nil {
			return err
		}
	}
	return nil
}

/*
Optimize drops pairs of identical Pauli gates that sit directly next to each
other on the same qubits. It is a single left-to-right pass: a gate cancelled
away never participates in a later cancellation, and pairs separated by any
other operation are kept.
*/
func (qc *QuantumCircuit) Optimize() {
	optimized := make([]GateOp, 0, len(qc.Operations))

	var last *GateOp
	for i := range qc.Operations {
		op := qc.Operations[i]

		if last != nil {
			if op.cancels(*last) {
				last = nil
				continue
			}
			optimized = append(optimized, *last)
		}

		last = &op
	}

	if last != nil {
		optimized = append(optimized, *last)
	}

	qc.Operations = optimized
	qc.Depth = uint32(len(optimized))
}

// Clone copies the circuit and its operation list.
func (qc *QuantumCircuit) Clone() *QuantumCircuit {
	clone := *qc
	clone.Operations = make([]GateOp, len(qc.Operations))
	for i, op := range qc.Operations {
		clone.Operations[i] = GateOp{Gate: op.Gate, Qubits: slices.Clone(op.Qubits)}
	}
	return &clone
}
