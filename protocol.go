package qforge

import (
	"time"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

/*
CreateCommState registers a fresh |0…0⟩ state under id. An existing state
with the same id is replaced without complaint.
*/
func (qc *QuantumCore) CreateCommState(id string, qubitCount uint32) (string, error) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	return qc.createCommState(id, qubitCount)
}

// NewCommState is CreateCommState with a generated, collision-free id.
func (qc *QuantumCore) NewCommState(qubitCount uint32) (string, error) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	return qc.createCommState(uuid.NewString(), qubitCount)
}

func (qc *QuantumCore) createCommState(id string, qubitCount uint32) (string, error) {
	defer qc.record("create_comm_state", time.Now())

	if err := qc.checkCapacity("create_comm_state", qubitCount); err != nil {
		return "", qc.reject(err)
	}

	state := newQuantumStateAt(id, qubitCount, qc.now())
	if qc.space.StoreState(state) {
		errnie.Debug("state %s replaced, new handle %s", id, state.Handle)
	}

	return id, nil
}

// CreateEntangledState turns qubits 0 and 1 of the state into a Bell pair.
func (qc *QuantumCore) CreateEntangledState(id string) error {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	defer qc.record("create_entangled_state", time.Now())

	state, err := qc.state("create_entangled_state", id)
	if err != nil {
		return qc.reject(err)
	}

	if state.QubitCount < 2 {
		return qc.reject(&QuantumOperationError{
			Op: "create_entangled_state", Kind: KindInsufficientQubits,
			ID: id, Index: state.QubitCount, Bound: 2,
		})
	}

	return qc.applySequence("create_entangled_state", state, []GateOp{
		{Gate: Hadamard, Qubits: []uint32{0}},
		{Gate: CNOT, Qubits: []uint32{0, 1}},
	})
}

/*
GenerateQuantumRandom re-prepares the state in uniform superposition, measures
it and returns at most bitCount bits. The result is never padded: a register
of n qubits yields at most n bits.
*/
func (qc *QuantumCore) GenerateQuantumRandom(id string, bitCount uint32) ([]byte, error) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	defer qc.record("generate_quantum_random", time.Now())

	state, err := qc.state("generate_quantum_random", id)
	if err != nil {
		return nil, qc.reject(err)
	}

	if err := state.CreateSuperposition(qc.rng); err != nil {
		return nil, err
	}

	bits, err := qc.measure(state, "random")
	if err != nil {
		return nil, err
	}

	return bits[:min(int(bitCount), len(bits))], nil
}

/*
PerformOperation runs one protocol operation against a registered state.
Operations may be passed as values or pointers; a nil operation is an error.
*/
func (qc *QuantumCore) PerformOperation(id string, op Operation) ([]byte, error) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if op = resolveOperation(op); op == nil {
		return nil, qc.reject(unknownOperation(id))
	}

	defer qc.record(op.Name(), time.Now())

	state, err := qc.state(op.Name(), id)
	if err != nil {
		return nil, qc.reject(err)
	}

	switch o := op.(type) {
	case CreateEntanglement:
		return qc.createEntanglement(state, o)
	case MeasureRandom:
		return qc.measureRandom(state, o)
	case Teleport:
		return qc.teleport(state, o)
	case PrepareCommState:
		return qc.prepareCommState(state, o)
	case CreateBellState:
		return qc.createBellState(state, o)
	case ErrorCorrection:
		return qc.errorCorrection(state, o)
	}

	return nil, qc.reject(unknownOperation(id))
}

func (qc *QuantumCore) createEntanglement(state *QuantumState, op CreateEntanglement) ([]byte, error) {
	if len(op.Qubits) == 0 {
		return nil, qc.reject(&QuantumOperationError{
			Op: op.Name(), Kind: KindInsufficientQubits, ID: state.ID, Bound: 1,
		})
	}

	seq := []GateOp{{Gate: Hadamard, Qubits: []uint32{op.Qubits[0]}}}
	for _, q := range op.Qubits[1:] {
		seq = append(seq, GateOp{Gate: CNOT, Qubits: []uint32{op.Qubits[0], q}})
	}

	if err := qc.applySequence(op.Name(), state, seq); err != nil {
		return nil, err
	}
	return []byte{1}, nil
}

func (qc *QuantumCore) measureRandom(state *QuantumState, op MeasureRandom) ([]byte, error) {
	for _, q := range op.Qubits {
		if q >= state.QubitCount {
			return nil, qc.reject(outOfRange(op.Name(), q, state.QubitCount))
		}
	}

	return qc.measure(state, "op-measure")
}

/*
teleport reproduces the teleportation circuit on one register. An auxiliary
qubit next to the source is entangled with it, source and target are rotated
into the Bell basis, the register is measured once, and the auxiliary qubit
receives the Z and X corrections the two leading outcome bits call for.
*/
func (qc *QuantumCore) teleport(state *QuantumState, op Teleport) ([]byte, error) {
	for _, q := range []uint32{op.Source, op.Target} {
		if q >= state.QubitCount {
			return nil, qc.reject(outOfRange(op.Name(), q, state.QubitCount))
		}
	}

	aux := min(state.QubitCount-1, op.Source+1)

	err := qc.applySequence(op.Name(), state, []GateOp{
		{Gate: Hadamard, Qubits: []uint32{aux}},
		{Gate: CNOT, Qubits: []uint32{aux, op.Source}},
		{Gate: CNOT, Qubits: []uint32{op.Source, op.Target}},
		{Gate: Hadamard, Qubits: []uint32{op.Source}},
	})
	if err != nil {
		return nil, err
	}

	bell, err := qc.measure(state, "teleport-bell")
	if err != nil {
		return nil, err
	}

	if len(bell) >= 2 {
		if bell[0] == 1 {
			if err := state.ApplyGate(PauliZ, []uint32{aux}); err != nil {
				return nil, err
			}
		}
		if bell[1] == 1 {
			if err := state.ApplyGate(PauliX, []uint32{aux}); err != nil {
				return nil, err
			}
		}
	}

	return bell, nil
}

func (qc *QuantumCore) prepareCommState(state *QuantumState, op PrepareCommState) ([]byte, error) {
	seq := make([]GateOp, 0, len(op.Encoding))
	for i, bit := range op.Encoding {
		if bit == 1 {
			seq = append(seq, GateOp{Gate: PauliX, Qubits: []uint32{uint32(i)}})
		}
	}

	if err := qc.applySequence(op.Name(), state, seq); err != nil {
		return nil, err
	}
	return append([]byte(nil), op.Encoding...), nil
}

func (qc *QuantumCore) createBellState(state *QuantumState, op CreateBellState) ([]byte, error) {
	err := qc.applySequence(op.Name(), state, []GateOp{
		{Gate: Hadamard, Qubits: []uint32{op.Qubit1}},
		{Gate: CNOT, Qubits: []uint32{op.Qubit1, op.Qubit2}},
	})
	if err != nil {
		return nil, err
	}
	return []byte{1}, nil
}

func (qc *QuantumCore) errorCorrection(state *QuantumState, op ErrorCorrection) ([]byte, error) {
	seq := make([]GateOp, 0, len(op.DataQubits)*len(op.AncillaQubits))
	for _, data := range op.DataQubits {
		for _, ancilla := range op.AncillaQubits {
			seq = append(seq, GateOp{Gate: CNOT, Qubits: []uint32{data, ancilla}})
		}
	}

	if err := qc.applySequence(op.Name(), state, seq); err != nil {
		return nil, err
	}

	return qc.measure(state, "error-correction")
}

/*
applySequence validates every gate against the state before applying any of
them, so a bad index anywhere in the sequence leaves the state untouched.
*/
func (qc *QuantumCore) applySequence(op string, state *QuantumState, seq []GateOp) error {
	for _, step := range seq {
		if err := validateGate(op, step.Gate, step.Qubits, state.QubitCount); err != nil {
			return qc.reject(err)
		}
	}

	for _, step := range seq {
		if err := state.ApplyGate(step.Gate, step.Qubits); err != nil {
			return err
		}
	}

	return nil
}

func (qc *QuantumCore) measure(state *QuantumState, prefix string) ([]byte, error) {
	bits, err := state.Measure(prefix+"-"+uuid.NewString(), qc.rng)
	if err != nil {
		return nil, err
	}

	qc.metrics.recordMeasurements(1)
	return bits, nil
}

// CreateCircuit registers an empty circuit. An existing id is replaced.
func (qc *QuantumCore) CreateCircuit(id string, qubitCount uint32) (string, error) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if err := qc.checkCapacity("create_circuit", qubitCount); err != nil {
		return "", qc.reject(err)
	}

	qc.space.StoreCircuit(NewQuantumCircuit(id, qubitCount))
	return id, nil
}

func (qc *QuantumCore) AddGateToCircuit(circuitID string, gate QuantumGate, qubits []uint32) error {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	circuit, err := qc.circuit("add_gate_to_circuit", circuitID)
	if err != nil {
		return qc.reject(err)
	}

	if limit := qc.config.MaxCircuitDepth; limit > 0 && circuit.Depth >= limit {
		return qc.reject(&QuantumOperationError{
			Op: "add_gate_to_circuit", Kind: KindCircuitDepth,
			ID: circuitID, Index: circuit.Depth + 1, Bound: limit,
		})
	}

	if err := circuit.AddGate(gate, qubits); err != nil {
		return qc.reject(err)
	}
	return nil
}

/*
ExecuteCircuit runs a circuit against a state. Both must exist. A gate the
state rejects stops execution with the earlier gates already applied.
*/
func (qc *QuantumCore) ExecuteCircuit(circuitID, stateID string) error {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	defer qc.record("execute_circuit", time.Now())

	circuit, err := qc.circuit("execute_circuit", circuitID)
	if err != nil {
		return qc.reject(err)
	}

	state, err := qc.state("execute_circuit", stateID)
	if err != nil {
		return qc.reject(err)
	}

	if err := circuit.Execute(state); err != nil {
		errnie.Debug("circuit %s aborted on %s:\n%s", circuitID, stateID, state.Dump())
		return qc.reject(err)
	}

	return nil
}

func (qc *QuantumCore) OptimizeCircuit(circuitID string) error {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	circuit, err := qc.circuit("optimize_circuit", circuitID)
	if err != nil {
		return qc.reject(err)
	}

	circuit.Optimize()
	return nil
}

// CircuitInfo returns a copy of a registered circuit.
func (qc *QuantumCore) CircuitInfo(id string) (*QuantumCircuit, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	circuit, ok := qc.space.Circuit(id)
	if !ok {
		return nil, false
	}
	return circuit.Clone(), true
}

// GetStateInfo returns a copy of a registered state.
func (qc *QuantumCore) GetStateInfo(id string) (*QuantumState, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	state, ok := qc.space.State(id)
	if !ok {
		return nil, false
	}
	return state.Clone(), true
}

/*
StateByHandle returns a copy of the state a generated handle belongs to. A
handle stops resolving once its id is reused or its state is cleaned up.
*/
func (qc *QuantumCore) StateByHandle(handle uuid.UUID) (*QuantumState, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	state, ok := qc.space.StateByHandle(handle)
	if !ok {
		return nil, false
	}
	return state.Clone(), true
}

/*
CleanupOldStates drops every state at least maxAge old and returns how many
went. Nothing calls it automatically.
*/
func (qc *QuantumCore) CleanupOldStates(maxAge time.Duration) int {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	removed := qc.space.cleanup(qc.now(), maxAge)
	if removed > 0 {
		errnie.Debug("cleaned up %d quantum states older than %v", removed, maxAge)
	}
	return removed
}

// CleanupExpired sweeps with the configured StateMaxAge.
func (qc *QuantumCore) CleanupExpired() int {
	return qc.CleanupOldStates(qc.config.StateMaxAge)
}
