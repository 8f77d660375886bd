package qforge

// Operation is the closed set of protocol operations PerformOperation accepts.
type Operation interface {
	// Name identifies the operation in metrics and logs.
	Name() string
	isOperation()
}

/*
CreateEntanglement puts the first qubit in superposition and fans it out with
a CNOT to every other listed qubit. A single qubit only gets the Hadamard; an
empty list is rejected with KindInsufficientQubits.
*/
type CreateEntanglement struct {
	Qubits []uint32
}

// MeasureRandom measures the whole register once. Qubits are range-checked only.
type MeasureRandom struct {
	Qubits []uint32
}

// Teleport runs the teleportation gate sequence and classical correction in-process.
type Teleport struct {
	Source uint32
	Target uint32
}

// PrepareCommState flips every qubit whose encoding bit is 1.
type PrepareCommState struct {
	Encoding []byte
}

// CreateBellState entangles two specific qubits.
type CreateBellState struct {
	Qubit1 uint32
	Qubit2 uint32
}

// ErrorCorrection couples every data qubit to every ancilla and reads a syndrome.
type ErrorCorrection struct {
	DataQubits    []uint32
	AncillaQubits []uint32
}

func (CreateEntanglement) Name() string { return "create_entanglement" }
func (MeasureRandom) Name() string      { return "measure_random" }
func (Teleport) Name() string           { return "teleport" }
func (PrepareCommState) Name() string   { return "prepare_comm_state" }
func (CreateBellState) Name() string    { return "create_bell_state" }
func (ErrorCorrection) Name() string    { return "error_correction" }

func (CreateEntanglement) isOperation() {}
func (MeasureRandom) isOperation()      {}
func (Teleport) isOperation()           {}
func (PrepareCommState) isOperation()   {}
func (CreateBellState) isOperation()    {}
func (ErrorCorrection) isOperation()    {}

// AvailableOperations returns one example of every operation kind.
func AvailableOperations() []Operation {
	return []Operation{
		CreateEntanglement{Qubits: []uint32{0, 1}},
		MeasureRandom{Qubits: []uint32{0}},
		Teleport{Source: 0, Target: 1},
		PrepareCommState{Encoding: []byte{0, 1}},
		CreateBellState{Qubit1: 0, Qubit2: 1},
		ErrorCorrection{DataQubits: []uint32{0, 1}, AncillaQubits: []uint32{2, 3}},
	}
}

/*
resolveOperation turns pointer forms into values so dispatch only has to
know the value types. Nil, including a typed nil pointer, resolves to nil.
*/
func resolveOperation(op Operation) Operation {
	switch o := op.(type) {
	case *CreateEntanglement:
		if o != nil {
			return *o
		}
	case *MeasureRandom:
		if o != nil {
			return *o
		}
	case *Teleport:
		if o != nil {
			return *o
		}
	case *PrepareCommState:
		if o != nil {
			return *o
		}
	case *CreateBellState:
		if o != nil {
			return *o
		}
	case *ErrorCorrection:
		if o != nil {
			return *o
		}
	default:
		return op
	}
	return nil
}
