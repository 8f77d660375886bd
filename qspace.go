package qforge

import (
	"time"

	"github.com/google/uuid"
)

/*
QuantumSpace owns every state and circuit the core works with. Entries are
addressed by caller-chosen ids; storing under an id that is already taken
replaces the previous entry. Each state additionally carries a generated
handle, so two states that once shared an id remain distinguishable in logs.

QuantumSpace does no locking of its own; QuantumCore serialises access.
*/
type QuantumSpace struct {
	states   map[string]*QuantumState
	circuits map[string]*QuantumCircuit
	handles  map[uuid.UUID]string
}

func newQuantumSpace() *QuantumSpace {
	return &QuantumSpace{
		states:   make(map[string]*QuantumState),
		circuits: make(map[string]*QuantumCircuit),
		handles:  make(map[uuid.UUID]string),
	}
}

// StoreState inserts a state and reports whether it replaced an existing one.
func (qs *QuantumSpace) StoreState(state *QuantumState) bool {
	old, replaced := qs.states[state.ID]
	if replaced {
		delete(qs.handles, old.Handle)
	}

	qs.states[state.ID] = state
	qs.handles[state.Handle] = state.ID
	return replaced
}

func (qs *QuantumSpace) State(id string) (*QuantumState, bool) {
	state, ok := qs.states[id]
	return state, ok
}

// StateByHandle resolves a generated handle back to its state.
func (qs *QuantumSpace) StateByHandle(handle uuid.UUID) (*QuantumState, bool) {
	id, ok := qs.handles[handle]
	if !ok {
		return nil, false
	}
	return qs.State(id)
}

func (qs *QuantumSpace) StoreCircuit(circuit *QuantumCircuit) bool {
	_, replaced := qs.circuits[circuit.ID]
	qs.circuits[circuit.ID] = circuit
	return replaced
}

func (qs *QuantumSpace) Circuit(id string) (*QuantumCircuit, bool) {
	circuit, ok := qs.circuits[id]
	return circuit, ok
}

func (qs *QuantumSpace) StateCount() int   { return len(qs.states) }
func (qs *QuantumSpace) CircuitCount() int { return len(qs.circuits) }

// Fidelities returns the fidelity of every stored state, in no particular order.
func (qs *QuantumSpace) Fidelities() []float64 {
	out := make([]float64, 0, len(qs.states))
	for _, state := range qs.states {
		out = append(out, state.Fidelity)
	}
	return out
}

// Norms returns Σ amplitude² of every stored state, computed fresh.
func (qs *QuantumSpace) Norms() []float64 {
	out := make([]float64, 0, len(qs.states))
	for _, state := range qs.states {
		out = append(out, state.Norm())
	}
	return out
}

/*
cleanup removes every state whose age at now has reached maxAge and returns
how many were removed. Circuits are left alone.
*/
func (qs *QuantumSpace) cleanup(now time.Time, maxAge time.Duration) int {
	limit := int64(maxAge / time.Second)
	removed := 0

	for id, state := range qs.states {
		if now.Unix()-state.CreatedAt >= limit {
			delete(qs.states, id)
			delete(qs.handles, state.Handle)
			removed++
		}
	}

	return removed
}
