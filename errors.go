package qforge

import (
	"errors"
	"fmt"
)

// ErrQuantumOperation matches every QuantumOperationError through errors.Is.
var ErrQuantumOperation = errors.New("quantum operation error")

// ErrorKind tags the failure condition carried by a QuantumOperationError.
type ErrorKind int

const (
	KindQubitOutOfRange ErrorKind = iota
	KindNotFound
	KindInsufficientQubits
	KindSameQubit
	KindCapacityExceeded
	KindArity
	KindCircuitDepth
	KindUnknownOperation
)

func (k ErrorKind) String() string {
	switch k {
	case KindQubitOutOfRange:
		return "qubit out of range"
	case KindNotFound:
		return "not found"
	case KindInsufficientQubits:
		return "insufficient qubits"
	case KindSameQubit:
		return "same qubit"
	case KindCapacityExceeded:
		return "capacity exceeded"
	case KindArity:
		return "wrong qubit count"
	case KindCircuitDepth:
		return "circuit depth exceeded"
	case KindUnknownOperation:
		return "unknown operation"
	default:
		return "unknown"
	}
}

/*
QuantumOperationError is the single error type returned by the engine.
It carries structured fields instead of free text so callers can react to
the exact condition: which operation failed, on which id, and which index
violated which bound.
*/
type QuantumOperationError struct {
	Op    string
	Kind  ErrorKind
	ID    string
	Index uint32
	Bound uint32
}

func (e *QuantumOperationError) Error() string {
	switch e.Kind {
	case KindQubitOutOfRange:
		return fmt.Sprintf("%s: qubit index %d out of range (bound %d)", e.Op, e.Index, e.Bound)
	case KindNotFound:
		return fmt.Sprintf("%s: %q not found", e.Op, e.ID)
	case KindInsufficientQubits:
		return fmt.Sprintf("%s: need at least %d qubits, have %d", e.Op, e.Bound, e.Index)
	case KindSameQubit:
		return fmt.Sprintf("%s: control and target are both qubit %d", e.Op, e.Index)
	case KindCapacityExceeded:
		return fmt.Sprintf("%s: requested qubits (%d) exceeds maximum (%d)", e.Op, e.Index, e.Bound)
	case KindArity:
		return fmt.Sprintf("%s: expected %d qubit indices, got %d", e.Op, e.Bound, e.Index)
	case KindCircuitDepth:
		return fmt.Sprintf("%s: circuit %q depth %d exceeds maximum (%d)", e.Op, e.ID, e.Index, e.Bound)
	case KindUnknownOperation:
		return fmt.Sprintf("%s: unsupported operation on %q", e.Op, e.ID)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *QuantumOperationError) Is(target error) bool {
	return target == ErrQuantumOperation
}

func outOfRange(op string, index, bound uint32) error {
	return &QuantumOperationError{Op: op, Kind: KindQubitOutOfRange, Index: index, Bound: bound}
}

func notFound(op, id string) error {
	return &QuantumOperationError{Op: op, Kind: KindNotFound, ID: id}
}

func unknownOperation(id string) error {
	return &QuantumOperationError{Op: "perform_operation", Kind: KindUnknownOperation, ID: id}
}

// IsKind reports whether err is a QuantumOperationError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var qerr *QuantumOperationError
	return errors.As(err, &qerr) && qerr.Kind == kind
}
