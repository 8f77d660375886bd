package qforge

import (
	"maps"
	"slices"

	"github.com/theapemachine/errnie"
)

/*
CapabilityProvider reports what quantum backend, if any, sits behind the
engine. It is a strategy: the core asks it for availability and status and
records the answers, but simulation arithmetic never consults it, so swapping
in a real backend cannot change a single amplitude.

Implementations include:
  - SimulatedBackend: the default, reporting that no physical device exists
*/
type CapabilityProvider interface {
	// Detect looks for a physical backend and reports whether one is usable.
	Detect() bool

	// Status returns a snapshot of availability, capacity and error rates.
	Status() CapabilityStatus

	// ErrorRate returns the error rate of an operation class, 0 if unknown.
	ErrorRate(operation string) float64

	// SetErrorRate overrides the error rate of an operation class.
	SetErrorRate(operation string, rate float64)
}

// CapabilityStatus is a diagnostic snapshot of a CapabilityProvider.
type CapabilityStatus struct {
	Available    bool
	Architecture string
	Qubits       uint32
	Operations   []string
	ErrorRates   map[string]float64
}

// Map renders the snapshot for monitoring consumers.
func (cs CapabilityStatus) Map() map[string]any {
	rates := make(map[string]any, len(cs.ErrorRates))
	for op, rate := range cs.ErrorRates {
		rates[op] = rate
	}

	return map[string]any{
		"available":    cs.Available,
		"architecture": cs.Architecture,
		"qubits":       cs.Qubits,
		"operations":   slices.Clone(cs.Operations),
		"error_rates":  rates,
	}
}

const (
	simulationArchitecture = "Physics-Based Quantum Simulation"
	fallbackArchitecture   = "Perfect Fidelity Simulation"
	hardwareArchitecture   = "Quantum Hardware Detected"
)

/*
SimulatedBackend is the capability provider for deployments without quantum
hardware. Detection always comes back negative and every error rate is zero.
*/
type SimulatedBackend struct {
	available    bool
	architecture string
	qubits       uint32
	operations   []string
	errorRates   map[string]float64
}

func NewSimulatedBackend() *SimulatedBackend {
	return &SimulatedBackend{
		architecture: simulationArchitecture,
		qubits:       MaxRegisterQubits,
		operations:   []string{"h", "x", "y", "z", "cnot", "t", "s", "phase"},
		errorRates: map[string]float64{
			"single_qubit": 0.0,
			"two_qubit":    0.0,
			"measurement":  0.0,
		},
	}
}

func (sb *SimulatedBackend) Detect() bool {
	errnie.Info("scanning for quantum hardware")

	sb.available = sb.lookupDriver()
	if sb.available {
		sb.architecture = hardwareArchitecture
		errnie.Info("quantum hardware detected: %s", sb.architecture)
	} else {
		sb.architecture = fallbackArchitecture
		errnie.Info("no quantum hardware detected, using %s", sb.architecture)
	}

	return sb.available
}

// lookupDriver finds no driver; the simulated deployment has none.
func (sb *SimulatedBackend) lookupDriver() bool {
	return false
}

func (sb *SimulatedBackend) Status() CapabilityStatus {
	return CapabilityStatus{
		Available:    sb.available,
		Architecture: sb.architecture,
		Qubits:       sb.qubits,
		Operations:   slices.Clone(sb.operations),
		ErrorRates:   maps.Clone(sb.errorRates),
	}
}

func (sb *SimulatedBackend) ErrorRate(operation string) float64 {
	return sb.errorRates[operation]
}

func (sb *SimulatedBackend) SetErrorRate(operation string, rate float64) {
	sb.errorRates[operation] = rate
}
