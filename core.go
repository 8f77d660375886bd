package qforge

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

/*
ProtocolAPI is the stateful surface: it works on registered per-state
amplitude arrays, and its measurements collapse real state. Crypto and
network layers derive key material through it.
*/
type ProtocolAPI interface {
	CreateCommState(id string, qubitCount uint32) (string, error)
	NewCommState(qubitCount uint32) (string, error)
	CreateEntangledState(id string) error
	GenerateQuantumRandom(id string, bitCount uint32) ([]byte, error)
	PerformOperation(id string, op Operation) ([]byte, error)
	CreateCircuit(id string, qubitCount uint32) (string, error)
	AddGateToCircuit(circuitID string, gate QuantumGate, qubits []uint32) error
	ExecuteCircuit(circuitID, stateID string) error
	OptimizeCircuit(circuitID string) error
	GetStateInfo(id string) (*QuantumState, bool)
	StateByHandle(handle uuid.UUID) (*QuantumState, bool)
	CleanupOldStates(maxAge time.Duration) int
}

/*
DiagnosticAPI is the synthetic surface used for throughput checks and
monitoring. Its Bell pairs and measurements never touch a registered state's
amplitudes, so its output carries no cryptographic meaning.
*/
type DiagnosticAPI interface {
	CreateBellPair(qubit1, qubit2 uint32) (BellPairResult, error)
	MeasureQubits(indices []uint32) ([]bool, error)
	HardwareStatus() map[string]any
	SystemStatus() map[string]any
}

var (
	_ ProtocolAPI   = (*QuantumCore)(nil)
	_ DiagnosticAPI = (*QuantumCore)(nil)
)

/*
QuantumCore owns every state and circuit, the shared random source and the
capability provider, and exposes them through ProtocolAPI and DiagnosticAPI.
All public methods take one mutex, so a core may be shared between
goroutines; the calls themselves never block on anything else.
*/
type QuantumCore struct {
	mu sync.Mutex

	config          *Config
	space           *QuantumSpace
	rng             RandomSource
	capability      CapabilityProvider
	hardwareEnabled bool
	metrics         *Metrics
	now             func() time.Time
}

// CoreOption configures a QuantumCore at construction.
type CoreOption func(*QuantumCore)

// WithRandomSource replaces the default entropy-seeded QRNG.
func WithRandomSource(rng RandomSource) CoreOption {
	return func(qc *QuantumCore) {
		qc.rng = rng
	}
}

// WithCapabilityProvider plugs in a backend other than the simulator.
func WithCapabilityProvider(provider CapabilityProvider) CoreOption {
	return func(qc *QuantumCore) {
		qc.capability = provider
	}
}

// WithClock overrides the time source used for state ages.
func WithClock(now func() time.Time) CoreOption {
	return func(qc *QuantumCore) {
		qc.now = now
	}
}

/*
NewQuantumCore builds a core. A nil config means NewConfig(); a config whose
MaxQubits exceeds MaxRegisterQubits is refused.
*/
func NewQuantumCore(config *Config, opts ...CoreOption) (*QuantumCore, error) {
	if config == nil {
		config = NewConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	qc := &QuantumCore{
		config:  config,
		space:   newQuantumSpace(),
		metrics: NewMetrics(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(qc)
	}

	if qc.rng == nil {
		qrng, err := NewQRNG(nil)
		if err != nil {
			return nil, err
		}
		qc.rng = qrng
	}

	if qc.capability == nil {
		qc.capability = NewSimulatedBackend()
	}

	if config.EnableHardware {
		qc.hardwareEnabled = qc.capability.Detect()
	}

	errnie.Info(
		"quantum core ready - max qubits %d, hardware %v",
		config.MaxQubits,
		qc.hardwareEnabled,
	)

	return qc, nil
}

// Metrics exposes the core's operation metrics.
func (qc *QuantumCore) Metrics() *Metrics {
	return qc.metrics
}

func (qc *QuantumCore) reject(err error) error {
	errnie.Warn("quantum operation rejected: %v", err)
	return err
}

func (qc *QuantumCore) record(operation string, start time.Time) {
	qc.metrics.recordOperation(operation, time.Since(start))
}

func (qc *QuantumCore) checkCapacity(op string, qubitCount uint32) error {
	if qubitCount > qc.config.MaxQubits {
		return &QuantumOperationError{
			Op: op, Kind: KindCapacityExceeded, Index: qubitCount, Bound: qc.config.MaxQubits,
		}
	}
	return nil
}

func (qc *QuantumCore) state(op, id string) (*QuantumState, error) {
	state, ok := qc.space.State(id)
	if !ok {
		return nil, notFound(op, id)
	}
	return state, nil
}

func (qc *QuantumCore) circuit(op, id string) (*QuantumCircuit, error) {
	circuit, ok := qc.space.Circuit(id)
	if !ok {
		return nil, notFound(op, id)
	}
	return circuit, nil
}
