package qforge

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MaxRegisterQubits is the widest register the simulator will allocate.
const MaxRegisterQubits = 16

type Config struct {
	// MaxQubits bounds the register width of states and circuits.
	MaxQubits uint32
	// EnableHardware makes the core ask its capability provider to detect a backend.
	EnableHardware bool
	// FidelityThreshold is the level below which a state is reported as degraded.
	FidelityThreshold float64
	// EnableErrorCorrection is reported in system status.
	EnableErrorCorrection bool
	// MaxCircuitDepth caps how many gates a circuit may hold.
	MaxCircuitDepth uint32
	// StateMaxAge is the age CleanupExpired sweeps with.
	StateMaxAge time.Duration
}

func NewConfig() *Config {
	return &Config{
		MaxQubits:             4,
		EnableHardware:        true,
		FidelityThreshold:     1.0,
		EnableErrorCorrection: false,
		MaxCircuitDepth:       100,
		StateMaxAge:           300 * time.Second,
	}
}

// Validate rejects a MaxQubits the simulator cannot allocate.
func (c *Config) Validate() error {
	if c.MaxQubits > MaxRegisterQubits {
		return &QuantumOperationError{
			Op: "config", Kind: KindCapacityExceeded, Index: c.MaxQubits, Bound: MaxRegisterQubits,
		}
	}
	return nil
}

/*
LoadConfig reads the quantum.* keys from v, falling back to NewConfig's
defaults for anything unset.
*/
func LoadConfig(v *viper.Viper) *Config {
	defaults := NewConfig()

	v.SetDefault("quantum.max_qubits", defaults.MaxQubits)
	v.SetDefault("quantum.enable_hardware", defaults.EnableHardware)
	v.SetDefault("quantum.fidelity_threshold", defaults.FidelityThreshold)
	v.SetDefault("quantum.enable_error_correction", defaults.EnableErrorCorrection)
	v.SetDefault("quantum.max_circuit_depth", defaults.MaxCircuitDepth)
	v.SetDefault("quantum.state_max_age", defaults.StateMaxAge)

	return &Config{
		MaxQubits:             v.GetUint32("quantum.max_qubits"),
		EnableHardware:        v.GetBool("quantum.enable_hardware"),
		FidelityThreshold:     v.GetFloat64("quantum.fidelity_threshold"),
		EnableErrorCorrection: v.GetBool("quantum.enable_error_correction"),
		MaxCircuitDepth:       v.GetUint32("quantum.max_circuit_depth"),
		StateMaxAge:           v.GetDuration("quantum.state_max_age"),
	}
}

// NewConfigFromEnv loads the configuration from QFORGE_QUANTUM_* variables.
func NewConfigFromEnv() *Config {
	v := viper.New()
	v.SetEnvPrefix("qforge")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return LoadConfig(v)
}
