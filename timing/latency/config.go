// Package latency holds the machine's structural and functional-unit
// timing parameters, loadable from JSON so an experiment can retune
// pipeline depths and queue sizes without a rebuild.
package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds every fixed-latency and fixed-capacity parameter the
// engine reads. Defaults match spec.md §2/§4: two-stage INT, three-stage
// MUL, single-cycle BRANCH, three-cycle MEM; ROB 12, IQ 8, LSQ 6,
// rename pool 24, 4 KiB data memory, 32 architectural registers.
type Config struct {
	// IntStages is the INT pipeline depth in cycles.
	IntStages uint64 `json:"int_stages"`

	// MulStages is the MUL pipeline depth in cycles.
	MulStages uint64 `json:"mul_stages"`

	// BranchStages is the BRANCH pipeline depth in cycles.
	BranchStages uint64 `json:"branch_stages"`

	// MemStages is the MEM pipeline depth in cycles; MEM holds at most
	// one instruction in flight regardless of depth.
	MemStages uint64 `json:"mem_stages"`

	// ROBSize is the reorder buffer's fixed capacity.
	ROBSize int `json:"rob_size"`

	// IQSize is the issue queue's fixed capacity.
	IQSize int `json:"iq_size"`

	// LSQSize is the load/store queue's fixed capacity.
	LSQSize int `json:"lsq_size"`

	// RenameTableSize is the number of physical tags in the free pool.
	RenameTableSize int `json:"rename_table_size"`

	// RegisterFileSize is the number of architectural integer registers.
	// It is validated but not read by the machine, whose register file
	// has the fixed size emu.RegisterFileSize.
	RegisterFileSize int `json:"register_file_size"`

	// DataMemorySize is the number of words in flat data memory. It is
	// validated but not read by the machine, whose data memory has the
	// fixed size emu.DataMemorySize.
	DataMemorySize int `json:"data_memory_size"`

	// CodeBase is the program-counter value of the first fetched
	// instruction.
	CodeBase int32 `json:"code_base"`

	// RetireWidth is the number of ROB entries committed per cycle.
	// spec.md §4.7/§9 specifies 1 as the baseline; a value > 1 opts
	// into the permitted aggressive-retirement variant.
	RetireWidth int `json:"retire_width"`
}

// DefaultConfig returns the spec-mandated baseline configuration.
func DefaultConfig() *Config {
	return &Config{
		IntStages:        2,
		MulStages:        3,
		BranchStages:     1,
		MemStages:        3,
		ROBSize:          12,
		IQSize:           8,
		LSQSize:          6,
		RenameTableSize:  24,
		RegisterFileSize: 32,
		DataMemorySize:   4096,
		CodeBase:         4000,
		RetireWidth:      1,
	}
}

// LoadConfig reads a Config from a JSON file, starting from
// DefaultConfig so an override file only needs to name the fields it
// changes.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read latency config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse latency config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes c to path as indented JSON.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize latency config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write latency config file: %w", err)
	}

	return nil
}

// Validate checks that every latency and capacity is usable.
func (c *Config) Validate() error {
	if c.IntStages == 0 {
		return fmt.Errorf("int_stages must be > 0")
	}
	if c.MulStages == 0 {
		return fmt.Errorf("mul_stages must be > 0")
	}
	if c.BranchStages == 0 {
		return fmt.Errorf("branch_stages must be > 0")
	}
	if c.MemStages == 0 {
		return fmt.Errorf("mem_stages must be > 0")
	}
	if c.ROBSize <= 0 {
		return fmt.Errorf("rob_size must be > 0")
	}
	if c.IQSize <= 0 {
		return fmt.Errorf("iq_size must be > 0")
	}
	if c.LSQSize <= 0 {
		return fmt.Errorf("lsq_size must be > 0")
	}
	if c.RenameTableSize <= 0 {
		return fmt.Errorf("rename_table_size must be > 0")
	}
	if c.RegisterFileSize <= 0 {
		return fmt.Errorf("register_file_size must be > 0")
	}
	if c.DataMemorySize <= 0 {
		return fmt.Errorf("data_memory_size must be > 0")
	}
	if c.RetireWidth <= 0 {
		return fmt.Errorf("retire_width must be > 0")
	}
	if c.RetireWidth > c.ROBSize {
		return fmt.Errorf("retire_width must be <= rob_size")
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
