// Package dddgcfg holds the builder's tunable knobs, loaded from YAML the
// way the rest of the accelerator-simulator project configures its
// passes.
package dddgcfg

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultAddrMask is the pointer-width mask applied to address values
// when no override is configured, matching a 32-bit accelerator address
// space (the common case for the benchmark kernels this builder serves).
const DefaultAddrMask = 0xFFFFFFFF

// DefaultByteSize is the number of bits per byte used to convert
// bit-widths into byte counts (size / BYTE_SIZE in the original).
const DefaultByteSize = 8

// Config bundles every implementation-defined constant and mode switch
// the builder consults.
type Config struct {
	// AddrMask is AND-ed with every parsed address value.
	AddrMask uint64 `yaml:"addr_mask"`

	// ByteSize is bits-per-byte, used to turn a bit-width size field into
	// a byte count for memory access descriptors.
	ByteSize int `yaml:"byte_size"`

	// ReadyMode mirrors Datapath.isReadyMode(): when true, loads and
	// stores are assumed to issue as soon as data is available, which
	// disables the DMA-load bulk-overwrite edges of the result handler.
	ReadyMode bool `yaml:"ready_mode"`

	// MaxLineBytes bounds a single trace line; zero means unbounded. With a
	// positive value, a longer line makes the build fail with a read error
	// instead of being truncated, for callers that want to catch runaway
	// lines early.
	MaxLineBytes int `yaml:"max_line_bytes"`
}

// Default returns the configuration the builder uses when none is
// supplied explicitly.
func Default() Config {
	return Config{
		AddrMask: DefaultAddrMask,
		ByteSize: DefaultByteSize,
	}
}

// UnmarshalYAML fills in defaults for any field the document omits,
// applied at the decode boundary instead of in a separate constructor,
// so a partially-specified on-disk config still behaves sensibly.
func (c *Config) UnmarshalYAML(unmarshal func(any) error) error {
	type plain Config
	aux := plain(Default())
	if err := unmarshal(&aux); err != nil {
		return fmt.Errorf("dddgcfg: %w", err)
	}
	*c = Config(aux)
	return nil
}

// Load parses a YAML configuration document.
func Load(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("dddgcfg: parsing config: %w", err)
	}
	return cfg, nil
}
