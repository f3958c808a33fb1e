package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMainnetWindow is the mainnet vote-window size: one week of blocks
// at one block per minute (7 * 24 * 60).
const DefaultMainnetWindow = 10080

// HardForkConfig is the construction-time configuration for a HardForkState
// cache, matching the "one struct per cache at construction time" rule of
// spec §6.
type HardForkConfig struct {
	// Network selects the activation table and threshold schedule.
	Network Network `yaml:"Network"`
	// Window is the number of trailing blocks whose votes are tallied.
	Window uint64 `yaml:"Window"`
}

// MainnetHardForkConfig returns the conventional mainnet configuration
// (Window = DefaultMainnetWindow).
func MainnetHardForkConfig() HardForkConfig {
	return HardForkConfig{Network: Mainnet, Window: DefaultMainnetWindow}
}

// Validate checks HardForkConfig for internal consistency, in the style of
// the teacher's ProtocolConfiguration.Validate: cheap structural checks
// that every other method in this package is allowed to assume passed.
func (c HardForkConfig) Validate() error {
	if !IsNetworkValid(c.Network) {
		return fmt.Errorf("unknown network: %v", c.Network)
	}
	if c.Window == 0 {
		return errors.New("Window must be non-zero")
	}
	if c.Network != Mainnet {
		return fmt.Errorf("network %v has no built-in hard-fork activation table; "+
			"supply one before enabling it (see HardForkSchedule)", c.Network)
	}
	return nil
}

// LoadHardForkConfig reads a YAML-encoded HardForkConfig from path. Only
// Network and Window are read; activation heights are not configurable
// through it, and the result is not validated.
func LoadHardForkConfig(path string) (*HardForkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hard-fork config: %w", err)
	}
	var cfg HardForkConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse hard-fork config: %w", err)
	}
	return &cfg, nil
}
