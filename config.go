// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StoreConfig is the "store" section of the configuration file
type StoreConfig struct {
	Half            int     `yaml:"half"`
	CheckDataGap    bool    `yaml:"check_data_gap"`
	GapInterval     float64 `yaml:"gap_interval"`
	CheckInterval   bool    `yaml:"check_interval"`
	MaxInterval     float64 `yaml:"max_interval"`
	TrackProvenance bool    `yaml:"track_provenance"`
}

// RangeConfig is the "range" section of the configuration file
type RangeConfig struct {
	InitialTOF   float64 `yaml:"initial_tof"`
	TOFTolerance float64 `yaml:"tof_tolerance"`
	MaxIter      int     `yaml:"max_iter"`
	TransmitIter int     `yaml:"transmit_iter"`
}

// Config is the top-level structure of the configuration file
type Config struct {
	Store StoreConfig `yaml:"store"`
	Range RangeConfig `yaml:"range"`
}

// DefaultConfig returns the configuration equal to NewStoreOpt() and NewRangeOpt()
func DefaultConfig() *Config {
	so := NewStoreOpt()
	ro := NewRangeOpt()
	return &Config{
		Store: StoreConfig{
			Half:            so.Half,
			CheckDataGap:    so.CheckDataGap,
			GapInterval:     so.GapInterval,
			CheckInterval:   so.CheckInterval,
			MaxInterval:     so.MaxInterval,
			TrackProvenance: so.TrackProvenance,
		},
		Range: RangeConfig{
			InitialTOF:   ro.InitialTOF,
			TOFTolerance: ro.TOFTolerance,
			MaxIter:      ro.MaxIter,
			TransmitIter: ro.TransmitIter,
		},
	}
}

// ParseConfig reads YAML on top of the defaults; keys not given keep their default
func ParseConfig(b []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML configuration file
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(b)
}

func (c *Config) Validate() error {
	if c.Store.Half < 1 {
		return fmt.Errorf("check store.half (%d): must be >= 1", c.Store.Half)
	}
	if c.Store.CheckDataGap && c.Store.GapInterval <= 0 {
		return fmt.Errorf("check store.gap_interval (%g): must be > 0", c.Store.GapInterval)
	}
	if c.Store.CheckInterval && c.Store.MaxInterval <= 0 {
		return fmt.Errorf("check store.max_interval (%g): must be > 0", c.Store.MaxInterval)
	}
	if c.Range.MaxIter < 1 {
		return fmt.Errorf("check range.max_iter (%d): must be >= 1", c.Range.MaxIter)
	}
	if c.Range.TransmitIter < 1 {
		return fmt.Errorf("check range.transmit_iter (%d): must be >= 1", c.Range.TransmitIter)
	}
	if c.Range.TOFTolerance < 0 {
		return fmt.Errorf("check range.tof_tolerance (%g): must be >= 0", c.Range.TOFTolerance)
	}
	return nil
}

// StoreOpt builds the store options from the configuration
func (c *Config) StoreOpt() *StoreOpt {
	opt := NewStoreOpt()
	opt.Half = c.Store.Half
	opt.CheckDataGap = c.Store.CheckDataGap
	opt.GapInterval = c.Store.GapInterval
	opt.CheckInterval = c.Store.CheckInterval
	opt.MaxInterval = c.Store.MaxInterval
	opt.TrackProvenance = c.Store.TrackProvenance
	return opt
}

// RangeOpt builds the solver options from the configuration
func (c *Config) RangeOpt() *RangeOpt {
	opt := NewRangeOpt()
	opt.InitialTOF = c.Range.InitialTOF
	opt.TOFTolerance = c.Range.TOFTolerance
	opt.MaxIter = c.Range.MaxIter
	opt.TransmitIter = c.Range.TransmitIter
	return opt
}
