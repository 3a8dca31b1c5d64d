package linhash

import (
	"github.com/pkg/errors"
)

const (
	// DefaultCapacityBytes is the byte capacity of a single block.
	DefaultCapacityBytes = 1024
	// DefaultValueSize is the number of bytes accounted per stored value.
	DefaultValueSize = 4
	// DefaultThreshold is the density above which the next bucket is split.
	DefaultThreshold = 0.75
)

// Config holds the sizing parameters of a Table.
type Config struct {
	CapacityBytes int
	ValueSize     int
	Threshold     float64
}

// NewConfig returns a new config with default options applied.
func NewConfig() Config {
	return Config{
		CapacityBytes: DefaultCapacityBytes,
		ValueSize:     DefaultValueSize,
		Threshold:     DefaultThreshold,
	}
}

// Validate reports the first invalid field of cfg.
func (cfg Config) Validate() error {
	if cfg.CapacityBytes <= 0 {
		return errors.Errorf("invalid block capacity %d, must be positive", cfg.CapacityBytes)
	}
	if cfg.ValueSize <= 0 {
		return errors.Errorf("invalid value size %d, must be positive", cfg.ValueSize)
	}
	if cfg.CapacityBytes < cfg.ValueSize {
		return errors.Errorf("block capacity %d cannot hold a single value of %d bytes", cfg.CapacityBytes, cfg.ValueSize)
	}
	if !(cfg.Threshold > 0 && cfg.Threshold <= 1) {
		return errors.Errorf("invalid threshold %v, must be in (0, 1]", cfg.Threshold)
	}
	return nil
}

// ValuesPerBlock returns how many values fit into one block.
func (cfg Config) ValuesPerBlock() int {
	return cfg.CapacityBytes / cfg.ValueSize
}
