package linhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1024, cfg.CapacityBytes)
	assert.Equal(t, 4, cfg.ValueSize)
	assert.Equal(t, 0.75, cfg.Threshold)
	assert.Equal(t, 256, cfg.ValuesPerBlock())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero capacity", Config{CapacityBytes: 0, ValueSize: 4, Threshold: 0.75}},
		{"negative capacity", Config{CapacityBytes: -8, ValueSize: 4, Threshold: 0.75}},
		{"zero value size", Config{CapacityBytes: 1024, ValueSize: 0, Threshold: 0.75}},
		{"capacity below value size", Config{CapacityBytes: 2, ValueSize: 4, Threshold: 0.75}},
		{"zero threshold", Config{CapacityBytes: 1024, ValueSize: 4, Threshold: 0}},
		{"threshold above one", Config{CapacityBytes: 1024, ValueSize: 4, Threshold: 1.5}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Error(t, test.cfg.Validate())

			_, err := New(test.cfg)
			assert.Error(t, err)
		})
	}
}
