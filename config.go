package lumabeam

import (
	"errors"
	"fmt"
	"math"
)

// ProtocolConfig holds every tunable wire parameter. Zero-value
// ProtocolConfig is not valid; use DefaultProtocolConfig and override
// individual fields, or load one via internal/config from YAML.
type ProtocolConfig struct {
	UnitDurationMicros  int64      `yaml:"unit_duration_micros"`
	PreambleMarkUnits   int64      `yaml:"preamble_mark_units"`
	PreambleSpaceUnits  int64      `yaml:"preamble_space_units"`
	SymbolMarkUnits     int64      `yaml:"symbol_mark_units"`
	SeparatorUnits      int64      `yaml:"separator_units"`
	FrameGapUnits       int64      `yaml:"frame_gap_units"`
	PreambleColor       LightLevel `yaml:"preamble_color"`
	AllowedDriftFraction float64   `yaml:"allowed_drift_fraction"`
	MaxPayloadBytes     int        `yaml:"max_payload_bytes"`
	Magic               uint16     `yaml:"magic"`
	Ender               uint16     `yaml:"ender"`
	Version             uint8      `yaml:"version"`
}

// DefaultProtocolConfig returns the normative, interoperability-critical
// defaults from the wire format specification.
func DefaultProtocolConfig() ProtocolConfig {
	return ProtocolConfig{
		UnitDurationMicros:   600,
		PreambleMarkUnits:    16,
		PreambleSpaceUnits:   8,
		SymbolMarkUnits:      1,
		SeparatorUnits:       1,
		FrameGapUnits:        12,
		PreambleColor:        White,
		AllowedDriftFraction: 0.20,
		MaxPayloadBytes:      MaxPayload,
		Magic:                0xC39A,
		Ender:                0x51AA,
		Version:              1,
	}
}

var (
	ErrNonPositiveUnit   = errors.New("unit count must be strictly positive")
	ErrMaxPayloadOutOfRange = fmt.Errorf("max payload bytes must be in (0, %d]", MaxPayload)
)

// Validate reports the first invariant violation found, or nil if cfg is
// usable by an Encoder or Decoder. A failing Validate disables both
// encode and feed via the owner's validity flag.
func (c ProtocolConfig) Validate() error {
	unitFields := []struct {
		name  string
		units int64
	}{
		{"unit_duration_micros", c.UnitDurationMicros},
		{"preamble_mark_units", c.PreambleMarkUnits},
		{"preamble_space_units", c.PreambleSpaceUnits},
		{"symbol_mark_units", c.SymbolMarkUnits},
		{"separator_units", c.SeparatorUnits},
		{"frame_gap_units", c.FrameGapUnits},
	}
	for _, f := range unitFields {
		if f.units <= 0 {
			return fmt.Errorf("%s: %w", f.name, ErrNonPositiveUnit)
		}
	}
	if c.MaxPayloadBytes <= 0 || c.MaxPayloadBytes > MaxPayload {
		return ErrMaxPayloadOutOfRange
	}
	return nil
}

// Tolerance returns the integer unit-count tolerance for a comparison
// against expectedUnits: max(1, round(expectedUnits * max(driftFraction,
// 0.01))). Every unit-count comparison in the decoder goes through this.
func (c ProtocolConfig) Tolerance(expectedUnits int64) int64 {
	fraction := math.Max(c.AllowedDriftFraction, 0.01)
	raw := math.Round(float64(expectedUnits) * fraction)
	t := int64(raw)
	if t < 1 {
		t = 1
	}
	return t
}
