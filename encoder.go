package lumabeam

import "github.com/kpavlenko/lumabeam/internal/buffer"

// Encoder serializes a payload into a framed, CRC-protected byte sequence
// and then into the SignalChange pulse train that represents it on the
// wire: a preamble, one mark+separator pair per 2-bit symbol MSB-pair
// first, and a trailing inter-frame gap.
type Encoder struct {
	config ProtocolConfig
	valid  bool
}

// NewEncoder constructs an Encoder from cfg. If cfg is invalid, the
// Encoder is still returned but Valid reports false and Encode always
// fails until Configure is called with a valid config.
func NewEncoder(cfg ProtocolConfig) *Encoder {
	e := &Encoder{}
	e.Configure(cfg)
	return e
}

// Valid reports whether the Encoder's current configuration is usable.
func (e *Encoder) Valid() bool {
	return e.valid
}

// Config returns the Encoder's current configuration.
func (e *Encoder) Config() ProtocolConfig {
	return e.config
}

// Configure replaces the Encoder's configuration, revalidating it. It
// returns the new validity.
func (e *Encoder) Configure(cfg ProtocolConfig) bool {
	e.config = cfg
	e.valid = cfg.Validate() == nil
	return e.valid
}

// Encode serializes payload into a freshly allocated SignalChange
// sequence. ok is false if the Encoder is misconfigured or payload
// exceeds the configured (or absolute) payload cap; in that case the
// returned slice is nil.
func (e *Encoder) Encode(payload []byte) (changes []SignalChange, ok bool) {
	if !e.valid || len(payload) > e.config.MaxPayloadBytes || len(payload) > MaxPayload {
		return nil, false
	}

	out := buffer.NewBounded[SignalChange](MaxSignalChanges)
	if !e.emitInto(payload, out) {
		return nil, false
	}

	result := make([]SignalChange, out.Len())
	copy(result, out.Slice())
	return result, true
}

// EncodeInto serializes payload into a caller-owned bounded buffer,
// avoiding an allocation per call (the fixed-capacity encoder variant;
// see DESIGN.md). On failure — misconfiguration, an oversized payload, or
// buffer overflow — out is reset so no partial frame is ever surfaced.
func (e *Encoder) EncodeInto(payload []byte, out *buffer.Bounded[SignalChange]) bool {
	if !e.valid || len(payload) > e.config.MaxPayloadBytes || len(payload) > MaxPayload {
		out.Reset()
		return false
	}
	if !e.emitInto(payload, out) {
		out.Reset()
		return false
	}
	return true
}

func (e *Encoder) emitInto(payload []byte, out *buffer.Bounded[SignalChange]) bool {
	frameBytes := serializeFrame(e.config, payload)

	emit := func(level LightLevel, units int64) bool {
		return out.Push(SignalChange{Level: level, Duration: units * e.config.UnitDurationMicros})
	}

	if !emit(e.config.PreambleColor, e.config.PreambleMarkUnits) {
		return false
	}
	if !emit(Off, e.config.PreambleSpaceUnits) {
		return false
	}

	for _, b := range frameBytes {
		for _, shift := range [4]uint{6, 4, 2, 0} {
			symbol := (b >> shift) & 0x03
			if !emit(symbolToColor[symbol], e.config.SymbolMarkUnits) {
				return false
			}
			if !emit(Off, e.config.SeparatorUnits) {
				return false
			}
		}
	}

	return emit(Off, e.config.FrameGapUnits)
}
