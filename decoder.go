package lumabeam

import (
	"math"

	"github.com/kpavlenko/lumabeam/internal/buffer"
)

// state is one of the four decoder states. There is no terminal state:
// successful finalization and every abort path return to Idle.
type state int

const (
	stateIdle state = iota
	stateWaitSpace
	stateReadMark
	stateReadSpace
)

// PayloadFunc is invoked synchronously from within Decoder.Feed whenever a
// frame finishes decoding successfully. payload is a fresh copy the
// Decoder will never mutate or retain; userContext is the opaque value
// supplied to NewDecoder or SetCallback, returned verbatim. Implementations
// must not call Feed on the same Decoder from within the callback.
type PayloadFunc func(payload []byte, userContext any)

// Decoder consumes a stream of observed SignalChange values one at a
// time, resynchronizing on the configured preamble, and reconstructs
// complete payloads. Every rejection is local: feed never panics, and the
// Decoder always returns to a resynchronizable state.
type Decoder struct {
	config      ProtocolConfig
	valid       bool
	callback    PayloadFunc
	userContext any
	stats       DecoderStats

	state                 state
	frameBuffer           *buffer.Bounded[byte]
	currentByte           byte
	bitsFilled            int
	expectedPayloadLength int
	payloadLengthKnown    bool
	pendingSymbol         byte
	frameActive           bool
}

// NewDecoder constructs a Decoder from cfg with the given callback and
// opaque user context. If cfg is invalid, Valid reports false and Feed is
// a no-op until Configure succeeds.
func NewDecoder(cfg ProtocolConfig, cb PayloadFunc, userContext any) *Decoder {
	d := &Decoder{callback: cb, userContext: userContext}
	d.Configure(cfg)
	return d
}

// Valid reports whether the Decoder's current configuration is usable.
func (d *Decoder) Valid() bool {
	return d.valid
}

// Config returns the Decoder's current configuration.
func (d *Decoder) Config() ProtocolConfig {
	return d.config
}

// Stats returns a snapshot of the Decoder's counters.
func (d *Decoder) Stats() DecoderStats {
	return d.stats
}

// ResetStats zeroes every counter. Unlike Reset, this is never called
// implicitly — only construction and an explicit ResetStats call clear
// stats, per the stats lifecycle invariant.
func (d *Decoder) ResetStats() {
	d.stats = DecoderStats{}
}

// Configure replaces the Decoder's configuration, resizing the internal
// frame buffer and resetting decode state (but not stats). It returns the
// new validity.
func (d *Decoder) Configure(cfg ProtocolConfig) bool {
	d.config = cfg
	d.valid = cfg.Validate() == nil
	capacity := cfg.MaxPayloadBytes
	if capacity <= 0 {
		capacity = MaxPayload
	}
	d.frameBuffer = buffer.NewBounded[byte](FrameOverheadBytes + capacity)
	d.resetState()
	return d.valid
}

// SetCallback replaces the payload callback and its opaque user context.
func (d *Decoder) SetCallback(cb PayloadFunc, userContext any) {
	d.callback = cb
	d.userContext = userContext
}

// Reset returns the Decoder to Idle, discarding any in-progress frame. It
// does not clear stats; a host wanting to time out a partially-decoded
// frame may call this at any point.
func (d *Decoder) Reset() {
	d.resetState()
}

func (d *Decoder) resetState() {
	d.state = stateIdle
	if d.frameBuffer != nil {
		d.frameBuffer.Reset()
	}
	d.currentByte = 0
	d.bitsFilled = 0
	d.expectedPayloadLength = 0
	d.payloadLengthKnown = false
	d.pendingSymbol = 0
	d.frameActive = false
}

func (d *Decoder) matches(units, expected int64) bool {
	diff := units - expected
	if diff < 0 {
		diff = -diff
	}
	return diff <= d.config.Tolerance(expected)
}

// abort discards the in-progress frame, bumping TruncatedFrames if a
// frame was active, and returns to Idle.
func (d *Decoder) abort() {
	if d.frameActive {
		d.stats.TruncatedFrames++
	}
	d.resetState()
}

// tryArmPreamble lets a rejected input itself become a new preamble mark,
// so the decoder doesn't waste a full preamble period after a transient
// glitch. Preserve this: see SPEC_FULL.md §9.
func (d *Decoder) tryArmPreamble(level LightLevel, units int64) {
	if level == d.config.PreambleColor && d.matches(units, d.config.PreambleMarkUnits) {
		d.state = stateWaitSpace
	}
}

func (d *Decoder) startFrame() {
	d.frameBuffer.Reset()
	d.currentByte = 0
	d.bitsFilled = 0
	d.expectedPayloadLength = 0
	d.payloadLengthKnown = false
	d.pendingSymbol = 0
	d.frameActive = true
	d.state = stateReadMark
}

// Feed processes a single observed SignalChange. It is synchronous,
// non-blocking, and never panics.
func (d *Decoder) Feed(change SignalChange) {
	if !d.valid || change.Duration <= 0 {
		return
	}

	ratio := float64(change.Duration) / float64(d.config.UnitDurationMicros)
	units := int64(math.Round(ratio))
	quantizeErr := math.Abs(ratio - float64(units))
	driftLimit := math.Max(d.config.AllowedDriftFraction, 0.01)

	if units <= 0 || quantizeErr > driftLimit {
		d.stats.DurationRejections++
		d.abort()
		d.tryArmPreamble(change.Level, units)
		return
	}

	switch d.state {
	case stateIdle:
		if change.Level == d.config.PreambleColor && d.matches(units, d.config.PreambleMarkUnits) {
			d.state = stateWaitSpace
		}

	case stateWaitSpace:
		switch {
		case change.Level == Off && d.matches(units, d.config.PreambleSpaceUnits):
			d.startFrame()
		case change.Level == d.config.PreambleColor && d.matches(units, d.config.PreambleMarkUnits):
			d.state = stateWaitSpace
		default:
			d.abort()
			d.tryArmPreamble(change.Level, units)
		}

	case stateReadMark:
		symbol, ok := colorToSymbol(change.Level)
		if change.Level == Off || !ok || !d.matches(units, d.config.SymbolMarkUnits) {
			d.stats.MarkRejections++
			d.abort()
			d.tryArmPreamble(change.Level, units)
			return
		}
		d.pendingSymbol = symbol
		d.state = stateReadSpace

	case stateReadSpace:
		if change.Level != Off {
			d.stats.DurationRejections++
			d.abort()
			d.tryArmPreamble(change.Level, units)
			return
		}
		if !d.matches(units, d.config.SeparatorUnits) && units < d.config.SeparatorUnits {
			d.stats.DurationRejections++
			d.abort()
			d.tryArmPreamble(change.Level, units)
			return
		}
		d.handleSymbol(d.pendingSymbol)
		if d.state == stateReadSpace {
			d.state = stateReadMark
		}
	}
}

func (d *Decoder) handleSymbol(symbol byte) {
	d.currentByte = (d.currentByte << 2) | (symbol & 0x03)
	d.bitsFilled += 2
	if d.bitsFilled != 8 {
		return
	}

	if !d.frameBuffer.Push(d.currentByte) {
		d.abort()
		return
	}
	d.currentByte = 0
	d.bitsFilled = 0

	if d.frameBuffer.Len() == 5 {
		bs := d.frameBuffer.Slice()
		length := int(bs[3])<<8 | int(bs[4])
		d.expectedPayloadLength = length
		d.payloadLengthKnown = true
		if length > d.config.MaxPayloadBytes {
			d.stats.LengthViolations++
			d.abort()
			return
		}
	}

	if d.payloadLengthKnown {
		total := FrameOverheadBytes + d.expectedPayloadLength
		switch {
		case d.frameBuffer.Len() > total:
			d.abort()
		case d.frameBuffer.Len() == total:
			d.finalize()
		}
	}
}

// finalize verifies a completed frame in the order mandated by the
// specification, aborting (after bumping the matching counter) at the
// first failure.
func (d *Decoder) finalize() {
	bs := d.frameBuffer.Slice()

	if len(bs) < FrameOverheadBytes {
		d.stats.HeaderRejects++
		d.abort()
		return
	}

	magic := uint16(bs[0])<<8 | uint16(bs[1])
	if magic != d.config.Magic {
		d.stats.MagicMismatches++
		d.abort()
		return
	}

	if bs[2] != d.config.Version {
		d.stats.HeaderRejects++
		d.abort()
		return
	}

	length := int(bs[3])<<8 | int(bs[4])
	if length > d.config.MaxPayloadBytes {
		d.stats.LengthViolations++
		d.abort()
		return
	}

	if len(bs) != FrameOverheadBytes+length {
		d.stats.TruncatedFrames++
		d.abort()
		return
	}

	ender := uint16(bs[len(bs)-2])<<8 | uint16(bs[len(bs)-1])
	if ender != d.config.Ender {
		d.stats.EnderMismatches++
		d.abort()
		return
	}

	expectedCRC := uint16(bs[5])<<8 | uint16(bs[6])
	payload := bs[7 : 7+length]
	if ComputeCRC16(payload) != expectedCRC {
		d.stats.CrcFailures++
		d.abort()
		return
	}

	out := make([]byte, length)
	copy(out, payload)
	if d.callback != nil {
		d.callback(out, d.userContext)
	}
	d.stats.FramesDecoded++
	d.resetState()
}
