package lumabeam

// MaxPayload is the hard cap on frame payload size, independent of any
// particular ProtocolConfig.MaxPayloadBytes value (which must itself lie
// in (0, MaxPayload]).
const MaxPayload = 512

// FrameOverheadBytes is the fixed per-frame overhead: magic(2) +
// version(1) + length(2) + crc(2) + ender(2).
const FrameOverheadBytes = 9

// MaxSignalChanges bounds the number of SignalChange values a single
// encoded frame can ever produce: one preamble mark + one preamble space,
// plus a mark+separator pair per 2-bit symbol (4 symbols per byte) across
// the maximum frame size, plus headroom.
const MaxSignalChanges = (MaxPayload+FrameOverheadBytes)*8 + 32
