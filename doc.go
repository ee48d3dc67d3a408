// Package lumabeam implements a framed, CRC-protected, preamble-synchronized
// quaternary color-coded timing channel for infrared or visible-light
// point-to-point links.
//
// An Encoder turns an arbitrary byte payload into a deterministic sequence
// of colored light pulses (SignalChange values). A Decoder consumes an
// incoming stream of observed SignalChange values one at a time and
// reconstructs the original payload, tolerating clock drift, corrupted or
// missing symbols, and arbitrary injected noise surrounding a frame.
//
// The wire format, timing model, and decoder state machine are
// bit-exact and compatibility-critical; see Frame and ProtocolConfig.
package lumabeam
