package lumabeam

// DecoderStats holds monotonic, non-negative counters for every distinct
// rejection category a Decoder can produce, plus the count of
// successfully decoded frames. Stats survive Decoder.Reset and
// Decoder.Configure; only construction or an explicit Decoder.ResetStats
// call zeroes them.
type DecoderStats struct {
	FramesDecoded      uint64
	MagicMismatches    uint64
	HeaderRejects      uint64
	LengthViolations   uint64
	CrcFailures        uint64
	EnderMismatches    uint64
	DurationRejections uint64
	MarkRejections     uint64
	TruncatedFrames    uint64
}
