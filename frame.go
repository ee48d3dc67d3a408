package lumabeam

import "encoding/binary"

// Frame is the serialized, on-wire byte layout:
//
//	offset  size  field
//	0       2     magic
//	2       1     version
//	3       2     payloadLength (0 <= L <= maxPayloadBytes <= MaxPayload)
//	5       2     CRC-16/CCITT-FALSE of payload bytes only
//	7       L     payload
//	7+L     2     ender
//
// Total frame length is FrameOverheadBytes+L bytes, big-endian throughout.
type Frame struct {
	Magic   uint16
	Version uint8
	Payload []byte
	CRC     uint16 // Encoder and Decoder work on raw frame bytes and never fill a Frame
	Ender   uint16
}

// serializeFrame builds the FrameOverheadBytes+len(payload) byte wire
// representation of payload under cfg. Callers must have already checked
// len(payload) against cfg.MaxPayloadBytes.
func serializeFrame(cfg ProtocolConfig, payload []byte) []byte {
	l := len(payload)
	buf := make([]byte, FrameOverheadBytes+l)

	binary.BigEndian.PutUint16(buf[0:2], cfg.Magic)
	buf[2] = cfg.Version
	binary.BigEndian.PutUint16(buf[3:5], uint16(l))
	binary.BigEndian.PutUint16(buf[5:7], ComputeCRC16(payload))
	copy(buf[7:7+l], payload)
	binary.BigEndian.PutUint16(buf[7+l:9+l], cfg.Ender)

	return buf
}
