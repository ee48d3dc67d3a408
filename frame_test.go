package lumabeam

import (
	"bytes"
	"testing"
)

func TestSerializeFrameEmptyPayload(t *testing.T) {
	cfg := DefaultProtocolConfig()
	got := serializeFrame(cfg, nil)
	if len(got) != FrameOverheadBytes {
		t.Fatalf("len = %d, want %d", len(got), FrameOverheadBytes)
	}
	want := []byte{0xC3, 0x9A, 0x01, 0x00, 0x00, 0xFF, 0xFF, 0x51, 0xAA}
	if !bytes.Equal(got, want) {
		t.Fatalf("serializeFrame(nil) = % X, want % X", got, want)
	}
}

func TestSerializeFrameKnownPayload(t *testing.T) {
	cfg := DefaultProtocolConfig()
	got := serializeFrame(cfg, []byte{0x48, 0x69})
	want := []byte{0xC3, 0x9A, 0x01, 0x00, 0x02, 0x64, 0xE5, 0x48, 0x69, 0x51, 0xAA}
	if !bytes.Equal(got, want) {
		t.Fatalf("serializeFrame(\"Hi\") = % X, want % X", got, want)
	}
}

func TestSerializeFrameLengthField(t *testing.T) {
	cfg := DefaultProtocolConfig()
	payload := make([]byte, 300)
	got := serializeFrame(cfg, payload)
	if len(got) != FrameOverheadBytes+300 {
		t.Fatalf("len = %d, want %d", len(got), FrameOverheadBytes+300)
	}
	length := int(got[3])<<8 | int(got[4])
	if length != 300 {
		t.Fatalf("length field = %d, want 300", length)
	}
}
