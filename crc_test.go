package lumabeam

import "testing"

func TestComputeCRC16EmptyPayload(t *testing.T) {
	if got := ComputeCRC16(nil); got != 0xFFFF {
		t.Fatalf("ComputeCRC16(nil) = 0x%04X, want 0xFFFF", got)
	}
	if got := ComputeCRC16([]byte{}); got != 0xFFFF {
		t.Fatalf("ComputeCRC16([]byte{}) = 0x%04X, want 0xFFFF", got)
	}
}

func TestComputeCRC16KnownVectors(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want uint16
	}{
		{"Hi", []byte("Hi"), 0x64E5},
		{"check string", []byte("123456789"), 0x29B1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeCRC16(tc.data); got != tc.want {
				t.Fatalf("ComputeCRC16(%q) = 0x%04X, want 0x%04X", tc.data, got, tc.want)
			}
		})
	}
}

func TestComputeCRC16Deterministic(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	first := ComputeCRC16(data)
	for i := 0; i < 10; i++ {
		if got := ComputeCRC16(data); got != first {
			t.Fatalf("ComputeCRC16 not deterministic: run %d got 0x%04X, want 0x%04X", i, got, first)
		}
	}
}

func TestComputeCRC16SingleBitFlipChangesResult(t *testing.T) {
	original := []byte{0x01, 0x02, 0x03, 0x04}
	flipped := []byte{0x01, 0x02, 0x03, 0x05}
	if ComputeCRC16(original) == ComputeCRC16(flipped) {
		t.Fatal("single-bit payload change produced the same CRC")
	}
}
