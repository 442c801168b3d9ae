package protocol

import "testing"

func TestCalculateCRC(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want byte
	}{
		{"empty", nil, 0x00},
		{"single byte", []byte{0x01}, 0x41},
		{"high bit set", []byte{0x83}, 0x1A},
		{"reset command", []byte{0x96}, 0x74},
		{"set speed command", []byte{0xD1, 0x01, 0x20, 0x06}, 0x4E},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateCRC(tt.data); got != tt.want {
				t.Errorf("CalculateCRC(% X) = 0x%02X, want 0x%02X", tt.data, got, tt.want)
			}
		})
	}
}

func TestCalculateCRCRange(t *testing.T) {
	// The result always fits in 7 bits so it can ride on the wire as a
	// data byte.
	for b := 0; b < 256; b++ {
		if crc := CalculateCRC([]byte{byte(b)}); crc > 0x7F {
			t.Fatalf("CalculateCRC([0x%02X]) = 0x%02X, exceeds 7 bits", b, crc)
		}
	}
}
