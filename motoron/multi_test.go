package motoron

import (
	"bytes"
	"testing"

	"github.com/openhwlab/go-motoron/protocol"
)

func TestMultiDeviceErrorCheck(t *testing.T) {
	tests := []struct {
		name      string
		responses [][]byte
		want      int
	}{
		{
			name:      "all devices clear",
			responses: [][]byte{{0x3C, 0x3C, 0x3C}},
			want:      3,
		},
		{
			name:      "third device reports an error",
			responses: [][]byte{{0x3C, 0x3C, 0x52}},
			want:      2,
		},
		{
			name:      "second device does not answer",
			responses: [][]byte{{0x3C}},
			want:      1,
		},
		{
			name:      "unexpected byte",
			responses: [][]byte{{0x3C, 0x00, 0x3C}},
			want:      1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := &fakePort{reads: tt.responses}
			mc := New(NewSerialTransport(port))

			got, err := mc.MultiDeviceErrorCheck(17, 3)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}

			want := withCRC([]byte{0xF4, 0x11, 0x03})
			if !bytes.Equal(port.writes[0], want) {
				t.Errorf("wrote % X, want % X", port.writes[0], want)
			}
		})
	}
}

func TestMultiDeviceErrorCheckValidatesCount(t *testing.T) {
	port := &fakePort{}
	mc := New(NewSerialTransport(port))

	// With 7-bit device numbers the count field cannot exceed 0x7F, and
	// the failure must happen before anything hits the bus.
	if _, err := mc.MultiDeviceErrorCheck(0, 0x80); err == nil {
		t.Fatal("expected an error")
	}
	if len(port.writes) != 0 {
		t.Errorf("wrote %d frames, want 0", len(port.writes))
	}
}

func TestMultiDeviceErrorCheck14Bit(t *testing.T) {
	port := &fakePort{reads: [][]byte{{0x3C, 0x3C}}}
	tr := NewSerialTransport(port, With14BitDeviceNumbers())
	mc := New(tr)

	got, err := mc.MultiDeviceErrorCheck(0x0395, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Errorf("got %d, want 2", got)
	}

	want := withCRC([]byte{0xF4, 0x15, 0x07, 0x02, 0x00})
	if !bytes.Equal(port.writes[0], want) {
		t.Errorf("wrote % X, want % X", port.writes[0], want)
	}
}

func TestMultiDeviceWrite(t *testing.T) {
	port := &fakePort{}
	mc := New(NewSerialTransport(port))

	// Set speeds 800 and -800 on the motor 1 channels of devices 17
	// and 18 in one transaction.
	data := []byte{0x01, 0x20, 0x06, 0x01, 0x60, 0x79}
	if err := mc.MultiDeviceWrite(17, 2, protocol.CmdSetSpeed, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := withCRC([]byte{0xF9, 0x11, 0x02, 0x03, 0x51, 0x01, 0x20, 0x06, 0x01, 0x60, 0x79})
	if !bytes.Equal(port.writes[0], want) {
		t.Errorf("wrote % X, want % X", port.writes[0], want)
	}
}

func TestMultiDeviceWriteValidatesData(t *testing.T) {
	tests := []struct {
		name  string
		count uint16
		data  []byte
	}{
		{"zero devices", 0, nil},
		{"length not a multiple of count", 2, []byte{0x01, 0x02, 0x03}},
		{"too many bytes per device", 1, make([]byte, 16)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := &fakePort{}
			mc := New(NewSerialTransport(port))

			if err := mc.MultiDeviceWrite(0, tt.count, protocol.CmdSetSpeed, tt.data); err == nil {
				t.Fatal("expected an error")
			}
			if len(port.writes) != 0 {
				t.Errorf("wrote %d frames, want 0", len(port.writes))
			}
		})
	}
}
