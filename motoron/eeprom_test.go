package motoron

import (
	"bytes"
	"testing"

	"github.com/openhwlab/go-motoron/protocol"
)

func TestWriteEEPROMBaudRate(t *testing.T) {
	tests := []struct {
		name    string
		baud    int
		divider uint16
	}{
		{"default baud", 115200, 139},
		{"9600 baud", 9600, 1667},
		{"clamped to minimum", 1, 65306},
		{"clamped to maximum", 2000000, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := &fakeTransport{}
			mc := New(ft)

			if err := mc.WriteEEPROMBaudRate(tt.baud); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(ft.sent) != 2 {
				t.Fatalf("sent %d commands, want 2", len(ft.sent))
			}
			wantLow := protocol.BuildWriteEEPROM(protocol.SettingBaudDivider, byte(tt.divider))
			wantHigh := protocol.BuildWriteEEPROM(protocol.SettingBaudDivider+1, byte(tt.divider>>8))
			if !bytes.Equal(ft.sent[0], wantLow) {
				t.Errorf("low byte: sent % X, want % X", ft.sent[0], wantLow)
			}
			if !bytes.Equal(ft.sent[1], wantHigh) {
				t.Errorf("high byte: sent % X, want % X", ft.sent[1], wantHigh)
			}
		})
	}
}

func TestWriteEEPROMDeviceNumber(t *testing.T) {
	ft := &fakeTransport{}
	mc := New(ft)

	if err := mc.WriteEEPROMDeviceNumber(0x0395); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ft.sent) != 2 {
		t.Fatalf("sent %d commands, want 2", len(ft.sent))
	}
	// 14-bit number split into 7-bit halves across two EEPROM bytes.
	if want := protocol.BuildWriteEEPROM(protocol.SettingDeviceNumber, 0x15); !bytes.Equal(ft.sent[0], want) {
		t.Errorf("sent % X, want % X", ft.sent[0], want)
	}
	if want := protocol.BuildWriteEEPROM(protocol.SettingDeviceNumber+1, 0x07); !bytes.Equal(ft.sent[1], want) {
		t.Errorf("sent % X, want % X", ft.sent[1], want)
	}
}

func TestWriteEEPROMAlternativeDeviceNumber(t *testing.T) {
	ft := &fakeTransport{}
	mc := New(ft)

	if err := mc.WriteEEPROMAlternativeDeviceNumber(17); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The high bit of the low byte enables the feature.
	if want := protocol.BuildWriteEEPROM(protocol.SettingAlternativeDeviceNumber, 0x91); !bytes.Equal(ft.sent[0], want) {
		t.Errorf("sent % X, want % X", ft.sent[0], want)
	}
	if want := protocol.BuildWriteEEPROM(protocol.SettingAlternativeDeviceNumber+1, 0x00); !bytes.Equal(ft.sent[1], want) {
		t.Errorf("sent % X, want % X", ft.sent[1], want)
	}

	ft.sent = nil
	if err := mc.WriteEEPROMDisableAlternativeDeviceNumber(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := protocol.BuildWriteEEPROM(protocol.SettingAlternativeDeviceNumber, 0x00); !bytes.Equal(ft.sent[0], want) {
		t.Errorf("sent % X, want % X", ft.sent[0], want)
	}
}

func TestWriteEEPROMCommunicationOptions(t *testing.T) {
	ft := &fakeTransport{}
	mc := New(ft)

	options := byte(1<<protocol.CommunicationOption7BitResponses | 1<<protocol.CommunicationOptionErrIsDE)
	if err := mc.WriteEEPROMCommunicationOptions(options); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := protocol.BuildWriteEEPROM(protocol.SettingCommunicationOptions, options); !bytes.Equal(ft.sent[0], want) {
		t.Errorf("sent % X, want % X", ft.sent[0], want)
	}
}

func TestWriteEEPROMCommunicationOptionsRejectsUnknownBits(t *testing.T) {
	ft := &fakeTransport{}
	mc := New(ft)

	if err := mc.WriteEEPROMCommunicationOptions(0x08); err == nil {
		t.Fatal("expected an error")
	}
	if len(ft.sent) != 0 {
		t.Errorf("sent %d commands, want 0", len(ft.sent))
	}
}

func TestReadEEPROMDeviceNumber(t *testing.T) {
	ft := &fakeTransport{responses: [][]byte{{0x11}}}
	mc := New(ft)

	n, err := mc.ReadEEPROMDeviceNumber()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 17 {
		t.Errorf("got %d, want 17", n)
	}
	if want := []byte{0x93, 0x01, 0x01}; !bytes.Equal(ft.sent[0], want) {
		t.Errorf("sent % X, want % X", ft.sent[0], want)
	}
}
