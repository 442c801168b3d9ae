package protocol

import (
	"bytes"
	"testing"
)

func TestBuildCommands(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{
			"get firmware version",
			BuildGetFirmwareVersion(),
			[]byte{0x87},
		},
		{
			"set protocol options",
			BuildSetProtocolOptions(0x07),
			[]byte{0x8B, 0x07, 0x78},
		},
		{
			"read eeprom",
			BuildReadEEPROM(SettingDeviceNumber, 1),
			[]byte{0x93, 0x01, 0x01},
		},
		{
			"write eeprom with complements",
			BuildWriteEEPROM(SettingBaudDivider, 0x8B),
			[]byte{0x95, 0x06, 0x0B, 0x01, 0x79, 0x74, 0x7E},
		},
		{
			"reinitialize",
			BuildReinitialize(),
			[]byte{0x96},
		},
		{
			"reset",
			BuildReset(),
			[]byte{0x99},
		},
		{
			"get variables",
			BuildGetVariables(0, VarVINVoltage, 2),
			[]byte{0x9A, 0x00, 0x02, 0x02},
		},
		{
			"set variable",
			BuildSetVariable(1, MVarMaxAccelForward, 140),
			[]byte{0x9C, 0x01, 0x0A, 0x0C, 0x01},
		},
		{
			"set variable clamps to 14 bits",
			BuildSetVariable(1, VarErrorMask, 0xFFFF),
			[]byte{0x9C, 0x01, 0x08, 0x7F, 0x7F},
		},
		{
			"coast now",
			BuildCoastNow(),
			[]byte{0xA5},
		},
		{
			"clear motor fault",
			BuildClearMotorFault(1 << ClearMotorFaultUnconditional),
			[]byte{0xA6, 0x01},
		},
		{
			"clear latched status flags",
			BuildClearLatchedStatusFlags(1 << StatusFlagReset),
			[]byte{0xA9, 0x00, 0x04},
		},
		{
			"set latched status flags",
			BuildSetLatchedStatusFlags(1 << StatusFlagCommandTimeoutLatched),
			[]byte{0xAC, 0x04, 0x00},
		},
		{
			"set speed forward",
			BuildSetSpeed(1, 800),
			[]byte{0xD1, 0x01, 0x20, 0x06},
		},
		{
			"set speed reverse",
			BuildSetSpeed(2, -800),
			[]byte{0xD1, 0x02, 0x60, 0x79},
		},
		{
			"set speed now",
			BuildSetSpeedNow(1, 100),
			[]byte{0xD2, 0x01, 0x64, 0x00},
		},
		{
			"set buffered speed",
			BuildSetBufferedSpeed(3, -1),
			[]byte{0xD4, 0x03, 0x7F, 0x7F},
		},
		{
			"set all speeds",
			BuildSetAllSpeeds(800, -800, 0),
			[]byte{0xE1, 0x20, 0x06, 0x60, 0x79, 0x00, 0x00},
		},
		{
			"set all speeds now",
			BuildSetAllSpeedsNow(0, 0),
			[]byte{0xE2, 0x00, 0x00, 0x00, 0x00},
		},
		{
			"set all buffered speeds",
			BuildSetAllBufferedSpeeds(1, 2),
			[]byte{0xE4, 0x01, 0x00, 0x02, 0x00},
		},
		{
			"set all speeds using buffers",
			BuildSetAllSpeedsUsingBuffers(),
			[]byte{0xF0},
		},
		{
			"set all speeds now using buffers",
			BuildSetAllSpeedsNowUsingBuffers(),
			[]byte{0xF3},
		},
		{
			"set braking",
			BuildSetBraking(1, 800),
			[]byte{0xB1, 0x01, 0x20, 0x06},
		},
		{
			"set braking now",
			BuildSetBrakingNow(2, 0),
			[]byte{0xB2, 0x02, 0x00, 0x00},
		},
		{
			"reset command timeout",
			BuildResetCommandTimeout(),
			[]byte{0xF5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !bytes.Equal(tt.got, tt.want) {
				t.Errorf("got % X, want % X", tt.got, tt.want)
			}
		})
	}
}

func TestBuildMultiDeviceErrorCheck(t *testing.T) {
	tests := []struct {
		name    string
		start   uint16
		count   uint16
		wide    bool
		want    []byte
		wantErr bool
	}{
		{
			name:  "seven bit device numbers",
			start: 17, count: 3,
			want: []byte{0xF4, 0x11, 0x03},
		},
		{
			name:  "fourteen bit device numbers",
			start: 0x0395, count: 0x80, wide: true,
			want: []byte{0xF4, 0x15, 0x07, 0x00, 0x01},
		},
		{
			name:  "count too large for seven bits",
			start: 0, count: 0x80,
			wantErr: true,
		},
		{
			name:  "count too large for fourteen bits",
			start: 0, count: 0x4000, wide: true,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildMultiDeviceErrorCheck(tt.start, tt.count, tt.wide)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got % X, want % X", got, tt.want)
			}
		})
	}
}

func TestBuildMultiDeviceWrite(t *testing.T) {
	tests := []struct {
		name    string
		start   uint16
		count   uint16
		wide    bool
		cmd     byte
		data    []byte
		want    []byte
		wantErr bool
	}{
		{
			name:  "set speed to two devices",
			start: 17, count: 2, cmd: CmdSetSpeed,
			data: []byte{0x01, 0x20, 0x06, 0x01, 0x60, 0x79},
			want: []byte{0xF9, 0x11, 0x02, 0x03, 0x51, 0x01, 0x20, 0x06, 0x01, 0x60, 0x79},
		},
		{
			name:  "reset command timeout broadcast",
			start: 0, count: 5, cmd: CmdResetCommandTimeout,
			want: []byte{0xF9, 0x00, 0x05, 0x00, 0x75},
		},
		{
			name:  "zero devices",
			count: 0, cmd: CmdCoastNow,
			wantErr: true,
		},
		{
			name:  "data not divisible by count",
			count: 2, cmd: CmdSetSpeed,
			data:    []byte{0x01, 0x20, 0x06},
			wantErr: true,
		},
		{
			name:  "too many bytes per device",
			count: 1, cmd: CmdSetAllSpeeds,
			data:    make([]byte, 16),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildMultiDeviceWrite(tt.start, tt.count, tt.wide, tt.cmd, tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got % X, want % X", got, tt.want)
			}
		})
	}
}

func TestAddressFrame(t *testing.T) {
	tests := []struct {
		name         string
		deviceNumber uint16
		wide         bool
		cmd          []byte
		want         []byte
	}{
		{
			name:         "seven bit device number",
			deviceNumber: 17,
			cmd:          []byte{0xD1, 0x01, 0x20, 0x06},
			want:         []byte{0xAA, 0x11, 0x51, 0x01, 0x20, 0x06},
		},
		{
			name:         "fourteen bit device number",
			deviceNumber: 0x0395,
			wide:         true,
			cmd:          []byte{0x96},
			want:         []byte{0xAA, 0x15, 0x07, 0x16},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddressFrame(tt.deviceNumber, tt.wide, tt.cmd); !bytes.Equal(got, tt.want) {
				t.Errorf("got % X, want % X", got, tt.want)
			}
		})
	}
}
