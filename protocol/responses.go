package protocol

import "fmt"

// StripResponseCRC verifies the trailing CRC byte of a raw response and
// returns the payload without it. A *CRCError is returned when the byte
// does not match the CRC of the preceding bytes.
//
// The CRC byte is the outermost layer of a response: it covers the
// 7-bit-encoded payload as it appears on the wire, so callers must strip
// it before undoing the 7-bit encoding.
func StripResponseCRC(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("response too short to contain a CRC byte")
	}
	payload, received := raw[:len(raw)-1], raw[len(raw)-1]
	if computed := CalculateCRC(payload); computed != received {
		return nil, &CRCError{Computed: computed, Received: received}
	}
	return payload, nil
}

// Unpack7Bit undoes the device's 7-bit response encoding. The encoded
// form is the payload bytes with their high bits cleared, followed by one
// extra byte carrying those high bits: bit i of the trailer is the high
// bit of payload byte i.
func Unpack7Bit(encoded []byte) ([]byte, error) {
	if len(encoded) == 0 {
		return nil, fmt.Errorf("7-bit encoded response is missing its trailer byte")
	}
	payload := make([]byte, len(encoded)-1)
	trailer := encoded[len(encoded)-1]
	for i, b := range encoded[:len(encoded)-1] {
		payload[i] = b & 0x7F
		if trailer&(1<<uint(i)) != 0 {
			payload[i] |= 0x80
		}
	}
	return payload, nil
}

// ParseFirmwareVersion decodes the 4-byte "Get firmware version"
// response.
func ParseFirmwareVersion(payload []byte) (FirmwareVersion, error) {
	if len(payload) != 4 {
		return FirmwareVersion{}, fmt.Errorf("firmware version response is %d bytes, want 4", len(payload))
	}
	return FirmwareVersion{
		ProductID:  uint16(payload[0]) | uint16(payload[1])<<8,
		MinorFWBCD: payload[2],
		MajorFWBCD: payload[3],
	}, nil
}

// ParseUint16 decodes a 2-byte little-endian variable value.
func ParseUint16(payload []byte) (uint16, error) {
	if len(payload) != 2 {
		return 0, fmt.Errorf("variable response is %d bytes, want 2", len(payload))
	}
	return uint16(payload[0]) | uint16(payload[1])<<8, nil
}

// ParseCurrentSenseReading decodes the 6 bytes covering a motor's raw,
// speed, and processed current sense variables, which the device samples
// atomically when read in one command.
func ParseCurrentSenseReading(payload []byte) (CurrentSenseReading, error) {
	if len(payload) != 6 {
		return CurrentSenseReading{}, fmt.Errorf("current sense response is %d bytes, want 6", len(payload))
	}
	return CurrentSenseReading{
		Raw:       uint16(payload[0]) | uint16(payload[1])<<8,
		Speed:     int16(uint16(payload[2]) | uint16(payload[3])<<8),
		Processed: uint16(payload[4]) | uint16(payload[5])<<8,
	}, nil
}
