package protocol

import "fmt"

// Command builders produce the exact wire bytes for each command, without
// any transport framing or CRC byte. Multi-byte numeric fields are split
// into 7-bit groups (low seven bits first), not little-endian bytes,
// because the device rejects command bytes with the high bit set.

// split14 packs a 16-bit value into two 7-bit groups.
func split14(v uint16) (lo, hi byte) {
	return byte(v) & 0x7F, byte(v>>7) & 0x7F
}

// BuildGetFirmwareVersion constructs a "Get firmware version" command.
// The response carries 4 bytes: product ID and version numbers.
func BuildGetFirmwareVersion() []byte {
	return []byte{CmdGetFirmwareVersion}
}

// BuildSetProtocolOptions constructs a "Set protocol options" command.
// The options byte is sent together with its complement so a corrupted
// frame cannot silently flip the CRC configuration.
func BuildSetProtocolOptions(options byte) []byte {
	return []byte{CmdSetProtocolOptions, options & 0x7F, ^options & 0x7F}
}

// BuildReadEEPROM constructs a "Read EEPROM" command for length bytes
// starting at offset.
func BuildReadEEPROM(offset, length byte) []byte {
	return []byte{CmdReadEEPROM, offset & 0x7F, length & 0x7F}
}

// BuildWriteEEPROM constructs a "Write EEPROM" command for one byte.
// The three data bytes are followed by their XOR-0x7F complements, a
// write-verification scheme the firmware checks before touching EEPROM.
func BuildWriteEEPROM(offset, value byte) []byte {
	cmd := []byte{
		CmdWriteEEPROM,
		offset & 0x7F,
		value & 0x7F,
		(value >> 7) & 1,
	}
	return append(cmd, cmd[1]^0x7F, cmd[2]^0x7F, cmd[3]^0x7F)
}

// BuildReinitialize constructs a "Reinitialize" command.
func BuildReinitialize() []byte {
	return []byte{CmdReinitialize}
}

// BuildReset constructs a "Reset" command.
func BuildReset() []byte {
	return []byte{CmdReset}
}

// BuildGetVariables constructs a "Get variables" command reading length
// bytes at offset. Motor 0 addresses the general variables.
func BuildGetVariables(motor, offset, length byte) []byte {
	return []byte{CmdGetVariables, motor & 0x7F, offset & 0x7F, length & 0x7F}
}

// BuildSetVariable constructs a "Set variable" command. Values above the
// variable space's 14-bit range are clamped to 0x3FFF, matching the
// firmware's own tolerance for out-of-range values.
func BuildSetVariable(motor, offset byte, value uint16) []byte {
	if value > 0x3FFF {
		value = 0x3FFF
	}
	lo, hi := split14(value)
	return []byte{CmdSetVariable, motor & 0x1F, offset & 0x7F, lo, hi}
}

// BuildCoastNow constructs a "Coast now" command.
func BuildCoastNow() []byte {
	return []byte{CmdCoastNow}
}

// BuildClearMotorFault constructs a "Clear motor fault" command. Set bit
// ClearMotorFaultUnconditional in flags to attempt recovery even when no
// fault is occurring.
func BuildClearMotorFault(flags byte) []byte {
	return []byte{CmdClearMotorFault, flags & 0x7F}
}

// BuildClearLatchedStatusFlags constructs a command that clears the given
// bits in the status flags variable.
func BuildClearLatchedStatusFlags(flags uint16) []byte {
	lo, hi := split14(flags)
	return []byte{CmdClearLatchedStatusFlags, lo, hi}
}

// BuildSetLatchedStatusFlags constructs a command that sets the given
// bits in the status flags variable.
func BuildSetLatchedStatusFlags(flags uint16) []byte {
	lo, hi := split14(flags)
	return []byte{CmdSetLatchedStatusFlags, lo, hi}
}

// BuildSetSpeed constructs a "Set speed" command. Speeds outside
// [-800, 800] are clipped by the firmware.
func BuildSetSpeed(motor byte, speed int16) []byte {
	lo, hi := split14(uint16(speed))
	return []byte{CmdSetSpeed, motor & 0x7F, lo, hi}
}

// BuildSetSpeedNow constructs a "Set speed now" command, which bypasses
// acceleration and deceleration limits.
func BuildSetSpeedNow(motor byte, speed int16) []byte {
	lo, hi := split14(uint16(speed))
	return []byte{CmdSetSpeedNow, motor & 0x7F, lo, hi}
}

// BuildSetBufferedSpeed constructs a "Set buffered speed" command, which
// stores a speed without changing the motor.
func BuildSetBufferedSpeed(motor byte, speed int16) []byte {
	lo, hi := split14(uint16(speed))
	return []byte{CmdSetBufferedSpeed, motor & 0x7F, lo, hi}
}

func buildAllSpeeds(op byte, speeds []int16) []byte {
	cmd := make([]byte, 0, 1+2*len(speeds))
	cmd = append(cmd, op)
	for _, speed := range speeds {
		lo, hi := split14(uint16(speed))
		cmd = append(cmd, lo, hi)
	}
	return cmd
}

// BuildSetAllSpeeds constructs a "Set all speeds" command. The number of
// speeds must equal the device's motor channel count.
func BuildSetAllSpeeds(speeds ...int16) []byte {
	return buildAllSpeeds(CmdSetAllSpeeds, speeds)
}

// BuildSetAllSpeedsNow constructs a "Set all speeds now" command.
func BuildSetAllSpeedsNow(speeds ...int16) []byte {
	return buildAllSpeeds(CmdSetAllSpeedsNow, speeds)
}

// BuildSetAllBufferedSpeeds constructs a "Set all buffered speeds"
// command.
func BuildSetAllBufferedSpeeds(speeds ...int16) []byte {
	return buildAllSpeeds(CmdSetAllBufferedSpeeds, speeds)
}

// BuildSetAllSpeedsUsingBuffers constructs the command that makes each
// motor's target speed equal to its buffered speed.
func BuildSetAllSpeedsUsingBuffers() []byte {
	return []byte{CmdSetAllSpeedsUsingBuffers}
}

// BuildSetAllSpeedsNowUsingBuffers constructs the command that applies
// the buffered speeds immediately.
func BuildSetAllSpeedsNowUsingBuffers() []byte {
	return []byte{CmdSetAllSpeedsNowUsingBuffers}
}

// BuildSetBraking constructs a "Set braking" command. The amount ranges
// from 0 (coast) to 800 (full brake); higher values are clipped by the
// firmware.
func BuildSetBraking(motor byte, amount int16) []byte {
	lo, hi := split14(uint16(amount))
	return []byte{CmdSetBraking, motor & 0x7F, lo, hi}
}

// BuildSetBrakingNow constructs a "Set braking now" command, which
// changes the current speed to zero without obeying deceleration limits.
func BuildSetBrakingNow(motor byte, amount int16) []byte {
	lo, hi := split14(uint16(amount))
	return []byte{CmdSetBrakingNow, motor & 0x7F, lo, hi}
}

// BuildResetCommandTimeout constructs a "Reset command timeout" command.
func BuildResetCommandTimeout() []byte {
	return []byte{CmdResetCommandTimeout}
}

// multiDeviceHeader builds the opcode plus starting-device-number and
// device-count fields shared by the multi-device commands.
func multiDeviceHeader(op byte, start, count uint16, wide bool) ([]byte, error) {
	if wide {
		if count > 0x3FFF {
			return nil, fmt.Errorf("device count %d exceeds 0x3FFF", count)
		}
		startLo, startHi := split14(start)
		countLo, countHi := split14(count)
		return []byte{op, startLo, startHi, countLo, countHi}, nil
	}
	if count > 0x7F {
		return nil, fmt.Errorf("device count %d exceeds 0x7F with 7-bit device numbers", count)
	}
	return []byte{op, byte(start) & 0x7F, byte(count)}, nil
}

// BuildMultiDeviceErrorCheck constructs a "Multi-device error check"
// command addressed to count devices starting at start. Pass wide=true
// when the devices are configured for 14-bit device numbers.
func BuildMultiDeviceErrorCheck(start, count uint16, wide bool) ([]byte, error) {
	return multiDeviceHeader(CmdMultiDeviceErrorCheck, start, count, wide)
}

// BuildMultiDeviceWrite constructs a "Multi-device write" command that
// delivers commandByte with an equal slice of data to each of count
// devices starting at start.
//
// The data length must be a multiple of count, with at most
// MaxMultiDeviceBytes bytes per device. Validation failures are reported
// before any of the frame is built, so callers can rely on nothing having
// been transmitted.
func BuildMultiDeviceWrite(start, count uint16, wide bool, commandByte byte, data []byte) ([]byte, error) {
	if count == 0 {
		return nil, fmt.Errorf("device count cannot be zero")
	}
	if len(data)%int(count) != 0 {
		return nil, fmt.Errorf("data length %d is not a multiple of the device count %d", len(data), count)
	}
	perDevice := len(data) / int(count)
	if perDevice > MaxMultiDeviceBytes {
		return nil, fmt.Errorf("%d bytes per device exceeds the maximum of %d", perDevice, MaxMultiDeviceBytes)
	}
	cmd, err := multiDeviceHeader(CmdMultiDeviceWrite, start, count, wide)
	if err != nil {
		return nil, err
	}
	cmd = append(cmd, byte(perDevice), commandByte&0x7F)
	return append(cmd, data...), nil
}

// AddressFrame wraps a command for transmission to a specific device
// number on a shared serial bus (Pololu protocol): a frame marker, the
// device number in one or two 7-bit groups, then the command with the
// opcode's high bit cleared.
func AddressFrame(deviceNumber uint16, wide bool, cmd []byte) []byte {
	var frame []byte
	if wide {
		lo, hi := split14(deviceNumber)
		frame = make([]byte, 0, len(cmd)+3)
		frame = append(frame, FrameMarker, lo, hi)
	} else {
		frame = make([]byte, 0, len(cmd)+2)
		frame = append(frame, FrameMarker, byte(deviceNumber)&0x7F)
	}
	frame = append(frame, cmd[0]&0x7F)
	return append(frame, cmd[1:]...)
}
