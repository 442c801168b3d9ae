package protocol

import "fmt"

// FirmwareVersion identifies a device's product and firmware revision.
// The firmware version numbers are binary-coded decimal, so 0x12 reads
// as version 12.
type FirmwareVersion struct {
	ProductID  uint16
	MinorFWBCD byte
	MajorFWBCD byte
}

func (v FirmwareVersion) String() string {
	return fmt.Sprintf("product 0x%04X, firmware %x.%02x", v.ProductID, v.MajorFWBCD, v.MinorFWBCD)
}

// CurrentSenseReading holds one atomic sample of a motor's current sense
// variables.
type CurrentSenseReading struct {
	// Raw is the unprocessed current sense ADC reading.
	Raw uint16
	// Speed is the current speed of the motor at the time of the sample.
	Speed int16
	// Processed is the reading with the offset calibration and speed
	// scaling applied. 0xFFFF means no reading is available.
	Processed uint16
}

// StatusFlags is the device's 16-bit status flags variable.
type StatusFlags uint16

// Set reports whether the given flag bit is set.
func (f StatusFlags) Set(bit uint) bool {
	return f&(1<<bit) != 0
}

// Masked returns only the flags selected by mask, for comparing the
// error-relevant portion of the status against an expected value.
func (f StatusFlags) Masked(mask uint16) StatusFlags {
	return f & StatusFlags(mask)
}

// ProtocolError reports whether the device rejected a recent command.
func (f StatusFlags) ProtocolError() bool { return f.Set(StatusFlagProtocolError) }

// CRCError reports whether the device received a command with a bad CRC.
func (f StatusFlags) CRCError() bool { return f.Set(StatusFlagCRCError) }

// CommandTimeoutLatched reports whether a command timeout has occurred
// since the flag was last cleared.
func (f StatusFlags) CommandTimeoutLatched() bool { return f.Set(StatusFlagCommandTimeoutLatched) }

// MotorFaultLatched reports whether a motor fault has occurred since the
// flag was last cleared.
func (f StatusFlags) MotorFaultLatched() bool { return f.Set(StatusFlagMotorFaultLatched) }

// NoPowerLatched reports whether the device has been without motor power
// since the flag was last cleared.
func (f StatusFlags) NoPowerLatched() bool { return f.Set(StatusFlagNoPowerLatched) }

// UARTError reports whether a serial hardware error has occurred.
func (f StatusFlags) UARTError() bool { return f.Set(StatusFlagUARTError) }

// Reset reports whether the device has not yet been reinitialized or had
// this flag cleared since it last started up. Commands that affect the
// motors are ignored while it is set.
func (f StatusFlags) Reset() bool { return f.Set(StatusFlagReset) }

// CommandTimeout reports whether a command timeout is occurring now.
func (f StatusFlags) CommandTimeout() bool { return f.Set(StatusFlagCommandTimeout) }

// MotorFaulting reports whether a motor fault is occurring now.
func (f StatusFlags) MotorFaulting() bool { return f.Set(StatusFlagMotorFaulting) }

// NoPower reports whether the motor power supply is currently too low.
func (f StatusFlags) NoPower() bool { return f.Set(StatusFlagNoPower) }

// ErrorActive reports whether an error selected by the error mask is
// forcing the motors to their error response.
func (f StatusFlags) ErrorActive() bool { return f.Set(StatusFlagErrorActive) }

// MotorOutputEnabled reports whether the motor outputs are on.
func (f StatusFlags) MotorOutputEnabled() bool { return f.Set(StatusFlagMotorOutputEnabled) }

// MotorDriving reports whether any motor's current speed is non-zero.
func (f StatusFlags) MotorDriving() bool { return f.Set(StatusFlagMotorDriving) }
