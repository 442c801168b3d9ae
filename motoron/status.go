package motoron

import "github.com/openhwlab/go-motoron/protocol"

// GetStatusFlags reads the controller's status flags. The returned type
// has accessor methods for each flag.
func (d *Device) GetStatusFlags() (protocol.StatusFlags, error) {
	v, err := d.GetVarU16(0, protocol.VarStatusFlags)
	return protocol.StatusFlags(v), err
}

// ClearLatchedStatusFlags clears the given latched bits in the status
// flags variable.
func (d *Device) ClearLatchedStatusFlags(flags uint16) error {
	return d.sendCommand(protocol.BuildClearLatchedStatusFlags(flags))
}

// ClearResetFlag clears the "Reset" flag, which is set when the
// controller starts up and, with the default error mask, prevents the
// motors from running until it is cleared.
func (d *Device) ClearResetFlag() error {
	return d.ClearLatchedStatusFlags(1 << protocol.StatusFlagReset)
}

// SetLatchedStatusFlags sets the given latched bits in the status flags
// variable. Setting the "Reset" flag is a soft way to stop the motors.
func (d *Device) SetLatchedStatusFlags(flags uint16) error {
	return d.sendCommand(protocol.BuildSetLatchedStatusFlags(flags))
}

// ClearMotorFault attempts to recover from a latched motor fault. With
// no flag bits set the recovery only happens if no fault is currently
// occurring.
func (d *Device) ClearMotorFault(flags byte) error {
	return d.sendCommand(protocol.BuildClearMotorFault(flags))
}

// ClearMotorFaultUnconditional attempts to recover from a latched motor
// fault even if a fault is still occurring.
func (d *Device) ClearMotorFaultUnconditional() error {
	return d.ClearMotorFault(1 << protocol.ClearMotorFaultUnconditional)
}
