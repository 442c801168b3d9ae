package motoron

import (
	"github.com/openhwlab/go-motoron/protocol"
)

// GetVariables reads length bytes of variable space starting at offset.
// Use motor 0 for the general variables and 1 through the channel count
// for the per-motor variables.
//
// Every variable has its own typed accessor below; this method is for
// reading several adjacent variables in one atomic command.
func (d *Device) GetVariables(motor, offset, length byte) ([]byte, error) {
	return d.sendCommandAndReadResponse(protocol.BuildGetVariables(motor, offset, length), int(length))
}

// GetVarU8 reads one byte of variable space.
func (d *Device) GetVarU8(motor, offset byte) (byte, error) {
	payload, err := d.GetVariables(motor, offset, 1)
	if err != nil {
		return 0, err
	}
	return payload[0], nil
}

// GetVarU16 reads a 16-bit unsigned variable.
func (d *Device) GetVarU16(motor, offset byte) (uint16, error) {
	payload, err := d.GetVariables(motor, offset, 2)
	if err != nil {
		return 0, err
	}
	return protocol.ParseUint16(payload)
}

// GetVarS16 reads a 16-bit signed variable.
func (d *Device) GetVarS16(motor, offset byte) (int16, error) {
	v, err := d.GetVarU16(motor, offset)
	return int16(v), err
}

// SetVariable writes one variable. Values above the 14-bit maximum of
// 0x3FFF are clamped before sending. Not every variable is writable;
// see the per-variable setters below for the ones that are.
func (d *Device) SetVariable(motor, offset byte, value uint16) error {
	return d.sendCommand(protocol.BuildSetVariable(motor, offset, value))
}

// GetVINVoltage reads the voltage on the controller's VIN pin, in raw
// device units. See GetVINVoltageMV for a conversion to millivolts.
func (d *Device) GetVINVoltage() (uint16, error) {
	return d.GetVarU16(0, protocol.VarVINVoltage)
}

// GetVINVoltageMV reads the voltage on the controller's VIN pin and
// converts it to millivolts. referenceMV is the controller's logic
// voltage (typically 3300), and senseType identifies the controller
// family, which determines the VIN divider.
func (d *Device) GetVINVoltageMV(referenceMV uint32, senseType VinSenseType) (float64, error) {
	raw, err := d.GetVINVoltage()
	if err != nil {
		return 0, err
	}
	return VINMillivolts(raw, referenceMV, senseType), nil
}

// GetCommandTimeoutMilliseconds reads the command timeout and converts
// it from device units to milliseconds.
func (d *Device) GetCommandTimeoutMilliseconds() (uint32, error) {
	v, err := d.GetVarU16(0, protocol.VarCommandTimeout)
	if err != nil {
		return 0, err
	}
	return uint32(v) * 4, nil
}

// SetCommandTimeoutMilliseconds sets the command timeout. A controller
// with a command timeout shuts its motors off if it does not receive a
// qualifying command for that long. The value is rounded up to the
// device's 4 ms resolution.
func (d *Device) SetCommandTimeoutMilliseconds(ms uint16) error {
	return d.SetVariable(0, protocol.VarCommandTimeout, uint16((uint32(ms)+3)/4))
}

// DisableCommandTimeout turns the command timeout feature off by
// removing the command timeout bit from the error mask, leaving the
// other default error conditions in place.
func (d *Device) DisableCommandTimeout() error {
	return d.SetErrorMask(protocol.DefaultErrorMask &^ (1 << protocol.StatusFlagCommandTimeout))
}

// GetErrorResponse reads how the motors stop while an error is active.
// The result is one of the protocol.ErrorResponse* constants.
func (d *Device) GetErrorResponse() (byte, error) {
	return d.GetVarU8(0, protocol.VarErrorResponse)
}

// SetErrorResponse sets how the motors stop while an error is active.
func (d *Device) SetErrorResponse(response byte) error {
	return d.SetVariable(0, protocol.VarErrorResponse, uint16(response))
}

// GetErrorMask reads which status flags the controller treats as errors.
func (d *Device) GetErrorMask() (uint16, error) {
	return d.GetVarU16(0, protocol.VarErrorMask)
}

// SetErrorMask sets which status flags the controller treats as errors.
func (d *Device) SetErrorMask(mask uint16) error {
	return d.SetVariable(0, protocol.VarErrorMask, mask)
}

// GetJumperState reads the sampled state of the controller's
// configuration jumpers.
func (d *Device) GetJumperState() (byte, error) {
	return d.GetVarU8(0, protocol.VarJumperState)
}

// GetTargetSpeed reads the speed a motor is moving toward.
func (d *Device) GetTargetSpeed(motor byte) (int16, error) {
	return d.GetVarS16(motor, protocol.MVarTargetSpeed)
}

// GetTargetBrakeAmount reads the braking amount a motor was last
// commanded with, or 0xFFFF if the last motion command was a speed.
func (d *Device) GetTargetBrakeAmount(motor byte) (uint16, error) {
	return d.GetVarU16(motor, protocol.MVarTargetBrakeAmount)
}

// GetCurrentSpeed reads the speed a motor is moving at right now.
func (d *Device) GetCurrentSpeed(motor byte) (int16, error) {
	return d.GetVarS16(motor, protocol.MVarCurrentSpeed)
}

// GetBufferedSpeed reads a motor's buffered speed.
func (d *Device) GetBufferedSpeed(motor byte) (int16, error) {
	return d.GetVarS16(motor, protocol.MVarBufferedSpeed)
}

// GetPWMMode reads a motor's PWM frequency setting, one of the
// protocol.PWMMode* constants.
func (d *Device) GetPWMMode(motor byte) (byte, error) {
	return d.GetVarU8(motor, protocol.MVarPWMMode)
}

// SetPWMMode sets a motor's PWM frequency, one of the protocol.PWMMode*
// constants.
func (d *Device) SetPWMMode(motor, mode byte) error {
	return d.SetVariable(motor, protocol.MVarPWMMode, uint16(mode))
}

// GetMaxAccelerationForward reads a motor's forward acceleration limit.
func (d *Device) GetMaxAccelerationForward(motor byte) (uint16, error) {
	return d.GetVarU16(motor, protocol.MVarMaxAccelForward)
}

// GetMaxAccelerationReverse reads a motor's reverse acceleration limit.
func (d *Device) GetMaxAccelerationReverse(motor byte) (uint16, error) {
	return d.GetVarU16(motor, protocol.MVarMaxAccelReverse)
}

// SetMaxAccelerationForward sets a motor's forward acceleration limit,
// in speed units per update period. Zero means no limit.
func (d *Device) SetMaxAccelerationForward(motor byte, accel uint16) error {
	return d.SetVariable(motor, protocol.MVarMaxAccelForward, accel)
}

// SetMaxAccelerationReverse sets a motor's reverse acceleration limit.
func (d *Device) SetMaxAccelerationReverse(motor byte, accel uint16) error {
	return d.SetVariable(motor, protocol.MVarMaxAccelReverse, accel)
}

// SetMaxAcceleration sets a motor's acceleration limit for both
// directions.
func (d *Device) SetMaxAcceleration(motor byte, accel uint16) error {
	if err := d.SetMaxAccelerationForward(motor, accel); err != nil {
		return err
	}
	return d.SetMaxAccelerationReverse(motor, accel)
}

// GetMaxDecelerationForward reads a motor's forward deceleration limit.
func (d *Device) GetMaxDecelerationForward(motor byte) (uint16, error) {
	return d.GetVarU16(motor, protocol.MVarMaxDecelForward)
}

// GetMaxDecelerationReverse reads a motor's reverse deceleration limit.
func (d *Device) GetMaxDecelerationReverse(motor byte) (uint16, error) {
	return d.GetVarU16(motor, protocol.MVarMaxDecelReverse)
}

// SetMaxDecelerationForward sets a motor's forward deceleration limit,
// in speed units per update period. Zero means no limit.
func (d *Device) SetMaxDecelerationForward(motor byte, decel uint16) error {
	return d.SetVariable(motor, protocol.MVarMaxDecelForward, decel)
}

// SetMaxDecelerationReverse sets a motor's reverse deceleration limit.
func (d *Device) SetMaxDecelerationReverse(motor byte, decel uint16) error {
	return d.SetVariable(motor, protocol.MVarMaxDecelReverse, decel)
}

// SetMaxDeceleration sets a motor's deceleration limit for both
// directions.
func (d *Device) SetMaxDeceleration(motor byte, decel uint16) error {
	if err := d.SetMaxDecelerationForward(motor, decel); err != nil {
		return err
	}
	return d.SetMaxDecelerationReverse(motor, decel)
}

// GetStartingSpeedForward reads a motor's forward starting speed.
func (d *Device) GetStartingSpeedForward(motor byte) (uint16, error) {
	return d.GetVarU16(motor, protocol.MVarStartingSpeedForward)
}

// GetStartingSpeedReverse reads a motor's reverse starting speed.
func (d *Device) GetStartingSpeedReverse(motor byte) (uint16, error) {
	return d.GetVarU16(motor, protocol.MVarStartingSpeedReverse)
}

// SetStartingSpeedForward sets the speed below which a motor accelerating
// forward from rest jumps immediately.
func (d *Device) SetStartingSpeedForward(motor byte, speed uint16) error {
	return d.SetVariable(motor, protocol.MVarStartingSpeedForward, speed)
}

// SetStartingSpeedReverse sets the speed below which a motor accelerating
// in reverse from rest jumps immediately.
func (d *Device) SetStartingSpeedReverse(motor byte, speed uint16) error {
	return d.SetVariable(motor, protocol.MVarStartingSpeedReverse, speed)
}

// SetStartingSpeed sets a motor's starting speed for both directions.
func (d *Device) SetStartingSpeed(motor byte, speed uint16) error {
	if err := d.SetStartingSpeedForward(motor, speed); err != nil {
		return err
	}
	return d.SetStartingSpeedReverse(motor, speed)
}

// GetDirectionChangeDelayForward reads a motor's forward direction
// change delay, in units of 10 ms.
func (d *Device) GetDirectionChangeDelayForward(motor byte) (byte, error) {
	return d.GetVarU8(motor, protocol.MVarDirectionChangeDelayForward)
}

// GetDirectionChangeDelayReverse reads a motor's reverse direction
// change delay, in units of 10 ms.
func (d *Device) GetDirectionChangeDelayReverse(motor byte) (byte, error) {
	return d.GetVarU8(motor, protocol.MVarDirectionChangeDelayReverse)
}

// SetDirectionChangeDelayForward sets how long a motor pauses at zero
// speed before moving forward, in units of 10 ms.
func (d *Device) SetDirectionChangeDelayForward(motor, duration byte) error {
	return d.SetVariable(motor, protocol.MVarDirectionChangeDelayForward, uint16(duration))
}

// SetDirectionChangeDelayReverse sets how long a motor pauses at zero
// speed before moving in reverse, in units of 10 ms.
func (d *Device) SetDirectionChangeDelayReverse(motor, duration byte) error {
	return d.SetVariable(motor, protocol.MVarDirectionChangeDelayReverse, uint16(duration))
}

// SetDirectionChangeDelay sets a motor's direction change delay for both
// directions.
func (d *Device) SetDirectionChangeDelay(motor, duration byte) error {
	if err := d.SetDirectionChangeDelayForward(motor, duration); err != nil {
		return err
	}
	return d.SetDirectionChangeDelayReverse(motor, duration)
}

// GetCurrentLimit reads a motor's current limit, in raw device units.
func (d *Device) GetCurrentLimit(motor byte) (uint16, error) {
	return d.GetVarU16(motor, protocol.MVarCurrentLimit)
}

// SetCurrentLimit sets a motor's current limit, in raw device units. Use
// CalculateCurrentLimit to convert a limit in milliamps.
func (d *Device) SetCurrentLimit(motor byte, limit uint16) error {
	return d.SetVariable(motor, protocol.MVarCurrentLimit, limit)
}

// GetCurrentSenseReading reads a motor's raw current sense reading along
// with the speed and processed reading from the same sample. Reading all
// three in one command guarantees they are consistent.
func (d *Device) GetCurrentSenseReading(motor byte) (protocol.CurrentSenseReading, error) {
	payload, err := d.GetVariables(motor, protocol.MVarCurrentSenseRaw, 6)
	if err != nil {
		return protocol.CurrentSenseReading{}, err
	}
	return protocol.ParseCurrentSenseReading(payload)
}

// GetCurrentSenseRawAndSpeed reads a motor's raw current sense
// measurement together with the speed from the same sample.
func (d *Device) GetCurrentSenseRawAndSpeed(motor byte) (raw uint16, speed int16, err error) {
	payload, err := d.GetVariables(motor, protocol.MVarCurrentSenseRaw, 4)
	if err != nil {
		return 0, 0, err
	}
	raw = uint16(payload[0]) | uint16(payload[1])<<8
	speed = int16(uint16(payload[2]) | uint16(payload[3])<<8)
	return raw, speed, nil
}

// GetCurrentSenseProcessedAndSpeed reads a motor's processed current
// sense measurement together with the speed from the same sample.
func (d *Device) GetCurrentSenseProcessedAndSpeed(motor byte) (processed uint16, speed int16, err error) {
	payload, err := d.GetVariables(motor, protocol.MVarCurrentSenseSpeed, 4)
	if err != nil {
		return 0, 0, err
	}
	speed = int16(uint16(payload[0]) | uint16(payload[1])<<8)
	processed = uint16(payload[2]) | uint16(payload[3])<<8
	return processed, speed, nil
}

// GetCurrentSenseRaw reads a motor's raw current sense measurement.
func (d *Device) GetCurrentSenseRaw(motor byte) (uint16, error) {
	return d.GetVarU16(motor, protocol.MVarCurrentSenseRaw)
}

// GetCurrentSenseProcessed reads a motor's scaled current sense
// measurement. Multiply by CurrentSenseUnitsMilliamps to convert it to
// milliamps. 0xFFFF means no reading is available.
func (d *Device) GetCurrentSenseProcessed(motor byte) (uint16, error) {
	return d.GetVarU16(motor, protocol.MVarCurrentSenseProcessed)
}

// GetCurrentSenseOffset reads a motor's current sense offset
// calibration.
func (d *Device) GetCurrentSenseOffset(motor byte) (byte, error) {
	return d.GetVarU8(motor, protocol.MVarCurrentSenseOffset)
}

// SetCurrentSenseOffset sets a motor's current sense offset calibration,
// the raw reading the channel reports at zero current. Typical values
// are 10 for 5 V systems and 15 for 3.3 V systems.
func (d *Device) SetCurrentSenseOffset(motor, offset byte) error {
	return d.SetVariable(motor, protocol.MVarCurrentSenseOffset, uint16(offset))
}

// GetCurrentSenseMinimumDivisor reads a motor's current sense minimum
// divisor, in speed units.
func (d *Device) GetCurrentSenseMinimumDivisor(motor byte) (uint16, error) {
	v, err := d.GetVarU8(motor, protocol.MVarCurrentSenseMinimumDivisor)
	if err != nil {
		return 0, err
	}
	return uint16(v) << 2, nil
}

// SetCurrentSenseMinimumDivisor sets the smallest speed the controller
// will divide by when scaling a motor's current sense reading, in speed
// units. The variable has a resolution of 4 speed units.
func (d *Device) SetCurrentSenseMinimumDivisor(motor byte, speed uint16) error {
	return d.SetVariable(motor, protocol.MVarCurrentSenseMinimumDivisor, speed>>2)
}
