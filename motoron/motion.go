package motoron

import "github.com/openhwlab/go-motoron/protocol"

// Motor speeds range from -800 (full speed reverse) to 800 (full speed
// forward); braking amounts range from 0 (coast) to 800 (full brake).
// The controller clips out-of-range values rather than rejecting them.

// SetSpeed sets a motor's target speed. The motor moves toward the
// target obeying the acceleration and deceleration limits.
func (d *Device) SetSpeed(motor byte, speed int16) error {
	return d.sendCommand(protocol.BuildSetSpeed(motor, speed))
}

// SetSpeedNow sets a motor's target and current speed, ignoring the
// acceleration and deceleration limits.
func (d *Device) SetSpeedNow(motor byte, speed int16) error {
	return d.sendCommand(protocol.BuildSetSpeedNow(motor, speed))
}

// SetBufferedSpeed stores a speed for a motor without changing anything.
// A later SetAllSpeedsUsingBuffers applies it, so several motors can
// change speed in the same update period.
func (d *Device) SetBufferedSpeed(motor byte, speed int16) error {
	return d.sendCommand(protocol.BuildSetBufferedSpeed(motor, speed))
}

// SetAllSpeeds sets the target speed of every motor in one command. The
// number of speeds must equal the controller's channel count or the
// controller reports a protocol error.
func (d *Device) SetAllSpeeds(speeds ...int16) error {
	return d.sendCommand(protocol.BuildSetAllSpeeds(speeds...))
}

// SetAllSpeedsNow sets the target and current speed of every motor,
// ignoring the acceleration and deceleration limits.
func (d *Device) SetAllSpeedsNow(speeds ...int16) error {
	return d.sendCommand(protocol.BuildSetAllSpeedsNow(speeds...))
}

// SetAllBufferedSpeeds stores a speed for every motor without changing
// anything.
func (d *Device) SetAllBufferedSpeeds(speeds ...int16) error {
	return d.sendCommand(protocol.BuildSetAllBufferedSpeeds(speeds...))
}

// SetAllSpeedsUsingBuffers sets each motor's target speed to its
// buffered speed.
func (d *Device) SetAllSpeedsUsingBuffers() error {
	return d.sendCommand(protocol.BuildSetAllSpeedsUsingBuffers())
}

// SetAllSpeedsNowUsingBuffers sets each motor's target and current speed
// to its buffered speed, ignoring the acceleration and deceleration
// limits.
func (d *Device) SetAllSpeedsNowUsingBuffers() error {
	return d.sendCommand(protocol.BuildSetAllSpeedsNowUsingBuffers())
}

// SetBraking sets a motor's target braking amount. The motor decelerates
// to zero obeying the deceleration limits, then brakes with the given
// strength.
func (d *Device) SetBraking(motor byte, amount int16) error {
	return d.sendCommand(protocol.BuildSetBraking(motor, amount))
}

// SetBrakingNow sets a motor's current speed to zero and brakes with the
// given strength, ignoring the deceleration limits.
func (d *Device) SetBrakingNow(motor byte, amount int16) error {
	return d.sendCommand(protocol.BuildSetBrakingNow(motor, amount))
}

// CoastNow lets every motor coast immediately.
func (d *Device) CoastNow() error {
	return d.sendCommand(protocol.BuildCoastNow())
}

// ResetCommandTimeout tells the controller we are still here without
// changing anything. Call this periodically when the command timeout is
// enabled and no other commands are being sent.
func (d *Device) ResetCommandTimeout() error {
	return d.sendCommand(protocol.BuildResetCommandTimeout())
}
