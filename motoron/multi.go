package motoron

import (
	"github.com/openhwlab/go-motoron/protocol"
)

// The multi-device commands coordinate a chain of controllers sharing a
// half-duplex RS-485 bus. They only work on a serial transport, and most
// users should run them through a Device whose transport uses the
// compact protocol so that every controller hears them.

// MultiDeviceErrorCheckStart sends a "Multi-device error check" command
// without reading any responses. Each addressed controller answers with
// one byte, in device number order, and stays quiet if an earlier
// controller reported an error.
func (d *Device) MultiDeviceErrorCheckStart(start, count uint16) error {
	sb, ok := d.transport.(serialBus)
	if !ok {
		return ErrSerialOnly
	}
	wide := sb.CommunicationOptions()&(1<<protocol.CommunicationOption14BitDeviceNumber) != 0
	cmd, err := protocol.BuildMultiDeviceErrorCheck(start, count, wide)
	if err != nil {
		return err
	}
	return d.sendCommand(cmd)
}

// MultiDeviceErrorCheck sends a "Multi-device error check" command and
// reads the responses, assuming each controller can see the responses of
// the others (as on a half-duplex RS-485 bus).
//
// It returns the number of controllers that indicated they have no
// errors. If the result is less than count, start plus the result is the
// device number of the first controller that reported an error, answered
// with an unexpected byte, or did not answer at all.
func (d *Device) MultiDeviceErrorCheck(start, count uint16) (int, error) {
	if err := d.MultiDeviceErrorCheckStart(start, count); err != nil {
		return 0, err
	}

	responses, err := d.transport.(serialBus).ReadAvailable(int(count))
	if err != nil {
		return 0, err
	}
	for i, v := range responses {
		if v != protocol.ErrorCheckContinue {
			return i, nil
		}
	}
	return len(responses), nil
}

// MultiDeviceWrite sends the same command to count controllers in one
// bus transaction, giving each its own slice of the data. The data
// length must be a multiple of count, with at most
// protocol.MaxMultiDeviceBytes bytes per controller. Each controller
// numbered start+i executes commandByte with data slice i as its
// arguments.
func (d *Device) MultiDeviceWrite(start, count uint16, commandByte byte, data []byte) error {
	sb, ok := d.transport.(serialBus)
	if !ok {
		return ErrSerialOnly
	}
	wide := sb.CommunicationOptions()&(1<<protocol.CommunicationOption14BitDeviceNumber) != 0
	cmd, err := protocol.BuildMultiDeviceWrite(start, count, wide, commandByte, data)
	if err != nil {
		return err
	}
	return d.sendCommand(cmd)
}
