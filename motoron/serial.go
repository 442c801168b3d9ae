package motoron

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"

	"github.com/openhwlab/go-motoron/protocol"
)

// DefaultBaudRate is the baud rate a Motoron uses out of the box.
const DefaultBaudRate = 115200

// OpenSerialPort opens a serial port configured for talking to a
// Motoron. The read timeout bounds how long response reads block; the
// device normally answers within a few milliseconds, so 100 ms is a
// comfortable default.
func OpenSerialPort(name string, baud int, readTimeout time.Duration) (*serial.Port, error) {
	return serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: readTimeout,
	})
}

// SerialTransport communicates with one or more Motorons over a serial
// port or RS-485 bus.
//
// With a device number configured it uses the Pololu protocol, wrapping
// each command in an addressed frame so it can share the bus with other
// devices. Without one it uses the compact protocol, sending bare
// commands that every listening device executes.
type SerialTransport struct {
	port            io.ReadWriter
	deviceNumber    uint16
	useDeviceNumber bool
	commOptions     byte
}

// SerialOption is a functional option for configuring a SerialTransport.
type SerialOption func(*SerialTransport)

// WithDeviceNumber makes the transport address one device using the
// Pololu protocol instead of the compact protocol.
func WithDeviceNumber(n uint16) SerialOption {
	return func(t *SerialTransport) {
		t.deviceNumber = n
		t.useDeviceNumber = true
	}
}

// With7BitResponses configures the transport for devices whose EEPROM
// communication options select 7-bit response encoding.
func With7BitResponses() SerialOption {
	return func(t *SerialTransport) {
		t.commOptions |= 1 << protocol.CommunicationOption7BitResponses
	}
}

// With14BitDeviceNumbers configures the transport for devices whose
// EEPROM communication options select two-byte device numbers.
func With14BitDeviceNumbers() SerialOption {
	return func(t *SerialTransport) {
		t.commOptions |= 1 << protocol.CommunicationOption14BitDeviceNumber
	}
}

// NewSerialTransport creates a transport on an open serial port. With no
// options it uses the compact protocol, 8-bit responses, and 7-bit
// device numbers, matching a device with factory EEPROM settings.
func NewSerialTransport(port io.ReadWriter, opts ...SerialOption) *SerialTransport {
	if port == nil {
		panic("port cannot be nil")
	}

	t := &SerialTransport{port: port}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetDeviceNumber changes which device the transport addresses. It
// switches the transport to the Pololu protocol if it was using the
// compact protocol.
func (t *SerialTransport) SetDeviceNumber(n uint16) {
	t.deviceNumber = n
	t.useDeviceNumber = true
}

// UseCompactProtocol makes the transport send bare commands with no
// addressing frame. Every device on the bus will execute them.
func (t *SerialTransport) UseCompactProtocol() {
	t.useDeviceNumber = false
}

// DeviceNumber returns the configured device number and whether the
// transport is addressing devices at all.
func (t *SerialTransport) DeviceNumber() (uint16, bool) {
	return t.deviceNumber, t.useDeviceNumber
}

// Expect7BitResponses configures the transport for devices that send
// 7-bit encoded responses.
func (t *SerialTransport) Expect7BitResponses() {
	t.commOptions |= 1 << protocol.CommunicationOption7BitResponses
}

// Expect8BitResponses configures the transport for devices that send
// responses in the normal 8-bit format, which is the default.
func (t *SerialTransport) Expect8BitResponses() {
	t.commOptions &^= 1 << protocol.CommunicationOption7BitResponses
}

// Use14BitDeviceNumbers makes the transport send two-byte device numbers
// in Pololu protocol frames.
func (t *SerialTransport) Use14BitDeviceNumbers() {
	t.commOptions |= 1 << protocol.CommunicationOption14BitDeviceNumber
}

// Use7BitDeviceNumbers makes the transport send one-byte device numbers,
// which is the default.
func (t *SerialTransport) Use7BitDeviceNumbers() {
	t.commOptions &^= 1 << protocol.CommunicationOption14BitDeviceNumber
}

// SetCommunicationOptions replaces all CommunicationOption* bits at
// once. This must match the communication options stored in the EEPROM
// of the devices on the bus.
func (t *SerialTransport) SetCommunicationOptions(options byte) {
	t.commOptions = options
}

// CommunicationOptions returns the CommunicationOption* bits in effect.
func (t *SerialTransport) CommunicationOptions() byte {
	return t.commOptions
}

func (t *SerialTransport) expect7Bit() bool {
	return t.commOptions&(1<<protocol.CommunicationOption7BitResponses) != 0
}

func (t *SerialTransport) wideDeviceNumbers() bool {
	return t.commOptions&(1<<protocol.CommunicationOption14BitDeviceNumber) != 0
}

// Send implements Transport.
func (t *SerialTransport) Send(cmd []byte, sendCRC bool) error {
	frame := cmd
	if t.useDeviceNumber {
		frame = protocol.AddressFrame(t.deviceNumber, t.wideDeviceNumbers(), cmd)
	}
	if sendCRC {
		frame = append(append(make([]byte, 0, len(frame)+1), frame...), protocol.CalculateCRC(frame))
	}

	if _, err := t.port.Write(frame); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}

// ReadResponse implements Transport.
//
// In 7-bit response mode the device cannot encode payloads longer than
// protocol.Max7BitResponseLength bytes, so longer requests fail before
// any bytes are read.
func (t *SerialTransport) ReadResponse(length int, verifyCRC bool) ([]byte, error) {
	encoded7Bit := t.expect7Bit()
	if encoded7Bit && length > protocol.Max7BitResponseLength {
		return nil, fmt.Errorf("response payloads longer than %d bytes are not supported in 7-bit response mode", protocol.Max7BitResponseLength)
	}

	wireLength := length
	if encoded7Bit {
		wireLength++
	}
	if verifyCRC {
		wireLength++
	}

	raw := make([]byte, wireLength)
	if err := t.readFull(raw); err != nil {
		return nil, err
	}

	payload := raw
	if verifyCRC {
		var err error
		if payload, err = protocol.StripResponseCRC(payload); err != nil {
			return nil, err
		}
	}
	if encoded7Bit {
		return protocol.Unpack7Bit(payload)
	}
	return payload, nil
}

// ReadAvailable reads up to max bytes, stopping at the port's read
// timeout. It returns whatever arrived; a short result is not an error.
func (t *SerialTransport) ReadAvailable(max int) ([]byte, error) {
	buf := make([]byte, max)
	total := 0
	for total < max {
		n, err := t.port.Read(buf[total:])
		total += n
		if err == io.EOF || (n == 0 && err == nil) {
			break
		}
		if err != nil {
			return nil, &TransportError{Op: "read", Err: err}
		}
	}
	return buf[:total], nil
}

// readFull reads exactly len(buf) bytes. A read that returns no bytes
// means the port's read timeout expired without a response.
func (t *SerialTransport) readFull(buf []byte) error {
	total := 0
	for total < len(buf) {
		n, err := t.port.Read(buf[total:])
		total += n
		if n == 0 && (err == nil || err == io.EOF) {
			if total == 0 {
				return &TransportError{Op: "read", Err: ErrReadTimeout}
			}
			return &TransportError{Op: "read", Err: &ShortResponseError{Expected: len(buf), Actual: total}}
		}
		if err != nil && err != io.EOF {
			return &TransportError{Op: "read", Err: err}
		}
	}
	return nil
}
