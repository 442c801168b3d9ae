package motoron

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"

	"github.com/openhwlab/go-motoron/protocol"
)

// DefaultI2CAddress is the address a Motoron uses out of the box.
const DefaultI2CAddress = 16

// GeneralCallAddress is the I2C general call address. A transport using
// it reaches every Motoron on the bus that has the general call option
// enabled, but cannot read responses.
const GeneralCallAddress = 0

// defaultPreReadDelay gives the device time to prepare a response
// between the command write and the response read.
const defaultPreReadDelay = 500 * time.Microsecond

// I2CTransport communicates with a Motoron over an I2C bus.
type I2CTransport struct {
	bus          i2c.Bus
	addr         uint16
	preReadDelay time.Duration
}

// I2COption is a functional option for configuring an I2CTransport.
type I2COption func(*I2CTransport)

// WithPreReadDelay sets the pause between writing a command and reading
// its response. The default of 500 microseconds is enough for the device
// to prepare the response; buses with large clock stretching tolerance
// can lower it.
func WithPreReadDelay(d time.Duration) I2COption {
	return func(t *I2CTransport) {
		if d >= 0 {
			t.preReadDelay = d
		}
	}
}

// NewI2CTransport creates a transport that communicates with the device
// at the given 7-bit address on bus. Use GeneralCallAddress to broadcast
// write-only commands to every device on the bus.
func NewI2CTransport(bus i2c.Bus, address uint16, opts ...I2COption) *I2CTransport {
	if bus == nil {
		panic("bus cannot be nil")
	}

	t := &I2CTransport{
		bus:          bus,
		addr:         address,
		preReadDelay: defaultPreReadDelay,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Address returns the I2C address this transport communicates with.
func (t *I2CTransport) Address() uint16 {
	return t.addr
}

// Send implements Transport.
func (t *I2CTransport) Send(cmd []byte, sendCRC bool) error {
	buf := cmd
	if sendCRC {
		buf = append(append(make([]byte, 0, len(cmd)+1), cmd...), protocol.CalculateCRC(cmd))
	}
	if err := t.bus.Tx(t.addr, buf, nil); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}

// ReadResponse implements Transport. The general call address is
// write-only, so reading through a general call transport is an error.
func (t *I2CTransport) ReadResponse(length int, verifyCRC bool) ([]byte, error) {
	if t.addr == GeneralCallAddress {
		return nil, fmt.Errorf("cannot read a response via the general call address")
	}

	time.Sleep(t.preReadDelay)

	buf := make([]byte, length, length+1)
	if verifyCRC {
		buf = buf[:length+1]
	}
	if err := t.bus.Tx(t.addr, nil, buf); err != nil {
		return nil, &TransportError{Op: "read", Err: err}
	}

	if verifyCRC {
		return protocol.StripResponseCRC(buf)
	}
	return buf, nil
}
