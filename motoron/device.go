package motoron

import (
	"errors"
	"fmt"

	"github.com/openhwlab/go-motoron/protocol"
)

// Device represents a connection to a Pololu Motoron motor controller
// over some Transport.
//
// A Device tracks the protocol options it believes are in effect on the
// controller so it knows whether to append CRC bytes to commands and
// expect them on responses. The tracked options start at the
// controller's power-on defaults; if the controller was reconfigured by
// someone else, call SetProtocolOptions or Reinitialize to get back in
// sync.
//
// Device is not safe for concurrent use: commands and their responses
// must not interleave on the wire.
type Device struct {
	transport       Transport
	config          Config
	protocolOptions byte
}

// New creates a new Device on the given transport.
//
// Example:
//
//	bus, _ := i2creg.Open("")
//	mc := motoron.New(motoron.NewI2CTransport(bus, motoron.DefaultI2CAddress))
func New(transport Transport, opts ...Option) *Device {
	if transport == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Device{
		transport:       transport,
		config:          cfg,
		protocolOptions: protocol.DefaultProtocolOptions,
	}
}

// GetFirmwareVersion reads the product ID and firmware version of the
// controller.
func (d *Device) GetFirmwareVersion() (protocol.FirmwareVersion, error) {
	payload, err := d.sendCommandAndReadResponse(protocol.BuildGetFirmwareVersion(), 4)
	if err != nil {
		return protocol.FirmwareVersion{}, err
	}
	return protocol.ParseFirmwareVersion(payload)
}

// SetProtocolOptions configures the controller's CRC and I2C general
// call behavior, and updates this object to match so subsequent commands
// keep working.
//
// The command is always sent with a CRC byte, which the controller
// accepts regardless of its current CRC setting.
func (d *Device) SetProtocolOptions(options byte) error {
	if err := d.transport.Send(protocol.BuildSetProtocolOptions(options), true); err != nil {
		return err
	}
	d.protocolOptions = options
	d.logDebug("protocol options set", "options", fmt.Sprintf("0b%03b", options))
	return nil
}

// SetProtocolOptionsLocally updates this object's record of the
// controller's protocol options without sending anything, for use when
// the controller was configured out of band.
func (d *Device) SetProtocolOptionsLocally(options byte) {
	d.protocolOptions = options
}

// ProtocolOptions returns the protocol options this object believes are
// in effect on the controller.
func (d *Device) ProtocolOptions() byte {
	return d.protocolOptions
}

// EnableCRC enables CRC bytes for both commands and responses.
func (d *Device) EnableCRC() error {
	return d.SetProtocolOptions(d.protocolOptions |
		1<<protocol.ProtocolOptionCRCForCommands |
		1<<protocol.ProtocolOptionCRCForResponses)
}

// DisableCRC disables CRC bytes for both commands and responses.
func (d *Device) DisableCRC() error {
	return d.SetProtocolOptions(d.protocolOptions &^ (1<<protocol.ProtocolOptionCRCForCommands |
		1<<protocol.ProtocolOptionCRCForResponses))
}

// EnableCRCForCommands makes the controller require a CRC byte at the
// end of each command.
func (d *Device) EnableCRCForCommands() error {
	return d.SetProtocolOptions(d.protocolOptions | 1<<protocol.ProtocolOptionCRCForCommands)
}

// DisableCRCForCommands makes the controller accept commands without a
// CRC byte.
func (d *Device) DisableCRCForCommands() error {
	return d.SetProtocolOptions(d.protocolOptions &^ (1 << protocol.ProtocolOptionCRCForCommands))
}

// EnableCRCForResponses makes the controller append a CRC byte to each
// response.
func (d *Device) EnableCRCForResponses() error {
	return d.SetProtocolOptions(d.protocolOptions | 1<<protocol.ProtocolOptionCRCForResponses)
}

// DisableCRCForResponses makes the controller send responses without a
// CRC byte.
func (d *Device) DisableCRCForResponses() error {
	return d.SetProtocolOptions(d.protocolOptions &^ (1 << protocol.ProtocolOptionCRCForResponses))
}

// EnableI2CGeneralCall makes the controller listen on the I2C general
// call address in addition to its own.
func (d *Device) EnableI2CGeneralCall() error {
	return d.SetProtocolOptions(d.protocolOptions | 1<<protocol.ProtocolOptionI2CGeneralCall)
}

// DisableI2CGeneralCall makes the controller stop listening on the I2C
// general call address.
func (d *Device) DisableI2CGeneralCall() error {
	return d.SetProtocolOptions(d.protocolOptions &^ (1 << protocol.ProtocolOptionI2CGeneralCall))
}

// Reinitialize resets most of the controller's variables to their
// power-on state, including its protocol options, and updates this
// object to match.
//
// The command is always sent with a CRC byte so it gets through
// regardless of the controller's current CRC setting.
func (d *Device) Reinitialize() error {
	if err := d.transport.Send(protocol.BuildReinitialize(), true); err != nil {
		return err
	}
	d.protocolOptions = protocol.DefaultProtocolOptions
	d.logInfo("reinitialized")
	return nil
}

// Reset does a full hardware reset of the controller, equivalent to
// briefly driving its RST pin low. Wait at least 5 ms afterwards before
// communicating with the controller again.
//
// A transport-level failure on this command is ignored: a controller
// with CRC disabled can execute the reset before acknowledging the CRC
// byte this method always sends, which surfaces as a NACK on I2C.
func (d *Device) Reset() error {
	err := d.transport.Send(protocol.BuildReset(), true)
	var te *TransportError
	if err != nil && !errors.As(err, &te) {
		return err
	}
	d.protocolOptions = protocol.DefaultProtocolOptions
	d.logInfo("reset")
	return nil
}

// sendCommand transmits a command, appending a CRC byte if the tracked
// protocol options call for one.
func (d *Device) sendCommand(cmd []byte) error {
	sendCRC := d.protocolOptions&(1<<protocol.ProtocolOptionCRCForCommands) != 0
	if err := d.transport.Send(cmd, sendCRC); err != nil {
		d.logError("command failed", "command", fmt.Sprintf("0x%02X", cmd[0]), "error", err)
		return err
	}
	return nil
}

// sendCommandAndReadResponse transmits a command and reads its response
// payload of exactly responseLength bytes.
func (d *Device) sendCommandAndReadResponse(cmd []byte, responseLength int) ([]byte, error) {
	if err := d.sendCommand(cmd); err != nil {
		return nil, err
	}
	verifyCRC := d.protocolOptions&(1<<protocol.ProtocolOptionCRCForResponses) != 0
	payload, err := d.transport.ReadResponse(responseLength, verifyCRC)
	if err != nil {
		d.logError("response read failed", "command", fmt.Sprintf("0x%02X", cmd[0]), "error", err)
		return nil, err
	}
	return payload, nil
}

// logDebug logs a debug message if a logger is configured.
func (d *Device) logDebug(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (d *Device) logInfo(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (d *Device) logError(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Error(msg, keysAndValues...)
	}
}
