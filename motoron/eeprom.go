package motoron

import (
	"fmt"
	"math"
	"time"

	"github.com/openhwlab/go-motoron/protocol"
)

// The EEPROM settings configure how the controller starts up: its device
// number, baud rate, and serial communication options. Writes only take
// effect after a reset, and only work while the controller's JMP1 pin is
// shorted to GND.
//
// The EEPROM is rated for 100,000 erase/write cycles, so avoid writing
// it in a loop.

// eepromSettleTime is how long an EEPROM write takes to complete on the
// device. Sending another command sooner than this can disrupt the
// write.
const eepromSettleTime = 6 * time.Millisecond

const serialOscillatorHz = 16000000

// validCommunicationOptions is the set of CommunicationOption* bits the
// firmware defines.
const validCommunicationOptions = 1<<protocol.CommunicationOption7BitResponses |
	1<<protocol.CommunicationOption14BitDeviceNumber |
	1<<protocol.CommunicationOptionErrIsDE

// ReadEEPROM reads length bytes from the controller's EEPROM, starting
// at offset. In 7-bit response mode at most 7 bytes can be read per
// call.
func (d *Device) ReadEEPROM(offset, length byte) ([]byte, error) {
	return d.sendCommandAndReadResponse(protocol.BuildReadEEPROM(offset, length), int(length))
}

// ReadEEPROMDeviceNumber reads the low byte of the device number stored
// in EEPROM. This is the I2C address or serial device number the
// controller uses when it starts up with JMP1 shorted to GND.
func (d *Device) ReadEEPROMDeviceNumber() (byte, error) {
	payload, err := d.ReadEEPROM(protocol.SettingDeviceNumber, 1)
	if err != nil {
		return 0, err
	}
	return payload[0], nil
}

// WriteEEPROM writes one byte of the controller's EEPROM and waits for
// the write to complete.
func (d *Device) WriteEEPROM(offset, value byte) error {
	if err := d.sendCommand(protocol.BuildWriteEEPROM(offset, value)); err != nil {
		return err
	}
	time.Sleep(eepromSettleTime)
	return nil
}

// WriteEEPROM16 writes a two-byte value to the controller's EEPROM.
func (d *Device) WriteEEPROM16(offset byte, value uint16) error {
	if err := d.WriteEEPROM(offset, byte(value)); err != nil {
		return err
	}
	return d.WriteEEPROM(offset+1, byte(value>>8))
}

// WriteEEPROMDeviceNumber changes the device number stored in EEPROM.
// The number is stored as two 7-bit halves so it can hold a 14-bit
// serial device number.
func (d *Device) WriteEEPROMDeviceNumber(number uint16) error {
	if err := d.WriteEEPROM(protocol.SettingDeviceNumber, byte(number)&0x7F); err != nil {
		return err
	}
	if err := d.WriteEEPROM(protocol.SettingDeviceNumber+1, byte(number>>7)&0x7F); err != nil {
		return err
	}
	d.logInfo("EEPROM device number written", "number", number)
	return nil
}

// WriteEEPROMAlternativeDeviceNumber changes the alternative serial
// device number stored in EEPROM and enables it. The high bit of the
// stored low byte is the enable flag.
func (d *Device) WriteEEPROMAlternativeDeviceNumber(number uint16) error {
	if err := d.WriteEEPROM(protocol.SettingAlternativeDeviceNumber, byte(number)&0x7F|0x80); err != nil {
		return err
	}
	return d.WriteEEPROM(protocol.SettingAlternativeDeviceNumber+1, byte(number>>7)&0x7F)
}

// WriteEEPROMDisableAlternativeDeviceNumber disables the alternative
// serial device number.
func (d *Device) WriteEEPROMDisableAlternativeDeviceNumber() error {
	if err := d.WriteEEPROM(protocol.SettingAlternativeDeviceNumber, 0); err != nil {
		return err
	}
	return d.WriteEEPROM(protocol.SettingAlternativeDeviceNumber+1, 0)
}

// WriteEEPROMCommunicationOptions changes the serial communication
// options stored in EEPROM. Unknown option bits are rejected rather than
// written, since the firmware's behavior with them is undefined.
func (d *Device) WriteEEPROMCommunicationOptions(options byte) error {
	if options&^byte(validCommunicationOptions) != 0 {
		return fmt.Errorf("unknown communication option bits 0x%02X", options&^byte(validCommunicationOptions))
	}
	return d.WriteEEPROM(protocol.SettingCommunicationOptions, options)
}

// WriteEEPROMBaudRate changes the serial baud rate stored in EEPROM.
// Rates outside the controller's supported range of protocol.MinBaudRate
// to protocol.MaxBaudRate are clamped. The rate is stored as a divider
// of the controller's 16 MHz oscillator, so rates it cannot divide to
// exactly are approximated.
func (d *Device) WriteEEPROMBaudRate(baud int) error {
	if baud < protocol.MinBaudRate {
		baud = protocol.MinBaudRate
	}
	if baud > protocol.MaxBaudRate {
		baud = protocol.MaxBaudRate
	}
	divider := uint16(math.Round(serialOscillatorHz / float64(baud)))
	return d.WriteEEPROM16(protocol.SettingBaudDivider, divider)
}

// WriteEEPROMResponseDelay changes the serial response delay stored in
// EEPROM, in microseconds. A non-zero delay gives an RS-485 adapter time
// to turn the bus around before the controller responds.
func (d *Device) WriteEEPROMResponseDelay(delay byte) error {
	return d.WriteEEPROM(protocol.SettingResponseDelay, delay)
}
