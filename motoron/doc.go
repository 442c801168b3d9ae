// Package motoron drives Pololu Motoron multi-channel motor controllers
// over I2C or serial.
//
// A Device wraps a Transport and exposes the controller's full command
// set: motion commands, variable access, status flags, EEPROM settings,
// and the multi-device commands used to coordinate a chain of
// controllers on an RS-485 bus.
//
// Basic I2C usage:
//
//	bus, err := i2creg.Open("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mc := motoron.New(motoron.NewI2CTransport(bus, motoron.DefaultI2CAddress))
//
//	mc.Reinitialize()
//	mc.ClearResetFlag()
//	mc.SetSpeed(1, 400)
//
// Serial usage is the same with a serial transport:
//
//	port, err := motoron.OpenSerialPort("/dev/ttyS0", motoron.DefaultBaudRate, 100*time.Millisecond)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mc := motoron.New(motoron.NewSerialTransport(port, motoron.WithDeviceNumber(17)))
package motoron
