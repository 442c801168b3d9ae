// Package protocol implements the Motoron motor controller's wire
// protocol: command encoding, response decoding, CRC-7 integrity, and
// the framing used to address individual devices on a shared serial bus.
//
// The package is transport-agnostic. Build* functions return the exact
// command bytes without a CRC byte or serial framing; callers append
// CalculateCRC over the bytes they actually transmit and wrap commands
// with AddressFrame when addressing a device by number. Response
// decoding mirrors this layering: StripResponseCRC removes the outermost
// CRC byte, then Unpack7Bit undoes the 7-bit encoding when the device is
// configured for it.
package protocol
