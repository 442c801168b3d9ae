package protocol

// crcPolynomial is the CRC-7 polynomial x^7 + x^3 + 1, bit-reversed for
// LSB-first processing. The device computes the same checksum over the
// command bytes it receives, so this must match its firmware bit for bit.
const crcPolynomial = 0x91

// CalculateCRC computes the 7-bit CRC byte the device uses to validate
// commands and protect responses. The result always has its high bit
// clear.
//
// Note that the check byte is not a self-cancelling CRC: the device
// compares the received byte against a fresh computation over the payload
// rather than expecting CRC(payload + crc) == 0.
func CalculateCRC(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc ^= crcPolynomial
			}
			crc >>= 1
		}
	}
	return crc
}
