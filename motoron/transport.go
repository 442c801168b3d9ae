package motoron

// Transport moves command and response bytes between a Device and a
// Motoron controller. Implementations handle the bus-specific framing:
// I2C transactions, or serial framing with optional device-number
// addressing and 7-bit response encoding.
type Transport interface {
	// Send transmits one command. The cmd bytes are the bare command as
	// produced by the protocol package; the transport adds any addressing
	// frame and, when sendCRC is true, the trailing CRC byte.
	Send(cmd []byte, sendCRC bool) error

	// ReadResponse reads one response with a decoded payload of exactly
	// length bytes. When verifyCRC is true the transport reads one extra
	// byte and verifies it as a CRC over the wire-format response,
	// returning a *protocol.CRCError on mismatch.
	ReadResponse(length int, verifyCRC bool) ([]byte, error)
}

// serialBus is the extra capability the serial transport provides beyond
// Transport. The multi-device operations need it: they read a variable
// number of single-byte responses from the shared bus, and their framing
// depends on the configured device number width.
type serialBus interface {
	Transport

	// ReadAvailable reads up to max bytes, returning whatever arrived
	// before the port's read timeout. A short result is not an error.
	ReadAvailable(max int) ([]byte, error)

	// CommunicationOptions returns the CommunicationOption* bits in
	// effect.
	CommunicationOptions() byte
}
