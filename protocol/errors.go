package protocol

import "fmt"

// CRCError indicates that a response's CRC byte did not match the CRC
// computed over the response payload.
type CRCError struct {
	Computed byte
	Received byte
}

func (e *CRCError) Error() string {
	return fmt.Sprintf("response CRC mismatch: computed 0x%02X, received 0x%02X", e.Computed, e.Received)
}
