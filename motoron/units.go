package motoron

import "math"

// VinSenseType identifies a controller family for the purpose of
// converting VIN readings to millivolts, since the families use
// different VIN divider resistors.
type VinSenseType int

const (
	// VinSenseMotoron256 covers the M*256 controllers.
	VinSenseMotoron256 VinSenseType = 0b0000
	// VinSenseMotoronHP covers the high-power controllers.
	VinSenseMotoronHP VinSenseType = 0b0010
	// VinSenseMotoron550 covers the M*550 controllers.
	VinSenseMotoron550 VinSenseType = 0b0011
)

// CurrentSenseType identifies a controller model for the purpose of
// interpreting current sense readings. The low two bits encode the
// model's current sense scale factor.
type CurrentSenseType int

const (
	CurrentSenseMotoron18v18 CurrentSenseType = 0b0001
	CurrentSenseMotoron24v14 CurrentSenseType = 0b0101
	CurrentSenseMotoron18v20 CurrentSenseType = 0b1010
	CurrentSenseMotoron24v16 CurrentSenseType = 0b1101
)

// VINMillivolts converts a raw VIN reading to millivolts. referenceMV is
// the controller's logic voltage in millivolts, typically 3300.
func VINMillivolts(raw uint16, referenceMV uint32, senseType VinSenseType) float64 {
	scale := 1047.0
	if senseType&1 != 0 {
		scale = 459.0
	}
	return float64(raw) * float64(referenceMV) / 1024 * scale / 47
}

// CalculateCurrentLimit converts a current limit in milliamps to the raw
// device units accepted by SetCurrentLimit.
//
// offset is the channel's raw current sense reading at zero current, the
// same value written with SetCurrentSenseOffset. It is typically 10 for
// 5 V systems and 15 for 3.3 V systems (50*1024/referenceMV), but varies
// between units.
func CalculateCurrentLimit(milliamps int, senseType CurrentSenseType, referenceMV int, offset int) uint16 {
	if milliamps > 1000000 {
		milliamps = 1000000
	}
	limit := float64(offset)*125/128 +
		float64(milliamps)*20/float64(referenceMV*(int(senseType)&3))
	if limit > 1000 {
		limit = 1000
	}
	return uint16(math.Floor(limit))
}

// CurrentSenseUnitsMilliamps returns the units of a processed current
// sense reading, in milliamps. Multiply a GetCurrentSenseProcessed
// result by this value to convert it to milliamps.
func CurrentSenseUnitsMilliamps(senseType CurrentSenseType, referenceMV int) float64 {
	return float64(referenceMV*(int(senseType)&3)) * 25 / 512
}
