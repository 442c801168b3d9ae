package protocol

// Frame markers and limits.
const (
	// FrameMarker is the byte that introduces an addressed serial frame
	// (Pololu protocol). Compact protocol commands never start with it, so
	// devices use it to recognize addressed frames on a shared bus.
	FrameMarker = 0xAA

	// Max7BitResponseLength is the longest response payload a device can
	// send when it is configured for 7-bit responses. The trailing byte
	// that carries the payload's high bits only has room for seven.
	Max7BitResponseLength = 7

	// MaxMultiDeviceBytes is the most data bytes a multi-device write can
	// carry per addressed device.
	MaxMultiDeviceBytes = 15
)

// Command opcodes.
const (
	// CmdGetFirmwareVersion requests the product ID and firmware version
	CmdGetFirmwareVersion = 0x87

	// CmdSetProtocolOptions configures CRC and general-call behavior
	CmdSetProtocolOptions = 0x8B

	// CmdReadEEPROM reads bytes from the device's EEPROM
	CmdReadEEPROM = 0x93

	// CmdWriteEEPROM writes one byte to the device's EEPROM
	CmdWriteEEPROM = 0x95

	// CmdReinitialize resets the device's variables to their defaults
	CmdReinitialize = 0x96

	// CmdReset performs a full hardware reset
	CmdReset = 0x99

	// CmdGetVariables reads a span of variable bytes
	CmdGetVariables = 0x9A

	// CmdSetVariable writes one 14-bit variable
	CmdSetVariable = 0x9C

	// CmdCoastNow makes all motors start coasting immediately
	CmdCoastNow = 0xA5

	// CmdClearMotorFault attempts recovery from motor driver faults
	CmdClearMotorFault = 0xA6

	// CmdClearLatchedStatusFlags clears bits in the status flags variable
	CmdClearLatchedStatusFlags = 0xA9

	// CmdSetLatchedStatusFlags sets bits in the status flags variable
	CmdSetLatchedStatusFlags = 0xAC

	// CmdSetBraking sets a motor's target brake amount
	CmdSetBraking = 0xB1

	// CmdSetBrakingNow sets a motor's brake amount, bypassing deceleration
	CmdSetBrakingNow = 0xB2

	// CmdSetSpeed sets a motor's target speed
	CmdSetSpeed = 0xD1

	// CmdSetSpeedNow sets a motor's target and current speed
	CmdSetSpeedNow = 0xD2

	// CmdSetBufferedSpeed stores a speed for use by a later command
	CmdSetBufferedSpeed = 0xD4

	// CmdSetAllSpeeds sets the target speeds of every motor at once
	CmdSetAllSpeeds = 0xE1

	// CmdSetAllSpeedsNow sets target and current speeds of every motor
	CmdSetAllSpeedsNow = 0xE2

	// CmdSetAllBufferedSpeeds stores speeds for every motor
	CmdSetAllBufferedSpeeds = 0xE4

	// CmdSetAllSpeedsUsingBuffers applies the buffered speeds as targets
	CmdSetAllSpeedsUsingBuffers = 0xF0

	// CmdSetAllSpeedsNowUsingBuffers applies the buffered speeds immediately
	CmdSetAllSpeedsNowUsingBuffers = 0xF3

	// CmdMultiDeviceErrorCheck asks a range of devices to report errors
	CmdMultiDeviceErrorCheck = 0xF4

	// CmdResetCommandTimeout resets the command timeout counter
	CmdResetCommandTimeout = 0xF5

	// CmdMultiDeviceWrite carries a command to a range of devices
	CmdMultiDeviceWrite = 0xF9
)

// Protocol option bits, set with the "Set protocol options" command.
const (
	// ProtocolOptionCRCForCommands makes the device require a CRC byte at
	// the end of every command
	ProtocolOptionCRCForCommands = 0

	// ProtocolOptionCRCForResponses makes the device append a CRC byte to
	// every response
	ProtocolOptionCRCForResponses = 1

	// ProtocolOptionI2CGeneralCall makes the device listen on I2C address 0
	ProtocolOptionI2CGeneralCall = 2
)

// DefaultProtocolOptions is the device's protocol configuration after a
// power-up, reset, or reinitialize: CRC in both directions and the I2C
// general call address all enabled.
const DefaultProtocolOptions = 1<<ProtocolOptionCRCForCommands |
	1<<ProtocolOptionCRCForResponses |
	1<<ProtocolOptionI2CGeneralCall

// Communication option bits, stored in EEPROM. These only affect devices
// with a serial interface.
const (
	// CommunicationOption7BitResponses makes responses carry payload high
	// bits in a trailing byte so every response byte has its MSB clear
	CommunicationOption7BitResponses = 0

	// CommunicationOption14BitDeviceNumber selects two-byte device numbers
	// in addressed frames
	CommunicationOption14BitDeviceNumber = 1

	// CommunicationOptionErrIsDE repurposes the ERR pin as an RS-485
	// driver-enable output
	CommunicationOptionErrIsDE = 2
)

// Status flag bit positions in the 16-bit status flags variable.
// Bits 0 through 5 are latched: once set they stay set until explicitly
// cleared. The remaining bits reflect live state.
const (
	StatusFlagProtocolError         = 0
	StatusFlagCRCError              = 1
	StatusFlagCommandTimeoutLatched = 2
	StatusFlagMotorFaultLatched     = 3
	StatusFlagNoPowerLatched        = 4
	StatusFlagUARTError             = 5
	StatusFlagReset                 = 9
	StatusFlagCommandTimeout        = 10
	StatusFlagMotorFaulting         = 11
	StatusFlagNoPower               = 12
	StatusFlagErrorActive           = 13
	StatusFlagMotorOutputEnabled    = 14
	StatusFlagMotorDriving          = 15
)

// DefaultErrorMask is the reset value of the "Error mask" variable: the
// command timeout and reset flags are treated as errors.
const DefaultErrorMask uint16 = 1<<StatusFlagCommandTimeout | 1<<StatusFlagReset

// General variable offsets (motor index 0).
const (
	// VarStatusFlags is the 16-bit status flags variable
	VarStatusFlags = 0

	// VarVINVoltage is the raw VIN measurement (16-bit)
	VarVINVoltage = 2

	// VarCommandTimeout is the command timeout in units of 4 ms (16-bit)
	VarCommandTimeout = 4

	// VarErrorResponse selects how the motors stop while an error is active
	VarErrorResponse = 6

	// VarErrorMask is the 16-bit mask of status flags treated as errors
	VarErrorMask = 8

	// VarJumperState reports the sampled state of the configuration jumpers
	VarJumperState = 10
)

// Motor-specific variable offsets (motor index 1 and up).
const (
	MVarTargetSpeed                 = 0
	MVarTargetBrakeAmount           = 2
	MVarCurrentSpeed                = 4
	MVarBufferedSpeed               = 6
	MVarPWMMode                     = 8
	MVarMaxAccelForward             = 10
	MVarMaxAccelReverse             = 12
	MVarMaxDecelForward             = 14
	MVarMaxDecelReverse             = 16
	MVarMaxDecelTmp                 = 18
	MVarStartingSpeedForward        = 20
	MVarStartingSpeedReverse        = 22
	MVarDirectionChangeDelayForward = 24
	MVarDirectionChangeDelayReverse = 25
	MVarCurrentLimit                = 26
	MVarCurrentSenseRaw             = 28
	MVarCurrentSenseSpeed           = 30
	MVarCurrentSenseProcessed       = 32
	MVarCurrentSenseOffset          = 34
	MVarCurrentSenseMinimumDivisor  = 35
)

// Error response values for the "Error response" variable.
const (
	// ErrorResponseCoast decelerates to zero, then coasts
	ErrorResponseCoast = 0

	// ErrorResponseBrake decelerates to zero, then brakes
	ErrorResponseBrake = 1

	// ErrorResponseCoastNow coasts immediately
	ErrorResponseCoastNow = 2

	// ErrorResponseBrakeNow brakes immediately
	ErrorResponseBrakeNow = 3
)

// PWM mode values.
const (
	PWMModeDefault = 0 // 20 kHz
	PWMMode1kHz    = 1
	PWMMode2kHz    = 2
	PWMMode4kHz    = 3
	PWMMode5kHz    = 4
	PWMMode10kHz   = 5
	PWMMode20kHz   = 6
	PWMMode40kHz   = 7
	PWMMode80kHz   = 8
)

// ClearMotorFaultUnconditional is the flag bit that makes "Clear motor
// fault" attempt recovery even when no fault is currently occurring.
const ClearMotorFaultUnconditional = 0

// Multi-device error check response bytes. Each addressed device answers
// with a single byte; ErrorCheckContinue means it has no active errors.
const (
	ErrorCheckContinue = 0x3C
	ErrorCheckDone     = 0x52
)

// EEPROM setting offsets.
const (
	// SettingDeviceNumber is the device number used when JMP1 is shorted
	// at startup (two bytes, 7 bits each)
	SettingDeviceNumber = 1

	// SettingAlternativeDeviceNumber is a second serial device number; the
	// high bit of the first byte enables it
	SettingAlternativeDeviceNumber = 3

	// SettingCommunicationOptions holds the CommunicationOption* bits
	SettingCommunicationOptions = 5

	// SettingBaudDivider is the 16-bit UART clock divider
	SettingBaudDivider = 6

	// SettingResponseDelay is the serial response delay in microseconds
	SettingResponseDelay = 8
)

// Baud rate limits imposed by the 16-bit clock divider on a 16 MHz clock.
const (
	MinBaudRate = 245
	MaxBaudRate = 1000000
)
