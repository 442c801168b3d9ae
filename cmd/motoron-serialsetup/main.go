// motoron-serialsetup is an interactive utility for configuring the
// device number, baud rate, and other EEPROM settings of Motoron
// controllers with a UART serial interface.
//
// The Motoron must be wired so it can receive serial commands and must
// be operating at a known baud rate. If you are not sure what baud rate
// it is using, short JMP1 to GND and power cycle or reset it to make it
// use 9600 baud.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tarm/serial"
	"github.com/urfave/cli"

	"github.com/openhwlab/go-motoron/motoron"
	"github.com/openhwlab/go-motoron/protocol"
)

const helpMessage = `
Command          | Summary
-----------------|----------------------------------------------------------
a [NUM] [ALTNUM] | Write all settings to EEPROM (JMP1 must be low).
r                | Reset devices.
i                | Identify devices.
b BAUD           | Use a different baud rate to communicate.
o [OPTS]         | Use different communication options (0-3; no arg cycles).
n                | Use 115200 baud, 8-bit responses, 7-bit device numbers.
j                | Use 9600 baud, 8-bit responses, 7-bit device numbers.
k                | Use the options & baud rate we're assigning to devices.
h                | Show this help.
q                | Quit.

"a" writes the device number NUM (or an automatically chosen one), the
alternative device number ALTNUM (or disables it), and the assignment
baud rate and communication options to every Motoron that hears the
compact protocol command and has JMP1 low. The settings take effect
after a reset ("r").
`

// assignment holds the settings the "a" command writes to devices,
// taken from command line flags.
type assignment struct {
	baudRate      int
	commOptions   byte
	responseDelay byte
}

func (a assignment) maxDeviceNumber() uint16 {
	if a.commOptions&(1<<protocol.CommunicationOption14BitDeviceNumber) != 0 {
		return 0x3FFF
	}
	return 0x7F
}

// session holds the open port and the communication state, which the
// b/o/n/j/k commands switch around while hunting for a device.
type session struct {
	portName   string
	baudRate   int
	port       *serial.Port
	tr         *motoron.SerialTransport
	mc         *motoron.Device
	assign     assignment
	lastDevice uint16
}

// reopen opens the serial port at the session's current baud rate,
// replacing any open port. The transport's communication options and
// addressing mode survive the swap.
func (s *session) reopen() error {
	var commOptions byte
	deviceNumber, addressed := uint16(0), false
	if s.tr != nil {
		commOptions = s.tr.CommunicationOptions()
		deviceNumber, addressed = s.tr.DeviceNumber()
	}
	if s.port != nil {
		s.port.Close()
	}

	port, err := motoron.OpenSerialPort(s.portName, s.baudRate, 10*time.Millisecond)
	if err != nil {
		return err
	}
	s.port = port
	s.tr = motoron.NewSerialTransport(port)
	s.tr.SetCommunicationOptions(commOptions)
	if addressed {
		s.tr.SetDeviceNumber(deviceNumber)
	}
	s.mc = motoron.New(s.tr)
	return nil
}

func (s *session) printCommunicationSettings() {
	fmt.Printf("%d baud", s.baudRate)
	if s.tr.CommunicationOptions()&(1<<protocol.CommunicationOption14BitDeviceNumber) != 0 {
		fmt.Print(", 14-bit device numbers")
	} else {
		fmt.Print(", 7-bit device numbers")
	}
	if s.tr.CommunicationOptions()&(1<<protocol.CommunicationOption7BitResponses) != 0 {
		fmt.Print(", 7-bit responses")
	} else {
		fmt.Print(", 8-bit responses")
	}
}

func (s *session) printCommunicationSettingsLine() {
	fmt.Print("Using ")
	s.printCommunicationSettings()
	fmt.Println(".")
}

// assignAllSettings handles the "a" command: it writes the device
// number, alternative device number, baud rate, communication options,
// and response delay to EEPROM using the compact protocol.
func (s *session) assignAllSettings(args []string) {
	maxNumber := s.assign.maxDeviceNumber()

	deviceNumber := int64(-1)
	altNumber := int64(-1)
	var err error
	if len(args) >= 1 {
		if deviceNumber, err = strconv.ParseInt(args[0], 0, 32); err != nil {
			fmt.Println("Invalid device number argument.")
			return
		}
	}
	if len(args) >= 2 {
		if altNumber, err = strconv.ParseInt(args[1], 0, 32); err != nil {
			fmt.Println("Invalid alternative device number argument.")
			return
		}
	}

	if deviceNumber == -1 {
		deviceNumber = int64((s.lastDevice + 1) & maxNumber)
	}
	if deviceNumber < 0 || deviceNumber > int64(maxNumber) {
		fmt.Println("Invalid device number.")
		return
	}
	if altNumber < -1 || altNumber > int64(maxNumber) {
		fmt.Println("Invalid alternative device number.")
		return
	}

	s.tr.UseCompactProtocol()
	if err := s.mc.EnableCRC(); err != nil {
		fmt.Println("Error:", err)
		return
	}
	if err := s.mc.WriteEEPROMDeviceNumber(uint16(deviceNumber)); err != nil {
		fmt.Println("Error:", err)
		return
	}
	if altNumber == -1 {
		err = s.mc.WriteEEPROMDisableAlternativeDeviceNumber()
	} else {
		err = s.mc.WriteEEPROMAlternativeDeviceNumber(uint16(altNumber))
	}
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if err := s.mc.WriteEEPROMBaudRate(s.assign.baudRate); err != nil {
		fmt.Println("Error:", err)
		return
	}
	if err := s.mc.WriteEEPROMCommunicationOptions(s.assign.commOptions); err != nil {
		fmt.Println("Error:", err)
		return
	}
	if err := s.mc.WriteEEPROMResponseDelay(s.assign.responseDelay); err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Assigned device number %d", deviceNumber)
	if altNumber != -1 {
		fmt.Printf(" and %d", altNumber)
	}
	fmt.Printf(", %d baud.\n", s.assign.baudRate)
	s.lastDevice = uint16(deviceNumber)
}

func (s *session) reset() {
	fmt.Println("Reset")
	s.tr.UseCompactProtocol()
	if err := s.mc.Reset(); err != nil {
		fmt.Println("Error:", err)
	}
}

var jumperStrings = [4]string{"err", "on", "off", "err"}

func (s *session) printDeviceInfo(deviceNumber uint16) error {
	if err := s.mc.EnableCRC(); err != nil {
		return err
	}
	v, err := s.mc.GetFirmwareVersion()
	if err != nil {
		return err
	}
	jumperState, err := s.mc.GetJumperState()
	if err != nil {
		return err
	}
	// Fetch the EEPROM in two requests because the maximum payload size
	// in 7-bit response mode is 7 bytes.
	eeprom, err := s.mc.ReadEEPROM(1, 4)
	if err != nil {
		return err
	}
	rest, err := s.mc.ReadEEPROM(5, 4)
	if err != nil {
		return err
	}
	eeprom = append(eeprom, rest...)

	fmt.Printf("%3d: product=0x%04X version=%x.%02x JMP1=%s EEPROM=% X\n",
		deviceNumber, v.ProductID, v.MajorFWBCD, v.MinorFWBCD,
		jumperStrings[jumperState&3], eeprom)
	return nil
}

// identifyDevices tries every device number with the current
// communication settings and prints information about each Motoron it
// finds. With 14-bit device numbers this can take several minutes.
func (s *session) identifyDevices() {
	maxNumber := uint16(0x7F)
	if s.tr.CommunicationOptions()&(1<<protocol.CommunicationOption14BitDeviceNumber) != 0 {
		maxNumber = 0x3FFF
	}

	fmt.Print("Identifying Motoron controllers (")
	s.printCommunicationSettings()
	fmt.Println(")...")
	for n := uint16(0); n <= maxNumber; n++ {
		s.tr.SetDeviceNumber(n)
		if err := s.printDeviceInfo(n); err != nil {
			continue
		}
	}
	fmt.Println("Done.")
	s.tr.UseCompactProtocol()
}

func (s *session) setBaudRate(arg string) {
	baud, err := strconv.Atoi(arg)
	if err != nil || baud < protocol.MinBaudRate || baud > protocol.MaxBaudRate {
		fmt.Println("Invalid baud rate.")
		return
	}
	s.baudRate = baud
	if err := s.reopen(); err != nil {
		fmt.Println("Error:", err)
		return
	}
	s.printCommunicationSettingsLine()
}

func (s *session) setCommunicationOptions(arg string) {
	if opts, err := strconv.ParseUint(arg, 0, 8); err == nil {
		s.tr.SetCommunicationOptions(byte(opts))
	} else {
		// No argument: cycle through the four combinations of response
		// size and device number width.
		s.tr.SetCommunicationOptions((s.tr.CommunicationOptions() + 1) & 3)
	}
	s.printCommunicationSettingsLine()
}

func (s *session) useSettings(baud int, options byte) {
	s.baudRate = baud
	if err := s.reopen(); err != nil {
		fmt.Println("Error:", err)
		return
	}
	s.tr.SetCommunicationOptions(options)
	s.printCommunicationSettingsLine()
}

func (s *session) processLine(line string) bool {
	if line == "" {
		return true
	}
	arg := strings.TrimSpace(line[1:])
	switch line[0] {
	case 'a':
		s.assignAllSettings(strings.Fields(arg))
	case 'r':
		s.reset()
	case 'i':
		s.identifyDevices()
	case 'b':
		s.setBaudRate(arg)
	case 'o':
		s.setCommunicationOptions(arg)
	case 'n':
		s.useSettings(115200, 0)
	case 'j':
		s.useSettings(9600, 0)
	case 'k':
		s.useSettings(s.assign.baudRate, s.assign.commOptions)
	case 'h', 'H', '?':
		fmt.Print(helpMessage, "\n")
	case 'q':
		return false
	default:
		fmt.Println("Error: unrecognized command. Type h for help.")
	}
	return true
}

func run(c *cli.Context) error {
	assignBaud := c.Int("assign-baud")
	if assignBaud < protocol.MinBaudRate || assignBaud > protocol.MaxBaudRate {
		return fmt.Errorf("invalid assignment baud rate %d", assignBaud)
	}

	var commOptions byte
	if c.Bool("assign-7bit-responses") {
		commOptions |= 1 << protocol.CommunicationOption7BitResponses
	}
	if c.Bool("assign-14bit-device-numbers") {
		commOptions |= 1 << protocol.CommunicationOption14BitDeviceNumber
	}
	if c.Bool("assign-err-is-de") {
		commOptions |= 1 << protocol.CommunicationOptionErrIsDE
	}

	s := &session{
		portName: c.String("port"),
		baudRate: c.Int("baud"),
		assign: assignment{
			baudRate:      assignBaud,
			commOptions:   commOptions,
			responseDelay: byte(c.Uint("assign-response-delay")),
		},
		lastDevice: 16,
	}
	if err := s.reopen(); err != nil {
		return err
	}
	defer s.port.Close()

	fmt.Println("Motoron Serial Setup Utility")
	fmt.Println()
	fmt.Println(`Type "h" for help.`)
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Enter command: ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		if !s.processLine(strings.TrimSpace(scanner.Text())) {
			return nil
		}
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "motoron-serialsetup"
	app.Usage = "interactively configure the EEPROM settings of serial Motoron controllers"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "port",
			Value: "/dev/serial0",
			Usage: "serial port connected to the Motorons",
		},
		cli.IntFlag{
			Name:  "baud",
			Value: motoron.DefaultBaudRate,
			Usage: "baud rate to start communicating at",
		},
		cli.IntFlag{
			Name:  "assign-baud",
			Value: motoron.DefaultBaudRate,
			Usage: "baud rate the \"a\" command writes to EEPROM",
		},
		cli.BoolFlag{
			Name:  "assign-7bit-responses",
			Usage: "make assigned devices send 7-bit responses",
		},
		cli.BoolFlag{
			Name:  "assign-14bit-device-numbers",
			Usage: "make assigned devices use 14-bit device numbers",
		},
		cli.BoolFlag{
			Name:  "assign-err-is-de",
			Usage: "make assigned devices use the ERR pin as an RS-485 driver enable",
		},
		cli.UintFlag{
			Name:  "assign-response-delay",
			Usage: "serial response delay in microseconds the \"a\" command writes",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
