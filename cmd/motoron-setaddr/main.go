// motoron-setaddr is an interactive utility for setting the I2C
// addresses of one or more Motoron controllers.
//
// To assign an address, short the JMP1 pin of the Motoron you wish to
// change to GND, then type "a" followed by the address in decimal, or
// "a" by itself to have the program pick the next free address. The
// assignment is sent via the I2C general call address, so it reaches
// every Motoron whose general call option is enabled, but only Motorons
// with JMP1 low obey it.
//
// The new address takes effect when the Motoron is reset: power cycle
// it, drive its RST line low, or type "r".
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/openhwlab/go-motoron/motoron"
)

const helpMessage = `
a [NUM] | Assign address NUM (decimal) to the Motoron with JMP1 low.
        | With no number, automatically pick the next free address.
r       | Reset all Motorons via the general call address.
s       | Scan the bus for responding devices.
i       | Identify Motoron devices on the bus.
h       | Show this help.
q       | Quit.

Warning: the "a" and "r" commands use the I2C general call address (0),
and the "i" command sends Motoron commands to every device on the bus.
If you have devices that are not Motorons, these commands could cause
undesired behavior.
`

// session holds the bus connection and the address auto-assignment
// state.
type session struct {
	bus i2c.Bus

	// broadcast reaches every Motoron listening on the general call
	// address.
	broadcast *motoron.Device

	// nextAddress is the address the next bare "a" command will try.
	nextAddress uint16
}

// scanAddress reports whether a device acknowledges an empty write at
// the given address.
func (s *session) scanAddress(address uint16) bool {
	if address >= 128 {
		return false
	}
	return s.bus.Tx(address, []byte{}, nil) == nil
}

func (s *session) assignAddress(arg string) {
	specified := false
	desired := s.nextAddress
	if arg != "" {
		n, err := strconv.ParseUint(arg, 0, 16)
		if err != nil {
			fmt.Println("Invalid address:", arg)
			return
		}
		desired = uint16(n) & 127
		specified = true
	}

	// Unless the address was explicitly specified, skip addresses that
	// already have a device responding.
	if !specified {
		for desired == 0 || s.scanAddress(desired) {
			if desired != 0 {
				fmt.Printf("Found a device at address %d.\n", desired)
			}
			desired = (desired + 1) & 127
		}
	}
	if desired == 0 {
		fmt.Println("Assignment to address 0 not allowed.")
		return
	}

	if err := s.broadcast.EnableCRC(); err != nil {
		fmt.Println("Error:", err)
		return
	}
	// Only Motorons listening on the general call address with JMP1
	// shorted to GND will store this.
	if err := s.broadcast.WriteEEPROMDeviceNumber(desired); err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Assigned address", desired)
	s.nextAddress = desired + 1
}

func (s *session) reset() {
	fmt.Println("Reset")
	if err := s.broadcast.Reset(); err != nil {
		fmt.Println("Error:", err)
	}
}

func (s *session) scanForDevices() {
	fmt.Println("Scanning for I2C devices...")
	for addr := uint16(1); addr < 128; addr++ {
		if s.scanAddress(addr) {
			fmt.Println("Found device at address", addr)
		}
	}
}

var jumperStrings = [4]string{"both", "on", "off", "err"}

func (s *session) identifyDevices() {
	fmt.Println("Identifying Motoron controllers...")
	for addr := uint16(1); addr < 128; addr++ {
		mc := motoron.New(motoron.NewI2CTransport(s.bus, addr))

		// Multiple Motorons on the same address would send overlapping
		// responses and cause CRC errors, so don't require response CRCs.
		if err := mc.DisableCRCForResponses(); err != nil {
			continue
		}
		v, err := mc.GetFirmwareVersion()
		if err != nil {
			continue
		}
		jumperState, err := mc.GetJumperState()
		if err != nil {
			continue
		}
		fmt.Printf("%3d: product=0x%04X version=%x.%02x JMP1=%s\n",
			addr, v.ProductID, v.MajorFWBCD, v.MinorFWBCD, jumperStrings[jumperState&3])
	}
}

func (s *session) processLine(line string) bool {
	if line == "" {
		return true
	}
	arg := strings.TrimSpace(line[1:])
	switch line[0] {
	case 'a':
		s.assignAddress(arg)
	case 'r':
		s.reset()
	case 's':
		s.scanForDevices()
	case 'i':
		s.identifyDevices()
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
	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(c.String("bus"))
	if err != nil {
		return err
	}
	defer bus.Close()

	s := &session{
		bus:         bus,
		broadcast:   motoron.New(motoron.NewI2CTransport(bus, motoron.GeneralCallAddress)),
		nextAddress: uint16(c.Uint("first-address")),
	}

	fmt.Println("Motoron Set I2C Addresses Utility")
	fmt.Println()
	fmt.Println(`Type "h" for help, "a" to assign an address, "r" to reset`)
	fmt.Println(`Motorons, "s" to scan, "i" to identify devices, or "q" to quit.`)
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
	app.Name = "motoron-setaddr"
	app.Usage = "interactively assign I2C addresses to Motoron controllers"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "bus",
			Usage: "I2C bus name (empty selects the first available bus)",
		},
		cli.UintFlag{
			Name:  "first-address",
			Value: 17,
			Usage: "first address the automatic assignment will try",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
