package motoron

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"periph.io/x/conn/v3/physic"

	"github.com/openhwlab/go-motoron/protocol"
)

// fakeBus records I2C transactions and plays back queued read data.
type fakeBus struct {
	writes    [][]byte
	addrs     []uint16
	reads     [][]byte
	readAddrs []uint16
	txErr     error
}

func (b *fakeBus) String() string { return "fake" }

func (b *fakeBus) SetSpeed(f physic.Frequency) error { return nil }

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	if b.txErr != nil {
		return b.txErr
	}
	if len(w) > 0 {
		b.writes = append(b.writes, append([]byte{}, w...))
		b.addrs = append(b.addrs, addr)
	}
	if len(r) > 0 {
		b.readAddrs = append(b.readAddrs, addr)
		if len(b.reads) == 0 {
			return fmt.Errorf("no read data queued")
		}
		if copy(r, b.reads[0]) != len(r) {
			return fmt.Errorf("queued read data is %d bytes, transaction wants %d", len(b.reads[0]), len(r))
		}
		b.reads = b.reads[1:]
	}
	return nil
}

func TestI2CSend(t *testing.T) {
	bus := &fakeBus{}
	tr := NewI2CTransport(bus, DefaultI2CAddress)

	cmd := []byte{0xD1, 0x01, 0x20, 0x06}
	if err := tr.Send(cmd, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := withCRC(cmd); !bytes.Equal(bus.writes[0], want) {
		t.Errorf("wrote % X, want % X", bus.writes[0], want)
	}
	if bus.addrs[0] != DefaultI2CAddress {
		t.Errorf("wrote to address %d, want %d", bus.addrs[0], DefaultI2CAddress)
	}
}

func TestI2CReadResponse(t *testing.T) {
	payload := []byte{0x60, 0x02}
	bus := &fakeBus{reads: [][]byte{withCRC(payload)}}
	tr := NewI2CTransport(bus, DefaultI2CAddress, WithPreReadDelay(0))

	got, err := tr.ReadResponse(2, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("got % X, want % X", got, payload)
	}
}

func TestI2CReadResponseBadCRC(t *testing.T) {
	raw := withCRC([]byte{0x60, 0x02})
	raw[1] ^= 0x80
	bus := &fakeBus{reads: [][]byte{raw}}
	tr := NewI2CTransport(bus, DefaultI2CAddress, WithPreReadDelay(0))

	_, err := tr.ReadResponse(2, true)
	var crcErr *protocol.CRCError
	if !errors.As(err, &crcErr) {
		t.Fatalf("got %v, want a CRC error", err)
	}
}

func TestI2CGeneralCallIsWriteOnly(t *testing.T) {
	bus := &fakeBus{}
	tr := NewI2CTransport(bus, GeneralCallAddress)

	if err := tr.Send([]byte{0x96}, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bus.addrs[0] != GeneralCallAddress {
		t.Errorf("wrote to address %d, want %d", bus.addrs[0], GeneralCallAddress)
	}

	if _, err := tr.ReadResponse(2, true); err == nil {
		t.Fatal("expected an error reading via the general call address")
	}
	if len(bus.readAddrs) != 0 {
		t.Error("a read transaction reached the bus")
	}
}

func TestI2CTransportErrors(t *testing.T) {
	busErr := errors.New("remote I/O error")
	bus := &fakeBus{txErr: busErr}
	tr := NewI2CTransport(bus, DefaultI2CAddress, WithPreReadDelay(0))

	err := tr.Send([]byte{0xA5}, false)
	var te *TransportError
	if !errors.As(err, &te) || !errors.Is(err, busErr) {
		t.Fatalf("Send: got %v, want a *TransportError wrapping the bus error", err)
	}

	_, err = tr.ReadResponse(2, true)
	if !errors.As(err, &te) || !errors.Is(err, busErr) {
		t.Fatalf("ReadResponse: got %v, want a *TransportError wrapping the bus error", err)
	}
}
