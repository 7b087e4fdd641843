// Package dmxtransmitter implements the DMX output loop: a dedicated
// worker that owns the serial port handle and retransmits the latest
// universe at a fixed 20ms cadence, independent of the mixer's own tick
// rate.
package dmxtransmitter

import (
	"time"

	"github.com/goburrow/serial"
	"github.com/robmorgan/lumacue/logger"
)

// Cadence is the transmitter's fixed send interval, independent of the
// mixer's ~30Hz tick.
const Cadence = 20 * time.Millisecond

// dmxStartCode is the null start code every standard DMX512 packet opens
// with.
const dmxStartCode = 0x00

// Port is the minimal serial contract the transmitter needs; satisfied by
// goburrow/serial's serial.Port, and easily faked in tests.
type Port interface {
	Write(p []byte) (int, error)
	Close() error
}

// Transmitter owns the serial port and the current universe buffer. A
// failed write ends the worker permanently, and cmd/lumacue does not start
// a worker at all when Open fails; either way nothing drains the universe
// channel, so the mixer's sends fail and it reports SendError from then on.
type Transmitter struct {
	port    Port
	current []byte

	incoming <-chan []byte
	done     chan struct{}
}

// Open opens the named serial device at the standard DMX512 line settings
// (250000 baud, 8 data bits, 2 stop bits, no parity) via goburrow/serial.
func Open(device string) (Port, error) {
	return serial.Open(&serial.Config{
		Address:  device,
		BaudRate: 250000,
		DataBits: 8,
		StopBits: 2,
		Parity:   "N",
		Timeout:  Cadence,
	})
}

// New builds a Transmitter that reads universes from incoming and writes
// them to port at Cadence.
func New(port Port, incoming <-chan []byte) *Transmitter {
	return &Transmitter{
		port:     port,
		incoming: incoming,
		done:     make(chan struct{}),
	}
}

// Run drives the 20ms send loop until incoming is closed or the port write
// fails terminally. Each tick: non-blocking receive of the latest universe
// (replacing any buffered one — older queued frames are discarded, the
// channel being a level not a log), then transmit the current buffer (or
// an empty packet if none has arrived yet).
func (t *Transmitter) Run() {
	log := logger.GetProjectLogger()
	defer close(t.done)
	defer t.port.Close()

	ticker := time.NewTicker(Cadence)
	defer ticker.Stop()

	for range ticker.C {
		for received := true; received; {
			select {
			case u, ok := <-t.incoming:
				if !ok {
					return
				}
				t.current = u
			default:
				received = false
			}
		}

		if err := t.send(); err != nil {
			log.WithError(err).Error("dmx transmit failed, worker exiting")
			return
		}
	}
}

// send writes the current universe as a DMX512 packet: a null start code
// followed by up to 512 channel bytes.
func (t *Transmitter) send() error {
	n := len(t.current)
	if n > 512 {
		n = 512
	}
	packet := make([]byte, 1+n)
	packet[0] = dmxStartCode
	copy(packet[1:], t.current)
	_, err := t.port.Write(packet)
	return err
}

// Done is closed once Run returns, letting callers observe worker exit.
func (t *Transmitter) Done() <-chan struct{} {
	return t.done
}
