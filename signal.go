package vblanklat

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Flusher is a byte-oriented external channel whose buffered writes can be
// pushed out to the device.
type Flusher interface {
	io.Writer
	Flush() error
}

// FrameSignaler corroborates the capture externally: for each signalled
// frame it writes the 1-based frame index as a 4-byte big-endian marker and
// flushes, so an independent device can log exactly when the marker arrived.
//
// Signal runs synchronously inside the render loop. A slow device stalls
// frame presentation; that coupling is what makes the write-and-flip
// ordering observable end to end. Any failure is fatal to the run, since a
// partial external trace invalidates comparability.
type FrameSignaler struct {
	Channel Flusher
	// Timeout bounds one write-and-flush. Exceeding it reports the device
	// as unresponsive. Zero means unbounded.
	Timeout time.Duration
}

// Signal writes the marker for the given zero-based frame index.
func (s *FrameSignaler) Signal(frame int64) error {
	marker := uint32(frame + 1)
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], marker)

	start := time.Now()
	if _, err := s.Channel.Write(buf[:]); err != nil {
		return fmt.Errorf("%w: write marker %d: %v", ErrExternalChannel, marker, err)
	}
	if err := s.Channel.Flush(); err != nil {
		return fmt.Errorf("%w: flush marker %d: %v", ErrExternalChannel, marker, err)
	}
	if s.Timeout > 0 {
		if elapsed := time.Since(start); elapsed > s.Timeout {
			return fmt.Errorf("%w: marker %d took %v (limit %v)", ErrExternalChannel, marker, elapsed, s.Timeout)
		}
	}
	return nil
}

// SerialChannel is the serial-port implementation of the external channel.
// The protocol is one-directional: write, flush, expect no reply.
type SerialChannel struct {
	port serial.Port
}

// OpenSerialChannel opens the device at the given baud rate, 8N1.
func OpenSerialChannel(device string, baud int) (*SerialChannel, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrExternalChannel, device, err)
	}
	return &SerialChannel{port: port}, nil
}

func (c *SerialChannel) Write(p []byte) (int, error) {
	return c.port.Write(p)
}

// Flush blocks until the port has transmitted its output buffer.
func (c *SerialChannel) Flush() error {
	return c.port.Drain()
}

func (c *SerialChannel) Close() error {
	return c.port.Close()
}
