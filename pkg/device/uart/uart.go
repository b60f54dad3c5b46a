// Package uart implements a TCP-backed serial console device under
// the word-register MMIO contract shared by every device in this
// core: a controlling connection is accepted once, and the three
// registers below are polled by software the way a real UART's
// data/status registers would be.
package uart

import (
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/rvsim/r5sim/pkg/device"
)

// Register byte offsets within the device's I/O range.
const (
	RegIn     = 0x00 // last byte received
	RegOut    = 0x04 // byte to transmit; writing triggers a send
	RegStatus = 0x08 // bit 0: input ready, bit 1: output pending

	ioSize = 0x0C
)

// Status register bits.
const (
	StatusIn = 1 << iota
	StatusOut
)

// UART is a serial console device backed by a TCP control connection.
// Callers accept the connection once (AcceptConn) before attaching the
// device to a machine.
type UART struct {
	device.Base

	conn net.Conn

	inReg     uint32
	outReg    uint32
	statusReg uint32
}

// AcceptConn listens on an ephemeral localhost TCP port, logs its
// address, and blocks until a controlling connection attaches. The
// machine waits for a console to attach before continuing to boot.
func AcceptConn(ioOffset uint32) (*UART, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	log.Printf("uart: waiting for console to attach on %s/tcp...", ln.Addr())
	conn, err := ln.Accept()
	if err != nil {
		return nil, err
	}
	return &UART{
		Base: device.Base{
			DeviceName: "uart",
			Offset:     ioOffset,
			Size:       ioSize,
		},
		conn: conn,
	}, nil
}

// Close closes the underlying control connection.
func (u *UART) Close() error {
	return u.conn.Close()
}

// ReadL implements device.Device.
func (u *UART) ReadL(offset uint32) uint32 {
	switch offset {
	case RegIn:
		return u.inReg
	case RegOut:
		return u.outReg
	case RegStatus:
		return u.statusReg
	default:
		return 0
	}
}

// WriteL implements device.Device.
func (u *UART) WriteL(offset uint32, v uint32) {
	switch offset {
	case RegOut:
		u.outReg = v
		u.statusReg |= StatusOut
	case RegStatus:
		u.statusReg = v
	default:
		// RegIn and any other offset are read-only or undefined.
	}
}

// Poll drains a pending output byte and checks for pending input,
// without ever blocking the calling goroutine for more than a few
// milliseconds. The interpreter calls Poll once per step so console
// I/O stays on the interpreter's own goroutine.
func (u *UART) Poll() error {
	u.conn.SetDeadline(time.Now().Add(time.Millisecond))

	if (u.statusReg & StatusOut) != 0 {
		var c [1]byte
		c[0] = byte(u.outReg & 0xff)
		if _, err := u.conn.Write(c[:]); err != nil {
			if isTimeout(err) {
				return nil
			}
			return fmt.Errorf("uart: write: %w", err)
		}
		u.statusReg &^= StatusOut
	}

	if (u.statusReg & StatusIn) == 0 {
		var c [1]byte
		if _, err := u.conn.Read(c[:]); err != nil {
			if isTimeout(err) {
				return nil
			}
			return fmt.Errorf("uart: read: %w", err)
		}
		u.statusReg |= StatusIn
		u.inReg = uint32(c[0])
	}

	return nil
}

func isTimeout(err error) bool {
	return strings.HasSuffix(err.Error(), "i/o timeout")
}

var _ device.Device = (*UART)(nil)
