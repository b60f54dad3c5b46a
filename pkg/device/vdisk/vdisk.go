// Package vdisk implements the reference block-backed virtual disk
// device: an I/O device whose register bank exposes the size and page
// geometry of a host file mapped into memory. The mapping itself is
// not yet wired into any load/store path; this device exists to
// exercise the memory-mapped register protocol described by the
// simulator's device contract.
package vdisk

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/rvsim/r5sim/pkg/device"
)

// Register byte offsets within the device's I/O range.
const (
	RegPresent  = 0x00
	RegPageSize = 0x04
	RegSizeLo   = 0x08
	RegSizeHi   = 0x0C

	// MaxReg bounds the device's register aperture; offsets at or
	// beyond this are out of bounds (soft failure, not fatal).
	MaxReg = 0x1000

	pageSize = 4096
)

// VDisk is the virtual-disk device: a backing file mapped into host
// memory plus a small word-addressed register bank.
type VDisk struct {
	device.Base

	file *os.File
	data []byte // mmap'd backing store
	size int64

	regs [MaxReg / 4]uint32
}

// Load opens path read/write, maps it into host memory, and returns a
// VDisk device attached at the given I/O offset. Failure to open,
// stat, or map the backing file is a structural assertion failure: the
// caller's machine construction is broken or the host environment
// cannot support it, so Load panics rather than returning an error a
// caller might paper over.
func Load(ioOffset uint32, path string) *VDisk {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		panic(fmt.Sprintf("vdisk: failed to open %s: %v", path, err))
	}

	fi, err := f.Stat()
	if err != nil {
		panic(fmt.Sprintf("vdisk: failed to stat %s: %v", path, err))
	}
	size := fi.Size()

	var data []byte
	if size > 0 {
		data, err = unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			panic(fmt.Sprintf("vdisk: failed to mmap %s: %v", path, err))
		}
	}

	d := &VDisk{
		Base: device.Base{
			DeviceName: "vdisk",
			Offset:     ioOffset,
			Size:       MaxReg,
		},
		file: f,
		data: data,
		size: size,
	}

	d.regs[RegPresent/4] = 1
	d.regs[RegPageSize/4] = pageSize
	d.regs[RegSizeLo/4] = uint32(size)
	d.regs[RegSizeHi/4] = uint32(size >> 32)

	return d
}

// ReadL implements device.Device.
func (d *VDisk) ReadL(offset uint32) uint32 {
	if offset >= MaxReg {
		return 0
	}
	return d.regs[offset/4]
}

// WriteL implements device.Device.
func (d *VDisk) WriteL(offset uint32, v uint32) {
	if offset >= MaxReg {
		return
	}
	d.regs[offset/4] = v
}

// Close unmaps the backing file and closes its descriptor. Machine has
// no teardown step and never calls Close; an attached disk stays
// mapped and open until its owner calls Close.
func (d *VDisk) Close() error {
	if d.data != nil {
		if err := unix.Munmap(d.data); err != nil {
			return err
		}
		d.data = nil
	}
	return d.file.Close()
}

var _ device.Device = (*VDisk)(nil)
