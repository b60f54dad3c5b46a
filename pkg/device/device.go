// Package device defines the uniform contract that memory-mapped I/O
// devices implement so that a machine's routing layer can dispatch
// word-granular reads and writes to them.
package device

// Device is a word-granular, base-relative register interface. Offset
// is zero-based within the device's own I/O range; the machine never
// inspects device private state directly.
type Device interface {
	// Name identifies the device for diagnostic output.
	Name() string

	// IOOffset is the device's base offset relative to the machine's
	// I/O aperture base.
	IOOffset() uint32

	// IOSize is the size, in bytes, of the device's register range.
	IOSize() uint32

	// ReadL reads the 32-bit register at the given zero-based byte
	// offset. An out-of-bounds offset returns 0.
	ReadL(offset uint32) uint32

	// WriteL writes the 32-bit register at the given zero-based byte
	// offset. An out-of-bounds offset is silently ignored.
	WriteL(offset uint32, v uint32)
}

// Base holds the bookkeeping common to every concrete device: its
// name and its placement within the I/O aperture. Concrete devices
// embed Base and implement ReadL/WriteL themselves.
type Base struct {
	DeviceName string
	Offset     uint32
	Size       uint32
}

// Name implements Device.
func (b Base) Name() string { return b.DeviceName }

// IOOffset implements Device.
func (b Base) IOOffset() uint32 { return b.Offset }

// IOSize implements Device.
func (b Base) IOSize() uint32 { return b.Size }
