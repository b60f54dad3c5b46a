package machine

// Default base addresses and sizes for a ready-to-boot machine layout:
// DRAM, boot ROM, and an I/O aperture at fixed, non-overlapping
// physical ranges.
const (
	DefaultMemoryBase = 0x8000_0000
	DefaultMemorySize = 64 * 1024 * 1024 // 64MiB DRAM

	DefaultBROMBase = 0x0000_0000
	DefaultBROMSize = 64 * 1024 // 64KiB boot ROM

	DefaultIOMemBase = 0x1000_0000
	DefaultIOMemSize = 1024 * 1024 // 1MiB I/O aperture

	// DefaultVDiskIOOffset and DefaultUARTIOOffset are the I/O
	// offsets (relative to DefaultIOMemBase) at which the default
	// machine's reference devices are attached.
	DefaultVDiskIOOffset = 0x0000_0000
	DefaultUARTIOOffset  = 0x0000_1000
)

// NewDefault returns a machine with the default DRAM/boot-ROM/I-O
// aperture layout and no devices attached. Callers attach devices
// (e.g. vdisk, uart) themselves before calling LoadBROM and Execute.
func NewDefault() *Machine {
	return New("default",
		DefaultMemoryBase, DefaultMemorySize,
		DefaultBROMBase, DefaultBROMSize,
		DefaultIOMemBase, DefaultIOMemSize,
	)
}
