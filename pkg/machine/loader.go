package machine

import (
	"fmt"
	"os"
)

// LoadBROM reads path into the machine's boot ROM buffer. The boot
// ROM's contents at brom_base become the initial fetch target.
// LoadBROM must be called before Execute begins. Failure to read the
// file is a structural assertion: it indicates a broken
// machine construction or host-environment failure, so LoadBROM
// panics rather than returning an error a caller might ignore.
func LoadBROM(m *Machine, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("machine: failed to load boot ROM %s: %v", path, err))
	}
	if len(data) > len(m.brom) {
		panic(fmt.Sprintf("machine: boot ROM %s (%d bytes) exceeds brom_size (%d bytes)", path, len(data), len(m.brom)))
	}
	copy(m.brom, data)
}
