package vdisk_test

import (
	"os"
	"testing"

	"github.com/rvsim/r5sim/pkg/device/vdisk"
)

func TestLoadInitializesRegisterBank(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "vdisk-*.img")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if err := f.Truncate(65536); err != nil {
		t.Fatalf("Truncate: %v", err)
	}

	d := vdisk.Load(0x1000, f.Name())
	defer d.Close()

	if got := d.ReadL(vdisk.RegPresent); got != 1 {
		t.Errorf("RegPresent = %d, want 1", got)
	}
	if got := d.ReadL(vdisk.RegPageSize); got != 4096 {
		t.Errorf("RegPageSize = %d, want 4096", got)
	}
	if got := d.ReadL(vdisk.RegSizeLo); got != 65536 {
		t.Errorf("RegSizeLo = %d, want 65536", got)
	}
	if got := d.ReadL(vdisk.RegSizeHi); got != 0 {
		t.Errorf("RegSizeHi = %d, want 0", got)
	}

	if got := d.IOOffset(); got != 0x1000 {
		t.Errorf("IOOffset = 0x%x, want 0x1000", got)
	}
}

func TestOutOfBoundsRegisterAccessSoftFails(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "vdisk-*.img")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if err := f.Truncate(4096); err != nil {
		t.Fatalf("Truncate: %v", err)
	}

	d := vdisk.Load(0x0, f.Name())
	defer d.Close()

	if got := d.ReadL(vdisk.MaxReg); got != 0 {
		t.Errorf("ReadL(MaxReg) = %d, want 0", got)
	}

	// WriteL past MaxReg must not panic and must not disturb in-bounds
	// registers.
	d.WriteL(vdisk.MaxReg, 0xFFFFFFFF)
	if got := d.ReadL(vdisk.RegPresent); got != 1 {
		t.Errorf("RegPresent after out-of-bounds write = %d, want 1", got)
	}
}

func TestWriteLUpdatesRegister(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "vdisk-*.img")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if err := f.Truncate(4096); err != nil {
		t.Fatalf("Truncate: %v", err)
	}

	d := vdisk.Load(0x0, f.Name())
	defer d.Close()

	d.WriteL(vdisk.RegPresent, 0)
	if got := d.ReadL(vdisk.RegPresent); got != 0 {
		t.Errorf("RegPresent after write = %d, want 0", got)
	}
}
