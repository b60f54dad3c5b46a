package core_test

import (
	"testing"

	"github.com/rvsim/r5sim/pkg/core"
	"github.com/rvsim/r5sim/pkg/machine"
	"github.com/rvsim/r5sim/pkg/rvasm"
)

const (
	testMemBase  = 0x1000
	testMemSize  = 0x1000
	testBROMBase = 0x0000
	testBROMSize = 0x1000
	testIOBase   = 0x2000
	testIOSize   = 0x1000
)

func newTestMachine(t *testing.T, program []uint32) (*machine.Machine, *core.Core) {
	t.Helper()
	mach := machine.New("test", testMemBase, testMemSize, testBROMBase, testBROMSize, testIOBase, testIOSize)
	brom := mach.BROM()
	for i, w := range program {
		off := i * 4
		brom[off] = byte(w)
		brom[off+1] = byte(w >> 8)
		brom[off+2] = byte(w >> 16)
		brom[off+3] = byte(w >> 24)
	}
	c := core.New("hart0", mach)
	return mach, c
}

func TestMinimalHalt(t *testing.T) {
	_, c := newTestMachine(t, []uint32{0x00000000})
	c.Execute(testBROMBase)
	if c.PC != testBROMBase {
		t.Fatalf("PC = 0x%x, want 0x%x", c.PC, testBROMBase)
	}
}

func TestRegisterZeroDiscipline(t *testing.T) {
	program := []uint32{
		rvasm.ADDI(0, 0, 5),
		rvasm.ADDI(1, 0, 5),
		0x00000000,
	}
	_, c := newTestMachine(t, program)
	c.Execute(testBROMBase)

	if c.Regs[0] != 0 {
		t.Errorf("x0 = %d, want 0", c.Regs[0])
	}
	if c.Regs[1] != 5 {
		t.Errorf("x1 = %d, want 5", c.Regs[1])
	}
	if c.PC != 8 {
		t.Errorf("PC = %d, want 8", c.PC)
	}
}

func TestControlTransferJAL(t *testing.T) {
	program := []uint32{
		rvasm.JAL(1, 8),
		0x00000000,
		rvasm.ADDI(2, 0, 1),
		0x00000000,
	}
	_, c := newTestMachine(t, program)
	c.Execute(testBROMBase)

	if c.Regs[1] != 4 {
		t.Errorf("x1 (link) = %d, want 4", c.Regs[1])
	}
	if c.Regs[2] != 1 {
		t.Errorf("x2 = %d, want 1", c.Regs[2])
	}
	if c.PC != 12 {
		t.Errorf("PC = %d, want 12", c.PC)
	}
}

func TestLoadStoreRoundTrip(t *testing.T) {
	// scratchAddr = testMemBase + 0x100 = 0x1100: LUI(0x1000) + ADDI(0x100).
	// 0xDEADBEEF = LUI(0xDEADC000) + ADDI(0xEEF), since ADDI's 12-bit
	// immediate (0xEEF) sign-extends to -273 and 0xDEADC000-273 ==
	// 0xDEADBEEF — the standard lui+addi 32-bit-constant idiom.
	program := []uint32{
		rvasm.LUI(1, 0x1000),
		rvasm.ADDI(1, 1, 0x100),
		rvasm.LUI(2, 0xDEADC000),
		rvasm.ADDI(2, 2, 0xEEF),
		rvasm.SW(2, 0, 1),
		rvasm.LW(3, 1, 0),
		0x00000000,
	}
	_, c := newTestMachine(t, program)
	c.Execute(testBROMBase)

	if c.Regs[3] != 0xDEADBEEF {
		t.Errorf("x3 = 0x%08x, want 0xDEADBEEF", c.Regs[3])
	}
}

func TestByteStoreSignAndZeroExtension(t *testing.T) {
	// Store 0xFF (-1 as a byte) and verify LBU/LB widen it differently.
	program := []uint32{
		rvasm.LUI(1, testMemBase), // DRAM scratch address
		rvasm.ADDI(2, 0, 0xFFF), // sign-extends to 0xFFFFFFFF; low byte 0xFF
		rvasm.SB(2, 0, 1),
		rvasm.LBU(3, 1, 0),
		rvasm.LB(4, 1, 0),
		0x00000000,
	}
	_, c := newTestMachine(t, program)
	c.Execute(testBROMBase)

	if c.Regs[3] != 0xFF {
		t.Errorf("LBU = 0x%x, want 0xFF", c.Regs[3])
	}
	if c.Regs[4] != 0xFFFFFFFF {
		t.Errorf("LB = 0x%x, want 0xFFFFFFFF", c.Regs[4])
	}
}

func TestBranchNotTakenVsTaken(t *testing.T) {
	program := []uint32{
		rvasm.ADDI(1, 0, 1),
		rvasm.ADDI(2, 0, 1),
		rvasm.BNE(1, 2, 8),
		rvasm.ADDI(3, 0, 42),
		0x00000000,
	}
	_, c := newTestMachine(t, program)
	c.Execute(testBROMBase)

	if c.Regs[3] != 42 {
		t.Errorf("x3 = %d, want 42", c.Regs[3])
	}
	if c.PC != 16 {
		t.Errorf("PC = %d, want 16 (four words after start)", c.PC)
	}
}

func TestJALRClearsLowBit(t *testing.T) {
	program := []uint32{
		rvasm.ADDI(1, 0, 7), // rs1 = 7 (odd target)
		rvasm.JALR(2, 1, 0),
		0x00000000,
	}
	_, c := newTestMachine(t, program)
	c.Execute(testBROMBase)

	if c.PC&1 != 0 {
		t.Errorf("PC low bit set: 0x%x", c.PC)
	}
	if c.Regs[2] != 8 {
		t.Errorf("x2 (link) = %d, want 8", c.Regs[2])
	}
}

func TestSRAIvsSRLI(t *testing.T) {
	program := []uint32{
		rvasm.LUI(1, 0x80000000),
		rvasm.SRAI(2, 1, 1),
		rvasm.SRLI(3, 1, 1),
		0x00000000,
	}
	_, c := newTestMachine(t, program)
	c.Execute(testBROMBase)

	if c.Regs[2] != 0xC0000000 {
		t.Errorf("SRAI result = 0x%08x, want 0xC0000000", c.Regs[2])
	}
	if c.Regs[3] != 0x40000000 {
		t.Errorf("SRLI result = 0x%08x, want 0x40000000", c.Regs[3])
	}
}

func TestADDWrapsAndSUBUnderflows(t *testing.T) {
	program := []uint32{
		rvasm.ADDI(1, 0, int32Imm(-1)),
		rvasm.ADDI(2, 0, 1),
		rvasm.ADD(3, 1, 2),
		rvasm.ADDI(4, 0, 0),
		rvasm.ADDI(5, 0, 1),
		rvasm.SUB(6, 4, 5),
		0x00000000,
	}
	_, c := newTestMachine(t, program)
	c.Execute(testBROMBase)

	if c.Regs[3] != 0 {
		t.Errorf("0xFFFFFFFF+1 = 0x%08x, want 0", c.Regs[3])
	}
	if c.Regs[6] != 0xFFFFFFFF {
		t.Errorf("0-1 = 0x%08x, want 0xFFFFFFFF", c.Regs[6])
	}
}

func TestSLTvsSLTU(t *testing.T) {
	program := []uint32{
		rvasm.LUI(1, 0x80000000),
		// 0x7FFFFFFF = LUI(0x80000000) + ADDI(0xFFF), since the
		// ADDI's 12-bit immediate sign-extends to -1.
		rvasm.LUI(2, 0x80000000),
		rvasm.ADDI(2, 2, 0xFFF),
		rvasm.SLT(3, 1, 2),
		rvasm.SLTU(4, 1, 2),
		0x00000000,
	}
	_, c := newTestMachine(t, program)
	c.Execute(testBROMBase)

	if c.Regs[3] != 1 {
		t.Errorf("SLT(0x80000000, 0x7FFFFFFF) = %d, want 1 (signed: negative < positive)", c.Regs[3])
	}
	if c.Regs[4] != 0 {
		t.Errorf("SLTU(0x80000000, 0x7FFFFFFF) = %d, want 0 (unsigned: larger)", c.Regs[4])
	}
}

func TestDecodeFaultOnBadLowBits(t *testing.T) {
	program := []uint32{0xFFFFFFFD} // low bits = 0b01, not 0b11
	_, c := newTestMachine(t, program)
	c.Execute(testBROMBase)
	if c.PC != testBROMBase {
		t.Errorf("PC = 0x%x, want unchanged at 0x%x after decode fault", c.PC, testBROMBase)
	}
}

func TestFenceIsNoOp(t *testing.T) {
	program := []uint32{
		rvasm.FENCE(),
		rvasm.ADDI(1, 0, 9),
		0x00000000,
	}
	_, c := newTestMachine(t, program)
	c.Execute(testBROMBase)
	if c.Regs[1] != 9 {
		t.Errorf("x1 = %d, want 9", c.Regs[1])
	}
}

// int32Imm truncates a signed Go int to the 32-bit pattern rvasm's
// encoders expect for an immediate argument.
func int32Imm(v int32) uint32 {
	return uint32(v)
}
