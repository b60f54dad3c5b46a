// Package core implements the RV32I fetch/decode/execute loop: the
// architectural state of a single hart (32 general registers and a
// program counter) and the Step/Execute entry points that drive it
// against a machine's address space.
package core

import (
	"errors"
	"fmt"
	"log"

	"github.com/rvsim/r5sim/pkg/machine"
)

// ErrDecodeFault indicates a malformed or unimplemented instruction:
// a bad low-bit encoding, an undefined opcode family, or an undefined
// func3 within LOAD, STORE, or BRANCH. This halts the interpreter.
var ErrDecodeFault = errors.New("core: decode fault")

// ErrMemoryFault wraps a machine.ErrFault encountered while fetching
// or accessing data. This halts the interpreter.
var ErrMemoryFault = errors.New("core: memory fault")

// NumRegisters is the number of general-purpose registers, x0..x31.
const NumRegisters = 32

// Core holds the architectural state of a single RV32I hart: its
// register file, program counter, and a back-reference to the machine
// it issues loads and stores against.
//
// Core is not goroutine safe; a single goroutine should call Execute.
type Core struct {
	Name string

	Regs [NumRegisters]uint32
	PC   uint32

	Mach *machine.Machine

	// Tracing enables per-instruction trace logging.
	Tracing bool

	// OnStep, when non-nil, is called once after every successfully
	// executed instruction. It exists so external callers can poll
	// devices that need servicing outside the load/store path (e.g.
	// the UART's TCP connection) without the interpreter itself
	// gaining suspension points.
	OnStep func()
}

// New returns a core bound to the given machine.
func New(name string, mach *machine.Machine) *Core {
	return &Core{Name: name, Mach: mach}
}

// getReg reads a register; x0 always reads as zero.
func (c *Core) getReg(r uint32) uint32 {
	if r >= NumRegisters {
		panic(fmt.Sprintf("core: register index %d out of range", r))
	}
	return c.Regs[r]
}

// setReg writes a register, silently discarding writes to x0.
func (c *Core) setReg(r uint32, v uint32) {
	if r >= NumRegisters {
		panic(fmt.Sprintf("core: register index %d out of range", r))
	}
	if r == 0 {
		return
	}
	c.Regs[r] = v
}

// Describe renders the register file and PC for diagnostic output,
// dumped on a fatal decode error.
func (c *Core) Describe() string {
	s := fmt.Sprintf("core %q: pc=0x%08x\n", c.Name, c.PC)
	for i := 0; i < NumRegisters; i += 4 {
		s += fmt.Sprintf("  x%-2d=0x%08x x%-2d=0x%08x x%-2d=0x%08x x%-2d=0x%08x\n",
			i, c.Regs[i], i+1, c.Regs[i+1], i+2, c.Regs[i+2], i+3, c.Regs[i+3])
	}
	return s
}

// opFamily describes one entry of the 32-wide opcode-family table
// indexed by the instruction's opcode[6:2] field.
type opFamily struct {
	name    string
	exec    func(c *Core, word uint32) error
	advance bool
}

// families is the opcode-family dispatch table: index is the 5-bit
// opcode[6:2] field. Entries with a nil exec are undefined and
// trigger a decode fault.
var families = buildFamilies()

func buildFamilies() [32]opFamily {
	var f [32]opFamily
	f[0] = opFamily{name: "LOAD", exec: execLoad, advance: true}
	f[3] = opFamily{name: "MISC-MEM", exec: execMiscMem, advance: true}
	f[4] = opFamily{name: "OP-IMM", exec: execOpImm, advance: true}
	f[5] = opFamily{name: "AUIPC", exec: execAUIPC, advance: true}
	f[8] = opFamily{name: "STORE", exec: execStore, advance: true}
	f[12] = opFamily{name: "OP", exec: execOp, advance: true}
	f[13] = opFamily{name: "LUI", exec: execLUI, advance: true}
	f[24] = opFamily{name: "BRANCH", exec: execBranch, advance: false}
	f[25] = opFamily{name: "JALR", exec: execJALR, advance: false}
	f[27] = opFamily{name: "JAL", exec: execJAL, advance: false}
	// SYSTEM is decoded but has no handler: encountering it is fatal.
	// This is deliberate, not a TODO — ECALL/EBREAK/CSR access are out
	// of scope for this core.
	f[28] = opFamily{name: "SYSTEM", exec: nil, advance: true}
	return f
}

// logTrace emits a trace-level diagnostic line. Its exact text is not
// a contract.
func logTrace(format string, args ...any) {
	log.Printf(format, args...)
}

// Execute sets PC to startPC and runs Step until it reports halt,
// logging an informational line at start and a HALT line at the end.
func (c *Core) Execute(startPC uint32) {
	c.PC = startPC
	log.Printf("core: execution begins @ 0x%08x", startPC)

	for {
		halt, err := c.Step()
		if err != nil {
			log.Printf("core: error: %v", err)
			log.Print(c.Describe())
			break
		}
		if halt {
			break
		}
		if c.OnStep != nil {
			c.OnStep()
		}
	}

	log.Printf("core: HALT @ 0x%08x", c.PC)
}

// Step executes exactly one instruction. It returns halt=true when a
// fatal condition requires the interpreter to stop; in that case err
// describes the reason.
func (c *Core) Step() (halt bool, err error) {
	word, err := c.Mach.Load32(c.PC)
	if err != nil {
		return true, fmt.Errorf("%w: %v", ErrMemoryFault, err)
	}

	if word&0b11 != 0b11 {
		return true, fmt.Errorf("%w: non-32-bit encoding 0x%08x @ 0x%08x", ErrDecodeFault, word, c.PC)
	}

	idx := (word >> 2) & 0b1_1111
	fam := families[idx]
	if fam.name == "" || fam.exec == nil {
		return true, fmt.Errorf("%w: undefined opcode family %d (word=0x%08x) @ 0x%08x", ErrDecodeFault, idx, word, c.PC)
	}

	if c.Tracing {
		log.Printf("core: pc=0x%08x word=0x%08x fam=%s", c.PC, word, fam.name)
	}

	if err := fam.exec(c, word); err != nil {
		return true, err
	}

	if fam.advance {
		c.PC += 4
	}

	return false, nil
}
