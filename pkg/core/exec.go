package core

import "fmt"

// execLoad implements LOAD (I-type).
func execLoad(c *Core, word uint32) error {
	rd := decodeRD(word)
	func3 := decodeFunc3(word)
	rs1 := decodeRS1(word)
	imm := decodeImmI(word)

	addr := c.getReg(rs1) + imm

	switch func3 {
	case 0x0: // LB
		v, err := c.Mach.Load8(addr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMemoryFault, err)
		}
		c.setReg(rd, signExtend(uint32(v), 7))
	case 0x1: // LH
		v, err := c.Mach.Load16(addr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMemoryFault, err)
		}
		c.setReg(rd, signExtend(uint32(v), 15))
	case 0x2: // LW
		v, err := c.Mach.Load32(addr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMemoryFault, err)
		}
		c.setReg(rd, v)
	case 0x4: // LBU
		v, err := c.Mach.Load8(addr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMemoryFault, err)
		}
		c.setReg(rd, uint32(v))
	case 0x5: // LHU
		v, err := c.Mach.Load16(addr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMemoryFault, err)
		}
		c.setReg(rd, uint32(v))
	default:
		return fmt.Errorf("%w: LOAD func3=%d", ErrDecodeFault, func3)
	}
	return nil
}

// execStore implements STORE (S-type).
func execStore(c *Core, word uint32) error {
	func3 := decodeFunc3(word)
	rs1 := decodeRS1(word)
	rs2 := decodeRS2(word)
	imm := decodeImmS(word)

	addr := c.getReg(rs1) + imm
	v := c.getReg(rs2)

	switch func3 {
	case 0x0: // SB
		if err := c.Mach.Store8(addr, uint8(v)); err != nil {
			return fmt.Errorf("%w: %v", ErrMemoryFault, err)
		}
	case 0x1: // SH
		if err := c.Mach.Store16(addr, uint16(v)); err != nil {
			return fmt.Errorf("%w: %v", ErrMemoryFault, err)
		}
	case 0x2: // SW
		if err := c.Mach.Store32(addr, v); err != nil {
			return fmt.Errorf("%w: %v", ErrMemoryFault, err)
		}
	default:
		return fmt.Errorf("%w: STORE func3=%d", ErrDecodeFault, func3)
	}
	return nil
}

// execOpImm implements OP-IMM (I-type). Both SRLI and SRAI are
// implemented, discriminated by bit 30 of the instruction word
// (imm_11_0 bit 10), the RV32I-specified location.
func execOpImm(c *Core, word uint32) error {
	rd := decodeRD(word)
	func3 := decodeFunc3(word)
	rs1 := decodeRS1(word)
	imm := decodeImmI(word)
	immRaw := decodeImmIRaw(word)
	shamt := immRaw & 0x1f
	rs1v := c.getReg(rs1)

	switch func3 {
	case 0x0: // ADDI
		c.setReg(rd, rs1v+imm)
	case 0x1: // SLLI
		c.setReg(rd, rs1v<<shamt)
	case 0x2: // SLTI
		if int32(rs1v) < int32(imm) {
			c.setReg(rd, 1)
		} else {
			c.setReg(rd, 0)
		}
	case 0x3: // SLTIU
		if rs1v < imm {
			c.setReg(rd, 1)
		} else {
			c.setReg(rd, 0)
		}
	case 0x4: // XORI
		c.setReg(rd, rs1v^imm)
	case 0x5: // SRLI / SRAI
		if immRaw&(1<<10) != 0 { // SRAI
			c.setReg(rd, uint32(int32(rs1v)>>shamt))
		} else { // SRLI
			c.setReg(rd, rs1v>>shamt)
		}
	case 0x6: // ORI
		c.setReg(rd, rs1v|imm)
	case 0x7: // ANDI
		c.setReg(rd, rs1v&imm)
	default:
		return fmt.Errorf("%w: OP-IMM func3=%d", ErrDecodeFault, func3)
	}
	return nil
}

// execOp implements OP (R-type). Both SUB and SRA are implemented,
// each discriminated from its sibling by bit 5 of func7.
func execOp(c *Core, word uint32) error {
	rd := decodeRD(word)
	func3 := decodeFunc3(word)
	rs1 := decodeRS1(word)
	rs2 := decodeRS2(word)
	func7 := decodeFunc7(word)
	rs1v := c.getReg(rs1)
	rs2v := c.getReg(rs2)
	alt := func7&0x20 != 0

	switch func3 {
	case 0x0: // ADD / SUB
		if alt {
			c.setReg(rd, rs1v-rs2v)
		} else {
			c.setReg(rd, rs1v+rs2v)
		}
	case 0x1: // SLL
		c.setReg(rd, rs1v<<(rs2v&0x1f))
	case 0x2: // SLT
		if int32(rs1v) < int32(rs2v) {
			c.setReg(rd, 1)
		} else {
			c.setReg(rd, 0)
		}
	case 0x3: // SLTU
		if rs1v < rs2v {
			c.setReg(rd, 1)
		} else {
			c.setReg(rd, 0)
		}
	case 0x4: // XOR
		c.setReg(rd, rs1v^rs2v)
	case 0x5: // SRL / SRA
		if alt {
			c.setReg(rd, uint32(int32(rs1v)>>(rs2v&0x1f)))
		} else {
			c.setReg(rd, rs1v>>(rs2v&0x1f))
		}
	case 0x6: // OR
		c.setReg(rd, rs1v|rs2v)
	case 0x7: // AND
		c.setReg(rd, rs1v&rs2v)
	default:
		return fmt.Errorf("%w: OP func3=%d", ErrDecodeFault, func3)
	}
	return nil
}

// execLUI implements LUI (U-type).
func execLUI(c *Core, word uint32) error {
	rd := decodeRD(word)
	c.setReg(rd, decodeImmU(word))
	return nil
}

// execAUIPC implements AUIPC (U-type).
func execAUIPC(c *Core, word uint32) error {
	rd := decodeRD(word)
	c.setReg(rd, c.PC+decodeImmU(word))
	return nil
}

// execJAL implements JAL (J-type). The family's advance-PC flag is
// off, so PC is not auto-incremented after this.
func execJAL(c *Core, word uint32) error {
	rd := decodeRD(word)
	link := c.PC + 4
	target := c.PC + decodeImmJ(word)
	c.setReg(rd, link)
	c.PC = target
	if c.Tracing {
		logTrace("  JAL: rd=%d lr=0x%08x new_pc=0x%08x", rd, link, target)
	}
	return nil
}

// execJALR implements JALR (I-type). rs1 is read before rd is
// written so that rd == rs1 behaves correctly.
func execJALR(c *Core, word uint32) error {
	rd := decodeRD(word)
	rs1 := decodeRS1(word)
	imm := decodeImmI(word)

	rs1v := c.getReg(rs1) // read before write, in case rd == rs1
	link := c.PC + 4
	target := (rs1v + imm) &^ 1

	c.setReg(rd, link)
	c.PC = target
	if c.Tracing {
		logTrace("  JALR: rd=%d rs1=%d lr=0x%08x new_pc=0x%08x", rd, rs1, link, target)
	}
	return nil
}

// execBranch implements BRANCH (B-type). This family's advance-PC
// flag is off, so every path here must set PC explicitly.
func execBranch(c *Core, word uint32) error {
	func3 := decodeFunc3(word)
	rs1 := decodeRS1(word)
	rs2 := decodeRS2(word)
	rs1v := c.getReg(rs1)
	rs2v := c.getReg(rs2)

	var taken bool
	switch func3 {
	case 0x0: // BEQ
		taken = rs1v == rs2v
	case 0x1: // BNE
		taken = rs1v != rs2v
	case 0x4: // BLT
		taken = int32(rs1v) < int32(rs2v)
	case 0x5: // BGE
		taken = int32(rs1v) >= int32(rs2v)
	case 0x6: // BLTU
		taken = rs1v < rs2v
	case 0x7: // BGEU
		taken = rs1v >= rs2v
	default:
		return fmt.Errorf("%w: BRANCH func3=%d", ErrDecodeFault, func3)
	}

	if taken {
		c.PC += decodeImmB(word)
	} else {
		c.PC += 4
	}
	return nil
}

// execMiscMem implements MISC-MEM (FENCE): a no-op in this
// single-hart, in-order model.
func execMiscMem(c *Core, word uint32) error {
	return nil
}
