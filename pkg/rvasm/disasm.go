package rvasm

import "fmt"

// Disassemble renders a single RV32I instruction word as assembly
// text for diagnostic display; its exact text is not a contract
// callers should depend on.
func Disassemble(word uint32) string {
	opcode := word & 0x7f
	rd := (word >> 7) & 0x1f
	func3 := (word >> 12) & 0x7
	rs1 := (word >> 15) & 0x1f
	rs2 := (word >> 20) & 0x1f
	func7 := (word >> 25) & 0x7f

	switch opcode {
	case opLOAD:
		names := map[uint32]string{0x0: "lb", 0x1: "lh", 0x2: "lw", 0x4: "lbu", 0x5: "lhu"}
		if n, ok := names[func3]; ok {
			return fmt.Sprintf("%s x%d, %d(x%d)", n, rd, int32(signExtendDisasm(word>>20, 11)), rs1)
		}
	case opOPIMM:
		switch func3 {
		case 0x0:
			return fmt.Sprintf("addi x%d, x%d, %d", rd, rs1, int32(signExtendDisasm(word>>20, 11)))
		case 0x1:
			return fmt.Sprintf("slli x%d, x%d, %d", rd, rs1, (word>>20)&0x1f)
		case 0x2:
			return fmt.Sprintf("slti x%d, x%d, %d", rd, rs1, int32(signExtendDisasm(word>>20, 11)))
		case 0x3:
			return fmt.Sprintf("sltiu x%d, x%d, %d", rd, rs1, (word>>20)&0xfff)
		case 0x4:
			return fmt.Sprintf("xori x%d, x%d, %d", rd, rs1, int32(signExtendDisasm(word>>20, 11)))
		case 0x5:
			if (word>>20)&(1<<10) != 0 {
				return fmt.Sprintf("srai x%d, x%d, %d", rd, rs1, (word>>20)&0x1f)
			}
			return fmt.Sprintf("srli x%d, x%d, %d", rd, rs1, (word>>20)&0x1f)
		case 0x6:
			return fmt.Sprintf("ori x%d, x%d, %d", rd, rs1, int32(signExtendDisasm(word>>20, 11)))
		case 0x7:
			return fmt.Sprintf("andi x%d, x%d, %d", rd, rs1, int32(signExtendDisasm(word>>20, 11)))
		}
	case opOP:
		alt := func7&0x20 != 0
		switch func3 {
		case 0x0:
			if alt {
				return fmt.Sprintf("sub x%d, x%d, x%d", rd, rs1, rs2)
			}
			return fmt.Sprintf("add x%d, x%d, x%d", rd, rs1, rs2)
		case 0x1:
			return fmt.Sprintf("sll x%d, x%d, x%d", rd, rs1, rs2)
		case 0x2:
			return fmt.Sprintf("slt x%d, x%d, x%d", rd, rs1, rs2)
		case 0x3:
			return fmt.Sprintf("sltu x%d, x%d, x%d", rd, rs1, rs2)
		case 0x4:
			return fmt.Sprintf("xor x%d, x%d, x%d", rd, rs1, rs2)
		case 0x5:
			if alt {
				return fmt.Sprintf("sra x%d, x%d, x%d", rd, rs1, rs2)
			}
			return fmt.Sprintf("srl x%d, x%d, x%d", rd, rs1, rs2)
		case 0x6:
			return fmt.Sprintf("or x%d, x%d, x%d", rd, rs1, rs2)
		case 0x7:
			return fmt.Sprintf("and x%d, x%d, x%d", rd, rs1, rs2)
		}
	case opSTORE:
		names := map[uint32]string{0x0: "sb", 0x1: "sh", 0x2: "sw"}
		if n, ok := names[func3]; ok {
			imm := ((word >> 25) << 5) | ((word >> 7) & 0x1f)
			return fmt.Sprintf("%s x%d, %d(x%d)", n, rs2, int32(signExtendDisasm(imm, 11)), rs1)
		}
	case opBRANCH:
		names := map[uint32]string{0x0: "beq", 0x1: "bne", 0x4: "blt", 0x5: "bge", 0x6: "bltu", 0x7: "bgeu"}
		if n, ok := names[func3]; ok {
			return fmt.Sprintf("%s x%d, x%d, %d", n, rs1, rs2, int32(bImm(word)))
		}
	case opLUI:
		return fmt.Sprintf("lui x%d, 0x%x", rd, word&0xfffff000)
	case opAUIPC:
		return fmt.Sprintf("auipc x%d, 0x%x", rd, word&0xfffff000)
	case opJAL:
		return fmt.Sprintf("jal x%d, %d", rd, int32(jImm(word)))
	case opJALR:
		return fmt.Sprintf("jalr x%d, %d(x%d)", rd, int32(signExtendDisasm(word>>20, 11)), rs1)
	case opMISCMEM:
		return "fence"
	case 0b1110011:
		return "<system>"
	}

	return fmt.Sprintf("<unknown instruction: 0x%08x>", word)
}

func signExtendDisasm(v uint32, n uint) uint32 {
	shift := 31 - n
	return uint32(int32(v<<shift) >> shift)
}

func bImm(word uint32) uint32 {
	imm11 := (word >> 7) & 0x1
	imm41 := (word >> 8) & 0xf
	imm105 := (word >> 25) & 0x3f
	imm12 := (word >> 31) & 0x1
	v := (imm12 << 12) | (imm11 << 11) | (imm105 << 5) | (imm41 << 1)
	return signExtendDisasm(v, 12)
}

func jImm(word uint32) uint32 {
	imm19_12 := (word >> 12) & 0xff
	imm11 := (word >> 20) & 0x1
	imm10_1 := (word >> 21) & 0x3ff
	imm20 := (word >> 31) & 0x1
	v := (imm20 << 20) | (imm19_12 << 12) | (imm11 << 11) | (imm10_1 << 1)
	return signExtendDisasm(v, 20)
}
