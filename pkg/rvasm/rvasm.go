// Package rvasm provides small, table-driven RV32I instruction
// encoders used to build test fixtures, and a disassembler for
// diagnostic display.
//
// Each instruction gets its own small encoder function rather than a
// generic assembler pipeline, since there is no free-form assembly
// source text to lex or parse here — only fixed instruction fields
// supplied directly by Go callers.
package rvasm

// R-type opcodes.
const opOP = 0b0110011

// I-type opcodes.
const (
	opLOAD    = 0b0000011
	opOPIMM   = 0b0010011
	opJALR    = 0b1100111
	opMISCMEM = 0b0001111
)

// S/B/U/J-type opcodes.
const (
	opSTORE  = 0b0100011
	opBRANCH = 0b1100011
	opLUI    = 0b0110111
	opAUIPC  = 0b0010111
	opJAL    = 0b1101111
)

func rType(opcode, rd, func3, rs1, rs2, func7 uint32) uint32 {
	return (func7 << 25) | (rs2 << 20) | (rs1 << 15) | (func3 << 12) | (rd << 7) | opcode
}

func iType(opcode, rd, func3, rs1, imm uint32) uint32 {
	return ((imm & 0xfff) << 20) | (rs1 << 15) | (func3 << 12) | (rd << 7) | opcode
}

func sType(opcode, func3, rs1, rs2, imm uint32) uint32 {
	imm40 := imm & 0x1f
	imm115 := (imm >> 5) & 0x7f
	return (imm115 << 25) | (rs2 << 20) | (rs1 << 15) | (func3 << 12) | (imm40 << 7) | opcode
}

func bType(opcode, func3, rs1, rs2, imm uint32) uint32 {
	imm11 := (imm >> 11) & 0x1
	imm41 := (imm >> 1) & 0xf
	imm105 := (imm >> 5) & 0x3f
	imm12 := (imm >> 12) & 0x1
	return (imm12 << 31) | (imm105 << 25) | (rs2 << 20) | (rs1 << 15) | (func3 << 12) | (imm41 << 8) | (imm11 << 7) | opcode
}

func uType(opcode, rd, imm uint32) uint32 {
	return (imm & 0xfffff000) | (rd << 7) | opcode
}

func jType(opcode, rd, imm uint32) uint32 {
	imm19_12 := (imm >> 12) & 0xff
	imm11 := (imm >> 11) & 0x1
	imm10_1 := (imm >> 1) & 0x3ff
	imm20 := (imm >> 20) & 0x1
	return (imm20 << 31) | (imm10_1 << 21) | (imm11 << 20) | (imm19_12 << 12) | (rd << 7) | opcode
}

// LOAD family.
func LB(rd, rs1, imm uint32) uint32  { return iType(opLOAD, rd, 0x0, rs1, imm) }
func LH(rd, rs1, imm uint32) uint32  { return iType(opLOAD, rd, 0x1, rs1, imm) }
func LW(rd, rs1, imm uint32) uint32  { return iType(opLOAD, rd, 0x2, rs1, imm) }
func LBU(rd, rs1, imm uint32) uint32 { return iType(opLOAD, rd, 0x4, rs1, imm) }
func LHU(rd, rs1, imm uint32) uint32 { return iType(opLOAD, rd, 0x5, rs1, imm) }

// STORE family.
func SB(rs2, imm, rs1 uint32) uint32 { return sType(opSTORE, 0x0, rs1, rs2, imm) }
func SH(rs2, imm, rs1 uint32) uint32 { return sType(opSTORE, 0x1, rs1, rs2, imm) }
func SW(rs2, imm, rs1 uint32) uint32 { return sType(opSTORE, 0x2, rs1, rs2, imm) }

// OP-IMM family.
func ADDI(rd, rs1, imm uint32) uint32  { return iType(opOPIMM, rd, 0x0, rs1, imm) }
func SLLI(rd, rs1, shamt uint32) uint32 { return iType(opOPIMM, rd, 0x1, rs1, shamt&0x1f) }
func SLTI(rd, rs1, imm uint32) uint32  { return iType(opOPIMM, rd, 0x2, rs1, imm) }
func SLTIU(rd, rs1, imm uint32) uint32 { return iType(opOPIMM, rd, 0x3, rs1, imm) }
func XORI(rd, rs1, imm uint32) uint32  { return iType(opOPIMM, rd, 0x4, rs1, imm) }
func SRLI(rd, rs1, shamt uint32) uint32 {
	return iType(opOPIMM, rd, 0x5, rs1, shamt&0x1f)
}
func SRAI(rd, rs1, shamt uint32) uint32 {
	return iType(opOPIMM, rd, 0x5, rs1, (shamt&0x1f)|(1<<10))
}
func ORI(rd, rs1, imm uint32) uint32 { return iType(opOPIMM, rd, 0x6, rs1, imm) }
func ANDI(rd, rs1, imm uint32) uint32 { return iType(opOPIMM, rd, 0x7, rs1, imm) }

// OP family.
func ADD(rd, rs1, rs2 uint32) uint32  { return rType(opOP, rd, 0x0, rs1, rs2, 0x00) }
func SUB(rd, rs1, rs2 uint32) uint32  { return rType(opOP, rd, 0x0, rs1, rs2, 0x20) }
func SLL(rd, rs1, rs2 uint32) uint32  { return rType(opOP, rd, 0x1, rs1, rs2, 0x00) }
func SLT(rd, rs1, rs2 uint32) uint32  { return rType(opOP, rd, 0x2, rs1, rs2, 0x00) }
func SLTU(rd, rs1, rs2 uint32) uint32 { return rType(opOP, rd, 0x3, rs1, rs2, 0x00) }
func XOR(rd, rs1, rs2 uint32) uint32  { return rType(opOP, rd, 0x4, rs1, rs2, 0x00) }
func SRL(rd, rs1, rs2 uint32) uint32  { return rType(opOP, rd, 0x5, rs1, rs2, 0x00) }
func SRA(rd, rs1, rs2 uint32) uint32  { return rType(opOP, rd, 0x5, rs1, rs2, 0x20) }
func OR(rd, rs1, rs2 uint32) uint32   { return rType(opOP, rd, 0x6, rs1, rs2, 0x00) }
func AND(rd, rs1, rs2 uint32) uint32  { return rType(opOP, rd, 0x7, rs1, rs2, 0x00) }

// LUI/AUIPC (U-type). imm is the already-shifted 32-bit value (low 12
// bits zero); callers pass e.g. 0x12345000, not 0x12345.
func LUI(rd, imm uint32) uint32   { return uType(opLUI, rd, imm) }
func AUIPC(rd, imm uint32) uint32 { return uType(opAUIPC, rd, imm) }

// JAL/JALR.
func JAL(rd, imm uint32) uint32        { return jType(opJAL, rd, imm) }
func JALR(rd, rs1, imm uint32) uint32  { return iType(opJALR, rd, 0x0, rs1, imm) }

// BRANCH family.
func BEQ(rs1, rs2, imm uint32) uint32  { return bType(opBRANCH, 0x0, rs1, rs2, imm) }
func BNE(rs1, rs2, imm uint32) uint32  { return bType(opBRANCH, 0x1, rs1, rs2, imm) }
func BLT(rs1, rs2, imm uint32) uint32  { return bType(opBRANCH, 0x4, rs1, rs2, imm) }
func BGE(rs1, rs2, imm uint32) uint32  { return bType(opBRANCH, 0x5, rs1, rs2, imm) }
func BLTU(rs1, rs2, imm uint32) uint32 { return bType(opBRANCH, 0x6, rs1, rs2, imm) }
func BGEU(rs1, rs2, imm uint32) uint32 { return bType(opBRANCH, 0x7, rs1, rs2, imm) }

// FENCE encodes a minimal MISC-MEM/FENCE no-op instruction.
func FENCE() uint32 { return iType(opMISCMEM, 0, 0x0, 0, 0) }
