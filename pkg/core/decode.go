package core

// Fields are sliced and masked explicitly rather than cast through a
// typed view over the raw word, so decoding does not depend on host
// byte order or struct layout.

func decodeRD(word uint32) uint32    { return (word >> 7) & 0x1f }
func decodeFunc3(word uint32) uint32 { return (word >> 12) & 0x7 }
func decodeRS1(word uint32) uint32   { return (word >> 15) & 0x1f }
func decodeRS2(word uint32) uint32   { return (word >> 20) & 0x1f }
func decodeFunc7(word uint32) uint32 { return (word >> 25) & 0x7f }

// signExtend copies bit n of v into every bit above n when widening
// to 32 bits.
func signExtend(v uint32, n uint) uint32 {
	shift := 31 - n
	return uint32(int32(v<<shift) >> shift)
}

// decodeImmI extracts the I-type 12-bit immediate, sign-extended.
func decodeImmI(word uint32) uint32 {
	return signExtend(word>>20, 11)
}

// decodeImmIRaw extracts the I-type 12-bit immediate without sign
// extension, used for shift amounts and the SRLI/SRAI discriminator.
func decodeImmIRaw(word uint32) uint32 {
	return (word >> 20) & 0xfff
}

// decodeImmS extracts the S-type 12-bit immediate, sign-extended.
func decodeImmS(word uint32) uint32 {
	imm115 := (word >> 25) & 0x7f
	imm40 := (word >> 7) & 0x1f
	return signExtend((imm115<<5)|imm40, 11)
}

// decodeImmB extracts the B-type 13-bit immediate (bit 0 always
// zero), sign-extended.
func decodeImmB(word uint32) uint32 {
	imm11 := (word >> 7) & 0x1
	imm41 := (word >> 8) & 0xf
	imm105 := (word >> 25) & 0x3f
	imm12 := (word >> 31) & 0x1
	v := (imm12 << 12) | (imm11 << 11) | (imm105 << 5) | (imm41 << 1)
	return signExtend(v, 12)
}

// decodeImmU extracts the U-type immediate: bits [31:12] of the word
// with the low 12 bits zeroed. Not sign-extended further; it is
// already a full 32-bit value by construction.
func decodeImmU(word uint32) uint32 {
	return word & 0xfffff000
}

// decodeImmJ extracts the J-type 21-bit immediate (bit 0 always
// zero), sign-extended.
func decodeImmJ(word uint32) uint32 {
	imm19_12 := (word >> 12) & 0xff
	imm11 := (word >> 20) & 0x1
	imm10_1 := (word >> 21) & 0x3ff
	imm20 := (word >> 31) & 0x1
	v := (imm20 << 20) | (imm19_12 << 12) | (imm11 << 11) | (imm10_1 << 1)
	return signExtend(v, 20)
}
