package x64

// Prefix is a single legacy or REX prefix byte.
type Prefix byte

const (
	// PrefixREXBase is the REX prefix base (0x40); REX.W/R/X/B bits are
	// or'd into the low nibble by Encoder.REX.
	PrefixREXBase Prefix = 0x40

	// RexW selects 64-bit operand size.
	RexW = 0b1000
	// RexR extends ModR/M.reg.
	RexR = 0b0100
	// RexX extends SIB.index.
	RexX = 0b0010
	// RexB extends ModR/M.rm, SIB.base, or an opcode's embedded register.
	RexB = 0b0001

	// PrefixOperandSize switches the default 32-bit operand size to 16
	// bits for the instruction it precedes. Must come before any REX
	// prefix and the opcode itself.
	PrefixOperandSize Prefix = 0x66
)
