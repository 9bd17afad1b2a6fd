package x64

// ArithOp names one member of the shared arithmetic-family opcode table:
// adc, add, sub, xor, and, or, sbb, cmp, mov. These nine instructions are
// encoded identically modulo the opcode bytes and ModR/M.reg extension
// below, which is why MIR dispatches them through one shared form rather
// than nine separate encoders.
type ArithOp int

const (
	Adc ArithOp = iota
	Add
	Sub
	Xor
	And
	Or
	Sbb
	Cmp
	Mov
)

// Form selects which of the three addressing-form encodings an
// arithmetic-family instruction uses.
type Form int

const (
	// FormMI is `op r/m, imm32` — ModR/M.reg carries a per-opcode extension,
	// not a register.
	FormMI Form = iota
	// FormMR is `op r/m, r` — ModR/M.reg carries the source register.
	FormMR
	// FormRM is `op r, r/m` — ModR/M.reg carries the destination register.
	FormRM
)

type arithEntry struct {
	opcodeMI byte
	extMI    byte // ModR/M.reg extension for the MI form
	opcodeMR byte
	opcodeRM byte
}

// arithTable is the §4.2 "arithmetic family" table: for the MI form every
// member shares opcode 0x81 (0xC7 for mov) and is distinguished only by
// the ModR/M.reg extension; MR and RM each have a dedicated opcode byte.
var arithTable = map[ArithOp]arithEntry{
	Adc: {opcodeMI: 0x81, extMI: 2, opcodeMR: 0x11, opcodeRM: 0x13},
	Add: {opcodeMI: 0x81, extMI: 0, opcodeMR: 0x01, opcodeRM: 0x03},
	Sub: {opcodeMI: 0x81, extMI: 5, opcodeMR: 0x29, opcodeRM: 0x2b},
	Xor: {opcodeMI: 0x81, extMI: 6, opcodeMR: 0x31, opcodeRM: 0x33},
	And: {opcodeMI: 0x81, extMI: 4, opcodeMR: 0x21, opcodeRM: 0x23},
	Or:  {opcodeMI: 0x81, extMI: 1, opcodeMR: 0x09, opcodeRM: 0x0b},
	Sbb: {opcodeMI: 0x81, extMI: 3, opcodeMR: 0x19, opcodeRM: 0x1b},
	Cmp: {opcodeMI: 0x81, extMI: 7, opcodeMR: 0x39, opcodeRM: 0x3b},
	Mov: {opcodeMI: 0xC7, extMI: 0, opcodeMR: 0x89, opcodeRM: 0x8b},
}

// ArithOpcode returns the opcode byte for op in the given form, and the
// ModR/M.reg extension to use for the MI form (ignored for MR/RM, where
// the caller supplies the real register instead). When size8 is true the
// opcode is the 8-bit sibling, which the ISA always places one byte
// below the wider form's opcode.
func ArithOpcode(op ArithOp, form Form, size8 bool) (opcode byte, modrmExt byte) {
	entry := arithTable[op]
	switch form {
	case FormMI:
		opcode = entry.opcodeMI
	case FormMR:
		opcode = entry.opcodeMR
	case FormRM:
		opcode = entry.opcodeRM
	}
	if size8 {
		opcode--
	}
	return opcode, entry.extMI
}
