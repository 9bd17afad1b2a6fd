package mir

import "github.com/keurnel/x64emit/arch/x64"

// Ops packs up to two GPR operands and a 2-bit flags field into 16 bits:
// reg1 occupies bits 15-9, reg2 bits 8-2, flags bits 1-0. Packing keeps
// Inst at 8 bytes instead of carrying two full Register values (which
// would cost 4+ bytes each once padded).
type Ops uint16

const (
	shiftReg1   = 9
	shiftReg2   = 2
	maskSlot    = 0x7F // 7 bits
	maskFlags   = 0x03
	sizeClasses = 4
)

// sizeClassOf maps a Register's Size to a 2-bit class used in the slot
// encoding. The four GPR widths (8/16/32/64) are the only ones arch/x64
// defines, so this is total over every Register the encoder accepts.
func sizeClassOf(size x64.Size) byte {
	switch size {
	case x64.Size8:
		return 0
	case x64.Size16:
		return 1
	case x64.Size32:
		return 2
	default: // x64.Size64
		return 3
	}
}

var classSize = [sizeClasses]x64.Size{x64.Size8, x64.Size16, x64.Size32, x64.Size64}

// regBySlot reverses the slot encoding; index 0 means "no register".
// Populated once at init from arch/x64's named constants so DecodeOps
// never has to reconstruct a Register by hand.
var regBySlot [sizeClasses*16 + 1]x64.Register

func init() {
	for class := byte(0); class < sizeClasses; class++ {
		size := classSize[class]
		for id := byte(0); id < 16; id++ {
			reg, ok := x64.ByID(size, id)
			if !ok {
				continue
			}
			regBySlot[slotFor(class, id)] = reg
		}
	}
}

func slotFor(class, id byte) byte {
	return class*16 + id + 1
}

// packReg encodes r into a 7-bit slot; x64.None packs to 0.
func packReg(r x64.Register) byte {
	if r.IsNone() {
		return 0
	}
	return slotFor(sizeClassOf(r.Size()), r.FullID())
}

// unpackReg decodes a 7-bit slot back into a Register; slot 0 decodes to
// x64.None.
func unpackReg(slot byte) x64.Register {
	if slot == 0 {
		return x64.None
	}
	return regBySlot[slot]
}

// EncodeOps packs two operand registers (either may be x64.None) and a
// 2-bit flags value into an Ops word. flags carries tag-specific data —
// the scale-shift selector for the scale-addressing arithmetic variants,
// or the condition-family member index for TagJcc*/TagSetcc*.
func EncodeOps(reg1, reg2 x64.Register, flags byte) Ops {
	return Ops(uint16(packReg(reg1))<<shiftReg1 |
		uint16(packReg(reg2))<<shiftReg2 |
		uint16(flags&maskFlags))
}

// Reg1, Reg2, and Flags invert EncodeOps. DecodeOps(EncodeOps(r1, r2, f))
// reproduces r1, r2, f exactly — the round-trip law instruction records
// depend on.
func (o Ops) Reg1() x64.Register { return unpackReg(byte(o>>shiftReg1) & maskSlot) }
func (o Ops) Reg2() x64.Register { return unpackReg(byte(o>>shiftReg2) & maskSlot) }
func (o Ops) Flags() byte        { return byte(o) & maskFlags }

// DecodeOps is a convenience that returns all three fields at once.
func DecodeOps(o Ops) (reg1, reg2 x64.Register, flags byte) {
	return o.Reg1(), o.Reg2(), o.Flags()
}
