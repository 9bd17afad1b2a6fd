package emit

import (
	"github.com/keurnel/x64emit/arch/x64"
	"github.com/keurnel/x64emit/mir"
)

// emitTest supports only `test r/m, imm32` (F7 /0, or the A9 special
// case when the destination is RAX). `test r/m, r` is deliberately
// unimplemented — the producer side does not emit it yet, and silently
// accepting it here would hide that gap instead of surfacing it.
func (e *Emitter) emitTest(idx int, inst mir.Inst) {
	reg1, reg2, _ := mir.DecodeOps(inst.Ops)
	if !reg2.IsNone() {
		e.fail(idx, "test", "test r/m, r is not implemented")
		return
	}

	e.enc.Reserve(1 + 1 + 1 + 4)
	w := reg1.Size() == x64.Size64

	if reg1 == x64.RAX {
		e.enc.REX(w, false, false, false, false)
		e.enc.Opcode1(0xA9)
		e.enc.Imm32(inst.Data)
		return
	}

	e.enc.REX(w, false, false, reg1.IsExtended(), false)
	e.enc.Opcode1(0xF7)
	e.enc.ModRMDirect(0, reg1.LowID())
	e.enc.Imm32(inst.Data)
}

func (e *Emitter) emitSyscall(idx int) {
	e.enc.Reserve(2)
	e.enc.Opcode2(0x0F, 0x05)
}

func (e *Emitter) emitBrk(idx int) {
	e.enc.Reserve(1)
	e.enc.Opcode1(0xCC)
}

// emitImulComplex handles the two-/three-operand IMUL forms: `imul r,
// r/m` (flags=00, via the 0F AF escape) and `imul r, r/m, imm`
// (flags=10, narrowing the immediate to imm8 with sign-extension where
// it fits).
func (e *Emitter) emitImulComplex(idx int, inst mir.Inst) {
	reg1, reg2, flags := mir.DecodeOps(inst.Ops)
	w := reg1.Size() == x64.Size64

	switch flags {
	case 0b00:
		e.enc.Reserve(1 + 2 + 1)
		e.enc.REX(w, reg1.IsExtended(), false, reg2.IsExtended(), false)
		e.enc.Opcode2(0x0F, 0xAF)
		e.enc.ModRMDirect(reg1.LowID(), reg2.LowID())

	case 0b10:
		e.enc.Reserve(1 + 1 + 1 + 4)
		e.enc.REX(w, reg1.IsExtended(), false, reg2.IsExtended(), false)
		imm := int32(inst.Data)
		if x64.FitsInt8(int64(imm)) {
			e.enc.Opcode1(0x6B)
			e.enc.ModRMDirect(reg1.LowID(), reg2.LowID())
			e.enc.Imm8(byte(int8(imm)))
		} else {
			e.enc.Opcode1(0x69)
			e.enc.ModRMDirect(reg1.LowID(), reg2.LowID())
			e.enc.Imm32(uint32(imm))
		}

	default:
		e.fail(idx, "imul_complex", "unsupported imul flags %#b", flags)
	}
}
