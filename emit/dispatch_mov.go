package emit

import (
	"github.com/keurnel/x64emit/arch/x64"
	"github.com/keurnel/x64emit/mir"
)

// emitMovabs handles the four MOVABS shapes: register-immediate (the
// common case, flags=00) and the two moffs-absolute-address forms that
// read or write the accumulator directly with no ModR/M at all.
func (e *Emitter) emitMovabs(p *mir.Program, idx int, inst mir.Inst) {
	reg1, reg2, flags := mir.DecodeOps(inst.Ops)
	e.enc.Reserve(1 + 1 + 8)

	switch {
	case flags == 0b00:
		imm := p.Imm64(mir.ExtraIndex(inst.Data))
		switch reg1.Size() {
		case x64.Size64:
			e.enc.REX(true, false, false, reg1.IsExtended(), false)
			e.enc.OpcodeWithReg(0xB8, reg1.LowID())
			e.enc.Imm64(uint64(imm))
		case x64.Size8:
			e.writeREXRM(false, reg1)
			e.enc.OpcodeWithReg(0xB0, reg1.LowID())
			e.enc.Imm8(byte(imm))
		case x64.Size16:
			e.writeOperandSizePrefix(reg1)
			e.writeREXRM(false, reg1)
			e.enc.OpcodeWithReg(0xB8, reg1.LowID())
			e.enc.Imm16(uint16(imm))
		default: // Size32
			e.writeREXRM(false, reg1)
			e.enc.OpcodeWithReg(0xB8, reg1.LowID())
			e.enc.Imm32(uint32(imm))
		}

	case reg1.IsNone():
		// `movabs moffs, rax` family — store the accumulator (carried in
		// reg2) to an absolute address.
		imm := p.Imm64(mir.ExtraIndex(inst.Data))
		if reg2.Size() == x64.Size8 {
			e.enc.Opcode1(0xA2)
		} else {
			e.writeOperandSizePrefix(reg2)
			e.enc.REX(reg2.Size() == x64.Size64, false, false, false, false)
			e.enc.Opcode1(0xA3)
		}
		e.enc.Imm64(uint64(imm))

	default:
		// `movabs rax, moffs` family — load the accumulator (carried in
		// reg1) from an absolute address.
		imm := p.Imm64(mir.ExtraIndex(inst.Data))
		if reg1.Size() == x64.Size8 {
			e.enc.Opcode1(0xA0)
		} else {
			e.writeOperandSizePrefix(reg1)
			e.enc.REX(reg1.Size() == x64.Size64, false, false, false, false)
			e.enc.Opcode1(0xA1)
		}
		e.enc.Imm64(uint64(imm))
	}
}

// emitLea handles `lea reg1, [reg2 + imm32]`, the only addressing form
// LEA supports here (flags must be 0b01). Displacement width follows the
// same disp0/disp8/disp32 range rule as every other base-addressed
// memory operand.
func (e *Emitter) emitLea(idx int, inst mir.Inst) {
	reg1, reg2, flags := mir.DecodeOps(inst.Ops)
	if flags != 0b01 {
		e.fail(idx, "lea", "lea only supports the [reg + imm32] addressing form, got flags=%#b", flags)
		return
	}
	e.enc.Reserve(1 + 1 + 1 + memOperandMaxLen)
	e.writeOperandSizePrefix(reg1)
	e.enc.REX(reg1.Size() == x64.Size64, reg1.IsExtended(), false, reg2.IsExtended(), false)
	e.enc.Opcode1(0x8D)
	writeBaseOperand(e.enc, reg1.LowID(), reg2, int32(inst.Data))
}

// emitLeaRip handles `lea reg1, [rip + disp32]`. flags.low=0 computes a
// displacement relative to this instruction's own end (a same-buffer
// reference); flags.low=1 leaves the field zero and hands a GOT
// relocation to the linker.
func (e *Emitter) emitLeaRip(idx int, inst mir.Inst) {
	reg1, _, flags := mir.DecodeOps(inst.Ops)
	e.enc.Reserve(1 + 1 + 1 + 1 + 4)
	instrStart := e.offsetMap[idx]

	e.writeOperandSizePrefix(reg1)
	e.enc.REX(reg1.Size() == x64.Size64, reg1.IsExtended(), false, false, false)
	e.enc.Opcode1(0x8D)
	e.enc.ModRMRIPDisp32(reg1.LowID())

	if flags&0b1 == 0 {
		bytesBeforeDisp := int32(e.enc.Len()) - instrStart
		disp := int32(inst.Data) - (bytesBeforeDisp + 4)
		e.enc.Disp32(disp)
		return
	}

	offset := e.enc.Len()
	e.enc.Disp32(0)
	e.externs = append(e.externs, ExternReloc{Offset: offset, Target: int(inst.Data), PCRel: true, Length: 2, Kind: RelocGOT})
}
