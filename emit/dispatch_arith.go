package emit

import (
	"github.com/keurnel/x64emit/arch/x64"
	"github.com/keurnel/x64emit/mir"
)

// arithMaxLen bounds the worst case for any arithmetic-family encoding:
// 0x66 + REX + opcode + ModR/M + SIB + disp32 + imm32.
const arithMaxLen = 1 + 1 + 1 + 1 + 1 + 4 + 4

// emitArith handles the base arithmetic-family tags and their three
// scale-addressing variants. flags selects the addressing form for the
// base tags (register/register, load, store, store-immediate) and the
// SIB scale exponent for the scale variants.
func (e *Emitter) emitArith(p *mir.Program, idx int, inst mir.Inst, op x64.ArithOp, scale mir.ScaleKind) {
	reg1, reg2, flags := mir.DecodeOps(inst.Ops)
	tagName := "arith"

	e.enc.Reserve(arithMaxLen)

	switch scale {
	case mir.ScaleNone:
		if flags == 0b11 {
			pair := p.ImmPair(mir.ExtraIndex(inst.Data))
			e.emitArithBaseDisp(idx, tagName, op, reg1, pair)
			return
		}
		e.emitArithBase(idx, tagName, op, reg1, reg2, flags, int32(inst.Data))
	case mir.ScaleSrc:
		e.emitArithScaleSrc(idx, tagName, op, reg1, reg2, flags, int32(inst.Data))
	case mir.ScaleDst:
		e.emitArithScaleDst(idx, tagName, op, reg1, reg2, flags, int32(inst.Data))
	case mir.ScaleImm:
		pair := p.ImmPair(mir.ExtraIndex(inst.Data))
		e.emitArithScaleImm(idx, tagName, op, reg1, flags, pair)
	}
}

func (e *Emitter) emitArithBase(idx int, tagName string, op x64.ArithOp, reg1, reg2 x64.Register, flags byte, imm int32) {
	switch flags {
	case 0b00:
		if !reg2.IsNone() {
			// `op reg1, reg2` — MR form, rm=reg1 (direct), reg=reg2.
			opcode, _ := x64.ArithOpcode(op, x64.FormMR, reg2.Size() == x64.Size8)
			e.writeOperandSizePrefix(reg2)
			e.writeREX(reg2.Size() == x64.Size64, reg2, reg1, x64.None)
			e.enc.Opcode1(opcode)
			e.enc.ModRMDirect(reg2.LowID(), reg1.LowID())
			return
		}
		// `op reg1, imm32` — MI form, rm=reg1 (direct).
		opcode, ext := x64.ArithOpcode(op, x64.FormMI, reg1.Size() == x64.Size8)
		e.writeOperandSizePrefix(reg1)
		e.writeREXRM(reg1.Size() == x64.Size64, reg1)
		e.enc.Opcode1(opcode)
		e.enc.ModRMDirect(ext, reg1.LowID())
		writeArithImm(e.enc, reg1, imm)

	case 0b01:
		// `op reg1, [reg2 + imm32]` or, if reg2 is none, `op reg1, [imm32]`.
		opcode, _ := x64.ArithOpcode(op, x64.FormRM, reg1.Size() == x64.Size8)
		if !reg2.IsNone() {
			e.writeOperandSizePrefix(reg1)
			e.writeREX(reg1.Size() == x64.Size64, reg1, reg2, x64.None)
			e.enc.Opcode1(opcode)
			writeBaseOperand(e.enc, reg1.LowID(), reg2, imm)
			return
		}
		e.writeOperandSizePrefix(reg1)
		e.writeREXRM(reg1.Size() == x64.Size64, reg1)
		e.enc.Opcode1(opcode)
		writeAbsoluteOperand(e.enc, reg1.LowID(), imm)

	case 0b10:
		if !reg2.IsNone() {
			// `op [reg1 + imm32], reg2` — MR form, rm=memory(reg1), reg=reg2.
			opcode, _ := x64.ArithOpcode(op, x64.FormMR, reg2.Size() == x64.Size8)
			e.writeOperandSizePrefix(reg2)
			e.writeREX(reg2.Size() == x64.Size64, reg2, reg1, x64.None)
			e.enc.Opcode1(opcode)
			writeBaseOperand(e.enc, reg2.LowID(), reg1, imm)
			return
		}
		// `op [reg1+0], imm32` — MI form, fixed disp0 (or forced disp8 for rbp/r13).
		opcode, ext := x64.ArithOpcode(op, x64.FormMI, reg1.Size() == x64.Size8)
		e.writeOperandSizePrefix(reg1)
		e.writeREXRM(reg1.Size() == x64.Size64, reg1)
		e.enc.Opcode1(opcode)
		writeBaseOperand(e.enc, ext, reg1, 0)
		writeArithImm(e.enc, reg1, imm)

	case 0b11:
		e.fail(idx, tagName, "flags=0b11 immediate-pair store must go through emitArithBaseDisp")
	}
}

// emitArithBaseDisp handles the base tags' flags=0b11 form:
// `op [reg1 + pair.DestOff], pair.Operand` — an MI store-immediate with an
// arbitrary displacement, carried via the Extra side buffer because
// Inst.Data alone only has room for one of the two 32-bit values.
func (e *Emitter) emitArithBaseDisp(idx int, tagName string, op x64.ArithOp, reg1 x64.Register, pair mir.ImmPair) {
	opcode, ext := x64.ArithOpcode(op, x64.FormMI, reg1.Size() == x64.Size8)
	e.writeOperandSizePrefix(reg1)
	e.writeREXRM(reg1.Size() == x64.Size64, reg1)
	e.enc.Opcode1(opcode)
	writeBaseOperand(e.enc, ext, reg1, pair.DestOff)
	writeArithImm(e.enc, reg1, pair.Operand)
}

func (e *Emitter) emitArithScaleSrc(idx int, tagName string, op x64.ArithOp, reg1, reg2 x64.Register, scaleExp byte, imm int32) {
	// `op reg1, [reg2 + scale*rcx + imm32]` — RM form, index fixed to RCX.
	opcode, _ := x64.ArithOpcode(op, x64.FormRM, reg1.Size() == x64.Size8)
	e.writeOperandSizePrefix(reg1)
	e.writeREX(reg1.Size() == x64.Size64, reg1, reg2, x64.RCX)
	e.enc.Opcode1(opcode)
	writeSIBFormDisp8Or32(e.enc, reg1.LowID(), imm, scaleExp, x64.RCX.LowID(), reg2.LowID())
}

func (e *Emitter) emitArithScaleDst(idx int, tagName string, op x64.ArithOp, reg1, reg2 x64.Register, scaleExp byte, imm int32) {
	if !reg2.IsNone() {
		// `op [reg1 + scale*rax + imm32], reg2` — MR form, index fixed to RAX.
		opcode, _ := x64.ArithOpcode(op, x64.FormMR, reg2.Size() == x64.Size8)
		e.writeOperandSizePrefix(reg2)
		e.writeREX(reg2.Size() == x64.Size64, reg2, reg1, x64.RAX)
		e.enc.Opcode1(opcode)
		writeSIBForm(e.enc, reg2.LowID(), imm, scaleExp, x64.RAX.LowID(), reg1.LowID())
		return
	}
	// `op [reg1 + scale*rax + 0], imm32` — MI form, fixed disp0.
	opcode, ext := x64.ArithOpcode(op, x64.FormMI, reg1.Size() == x64.Size8)
	e.writeOperandSizePrefix(reg1)
	e.writeREXRM(reg1.Size() == x64.Size64, reg1)
	e.enc.Opcode1(opcode)
	writeSIBForm(e.enc, ext, 0, scaleExp, x64.RAX.LowID(), reg1.LowID())
	writeArithImm(e.enc, reg1, imm)
}

func (e *Emitter) emitArithScaleImm(idx int, tagName string, op x64.ArithOp, reg1 x64.Register, scaleExp byte, pair mir.ImmPair) {
	// `op [reg1 + scale*rax + disp], imm32` — MI form via the ImmPair payload.
	opcode, ext := x64.ArithOpcode(op, x64.FormMI, reg1.Size() == x64.Size8)
	e.writeOperandSizePrefix(reg1)
	e.writeREXRM(reg1.Size() == x64.Size64, reg1)
	e.enc.Opcode1(opcode)
	writeSIBFormDisp8Or32(e.enc, ext, pair.DestOff, scaleExp, x64.RAX.LowID(), reg1.LowID())
	writeArithImm(e.enc, reg1, pair.Operand)
}

// writeOperandSizePrefix emits the 0x66 override ahead of any REX prefix
// when reg is a 16-bit register — x86_64 has no other way to select a
// 16-bit operand, and omitting it would desync the byte stream at the
// immediate/displacement width every caller below assumes.
func (e *Emitter) writeOperandSizePrefix(reg x64.Register) {
	if reg.Size() == x64.Size16 {
		e.enc.OperandSizeOverride()
	}
}

// writeArithImm writes an arithmetic-family MI-form immediate at the
// width the opcode and the 0x66 prefix already committed to: imm8 for an
// 8-bit operand, imm16 for a 16-bit operand, imm32 otherwise
// (sign-extended to 64 bits by the CPU when REX.W is set).
func writeArithImm(enc *x64.Encoder, reg x64.Register, imm int32) {
	if reg.Size() == x64.Size8 {
		enc.Imm8(byte(imm))
		return
	}
	if reg.Size() == x64.Size16 {
		enc.Imm16(uint16(imm))
		return
	}
	enc.Imm32(uint32(imm))
}

// writeREX emits REX for a form with a genuine reg-field register
// (regField), an rm/base register, and a fixed index register (x64.None
// if this form carries no SIB index). w is passed explicitly because
// callers derive it from whichever operand actually carries the
// instruction's data width.
func (e *Emitter) writeREX(w bool, regField, rm, index x64.Register) {
	e.enc.REX(w, regField.IsExtended(), index.IsExtended(), rm.IsExtended(), false)
}

// writeREXRM emits REX for a form whose ModR/M.reg field is a numeric
// opcode extension rather than a real register (the MI forms).
func (e *Emitter) writeREXRM(w bool, rm x64.Register) {
	e.enc.REX(w, false, false, rm.IsExtended(), false)
}
