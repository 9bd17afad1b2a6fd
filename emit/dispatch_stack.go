package emit

import (
	"github.com/keurnel/x64emit/arch/x64"
	"github.com/keurnel/x64emit/mir"
)

// emitPush handles all three PUSH shapes: register, memory, and
// push-immediate (flags 0b00/0b01/0b10 respectively; 0b11 is reserved).
func (e *Emitter) emitPush(p *mir.Program, idx int, inst mir.Inst) {
	reg1, _, flags := mir.DecodeOps(inst.Ops)
	e.enc.Reserve(1 + memOperandMaxLen + 4)

	switch flags {
	case 0b00:
		e.enc.REX(false, false, false, reg1.IsExtended(), false)
		e.enc.OpcodeWithReg(0x50, reg1.LowID())
	case 0b01:
		e.enc.REX(false, false, false, reg1.IsExtended(), false)
		e.enc.Opcode1(0xFF)
		writeBaseOperand(e.enc, 6, reg1, int32(inst.Data))
	case 0b10:
		imm := int32(inst.Data)
		if x64.FitsInt8(int64(imm)) {
			e.enc.Opcode1(0x6A)
			e.enc.Imm8(byte(int8(imm)))
		} else {
			e.enc.Opcode1(0x68)
			e.enc.Imm32(uint32(imm))
		}
	default:
		e.fail(idx, "push", "flags=0b11 is reserved")
	}
}

// emitPop handles the two valid POP shapes: register (opcode 58+reg) and
// memory (opcode 8F /0).
func (e *Emitter) emitPop(idx int, inst mir.Inst) {
	reg1, _, flags := mir.DecodeOps(inst.Ops)
	e.enc.Reserve(1 + 1 + memOperandMaxLen)

	switch flags {
	case 0b00:
		e.enc.REX(false, false, false, reg1.IsExtended(), false)
		e.enc.OpcodeWithReg(0x58, reg1.LowID())
	case 0b01:
		e.enc.REX(false, false, false, reg1.IsExtended(), false)
		e.enc.Opcode1(0x8F)
		writeBaseOperand(e.enc, 0, reg1, int32(inst.Data))
	default:
		e.fail(idx, "pop", "flags=%#b is not a valid pop form", flags)
	}
}

// emitRet dispatches the four RET/RETF shapes by flags.
func (e *Emitter) emitRet(idx int, inst mir.Inst) {
	_, _, flags := mir.DecodeOps(inst.Ops)
	e.enc.Reserve(3)

	switch flags {
	case 0b00:
		e.enc.Opcode1(0xCA)
		e.enc.Imm16(uint16(inst.Data))
	case 0b01:
		e.enc.Opcode1(0xCB)
	case 0b10:
		e.enc.Opcode1(0xC2)
		e.enc.Imm16(uint16(inst.Data))
	case 0b11:
		e.enc.Opcode1(0xC3)
	}
}
