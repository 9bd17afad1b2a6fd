package emit

import (
	"github.com/keurnel/x64emit/arch/x64"
	"github.com/keurnel/x64emit/mir"
)

func (e *Emitter) emitJmp(idx int, inst mir.Inst) {
	e.emitJmpOrCall(idx, inst, "jmp", 0xE9, 0xFF, 4)
}

func (e *Emitter) emitCall(idx int, inst mir.Inst) {
	e.emitJmpOrCall(idx, inst, "call", 0xE8, 0xFF, 2)
}

// emitJmpOrCall handles both the relative form (a 5-byte disp32 branch
// resolved in the fixup pass) and the indirect forms (register-direct or
// absolute-memory, both committed immediately with no relocation).
func (e *Emitter) emitJmpOrCall(idx int, inst mir.Inst, tagName string, relOpcode, indirectOpcode, modrmExt byte) {
	reg1, _, flags := mir.DecodeOps(inst.Ops)
	e.enc.Reserve(1 + memOperandMaxLen)

	if flags&0b1 == 0 {
		start := e.enc.Len()
		e.enc.Opcode1(relOpcode)
		dispOffset := e.enc.Len()
		e.enc.Disp32(0)
		e.relocs = append(e.relocs, relocation{
			source: start, target: int(inst.Data), offset: dispOffset, length: 5,
			mirIdx: idx, tag: tagName,
		})
		return
	}

	if !reg1.IsNone() {
		e.enc.REX(false, false, false, reg1.IsExtended(), false)
		e.enc.Opcode1(indirectOpcode)
		e.enc.ModRMDirect(modrmExt, reg1.LowID())
		return
	}

	e.enc.Opcode1(indirectOpcode)
	writeAbsoluteOperand(e.enc, modrmExt, int32(inst.Data))
}

// emitCallExtern emits a direct call with a relocation handed off to the
// linker instead of resolved locally — the callee lives outside this
// declaration entirely.
func (e *Emitter) emitCallExtern(idx int, inst mir.Inst) {
	e.enc.Reserve(5)
	e.enc.Opcode1(0xE8)
	offset := e.enc.Len()
	e.enc.Disp32(0)
	e.externs = append(e.externs, ExternReloc{Offset: offset, Target: int(inst.Data), PCRel: true, Length: 2, Kind: RelocBranch})
}

// emitJcc emits the 6-byte `0F xx disp32` conditional jump and records a
// relocation against its target MIR index.
func (e *Emitter) emitJcc(idx int, inst mir.Inst, family mir.CondFamily) {
	_, _, flags := mir.DecodeOps(inst.Ops)
	cond := mir.Condition(family, flags)
	opcode := x64.JccOpcode(cond)

	e.enc.Reserve(2 + 4)
	start := e.enc.Len()
	e.enc.Opcode2(0x0F, opcode)
	dispOffset := e.enc.Len()
	e.enc.Disp32(0)
	e.relocs = append(e.relocs, relocation{
		source: start, target: int(inst.Data), offset: dispOffset, length: 6,
		mirIdx: idx, tag: "jcc",
	})
}

// emitSetcc emits `REX.W 0F xx /0` with a direct ModR/M — legal but
// unusual (the ISA only requires a byte destination); kept as specified
// rather than silently widened or narrowed.
func (e *Emitter) emitSetcc(idx int, inst mir.Inst, family mir.CondFamily) {
	reg1, _, flags := mir.DecodeOps(inst.Ops)
	cond := mir.Condition(family, flags)
	opcode := x64.SetccOpcode(cond)

	e.enc.Reserve(1 + 2 + 1)
	e.enc.REX(true, false, false, reg1.IsExtended(), true)
	e.enc.Opcode2(0x0F, opcode)
	e.enc.ModRMDirect(0, reg1.LowID())
}
