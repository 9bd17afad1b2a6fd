package emit

import "github.com/keurnel/x64emit/arch/x64"

// writeBaseOperand emits `[base + disp]` addressing with no index
// register: a plain indirect ModR/M, or — when base is RSP/R12, whose
// low 3 bits collide with the "SIB follows" rm encoding — a SIB byte
// with index=none. disp0 is chosen whenever it's exact and legal; RBP/R13
// (whose low 3 bits collide with the RIP-relative encoding at mod=00)
// force a disp8 of 0 instead.
func writeBaseOperand(enc *x64.Encoder, regField byte, base x64.Register, disp int32) {
	rm := base.LowID()
	if rm == 0b100 {
		writeSIBForm(enc, regField, disp, 0, 0b100, rm)
		return
	}
	forcesMinDisp8 := rm == 0b101
	switch {
	case disp == 0 && !forcesMinDisp8:
		enc.ModRMIndirectDisp0(regField, rm)
	case disp == 0:
		enc.ModRMIndirectDisp8(regField, rm)
		enc.Disp8(0)
	case x64.FitsInt8(int64(disp)):
		enc.ModRMIndirectDisp8(regField, rm)
		enc.Disp8(int8(disp))
	default:
		enc.ModRMIndirectDisp32(regField, rm)
		enc.Disp32(disp)
	}
}

// writeSIBForm emits a ModR/M + SIB pair for `[base + scale*index + disp]`,
// choosing disp0/disp8/disp32 the same way writeBaseOperand does. Used
// both by writeBaseOperand's RSP/R12 fallback and by the scale-addressing
// arithmetic variants.
func writeSIBForm(enc *x64.Encoder, regField byte, disp int32, scale, indexLow, baseLow byte) {
	forcesMinDisp8 := baseLow == 0b101
	switch {
	case disp == 0 && !forcesMinDisp8:
		enc.ModRMSIBDisp0(regField)
		enc.SIB(scale, indexLow, baseLow)
	case disp == 0:
		enc.ModRMSIBDisp8(regField)
		enc.SIB(scale, indexLow, baseLow)
		enc.Disp8(0)
	case x64.FitsInt8(int64(disp)):
		enc.ModRMSIBDisp8(regField)
		enc.SIB(scale, indexLow, baseLow)
		enc.Disp8(int8(disp))
	default:
		enc.ModRMSIBDisp32(regField)
		enc.SIB(scale, indexLow, baseLow)
		enc.Disp32(disp)
	}
}

// writeSIBFormDisp8Or32 is writeSIBForm without the disp0 case: the
// scale-src and scale-imm arithmetic variants always carry an explicit
// displacement byte or word, even when its value is zero.
func writeSIBFormDisp8Or32(enc *x64.Encoder, regField byte, disp int32, scale, indexLow, baseLow byte) {
	if x64.FitsInt8(int64(disp)) {
		enc.ModRMSIBDisp8(regField)
		enc.SIB(scale, indexLow, baseLow)
		enc.Disp8(int8(disp))
		return
	}
	enc.ModRMSIBDisp32(regField)
	enc.SIB(scale, indexLow, baseLow)
	enc.Disp32(disp)
}

// writeAbsoluteOperand emits the `[disp32]` addressing form — no base, no
// index — used when an arithmetic-family instruction's memory operand
// carries no base register at all.
func writeAbsoluteOperand(enc *x64.Encoder, regField byte, disp int32) {
	enc.ModRMSIBDisp0(regField)
	enc.SIBDisp32Only()
	enc.Disp32(disp)
}

// memOperandMaxLen is a conservative upper bound on the bytes a base- or
// SIB-addressed memory operand can take: ModR/M + SIB + disp32.
const memOperandMaxLen = 1 + 1 + 4
