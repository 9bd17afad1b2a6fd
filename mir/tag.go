package mir

import "github.com/keurnel/x64emit/arch/x64"

// Tag names an instruction family. The
// emit driver dispatches on Tag to a form-specific encoder; adding a tag
// requires extending both this file and the emit package's dispatch.
type Tag uint16

const (
	// Arithmetic family — one shared encoding path (mir/ops.go Flags),
	// opcodes from arch/x64.ArithOpcode.
	TagAdc Tag = iota
	TagAdd
	TagSub
	TagXor
	TagAnd
	TagOr
	TagSbb
	TagCmp
	TagMov

	// Scale-addressing variants of the same nine arithmetic ops —
	// `op reg1, [reg2 + scale*rcx + imm32]` (scale-src),
	// `op [reg1 + scale*rax + imm32], reg2` (scale-dst), and
	// `op [reg1 + scale*rax + disp], imm32` (scale-imm). Each block below
	// holds one tag per arithmetic op, in the same order as the base
	// block above, so ArithOpForTag can recover the op with simple
	// arithmetic instead of a second lookup table.
	TagAdcScaleSrc
	TagAddScaleSrc
	TagSubScaleSrc
	TagXorScaleSrc
	TagAndScaleSrc
	TagOrScaleSrc
	TagSbbScaleSrc
	TagCmpScaleSrc
	TagMovScaleSrc

	TagAdcScaleDst
	TagAddScaleDst
	TagSubScaleDst
	TagXorScaleDst
	TagAndScaleDst
	TagOrScaleDst
	TagSbbScaleDst
	TagCmpScaleDst
	TagMovScaleDst

	TagAdcScaleImm
	TagAddScaleImm
	TagSubScaleImm
	TagXorScaleImm
	TagAndScaleImm
	TagOrScaleImm
	TagSbbScaleImm
	TagCmpScaleImm
	TagMovScaleImm

	TagMovabs
	TagLea
	TagLeaRip

	TagPush
	TagPop
	TagRet

	TagJmp
	TagCall
	TagCallExtern

	// Conditional jump, one tag per condition family; Ops.Flags selects
	// the specific relation within the family (see mir/ops.go).
	TagJccSigned
	TagJccUnsigned
	TagJccEq

	// Set-byte-on-condition, same family split as TagJcc*.
	TagSetccSigned
	TagSetccUnsigned
	TagSetccEq

	TagTest
	TagImulComplex
	TagSyscall
	TagBrk
)

// ArithOpForTag returns the shared arithmetic-family opcode and the scale
// kind this tag uses, if tag belongs to that family (base or scaled).
func ArithOpForTag(tag Tag) (op x64.ArithOp, scale ScaleKind, ok bool) {
	switch {
	case tag <= TagMov:
		return x64.ArithOp(tag), ScaleNone, true
	case tag >= TagAdcScaleSrc && tag <= TagMovScaleSrc:
		return x64.ArithOp(tag - TagAdcScaleSrc), ScaleSrc, true
	case tag >= TagAdcScaleDst && tag <= TagMovScaleDst:
		return x64.ArithOp(tag - TagAdcScaleDst), ScaleDst, true
	case tag >= TagAdcScaleImm && tag <= TagMovScaleImm:
		return x64.ArithOp(tag - TagAdcScaleImm), ScaleImm, true
	default:
		return 0, ScaleNone, false
	}
}

// ScaleKind distinguishes the plain arithmetic-family encoding from its
// three SIB-scale variants.
type ScaleKind int

const (
	ScaleNone ScaleKind = iota
	ScaleSrc
	ScaleDst
	ScaleImm
)

// CondFamily names which group of relations a TagJcc*/TagSetcc* tag
// selects from; Ops.Flags then selects the specific relation.
type CondFamily int

const (
	FamilySigned CondFamily = iota
	FamilyUnsigned
	FamilyEq
)

// CondFamilyForTag returns the condition family a conditional-jump or
// set-byte tag belongs to.
func CondFamilyForTag(tag Tag) (family CondFamily, isSetcc bool, ok bool) {
	switch tag {
	case TagJccSigned:
		return FamilySigned, false, true
	case TagJccUnsigned:
		return FamilyUnsigned, false, true
	case TagJccEq:
		return FamilyEq, false, true
	case TagSetccSigned:
		return FamilySigned, true, true
	case TagSetccUnsigned:
		return FamilyUnsigned, true, true
	case TagSetccEq:
		return FamilyEq, true, true
	default:
		return 0, false, false
	}
}

// Condition maps a condition family and a 2-bit flags value to the
// specific relation tested, per the family orderings of the arithmetic
// condition-code table.
func Condition(family CondFamily, flags byte) x64.Condition {
	switch family {
	case FamilySigned:
		return [4]x64.Condition{x64.CondGte, x64.CondGt, x64.CondLt, x64.CondLte}[flags&0b11]
	case FamilyUnsigned:
		return [4]x64.Condition{x64.CondAe, x64.CondA, x64.CondB, x64.CondBe}[flags&0b11]
	default: // FamilyEq
		if flags&0b1 == 0 {
			return x64.CondEq
		}
		return x64.CondNe
	}
}
