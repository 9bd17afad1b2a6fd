package mir

// Inst is one columnar MIR instruction record: 8 bytes, fixed layout,
// no pointers. Tag selects the instruction family, Ops carries up to two
// register operands plus a 2-bit flags value, and Data is a tagged union
// whose meaning depends on Tag — a branch target's instruction index, an
// inline imm32, or an index into a Program's Extra side buffer for
// payloads that don't fit inline (imm64, two-immediate scale-imm forms).
//
// Keeping every instruction the same size is what lets Emit walk the
// program as a flat slice instead of a linked structure, and is why
// operand packing (see Ops) matters: a naive two-Register-fields-plus-
// int64 record would be ten times this size.
type Inst struct {
	Tag  Tag
	Ops  Ops
	Data uint32
}

// ExtraIndex reinterprets Data as an index into Program.Extra, used by
// tags whose payload doesn't fit in 32 bits (TagMovabs's imm64) or needs
// more than one word (the scale-imm forms' displacement and immediate).
type ExtraIndex uint32

// ImmPair is the two-word payload for the scale-imm arithmetic variants:
// `op [reg1 + scale*index + DestOff], Operand`. It is stored in a
// Program's Extra buffer rather than inline because Data alone only has
// room for one 32-bit value.
type ImmPair struct {
	DestOff int32
	Operand int32
}

// PushImmPair appends an ImmPair to the program's Extra buffer and
// returns the ExtraIndex an Inst.Data should carry to reference it.
func (p *Program) PushImmPair(pair ImmPair) ExtraIndex {
	idx := ExtraIndex(len(p.Extra))
	p.Extra = append(p.Extra, uint32(pair.DestOff), uint32(pair.Operand))
	return idx
}

// ImmPair reads back the two-word payload PushImmPair stored at idx.
func (p *Program) ImmPair(idx ExtraIndex) ImmPair {
	return ImmPair{
		DestOff: int32(p.Extra[idx]),
		Operand: int32(p.Extra[idx+1]),
	}
}

// PushImm64 appends a 64-bit immediate (TagMovabs's payload) to Extra as
// two little-endian-order 32-bit halves and returns its ExtraIndex.
func (p *Program) PushImm64(v int64) ExtraIndex {
	idx := ExtraIndex(len(p.Extra))
	p.Extra = append(p.Extra, uint32(uint64(v)), uint32(uint64(v)>>32))
	return idx
}

// Imm64 reads back a 64-bit immediate PushImm64 stored at idx.
func (p *Program) Imm64(idx ExtraIndex) int64 {
	lo := uint64(p.Extra[idx])
	hi := uint64(p.Extra[idx+1])
	return int64(hi<<32 | lo)
}

// Program is a complete MIR unit: the flat instruction stream plus the
// side buffer for payloads too wide for Inst.Data. Emit consumes a
// Program and produces machine code plus relocations and debug markers;
// nothing in this package knows about bytes, sections, or the linker.
type Program struct {
	Insts []Inst
	Extra []uint32
}

// Append adds inst to the program and returns its index, which branch
// and call instructions reference via Inst.Data (see mir/tag.go's
// TagJmp/TagCall family and emit's forward-reference fixup pass).
func (p *Program) Append(inst Inst) int {
	p.Insts = append(p.Insts, inst)
	return len(p.Insts) - 1
}
