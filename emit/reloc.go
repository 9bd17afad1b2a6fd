package emit

import "github.com/keurnel/x64emit/arch/x64"

// relocation is an intra-declaration branch fixup: the disp32 field at
// byte offset `offset` (the last four bytes of the instruction, ending at
// source+length) was written as zero and needs the real distance to
// target's resolved offset once every instruction has been emitted.
type relocation struct {
	source int    // byte offset the branch instruction starts at
	target int    // MIR instruction index the branch aims at
	offset int    // byte offset of the disp32 field to patch
	length int    // total instruction byte length (source+length = next instruction's start)
	mirIdx int    // MIR index of the branching instruction itself, for error attribution
	tag    string // tag name, for error attribution
}

// RelocKind distinguishes the two request shapes a linker sink accepts.
type RelocKind string

const (
	RelocBranch RelocKind = "branch" // call/jmp to an external symbol
	RelocGOT    RelocKind = "got"    // RIP-relative load from the GOT
)

// ExternReloc is a relocation the linker backend must resolve — a call to
// an external symbol or a RIP-relative GOT load. These are recorded
// during emission and handed to a linker.Sink rather than patched here.
type ExternReloc struct {
	Offset int       // byte position of the disp32 field
	Target int       // global symbol index or local GOT entry index
	PCRel  bool      // always true for the two forms this subsystem emits
	Length int       // log2 of the patched field width; always 2 (4 bytes)
	Kind   RelocKind
}

// fixup walks relocs in insertion order and patches each disp32 field in
// enc against the now-complete offsetMap. It stops at the first relocation
// whose target is missing or whose displacement overflows i32 — both are
// fatal for the declaration.
func fixup(enc *x64.Encoder, relocs []relocation, offsetMap []int32, known []bool) error {
	for _, r := range relocs {
		if r.target < 0 || r.target >= len(offsetMap) || !known[r.target] {
			return failf(r.mirIdx, r.tag, "relocation target mir index %d has no recorded offset", r.target)
		}
		targetOffset := int64(offsetMap[r.target])
		disp := targetOffset - int64(r.source+r.length)
		if disp < -2147483648 || disp > 2147483647 {
			return failf(r.mirIdx, r.tag, "branch displacement %d does not fit in a 32-bit signed field", disp)
		}
		enc.PatchDisp32(r.offset, int32(disp))
	}
	return nil
}
