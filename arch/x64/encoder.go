package x64

import "encoding/binary"

// modRM mod-field values.
const (
	modIndirectDisp0  = 0b00
	modIndirectDisp8  = 0b01
	modIndirectDisp32 = 0b10
	modDirect         = 0b11
)

// rm value that means "SIB byte follows", rm value that means
// "RIP-relative" when mod==00, and the SIB base value for "no base".
const (
	rmUsesSIB   = 0b100
	rmUsesRIP   = 0b101
	baseUsesSIB = 0b101 // base field value when mod==00 && rm==100 means disp32-only SIB
)

// Encoder is an append-only x86_64 byte writer. Every primitive assumes the
// caller has already reserved enough capacity for the whole instruction via
// Reserve — no primitive grows the buffer on its own, so a half-written
// instruction can never be interrupted by a reallocation.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an Encoder with an empty, ready-to-use buffer.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 256)}
}

// Reserve grows the buffer's capacity by at least n bytes beyond its
// current length. Call this once per instruction, sized to the maximum
// possible encoding length, before emitting any bytes for that
// instruction.
func (e *Encoder) Reserve(n int) {
	if cap(e.buf)-len(e.buf) >= n {
		return
	}
	grown := make([]byte, len(e.buf), len(e.buf)+n)
	copy(grown, e.buf)
	e.buf = grown
}

// Len returns the current buffer length — the byte offset the next write
// will land at.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Bytes returns the accumulated buffer. The slice aliases the encoder's
// internal storage and must not be retained across further writes.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// PatchDisp32 overwrites the 4 little-endian bytes at offset with disp.
// Used by the relocation fixup pass; it is the only mutation the encoder
// performs after bytes have been written.
func (e *Encoder) PatchDisp32(offset int, disp int32) {
	binary.LittleEndian.PutUint32(e.buf[offset:offset+4], uint32(disp))
}

func (e *Encoder) write(b byte) {
	e.buf = append(e.buf, b)
}

// REX writes a REX prefix byte (0x40 | W<<3 | R<<2 | X<<1 | B) if any of
// w, r, x, b is set. force writes it unconditionally (needed by a few
// byte-register forms that require REX even with every bit clear, e.g.
// to address SPL/BPL/SIL/DIL instead of AH/BH/CH/DH — out of scope here,
// but the hook is kept for completeness).
func (e *Encoder) REX(w, r, x, b bool, force bool) {
	if !w && !r && !x && !b && !force {
		return
	}
	var rex byte = byte(PrefixREXBase)
	if w {
		rex |= RexW
	}
	if r {
		rex |= RexR
	}
	if x {
		rex |= RexX
	}
	if b {
		rex |= RexB
	}
	e.write(rex)
}

// OperandSizeOverride writes the 0x66 legacy prefix selecting a 16-bit
// operand size. Callers must write it before any REX prefix and before
// the opcode.
func (e *Encoder) OperandSizeOverride() {
	e.write(byte(PrefixOperandSize))
}

// Opcode1 writes a single opcode byte.
func (e *Encoder) Opcode1(op byte) {
	e.write(op)
}

// Opcode2 writes a two-byte opcode (e.g. the 0x0F escape followed by the
// real opcode byte, as used by jcc/setcc/movzx/movsx/imul).
func (e *Encoder) Opcode2(op1, op2 byte) {
	e.write(op1)
	e.write(op2)
}

// OpcodeWithReg writes opc with the low 3 bits of reg folded into it —
// PUSH/POP reg, MOV r, imm, and MOVABS all embed the register this way.
func (e *Encoder) OpcodeWithReg(opc byte, reg byte) {
	e.write(opc | (reg & 0b111))
}

func modRM(mod, regField, rm byte) byte {
	return (mod << 6) | ((regField & 0b111) << 3) | (rm & 0b111)
}

// ModRMDirect writes a ModR/M byte with mod=11 — register-direct addressing.
func (e *Encoder) ModRMDirect(regField, rm byte) {
	e.write(modRM(modDirect, regField, rm))
}

// ModRMIndirectDisp0 writes mod=00 indirect addressing with no
// displacement. The caller must not pass RBP or R13 as rm — those
// encodings are reserved (mod=00,rm=101 means RIP-relative) and force a
// disp8 of 0 instead; see ModRMIndirectDisp8.
func (e *Encoder) ModRMIndirectDisp0(regField, rm byte) {
	e.write(modRM(modIndirectDisp0, regField, rm))
}

// ModRMIndirectDisp8 writes mod=01 indirect addressing with an 8-bit
// displacement to follow.
func (e *Encoder) ModRMIndirectDisp8(regField, rm byte) {
	e.write(modRM(modIndirectDisp8, regField, rm))
}

// ModRMIndirectDisp32 writes mod=10 indirect addressing with a 32-bit
// displacement to follow.
func (e *Encoder) ModRMIndirectDisp32(regField, rm byte) {
	e.write(modRM(modIndirectDisp32, regField, rm))
}

// ModRMSIBDisp0 writes mod=00, rm=100 (SIB follows, no displacement).
func (e *Encoder) ModRMSIBDisp0(regField byte) {
	e.write(modRM(modIndirectDisp0, regField, rmUsesSIB))
}

// ModRMSIBDisp8 writes mod=01, rm=100 (SIB follows, 8-bit displacement).
func (e *Encoder) ModRMSIBDisp8(regField byte) {
	e.write(modRM(modIndirectDisp8, regField, rmUsesSIB))
}

// ModRMSIBDisp32 writes mod=10, rm=100 (SIB follows, 32-bit displacement).
func (e *Encoder) ModRMSIBDisp32(regField byte) {
	e.write(modRM(modIndirectDisp32, regField, rmUsesSIB))
}

// ModRMRIPDisp32 writes mod=00, rm=101 ([rip + disp32] addressing).
func (e *Encoder) ModRMRIPDisp32(regField byte) {
	e.write(modRM(modIndirectDisp0, regField, rmUsesRIP))
}

// SIB writes a SIB byte for `base + scale*index`. scale is the exponent
// (0..3 -> 1/2/4/8).
func (e *Encoder) SIB(scale, index, base byte) {
	e.write(((scale & 0b11) << 6) | ((index & 0b111) << 3) | (base & 0b111))
}

// SIBDisp32Only writes the SIB encoding for `[disp32]` with no base or
// index register: scale=00, index=100 (none), base=101 (disp32, no base).
func (e *Encoder) SIBDisp32Only() {
	e.write((0b100 << 3) | baseUsesSIB)
}

func (e *Encoder) Imm8(v byte) {
	e.write(v)
}

func (e *Encoder) Imm16(v uint16) {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
}

func (e *Encoder) Imm32(v uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

func (e *Encoder) Imm64(v uint64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
}

// Disp8 writes a signed 8-bit displacement.
func (e *Encoder) Disp8(v int8) {
	e.write(byte(v))
}

// Disp32 writes a signed 32-bit displacement, little-endian.
func (e *Encoder) Disp32(v int32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(v))
}

// FitsInt8 reports whether v can be represented as a signed 8-bit value —
// used throughout the emitter to choose the narrowest displacement or
// immediate encoding (disp8 vs disp32, imm8 vs imm16 vs imm32).
func FitsInt8(v int64) bool {
	return v >= -128 && v <= 127
}

// FitsInt16 reports whether v can be represented as a signed 16-bit value.
func FitsInt16(v int64) bool {
	return v >= -32768 && v <= 32767
}

// FitsInt32 reports whether v can be represented as a signed 32-bit value.
func FitsInt32(v int64) bool {
	return v >= -2147483648 && v <= 2147483647
}
