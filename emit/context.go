// Package emit is the single-pass MIR-to-machine-code driver: it walks a
// mir.Program once, dispatches each instruction by Tag to a form-specific
// encoder in arch/x64, records where every instruction landed, and
// resolves intra-declaration branch displacements once the pass is
// done. It owns no global state — every Emitter is scoped to exactly one
// declaration and is discarded after Emit returns.
package emit

import "github.com/keurnel/x64emit/arch/x64"

// DebugSink receives the three markers the emitter forwards when its
// caller invokes Emitter.PrologueEnd, Emitter.EpilogueBegin, or
// Emitter.Line; Emit itself never calls the sink. Content and storage of
// the debug format are the sink's concern; the emitter only ever calls
// these three methods with a byte offset into the code it is producing.
type DebugSink interface {
	PrologueEnd(offset int)
	EpilogueBegin(offset int)
	Line(offset, line, column int)
}

// noopSink discards every marker; used when a caller has no debug-info
// writer wired up.
type noopSink struct{}

func (noopSink) PrologueEnd(int)   {}
func (noopSink) EpilogueBegin(int) {}
func (noopSink) Line(int, int, int) {}

// Emitter holds all state for one declaration's emission pass: the
// output buffer, the MIR-index-to-byte-offset map, the pending intra-
// declaration relocations, and the debug-line cursor. None of this is
// safe to share across declarations or goroutines — create a fresh
// Emitter per declaration.
type Emitter struct {
	declName string

	enc       *x64.Encoder
	offsetMap []int32
	known     []bool

	relocs  []relocation
	externs []ExternReloc

	debug        DebugSink
	prevDILine   int
	prevDIColumn int
	prevDIPC     int

	err *Error
}

// NewEmitter returns an Emitter ready to consume exactly one
// declaration's MIR. declName is stored on the Emitter; it is not copied
// into the *Error values the emitter raises, which carry only the MIR
// index and tag name. A nil debug silently discards debug markers.
func NewEmitter(declName string, debug DebugSink) *Emitter {
	if debug == nil {
		debug = noopSink{}
	}
	return &Emitter{
		declName: declName,
		enc:      x64.NewEncoder(),
		debug:    debug,
	}
}

// Result is everything Emit produces for one declaration: the machine
// code, the completed MIR-index-to-offset map (useful to a caller
// stitching multiple declarations together), and the relocations the
// linker backend still needs to resolve.
type Result struct {
	Code      []byte
	OffsetMap []int32
	Externs   []ExternReloc
}

// Err returns the first failure this emitter recorded, or nil. Once set
// it never changes: an emitter fails at most once per declaration.
func (e *Emitter) Err() error {
	if e.err == nil {
		return nil
	}
	return e.err
}

func (e *Emitter) fail(index int, tag, format string, args ...any) {
	if e.err != nil {
		return
	}
	e.err = failf(index, tag, format, args...)
}
