package debugcontext

import "fmt"

// PrologueEnd records the code offset at which a declaration's prologue
// finishes, the first of the two markers a debug-info writer needs to
// emit frame-description records around a function body.
func (c *DebugContext) PrologueEnd(offset int) {
	c.record(SeverityTrace, c.Loc(0, 0), fmt.Sprintf("prologue end at code offset %d", offset))
}

// EpilogueBegin records the code offset at which a declaration's epilogue
// starts.
func (c *DebugContext) EpilogueBegin(offset int) {
	c.record(SeverityTrace, c.Loc(0, 0), fmt.Sprintf("epilogue begin at code offset %d", offset))
}

// Line records a source-line marker at the given code offset, tying a
// byte position in the emitted machine code back to a line/column in
// this context's declaration. emit.Emitter calls this each time its own
// Line method is invoked; Emit does not call it on its own.
func (c *DebugContext) Line(offset, line, column int) {
	c.record(SeverityTrace, c.Loc(line, column), fmt.Sprintf("code offset %d", offset))
}
