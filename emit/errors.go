package emit

import "fmt"

// Kind distinguishes the two error shapes an Error can carry.
type Kind int

const (
	// KindOutOfMemory names an output buffer that could not grow to the
	// reserved capacity. No code path in this package produces it:
	// Encoder.Reserve does not report allocation failure, and every error
	// an Emitter raises is KindEmitFail.
	KindOutOfMemory Kind = iota
	// KindEmitFail means the emission pass itself could not proceed for
	// this declaration: unknown tag, unimplemented form, a missing
	// relocation target, or a displacement that does not fit i32.
	KindEmitFail
)

// Error is the single error type an Emitter produces. Exactly one is
// ever live per Emitter instance — emission stops at the first failure,
// mirroring the "err_msg is null at entry to fail" invariant.
type Error struct {
	Kind     Kind
	MIRIndex int // instruction index this error is attached to, -1 if none
	Tag      string
	Message  string
}

func (e *Error) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("emit: %s (mir index %d, tag %s)", e.Message, e.MIRIndex, e.Tag)
	}
	return fmt.Sprintf("emit: %s", e.Message)
}

func failf(index int, tag string, format string, args ...any) *Error {
	return &Error{Kind: KindEmitFail, MIRIndex: index, Tag: tag, Message: fmt.Sprintf(format, args...)}
}
