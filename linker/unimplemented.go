package linker

import (
	"fmt"

	"github.com/keurnel/x64emit/emit"
)

// UnimplementedSink is the Sink every backend other than Mach-O resolves
// to until it is built. Record always fails with a descriptive
// diagnostic rather than silently dropping the relocation.
type UnimplementedSink struct {
	Backend string
}

func (s UnimplementedSink) Name() string { return s.Backend }

func (s UnimplementedSink) Record(decl string, reloc emit.ExternReloc) error {
	return fmt.Errorf("linker: backend %q is not implemented, cannot record relocation for declaration %q", s.Backend, decl)
}
