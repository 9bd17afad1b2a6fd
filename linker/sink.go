// Package linker defines the collaborator an Emitter hands its external
// relocations to once a declaration's machine code is complete. The
// emitter itself never resolves these — a call to a symbol outside the
// declaration, or a RIP-relative GOT load, can only be resolved once
// every object file in the link has contributed its symbol table.
package linker

import "github.com/keurnel/x64emit/emit"

// Sink - defines the interface for a linker backend that records the
// external relocations an Emitter could not patch locally. It provides
// us with a way to target different object formats in a consistent
// manner.
type Sink interface {
	// Name - returns the name of the object format this sink targets
	// (e.g. "mach-o").
	Name() string
	// Record - appends reloc to this sink's relocation table for the
	// declaration named by decl. It does not resolve reloc's target
	// address; that happens once every object file's symbol table is
	// known, outside this subsystem entirely.
	Record(decl string, reloc emit.ExternReloc) error
}
