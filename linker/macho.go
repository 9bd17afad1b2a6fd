package linker

import (
	"fmt"

	"github.com/keurnel/x64emit/emit"
)

// machoRelocType mirrors the subset of Mach-O's x86_64 relocation type
// enum this subsystem ever produces.
type machoRelocType uint8

const (
	machoRelocBranch machoRelocType = 2 // X86_64_RELOC_BRANCH
	machoRelocGOT    machoRelocType = 4 // X86_64_RELOC_GOT
)

// MachORecord is one entry in a Mach-O object file's relocation table
// for a single declaration's code section.
type MachORecord struct {
	Decl      string
	Address   int32
	SymbolNum int32
	PCRel     bool
	Length    uint8 // log2 of the patched field width (2 -> 4 bytes)
	Type      machoRelocType
}

// MachOSink accumulates relocation records for later serialization into
// a Mach-O object file's relocation table. It never patches the code
// buffer itself — x86_64 Mach-O relocations of this kind are resolved by
// the system linker once every object file in the link is known, not by
// this subsystem.
type MachOSink struct {
	Records []MachORecord
}

// NewMachOSink returns an empty MachOSink ready to record relocations
// across any number of declarations.
func NewMachOSink() *MachOSink {
	return &MachOSink{}
}

func (s *MachOSink) Name() string { return "mach-o" }

func (s *MachOSink) Record(decl string, reloc emit.ExternReloc) error {
	var t machoRelocType
	switch reloc.Kind {
	case emit.RelocBranch:
		t = machoRelocBranch
	case emit.RelocGOT:
		t = machoRelocGOT
	default:
		return fmt.Errorf("linker: mach-o sink received an unrecognized relocation kind %q", reloc.Kind)
	}
	s.Records = append(s.Records, MachORecord{
		Decl:      decl,
		Address:   int32(reloc.Offset),
		SymbolNum: int32(reloc.Target),
		PCRel:     reloc.PCRel,
		Length:    2,
		Type:      t,
	})
	return nil
}
