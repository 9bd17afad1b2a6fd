package debugcontext

import "fmt"

// Location identifies a position within a declaration's MIR text. It is
// a value type - safe to copy and compare.
type Location struct {
	declName string // Declaration the position belongs to.
	line     int    // 1-based line number.
	column   int    // 1-based column number, or 0 for "entire line".
}

// Loc creates a Location for the given declaration name, line, and
// column. Use this when the declaration is known directly (e.g. from
// the context's own DeclName, or from LocIn for a callee).
func Loc(declName string, line, column int) Location {
	return Location{
		declName: declName,
		line:     line,
		column:   column,
	}
}

// DeclName returns the declaration name of the location.
func (l Location) DeclName() string { return l.declName }

// Line returns the 1-based line number.
func (l Location) Line() int { return l.line }

// Column returns the 1-based column number, or 0 for "entire line".
func (l Location) Column() int { return l.column }

// String returns a human-readable representation of the location.
// Format: "declName:line:column" or "declName:line" if column is 0.
func (l Location) String() string {
	if l.column == 0 {
		return fmt.Sprintf("%s:%d", l.declName, l.line)
	}
	return fmt.Sprintf("%s:%d:%d", l.declName, l.line, l.column)
}
