package debugcontext

import "sync"

// DebugContext is a passive, append-only data structure that accumulates
// diagnostic entries for one declaration's emission: the plain
// Error/Warning/Info/Trace entries a MIR reader or linker sink might
// record, plus the PrologueEnd/EpilogueBegin/Line markers (see
// mir_markers.go) that emit.Emitter forwards by code offset when its
// caller invokes the emitter's PrologueEnd/EpilogueBegin/Line methods.
// It is thread-safe for concurrent writes.
//
// Create a DebugContext exclusively through NewDebugContext(), one per
// declaration - it mirrors emit.Emitter's own one-per-declaration
// lifetime rather than one per source file.
//
// The context does not perform I/O or formatting. A separate renderer
// consumes the entries to produce output.
type DebugContext struct {
	declName string   // Declaration this context was opened for.
	phase    string   // Current emission phase ("" if none set).
	entries  []*Entry // Recorded entries in insertion order.
	mu       sync.Mutex
}

// NewDebugContext is the sole constructor. It returns a *DebugContext
// initialised for declName, with an empty entry list and the phase set
// to "" (no phase).
func NewDebugContext(declName string) *DebugContext {
	return &DebugContext{
		declName: declName,
		phase:    "",
		entries:  make([]*Entry, 0),
	}
}

// --- Phases ---

// SetPhase sets the current emission phase. Subsequent entries are
// tagged with this phase until it is changed again.
func (c *DebugContext) SetPhase(name string) {
	c.mu.Lock()
	c.phase = name
	c.mu.Unlock()
}

// Phase returns the current emission phase name.
func (c *DebugContext) Phase() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// --- Location helpers ---

// Loc creates a Location tagged with this context's declaration name.
// The offset-based markers in mir_markers.go have no source line of
// their own and pass 0, 0 here, carrying the real code offset in the
// entry's message instead; Line passes the MIR source position it was
// given.
func (c *DebugContext) Loc(line, column int) Location {
	return Loc(c.declName, line, column)
}

// LocIn creates a Location tagged with an explicit name, for entries
// that originate somewhere other than this context's own declaration
// (e.g. a callee inlined from another declaration).
func (c *DebugContext) LocIn(declName string, line, column int) Location {
	return Loc(declName, line, column)
}

// --- Recording methods ---

// record is the internal method that creates an entry and appends it to
// the context. It is thread-safe.
func (c *DebugContext) record(severity string, location Location, message string) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &Entry{
		severity: severity,
		phase:    c.phase,
		message:  message,
		location: location,
	}
	c.entries = append(c.entries, entry)
	return entry
}

// Error records an entry with severity "error" and returns the *Entry
// for optional chaining (WithSnippet, WithHint).
func (c *DebugContext) Error(location Location, message string) *Entry {
	return c.record(SeverityError, location, message)
}

// Warning records an entry with severity "warning" and returns the *Entry
// for optional chaining.
func (c *DebugContext) Warning(location Location, message string) *Entry {
	return c.record(SeverityWarning, location, message)
}

// Info records an entry with severity "info" and returns the *Entry
// for optional chaining.
func (c *DebugContext) Info(location Location, message string) *Entry {
	return c.record(SeverityInfo, location, message)
}

// Trace records an entry with severity "trace" and returns the *Entry
// for optional chaining.
func (c *DebugContext) Trace(location Location, message string) *Entry {
	return c.record(SeverityTrace, location, message)
}

// --- Querying entries ---

// Entries returns all recorded entries in insertion order.
func (c *DebugContext) Entries() []*Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]*Entry, len(c.entries))
	copy(result, c.entries)
	return result
}

// Errors returns only entries with severity "error".
func (c *DebugContext) Errors() []*Entry {
	return c.filter(SeverityError)
}

// Warnings returns only entries with severity "warning".
func (c *DebugContext) Warnings() []*Entry {
	return c.filter(SeverityWarning)
}

// HasErrors returns true if at least one "error" entry exists.
func (c *DebugContext) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the total number of entries.
func (c *DebugContext) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// DeclName returns the declaration this context was opened for.
func (c *DebugContext) DeclName() string {
	return c.declName
}

// filter returns all entries matching the given severity.
func (c *DebugContext) filter(severity string) []*Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result []*Entry
	for _, e := range c.entries {
		if e.severity == severity {
			result = append(result, e)
		}
	}
	return result
}
