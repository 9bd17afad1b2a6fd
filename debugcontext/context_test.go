package debugcontext

import (
	"sync"
	"testing"
)

func TestNewDebugContext(t *testing.T) {
	t.Run("creates context with decl name and empty state", func(t *testing.T) {
		ctx := NewDebugContext("kernel_entry")

		if ctx == nil {
			t.Fatal("Expected non-nil DebugContext")
		}
		if ctx.DeclName() != "kernel_entry" {
			t.Errorf("Expected decl name 'kernel_entry', got '%s'", ctx.DeclName())
		}
		if ctx.Phase() != "" {
			t.Errorf("Expected empty phase, got '%s'", ctx.Phase())
		}
		if ctx.Count() != 0 {
			t.Errorf("Expected 0 entries, got %d", ctx.Count())
		}
	})
}

func TestDebugContext_Phases(t *testing.T) {
	t.Run("SetPhase and Phase", func(t *testing.T) {
		ctx := NewDebugContext("kernel_entry")

		ctx.SetPhase("reading")
		if ctx.Phase() != "reading" {
			t.Errorf("Expected phase 'reading', got '%s'", ctx.Phase())
		}

		ctx.SetPhase("emitting")
		if ctx.Phase() != "emitting" {
			t.Errorf("Expected phase 'emitting', got '%s'", ctx.Phase())
		}
	})

	t.Run("entries inherit the current phase", func(t *testing.T) {
		ctx := NewDebugContext("kernel_entry")

		ctx.SetPhase("reading")
		ctx.Error(ctx.Loc(1, 0), "unknown mnemonic")

		ctx.SetPhase("emitting")
		ctx.Warning(ctx.Loc(5, 3), "narrowed imm32 to imm8")

		entries := ctx.Entries()
		if entries[0].Phase() != "reading" {
			t.Errorf("Expected first entry phase 'reading', got '%s'", entries[0].Phase())
		}
		if entries[1].Phase() != "emitting" {
			t.Errorf("Expected second entry phase 'emitting', got '%s'", entries[1].Phase())
		}
	})
}

func TestDebugContext_Location(t *testing.T) {
	t.Run("Loc uses the context's own decl name", func(t *testing.T) {
		ctx := NewDebugContext("kernel_entry")
		loc := ctx.Loc(10, 5)

		if loc.DeclName() != "kernel_entry" {
			t.Errorf("Expected decl name 'kernel_entry', got '%s'", loc.DeclName())
		}
		if loc.Line() != 10 {
			t.Errorf("Expected line 10, got %d", loc.Line())
		}
		if loc.Column() != 5 {
			t.Errorf("Expected column 5, got %d", loc.Column())
		}
	})

	t.Run("LocIn uses an explicit decl name", func(t *testing.T) {
		ctx := NewDebugContext("kernel_entry")
		loc := ctx.LocIn("string_concat", 3, 0)

		if loc.DeclName() != "string_concat" {
			t.Errorf("Expected decl name 'string_concat', got '%s'", loc.DeclName())
		}
		if loc.Line() != 3 {
			t.Errorf("Expected line 3, got %d", loc.Line())
		}
	})
}

func TestDebugContext_Recording(t *testing.T) {
	t.Run("Error records entry with severity error", func(t *testing.T) {
		ctx := NewDebugContext("kernel_entry")
		ctx.SetPhase("reading")

		entry := ctx.Error(ctx.Loc(10, 0), "unknown mnemonic")

		if entry.Severity() != SeverityError {
			t.Errorf("Expected severity '%s', got '%s'", SeverityError, entry.Severity())
		}
		if entry.Message() != "unknown mnemonic" {
			t.Errorf("Expected message 'unknown mnemonic', got '%s'", entry.Message())
		}
		if ctx.Count() != 1 {
			t.Errorf("Expected 1 entry, got %d", ctx.Count())
		}
	})

	t.Run("Warning records entry with severity warning", func(t *testing.T) {
		ctx := NewDebugContext("kernel_entry")
		entry := ctx.Warning(ctx.Loc(5, 0), "unused label")

		if entry.Severity() != SeverityWarning {
			t.Errorf("Expected severity '%s', got '%s'", SeverityWarning, entry.Severity())
		}
	})

	t.Run("Info records entry with severity info", func(t *testing.T) {
		ctx := NewDebugContext("kernel_entry")
		entry := ctx.Info(ctx.Loc(1, 0), "declaration emitted")

		if entry.Severity() != SeverityInfo {
			t.Errorf("Expected severity '%s', got '%s'", SeverityInfo, entry.Severity())
		}
	})

	t.Run("Trace records entry with severity trace", func(t *testing.T) {
		ctx := NewDebugContext("kernel_entry")
		entry := ctx.Trace(ctx.Loc(1, 0), "prologue end at code offset 4")

		if entry.Severity() != SeverityTrace {
			t.Errorf("Expected severity '%s', got '%s'", SeverityTrace, entry.Severity())
		}
	})

	t.Run("chaining WithSnippet and WithHint from recording method", func(t *testing.T) {
		ctx := NewDebugContext("kernel_entry")
		ctx.SetPhase("reading")

		ctx.Error(ctx.Loc(10, 3), "unknown mnemonic").
			WithSnippet("  mvo rax, 1").
			WithHint("did you mean 'mov'?")

		entries := ctx.Entries()
		if len(entries) != 1 {
			t.Fatalf("Expected 1 entry, got %d", len(entries))
		}

		e := entries[0]
		if e.Snippet() != "  mvo rax, 1" {
			t.Errorf("Expected snippet '  mvo rax, 1', got '%s'", e.Snippet())
		}
		if e.Hint() != "did you mean 'mov'?" {
			t.Errorf("Expected hint, got '%s'", e.Hint())
		}
	})
}

func TestDebugContext_Querying(t *testing.T) {
	ctx := NewDebugContext("kernel_entry")

	ctx.Error(ctx.Loc(1, 0), "error 1")
	ctx.Warning(ctx.Loc(2, 0), "warning 1")
	ctx.Error(ctx.Loc(3, 0), "error 2")
	ctx.Info(ctx.Loc(4, 0), "info 1")
	ctx.Trace(ctx.Loc(5, 0), "trace 1")

	t.Run("Entries returns all in order", func(t *testing.T) {
		entries := ctx.Entries()
		if len(entries) != 5 {
			t.Fatalf("Expected 5 entries, got %d", len(entries))
		}
		if entries[0].Message() != "error 1" {
			t.Errorf("Expected first entry 'error 1', got '%s'", entries[0].Message())
		}
		if entries[4].Message() != "trace 1" {
			t.Errorf("Expected last entry 'trace 1', got '%s'", entries[4].Message())
		}
	})

	t.Run("Errors returns only errors", func(t *testing.T) {
		errors := ctx.Errors()
		if len(errors) != 2 {
			t.Fatalf("Expected 2 errors, got %d", len(errors))
		}
		if errors[0].Message() != "error 1" || errors[1].Message() != "error 2" {
			t.Error("Errors returned wrong entries")
		}
	})

	t.Run("Warnings returns only warnings", func(t *testing.T) {
		warnings := ctx.Warnings()
		if len(warnings) != 1 {
			t.Fatalf("Expected 1 warning, got %d", len(warnings))
		}
		if warnings[0].Message() != "warning 1" {
			t.Errorf("Expected 'warning 1', got '%s'", warnings[0].Message())
		}
	})

	t.Run("HasErrors returns true when errors exist", func(t *testing.T) {
		if !ctx.HasErrors() {
			t.Error("Expected HasErrors() to return true")
		}
	})

	t.Run("HasErrors returns false when no errors", func(t *testing.T) {
		clean := NewDebugContext("string_concat")
		clean.Warning(clean.Loc(1, 0), "just a warning")

		if clean.HasErrors() {
			t.Error("Expected HasErrors() to return false")
		}
	})

	t.Run("Count returns total entries", func(t *testing.T) {
		if ctx.Count() != 5 {
			t.Errorf("Expected 5, got %d", ctx.Count())
		}
	})
}

func TestDebugContext_Entries_ReturnsCopy(t *testing.T) {
	ctx := NewDebugContext("kernel_entry")
	ctx.Error(ctx.Loc(1, 0), "original")

	entries := ctx.Entries()
	entries[0] = nil // Mutate the returned slice.

	// The context's internal entries must be unaffected.
	if ctx.Entries()[0] == nil {
		t.Error("Entries() must return a copy, not a reference to the internal slice")
	}
}

func TestDebugContext_ThreadSafety(t *testing.T) {
	ctx := NewDebugContext("kernel_entry")

	var wg sync.WaitGroup
	const goroutines = 100

	wg.Add(goroutines)
	for i := range goroutines {
		go func(n int) {
			defer wg.Done()
			ctx.Error(ctx.Loc(n, 0), "concurrent error")
		}(i)
	}
	wg.Wait()

	if ctx.Count() != goroutines {
		t.Errorf("Expected %d entries from concurrent writes, got %d", goroutines, ctx.Count())
	}
}

func TestDebugContext_InsertionOrder(t *testing.T) {
	ctx := NewDebugContext("kernel_entry")

	ctx.SetPhase("reading")
	ctx.Error(ctx.Loc(1, 0), "first")

	ctx.SetPhase("emitting")
	ctx.Warning(ctx.Loc(2, 0), "second")

	ctx.SetPhase("linking")
	ctx.Info(ctx.Loc(3, 0), "third")

	entries := ctx.Entries()
	expected := []string{"first", "second", "third"}
	for i, msg := range expected {
		if entries[i].Message() != msg {
			t.Errorf("Entry %d: expected message '%s', got '%s'", i, msg, entries[i].Message())
		}
	}
}

func TestDebugContext_CalleeLocation(t *testing.T) {
	ctx := NewDebugContext("kernel_entry")
	ctx.SetPhase("reading")

	loc := ctx.LocIn("string_concat", 5, 0)
	ctx.Error(loc, "bad operand in inlined callee")

	entry := ctx.Entries()[0]
	if entry.Location().DeclName() != "string_concat" {
		t.Errorf("Expected decl name 'string_concat', got '%s'", entry.Location().DeclName())
	}
	if entry.String() != "error [reading] string_concat:5: bad operand in inlined callee" {
		t.Errorf("Unexpected String(): %s", entry.String())
	}
}
