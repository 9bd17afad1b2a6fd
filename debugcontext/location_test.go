package debugcontext

import "testing"

func TestLocation_String(t *testing.T) {
	t.Run("with column", func(t *testing.T) {
		loc := Loc("kernel_entry", 12, 5)
		if loc.String() != "kernel_entry:12:5" {
			t.Errorf("Expected 'kernel_entry:12:5', got '%s'", loc.String())
		}
	})

	t.Run("without column", func(t *testing.T) {
		loc := Loc("kernel_entry", 12, 0)
		if loc.String() != "kernel_entry:12" {
			t.Errorf("Expected 'kernel_entry:12', got '%s'", loc.String())
		}
	})
}

func TestLocation_Accessors(t *testing.T) {
	loc := Loc("string_concat", 7, 3)

	if loc.DeclName() != "string_concat" {
		t.Errorf("Expected DeclName 'string_concat', got '%s'", loc.DeclName())
	}
	if loc.Line() != 7 {
		t.Errorf("Expected Line 7, got %d", loc.Line())
	}
	if loc.Column() != 3 {
		t.Errorf("Expected Column 3, got %d", loc.Column())
	}
}
