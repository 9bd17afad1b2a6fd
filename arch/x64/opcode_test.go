package x64_test

import (
	"testing"

	"github.com/keurnel/x64emit/arch/x64"
)

func TestArithOpcodeMI(t *testing.T) {
	tests := []struct {
		name    string
		op      x64.ArithOp
		wantOp  byte
		wantExt byte
	}{
		{"ADD", x64.Add, 0x81, 0},
		{"SUB", x64.Sub, 0x81, 5},
		{"MOV", x64.Mov, 0xC7, 0},
		{"CMP", x64.Cmp, 0x81, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ext := x64.ArithOpcode(tt.op, x64.FormMI, false)
			if op != tt.wantOp {
				t.Errorf("opcode = 0x%02X, want 0x%02X", op, tt.wantOp)
			}
			if ext != tt.wantExt {
				t.Errorf("ext = %d, want %d", ext, tt.wantExt)
			}
		})
	}
}

func TestArithOpcodeMRAnd8BitDownshift(t *testing.T) {
	op, _ := x64.ArithOpcode(x64.Mov, x64.FormMR, false)
	if op != 0x89 {
		t.Errorf("mov MR opcode = 0x%02X, want 0x89", op)
	}

	op8, _ := x64.ArithOpcode(x64.Mov, x64.FormMR, true)
	if op8 != 0x88 {
		t.Errorf("mov MR 8-bit opcode = 0x%02X, want 0x88", op8)
	}
}

func TestArithOpcodeRM(t *testing.T) {
	op, _ := x64.ArithOpcode(x64.Add, x64.FormRM, false)
	if op != 0x03 {
		t.Errorf("add RM opcode = 0x%02X, want 0x03", op)
	}
	op8, _ := x64.ArithOpcode(x64.Sub, x64.FormRM, true)
	if op8 != 0x2a {
		t.Errorf("sub RM 8-bit opcode = 0x%02X, want 0x2a", op8)
	}
}

func TestConditionTables(t *testing.T) {
	tests := []struct {
		name      string
		cond      x64.Condition
		wantJcc   byte
		wantSetcc byte
	}{
		{"gte", x64.CondGte, 0x8D, 0x9D},
		{"gt", x64.CondGt, 0x8F, 0x9F},
		{"lt", x64.CondLt, 0x8C, 0x9C},
		{"lte", x64.CondLte, 0x8E, 0x9E},
		{"ae", x64.CondAe, 0x83, 0x93},
		{"a", x64.CondA, 0x87, 0x97},
		{"b", x64.CondB, 0x82, 0x92},
		{"be", x64.CondBe, 0x86, 0x96},
		{"eq", x64.CondEq, 0x84, 0x94},
		{"ne", x64.CondNe, 0x85, 0x95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := x64.JccOpcode(tt.cond); got != tt.wantJcc {
				t.Errorf("JccOpcode(%s) = 0x%02X, want 0x%02X", tt.name, got, tt.wantJcc)
			}
			if got := x64.SetccOpcode(tt.cond); got != tt.wantSetcc {
				t.Errorf("SetccOpcode(%s) = 0x%02X, want 0x%02X", tt.name, got, tt.wantSetcc)
			}
		})
	}
}
