package mir

import (
	"testing"
	"unsafe"

	"github.com/keurnel/x64emit/arch/x64"
)

func TestInstSizeIsEightBytes(t *testing.T) {
	if got := unsafe.Sizeof(Inst{}); got != 8 {
		t.Errorf("sizeof(Inst) = %d, want 8", got)
	}
}

func TestProgramAppendReturnsIndex(t *testing.T) {
	var p Program
	i0 := p.Append(Inst{Tag: TagPush, Ops: EncodeOps(x64.RBP, x64.None, 0)})
	i1 := p.Append(Inst{Tag: TagRet})
	if i0 != 0 || i1 != 1 {
		t.Errorf("indices = %d, %d, want 0, 1", i0, i1)
	}
	if len(p.Insts) != 2 {
		t.Fatalf("len(Insts) = %d, want 2", len(p.Insts))
	}
}

func TestProgramImm64RoundTrip(t *testing.T) {
	var p Program
	tests := []int64{0, 1, -1, 1<<40 + 7, -(1 << 40)}
	for _, v := range tests {
		idx := p.PushImm64(v)
		if got := p.Imm64(idx); got != v {
			t.Errorf("Imm64(PushImm64(%d)) = %d", v, got)
		}
	}
}

func TestProgramImmPairRoundTrip(t *testing.T) {
	var p Program
	want := ImmPair{DestOff: -16, Operand: 42}
	idx := p.PushImmPair(want)
	if got := p.ImmPair(idx); got != want {
		t.Errorf("ImmPair(PushImmPair(%+v)) = %+v", want, got)
	}
}

func TestProgramExtraIndicesDontOverlap(t *testing.T) {
	var p Program
	idx0 := p.PushImm64(100)
	idx1 := p.PushImmPair(ImmPair{DestOff: 1, Operand: 2})
	if idx1 == idx0 {
		t.Fatalf("expected distinct extra indices, got %d and %d", idx0, idx1)
	}
	if got := p.Imm64(idx0); got != 100 {
		t.Errorf("Imm64(idx0) = %d, want 100", got)
	}
	if got := p.ImmPair(idx1); got != (ImmPair{DestOff: 1, Operand: 2}) {
		t.Errorf("ImmPair(idx1) = %+v", got)
	}
}
