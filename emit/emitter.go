package emit

import "github.com/keurnel/x64emit/mir"

// Emit runs the single emission pass over p: for every instruction it
// records the byte offset it starts at, dispatches by Tag to a
// form-specific routine, and — once every instruction has produced
// bytes — resolves the intra-declaration branch relocations collected
// along the way. It returns the first error raised, if any; a non-nil
// error means the Result is incomplete and must not be used.
func (e *Emitter) Emit(p *mir.Program) (Result, error) {
	e.offsetMap = make([]int32, len(p.Insts))
	e.known = make([]bool, len(p.Insts))

	for idx, inst := range p.Insts {
		if e.err != nil {
			break
		}
		e.offsetMap[idx] = int32(e.enc.Len())
		e.known[idx] = true
		e.dispatch(p, idx, inst)
	}

	if e.err == nil {
		if err := fixup(e.enc, e.relocs, e.offsetMap, e.known); err != nil {
			e.err = err.(*Error)
		}
	}

	if e.err != nil {
		return Result{}, e.err
	}

	return Result{
		Code:      e.enc.Bytes(),
		OffsetMap: e.offsetMap,
		Externs:   e.externs,
	}, nil
}

// dispatch routes one instruction to its family's emission routine by
// Tag. Unknown tags are the one failure mode every other dispatcher
// delegates back here for.
func (e *Emitter) dispatch(p *mir.Program, idx int, inst mir.Inst) {
	if op, scale, ok := mir.ArithOpForTag(inst.Tag); ok {
		e.emitArith(p, idx, inst, op, scale)
		return
	}
	if family, isSetcc, ok := mir.CondFamilyForTag(inst.Tag); ok {
		if isSetcc {
			e.emitSetcc(idx, inst, family)
		} else {
			e.emitJcc(idx, inst, family)
		}
		return
	}

	switch inst.Tag {
	case mir.TagMovabs:
		e.emitMovabs(p, idx, inst)
	case mir.TagLea:
		e.emitLea(idx, inst)
	case mir.TagLeaRip:
		e.emitLeaRip(idx, inst)
	case mir.TagPush:
		e.emitPush(p, idx, inst)
	case mir.TagPop:
		e.emitPop(idx, inst)
	case mir.TagRet:
		e.emitRet(idx, inst)
	case mir.TagJmp:
		e.emitJmp(idx, inst)
	case mir.TagCall:
		e.emitCall(idx, inst)
	case mir.TagCallExtern:
		e.emitCallExtern(idx, inst)
	case mir.TagTest:
		e.emitTest(idx, inst)
	case mir.TagSyscall:
		e.emitSyscall(idx)
	case mir.TagBrk:
		e.emitBrk(idx)
	case mir.TagImulComplex:
		e.emitImulComplex(idx, inst)
	default:
		e.fail(idx, "unknown", "unrecognized MIR tag %d", inst.Tag)
	}
}

// PrologueEnd, EpilogueBegin, and Line forward the three debug-info
// markers to the configured sink together with the emitter's current
// byte offset, tracking prevDI* the way a single-pass line-table writer
// needs to compute deltas.
func (e *Emitter) PrologueEnd() {
	e.debug.PrologueEnd(e.enc.Len())
}

func (e *Emitter) EpilogueBegin() {
	e.debug.EpilogueBegin(e.enc.Len())
}

func (e *Emitter) Line(line, column int) {
	offset := e.enc.Len()
	e.debug.Line(offset, line, column)
	e.prevDILine, e.prevDIColumn, e.prevDIPC = line, column, offset
}
