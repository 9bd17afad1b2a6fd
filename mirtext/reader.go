// Package mirtext reads a small textual fixture format into a
// mir.Program. It is not a macro-assembler: no macros, no includes, no
// conditionals, one instruction per line. It exists only so the CLI and
// tests can build a []mir.Inst without hand-writing columnar struct
// literals for every case, at the minimum scope that requires.
package mirtext

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/keurnel/x64emit/arch/x64"
	"github.com/keurnel/x64emit/mir"
)

// Error reports a problem reading one line of MIR text.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("mirtext: line %d: %s", e.Line, e.Message)
}

func errf(line int, format string, args ...any) *Error {
	return &Error{Line: line, Message: fmt.Sprintf(format, args...)}
}

var arithMnemonics = map[string]mir.Tag{
	"adc": mir.TagAdc, "add": mir.TagAdd, "sub": mir.TagSub,
	"xor": mir.TagXor, "and": mir.TagAnd, "or": mir.TagOr,
	"sbb": mir.TagSbb, "cmp": mir.TagCmp, "mov": mir.TagMov,
}

var condMnemonics = map[string]struct {
	family mir.CondFamily
	flags  byte
}{
	"gte": {mir.FamilySigned, 0}, "gt": {mir.FamilySigned, 1},
	"lt": {mir.FamilySigned, 2}, "lte": {mir.FamilySigned, 3},
	"ae": {mir.FamilyUnsigned, 0}, "a": {mir.FamilyUnsigned, 1},
	"b": {mir.FamilyUnsigned, 2}, "be": {mir.FamilyUnsigned, 3},
	"eq": {mir.FamilyEq, 0}, "ne": {mir.FamilyEq, 1},
}

var condJccTag = map[mir.CondFamily]mir.Tag{
	mir.FamilySigned: mir.TagJccSigned, mir.FamilyUnsigned: mir.TagJccUnsigned, mir.FamilyEq: mir.TagJccEq,
}

var condSetccTag = map[mir.CondFamily]mir.Tag{
	mir.FamilySigned: mir.TagSetccSigned, mir.FamilyUnsigned: mir.TagSetccUnsigned, mir.FamilyEq: mir.TagSetccEq,
}

// rawLine is one parsed instruction line before target labels are
// resolved: the label table needs every instruction's final index first.
type rawLine struct {
	lineNo int
	mnem   string
	args   []string
}

// Read parses src into a mir.Program. Labels are resolved in a second
// pass so a branch may target a line appearing later in the source.
func Read(src string) (*mir.Program, error) {
	var lines []rawLine
	labels := map[string]int{}

	scanner := bufio.NewScanner(strings.NewReader(src))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := stripComment(scanner.Text())
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if strings.HasSuffix(text, ":") {
			name := strings.TrimSuffix(text, ":")
			if _, exists := labels[name]; exists {
				return nil, errf(lineNo, "label %q redefined", name)
			}
			labels[name] = len(lines)
			continue
		}

		mnem, rest, _ := strings.Cut(text, " ")
		mnem = strings.ToLower(strings.TrimSpace(mnem))
		var args []string
		rest = strings.TrimSpace(rest)
		if rest != "" {
			for _, a := range strings.Split(rest, ",") {
				args = append(args, strings.TrimSpace(a))
			}
		}
		lines = append(lines, rawLine{lineNo: lineNo, mnem: mnem, args: args})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	p := &mir.Program{}
	for _, l := range lines {
		inst, err := parseLine(p, l, labels)
		if err != nil {
			return nil, err
		}
		p.Append(inst)
	}
	return p, nil
}

func stripComment(s string) string {
	if i := strings.IndexAny(s, ";#"); i >= 0 {
		return s[:i]
	}
	return s
}

func parseLine(p *mir.Program, l rawLine, labels map[string]int) (mir.Inst, error) {
	if tag, ok := arithMnemonics[l.mnem]; ok {
		return parseArith(p, l, tag)
	}
	if _, ok := condMnemonics[l.mnem]; ok {
		return mir.Inst{}, errf(l.lineNo, "bare condition mnemonic %q must be prefixed jcc_/setcc_", l.mnem)
	}
	if strings.HasPrefix(l.mnem, "jcc_") {
		name := strings.TrimPrefix(l.mnem, "jcc_")
		c, ok := condMnemonics[name]
		if !ok {
			return mir.Inst{}, errf(l.lineNo, "unknown condition %q", name)
		}
		if len(l.args) != 1 {
			return mir.Inst{}, errf(l.lineNo, "jcc_%s expects one label operand", name)
		}
		target, ok := labels[l.args[0]]
		if !ok {
			return mir.Inst{}, errf(l.lineNo, "undefined label %q", l.args[0])
		}
		return mir.Inst{Tag: condJccTag[c.family], Ops: mir.EncodeOps(x64.None, x64.None, c.flags), Data: uint32(target)}, nil
	}
	if strings.HasPrefix(l.mnem, "setcc_") {
		name := strings.TrimPrefix(l.mnem, "setcc_")
		c, ok := condMnemonics[name]
		if !ok {
			return mir.Inst{}, errf(l.lineNo, "unknown condition %q", name)
		}
		if len(l.args) != 1 {
			return mir.Inst{}, errf(l.lineNo, "setcc_%s expects one register operand", name)
		}
		reg, err := parseReg(l.lineNo, l.args[0])
		if err != nil {
			return mir.Inst{}, err
		}
		return mir.Inst{Tag: condSetccTag[c.family], Ops: mir.EncodeOps(reg, x64.None, c.flags)}, nil
	}

	switch l.mnem {
	case "movabs":
		return parseMovabs(p, l)
	case "lea":
		return parseLea(l)
	case "push":
		return parsePush(l)
	case "pop":
		return parsePop(l)
	case "ret":
		return parseRet(l)
	case "jmp":
		return parseJmpOrCall(l, labels, mir.TagJmp)
	case "call":
		return parseJmpOrCall(l, labels, mir.TagCall)
	case "call_extern":
		return parseCallExtern(l)
	case "test":
		return parseTest(l)
	case "imul":
		return parseImul(l)
	case "syscall":
		return mir.Inst{Tag: mir.TagSyscall}, nil
	case "brk", "int3":
		return mir.Inst{Tag: mir.TagBrk}, nil
	default:
		return mir.Inst{}, errf(l.lineNo, "unknown mnemonic %q", l.mnem)
	}
}

func parseReg(lineNo int, s string) (x64.Register, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	reg, ok := x64.ByName[s]
	if !ok {
		return x64.None, errf(lineNo, "unknown register %q", s)
	}
	return reg, nil
}

// parseMemOperand parses `[reg+disp]`, `[reg-disp]`, or `[disp]` and
// returns the base register (x64.None for the absolute form) and the
// signed displacement.
func parseMemOperand(lineNo int, s string) (x64.Register, int32, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return x64.None, 0, errf(lineNo, "expected a memory operand like [reg+disp], got %q", s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])

	sign := int32(1)
	splitIdx := -1
	for i, c := range inner {
		if c == '+' || c == '-' {
			splitIdx = i
			if c == '-' {
				sign = -1
			}
			break
		}
	}
	if splitIdx < 0 {
		if reg, err := parseReg(lineNo, inner); err == nil {
			return reg, 0, nil
		}
		disp, err := strconv.ParseInt(inner, 0, 32)
		if err != nil {
			return x64.None, 0, errf(lineNo, "bad memory operand %q", s)
		}
		return x64.None, int32(disp), nil
	}

	base := strings.TrimSpace(inner[:splitIdx])
	dispText := strings.TrimSpace(inner[splitIdx+1:])
	reg, err := parseReg(lineNo, base)
	if err != nil {
		return x64.None, 0, err
	}
	disp, err := strconv.ParseInt(dispText, 0, 32)
	if err != nil {
		return x64.None, 0, errf(lineNo, "bad displacement in %q", s)
	}
	return reg, sign * int32(disp), nil
}

func isMemOperand(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "[")
}

func parseArith(p *mir.Program, l rawLine, tag mir.Tag) (mir.Inst, error) {
	if len(l.args) != 2 {
		return mir.Inst{}, errf(l.lineNo, "%s expects two operands", l.mnem)
	}
	dst, src := l.args[0], l.args[1]

	if isMemOperand(dst) {
		base, disp, err := parseMemOperand(l.lineNo, dst)
		if err != nil {
			return mir.Inst{}, err
		}
		if reg, err := parseReg(l.lineNo, src); err == nil {
			return mir.Inst{Tag: tag, Ops: mir.EncodeOps(base, reg, 0b10), Data: uint32(disp)}, nil
		}
		imm, err := strconv.ParseInt(src, 0, 64)
		if err != nil {
			return mir.Inst{}, errf(l.lineNo, "bad immediate %q", src)
		}
		if disp == 0 {
			return mir.Inst{Tag: tag, Ops: mir.EncodeOps(base, x64.None, 0b10), Data: uint32(imm)}, nil
		}
		idx := p.PushImmPair(mir.ImmPair{DestOff: disp, Operand: int32(imm)})
		return mir.Inst{Tag: tag, Ops: mir.EncodeOps(base, x64.None, 0b11), Data: uint32(idx)}, nil
	}

	reg1, err := parseReg(l.lineNo, dst)
	if err != nil {
		return mir.Inst{}, err
	}

	if isMemOperand(src) {
		base, disp, err := parseMemOperand(l.lineNo, src)
		if err != nil {
			return mir.Inst{}, err
		}
		return mir.Inst{Tag: tag, Ops: mir.EncodeOps(reg1, base, 0b01), Data: uint32(disp)}, nil
	}
	if reg2, err := parseReg(l.lineNo, src); err == nil {
		return mir.Inst{Tag: tag, Ops: mir.EncodeOps(reg1, reg2, 0b00)}, nil
	}
	imm, err := strconv.ParseInt(src, 0, 64)
	if err != nil {
		return mir.Inst{}, errf(l.lineNo, "bad operand %q", src)
	}
	return mir.Inst{Tag: tag, Ops: mir.EncodeOps(reg1, x64.None, 0b00), Data: uint32(imm)}, nil
}

func parseMovabs(p *mir.Program, l rawLine) (mir.Inst, error) {
	if len(l.args) != 2 {
		return mir.Inst{}, errf(l.lineNo, "movabs expects two operands")
	}
	dst, src := l.args[0], l.args[1]

	if isMemOperand(dst) {
		_, addr, err := parseMemOperand(l.lineNo, dst)
		if err != nil {
			return mir.Inst{}, err
		}
		reg2, err := parseReg(l.lineNo, src)
		if err != nil {
			return mir.Inst{}, err
		}
		idx := p.PushImm64(int64(addr))
		return mir.Inst{Tag: mir.TagMovabs, Ops: mir.EncodeOps(x64.None, reg2, 0b10), Data: uint32(idx)}, nil
	}

	reg1, err := parseReg(l.lineNo, dst)
	if err != nil {
		return mir.Inst{}, err
	}
	if isMemOperand(src) {
		_, addr, err := parseMemOperand(l.lineNo, src)
		if err != nil {
			return mir.Inst{}, err
		}
		idx := p.PushImm64(int64(addr))
		return mir.Inst{Tag: mir.TagMovabs, Ops: mir.EncodeOps(reg1, x64.None, 0b01), Data: uint32(idx)}, nil
	}
	imm, err := strconv.ParseInt(src, 0, 64)
	if err != nil {
		return mir.Inst{}, errf(l.lineNo, "bad immediate %q", src)
	}
	idx := p.PushImm64(imm)
	return mir.Inst{Tag: mir.TagMovabs, Ops: mir.EncodeOps(reg1, x64.None, 0b00), Data: uint32(idx)}, nil
}

func parseLea(l rawLine) (mir.Inst, error) {
	if len(l.args) != 2 {
		return mir.Inst{}, errf(l.lineNo, "lea expects two operands")
	}
	reg1, err := parseReg(l.lineNo, l.args[0])
	if err != nil {
		return mir.Inst{}, err
	}
	base, disp, err := parseMemOperand(l.lineNo, l.args[1])
	if err != nil {
		return mir.Inst{}, err
	}
	return mir.Inst{Tag: mir.TagLea, Ops: mir.EncodeOps(reg1, base, 0b01), Data: uint32(disp)}, nil
}

func parsePush(l rawLine) (mir.Inst, error) {
	if len(l.args) != 1 {
		return mir.Inst{}, errf(l.lineNo, "push expects one operand")
	}
	arg := l.args[0]
	if isMemOperand(arg) {
		base, disp, err := parseMemOperand(l.lineNo, arg)
		if err != nil {
			return mir.Inst{}, err
		}
		return mir.Inst{Tag: mir.TagPush, Ops: mir.EncodeOps(base, x64.None, 0b01), Data: uint32(disp)}, nil
	}
	if reg, err := parseReg(l.lineNo, arg); err == nil {
		return mir.Inst{Tag: mir.TagPush, Ops: mir.EncodeOps(reg, x64.None, 0b00)}, nil
	}
	imm, err := strconv.ParseInt(arg, 0, 64)
	if err != nil {
		return mir.Inst{}, errf(l.lineNo, "bad push operand %q", arg)
	}
	return mir.Inst{Tag: mir.TagPush, Ops: mir.EncodeOps(x64.None, x64.None, 0b10), Data: uint32(imm)}, nil
}

func parsePop(l rawLine) (mir.Inst, error) {
	if len(l.args) != 1 {
		return mir.Inst{}, errf(l.lineNo, "pop expects one operand")
	}
	arg := l.args[0]
	if isMemOperand(arg) {
		base, disp, err := parseMemOperand(l.lineNo, arg)
		if err != nil {
			return mir.Inst{}, err
		}
		return mir.Inst{Tag: mir.TagPop, Ops: mir.EncodeOps(base, x64.None, 0b01), Data: uint32(disp)}, nil
	}
	reg, err := parseReg(l.lineNo, arg)
	if err != nil {
		return mir.Inst{}, err
	}
	return mir.Inst{Tag: mir.TagPop, Ops: mir.EncodeOps(reg, x64.None, 0b00)}, nil
}

func parseRet(l rawLine) (mir.Inst, error) {
	switch len(l.args) {
	case 0:
		return mir.Inst{Tag: mir.TagRet, Ops: mir.EncodeOps(x64.None, x64.None, 0b11)}, nil
	case 1:
		imm, err := strconv.ParseInt(l.args[0], 0, 32)
		if err != nil {
			return mir.Inst{}, errf(l.lineNo, "bad ret immediate %q", l.args[0])
		}
		return mir.Inst{Tag: mir.TagRet, Ops: mir.EncodeOps(x64.None, x64.None, 0b00), Data: uint32(imm)}, nil
	default:
		return mir.Inst{}, errf(l.lineNo, "ret takes at most one operand")
	}
}

func parseJmpOrCall(l rawLine, labels map[string]int, tag mir.Tag) (mir.Inst, error) {
	if len(l.args) != 1 {
		return mir.Inst{}, errf(l.lineNo, "%s expects one operand", l.mnem)
	}
	arg := l.args[0]
	if reg, err := parseReg(l.lineNo, arg); err == nil {
		return mir.Inst{Tag: tag, Ops: mir.EncodeOps(reg, x64.None, 0b01)}, nil
	}
	target, ok := labels[arg]
	if !ok {
		return mir.Inst{}, errf(l.lineNo, "undefined label %q", arg)
	}
	return mir.Inst{Tag: tag, Ops: mir.EncodeOps(x64.None, x64.None, 0b00), Data: uint32(target)}, nil
}

func parseCallExtern(l rawLine) (mir.Inst, error) {
	if len(l.args) != 1 {
		return mir.Inst{}, errf(l.lineNo, "call_extern expects one symbol-index operand")
	}
	idx, err := strconv.ParseInt(l.args[0], 0, 32)
	if err != nil {
		return mir.Inst{}, errf(l.lineNo, "bad symbol index %q", l.args[0])
	}
	return mir.Inst{Tag: mir.TagCallExtern, Data: uint32(idx)}, nil
}

func parseTest(l rawLine) (mir.Inst, error) {
	if len(l.args) != 2 {
		return mir.Inst{}, errf(l.lineNo, "test expects two operands")
	}
	reg1, err := parseReg(l.lineNo, l.args[0])
	if err != nil {
		return mir.Inst{}, err
	}
	imm, err := strconv.ParseInt(l.args[1], 0, 64)
	if err != nil {
		return mir.Inst{}, errf(l.lineNo, "test r/m, r is not representable in this fixture format: %q", l.args[1])
	}
	return mir.Inst{Tag: mir.TagTest, Ops: mir.EncodeOps(reg1, x64.None, 0), Data: uint32(imm)}, nil
}

func parseImul(l rawLine) (mir.Inst, error) {
	if len(l.args) != 2 && len(l.args) != 3 {
		return mir.Inst{}, errf(l.lineNo, "imul expects two or three operands")
	}
	reg1, err := parseReg(l.lineNo, l.args[0])
	if err != nil {
		return mir.Inst{}, err
	}
	reg2, err := parseReg(l.lineNo, l.args[1])
	if err != nil {
		return mir.Inst{}, err
	}
	if len(l.args) == 2 {
		return mir.Inst{Tag: mir.TagImulComplex, Ops: mir.EncodeOps(reg1, reg2, 0b00)}, nil
	}
	imm, err := strconv.ParseInt(l.args[2], 0, 64)
	if err != nil {
		return mir.Inst{}, errf(l.lineNo, "bad immediate %q", l.args[2])
	}
	return mir.Inst{Tag: mir.TagImulComplex, Ops: mir.EncodeOps(reg1, reg2, 0b10), Data: uint32(imm)}, nil
}
