package x64

// Condition names one of the relations conditional jumps and set-byte
// instructions can test. The three families (signed gt/lt, unsigned
// a/b, eq/ne) are selected by MIR tag; Condition selects the specific
// relation within whichever family the tag picked.
type Condition int

const (
	CondGte Condition = iota // signed >=
	CondGt                   // signed >
	CondLt                   // signed <
	CondLte                  // signed <=
	CondAe                   // unsigned >=
	CondA                    // unsigned >
	CondB                    // unsigned <
	CondBe                   // unsigned <=
	CondEq                   // ==
	CondNe                   // !=
)

type condEntry struct {
	jcc   byte // second opcode byte of 0F xx, disp32
	setcc byte // second opcode byte of 0F xx /0
}

var condTable = map[Condition]condEntry{
	CondGte: {jcc: 0x8D, setcc: 0x9D},
	CondGt:  {jcc: 0x8F, setcc: 0x9F},
	CondLt:  {jcc: 0x8C, setcc: 0x9C},
	CondLte: {jcc: 0x8E, setcc: 0x9E},
	CondAe:  {jcc: 0x83, setcc: 0x93},
	CondA:   {jcc: 0x87, setcc: 0x97},
	CondB:   {jcc: 0x82, setcc: 0x92},
	CondBe:  {jcc: 0x86, setcc: 0x96},
	CondEq:  {jcc: 0x84, setcc: 0x94},
	CondNe:  {jcc: 0x85, setcc: 0x95},
}

// JccOpcode returns the second opcode byte (after the 0x0F escape) for a
// conditional jump testing cond.
func JccOpcode(cond Condition) byte {
	return condTable[cond].jcc
}

// SetccOpcode returns the second opcode byte (after the 0x0F escape) for
// a set-byte-on-condition instruction testing cond.
func SetccOpcode(cond Condition) byte {
	return condTable[cond].setcc
}
