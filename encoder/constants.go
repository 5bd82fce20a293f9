// Package encoder implements the vrisc mnemonic/operand encoder table: a
// 64-slot table mapping base opcodes to pure functions that turn a
// tokenised instruction line into the bytes of an Instruction record.
package encoder

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/vrisc-as/numlit"
)

// Encoded is the result of encoding one instruction: the operand bytes
// (the opcode byte itself is the table index and is not included here)
// plus an optional fixup describing a deferred address patch.
type Encoded struct {
	Operands []byte
	Fixup    *Fixup
}

// Fixup describes a deferred address patch within the operand bytes of
// the instruction that registered it.
type Fixup struct {
	Offset int    // byte offset into Operands where the patch begins
	Length int    // patch length: 1, 2, 4, or 8
	Name   string // referenced symbol name, or the reserved "n"/"p"
}

// EncodeFunc encodes one instruction's tokens (tokens[0] is the mnemonic,
// tokens[1:] are the operands) into its operand bytes and an optional
// fixup. It never sees the record index; fixups are resolved against
// whatever record index the caller ultimately assigns.
type EncodeFunc func(tokens []string) (Encoded, error)

// Mnemonics is the 64-slot mnemonic table, indexed by base opcode.
// An empty string marks a reserved/undefined slot. Index order and
// spelling mirror the vrisc reference assembler; "jc" and "cc" are
// present only for documentation and are never matched by their literal
// spelling (the j*/c* overrides in MatchOpcode pre-empt them).
var Mnemonics = [64]string{
	0x00: "nop",
	0x01: "add",
	0x02: "sub",
	0x03: "inc",
	0x04: "dec",
	0x05: "shl",
	0x06: "shr",
	0x07: "rol",
	0x08: "ror",
	0x09: "cmp",
	0x0a: "and",
	0x0b: "or",
	0x0c: "not",
	0x0d: "xor",
	0x10: "jc",
	0x11: "cc",
	0x12: "r",
	0x13: "loop",
	0x14: "ir",
	0x15: "sysc",
	0x16: "sysr",
	0x20: "ldi",
	0x21: "ldm",
	0x22: "stm",
	0x24: "in",
	0x25: "out",
	0x30: "ei",
	0x31: "di",
	0x32: "ep",
	0x33: "dp",
	0x34: "livt",
	0x35: "lkpt",
	0x36: "lupt",
	0x37: "lscp",
	0x38: "lipdump",
	0x39: "lflagdump",
	0x3a: "sipdump",
	0x3b: "sflagdump",
	0x3c: "cpuid",
	0x3d: "initext",
	0x3e: "destext",
}

// Table is the 64-slot encoder table, index-aligned with Mnemonics.
// It is populated by init() in each of this package's per-group files.
var Table [64]EncodeFunc

// MatchOpcode selects the base opcode for the first token of a source
// line by longest-prefix match against Mnemonics, then applies the
// j*/c* group overrides. Longest-prefix (rather than first-in-table-order)
// match is required so that e.g. "initext" resolves to its own slot
// instead of the shorter "in" slot that also prefixes it. It returns
// ok=false when tok matches nothing, meaning the front-end should treat
// the line as a directive or label.
func MatchOpcode(tok string) (int, bool) {
	best := -1
	for i := 0; i < len(Mnemonics); i++ {
		m := Mnemonics[i]
		if m == "" || !strings.HasPrefix(tok, m) {
			continue
		}
		if best == -1 || len(m) > len(Mnemonics[best]) {
			best = i
		}
	}

	if strings.HasPrefix(tok, "j") {
		best = 0x10
	}
	if strings.HasPrefix(tok, "c") && tok != "cpuid" {
		best = 0x11
	}

	if best < 0 || best >= len(Mnemonics) {
		return 0, false
	}
	return best, true
}

// ReservedOpcode reports whether opcode names a table slot with no
// encoder registered.
func ReservedOpcode(opcode int) bool {
	return opcode < 0 || opcode >= len(Table) || Table[opcode] == nil
}

// getWidth returns the 2-bit width code encoded by a mnemonic's trailing
// b/w/d/q letter (0/1/2/3). A missing suffix defaults to 3 (64-bit). The
// bare condition mnemonics jb/jnb/cb/cnb end in 'b' but are NOT width-b:
// for them width is always 3.
func getWidth(tok string) byte {
	switch tok {
	case "jb", "jnb", "cb", "cnb":
		return 3
	}
	if tok == "" {
		return 3
	}
	switch tok[len(tok)-1] {
	case 'b':
		return 0
	case 'w':
		return 1
	case 'd':
		return 2
	case 'q':
		return 3
	default:
		return 3
	}
}

// conditionCodes is the closed set of condition-mnemonic suffixes.
var conditionCodes = map[string]byte{
	"z": 1, "x": 2, "o": 3, "e": 4, "ne": 5, "h": 6, "l": 7,
	"nh": 8, "nl": 9, "b": 0xa, "s": 0xb, "nb": 0xc, "ns": 0xd,
}

// getConditionCode extracts the 4-bit condition code from a j*/c*
// mnemonic: strip the leading j/c, strip the trailing width letter,
// then look up what remains. The jb/jnb/cb/cnb width exception lives
// only in getWidth: by the time the trailing letter is stripped here
// there is nothing left to distinguish, so it always comes off. An
// empty remainder is the unconditional code 0.
func getConditionCode(tok string) (byte, error) {
	body := tok[1:]
	if len(body) > 0 {
		switch body[len(body)-1] {
		case 'b', 'w', 'd', 'q':
			body = body[:len(body)-1]
		}
	}
	if body == "" {
		return 0, nil
	}
	code, ok := conditionCodes[body]
	if !ok {
		return 0, fmt.Errorf("invalid condition code %q in %q", body, tok)
	}
	return code, nil
}

// parseRegister parses a "%xN" register operand.
func parseRegister(tok string) (byte, error) {
	if !strings.HasPrefix(tok, "%x") {
		return 0, fmt.Errorf("invalid register operand %q", tok)
	}
	n, err := numlit.Parse[uint8](tok[2:])
	if err != nil {
		return 0, fmt.Errorf("invalid register operand %q: %w", tok, err)
	}
	return n, nil
}

// immLen returns 2^w for w in {0,1,2,3} via repeated doubling (never the
// XOR-based shortcut one historical version of the source used).
func immLen(w byte) int {
	n := 1
	for i := byte(0); i < w; i++ {
		n *= 2
	}
	return n
}

// leb64 returns the little-endian encoding of v truncated to n bytes.
func leb64(v uint64, n int) []byte {
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}
