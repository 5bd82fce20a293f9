package encoder

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/vrisc-as/numlit"
)

func init() {
	Table[0x10] = encodeConditionalJump(0x10)
	Table[0x11] = encodeConditionalJump(0x11)
	Table[0x12] = encodeNoOperand
	Table[0x13] = encodeLoop
}

// encodeConditionalJump builds jc (0x10) and cc (0x11): control byte
// cond<<4|w followed by a w-sized address, where w is the literal width
// code from the mnemonic suffix, not decremented. Only w in {1,2,3}
// carry an address large enough to be useful; w=0 is rejected.
func encodeConditionalJump(opcode byte) EncodeFunc {
	return func(tokens []string) (Encoded, error) {
		if len(tokens) < 2 {
			return Encoded{}, fmt.Errorf("%q requires an address operand", tokens[0])
		}
		w := getWidth(tokens[0])
		if w == 0 {
			return Encoded{}, fmt.Errorf("invalid width for %q: conditional jump/call addresses must be 16/32/64-bit", tokens[0])
		}
		cond, err := getConditionCode(tokens[0])
		if err != nil {
			return Encoded{}, err
		}
		control := cond<<4 | w
		length := immLen(w)

		operand := tokens[1]
		if !strings.HasPrefix(operand, "*") {
			return Encoded{}, fmt.Errorf("invalid operand %q for %q: expected *name or *literal", operand, tokens[0])
		}
		name := operand[1:]

		if !numlit.IsNumber(name) {
			buf := make([]byte, 1+length)
			buf[0] = control
			return Encoded{
				Operands: buf,
				Fixup:    &Fixup{Offset: 1, Length: length, Name: name},
			}, nil
		}

		num, err := numlit.Parse[uint64](name)
		if err != nil {
			return Encoded{}, fmt.Errorf("invalid address literal %q: %w", name, err)
		}
		buf := append([]byte{control}, leb64(num, length)...)
		return Encoded{Operands: buf}, nil
	}
}

// encodeNoOperand builds the bare "r" (return, 0x12) instruction.
func encodeNoOperand(_ []string) (Encoded, error) {
	return Encoded{}, nil
}

// encodeLoop builds loop (0x13): a register plus a fixed 4-byte counter
// target, always fixup-length 4 regardless of any width suffix.
func encodeLoop(tokens []string) (Encoded, error) {
	if len(tokens) < 3 {
		return Encoded{}, fmt.Errorf("loop requires a register and an address operand")
	}
	reg, err := parseRegister(tokens[1])
	if err != nil {
		return Encoded{}, err
	}
	if !strings.HasPrefix(tokens[2], "*") {
		return Encoded{}, fmt.Errorf("invalid operand %q for loop", tokens[2])
	}
	name := tokens[2][1:]

	if !numlit.IsNumber(name) {
		return Encoded{
			Operands: []byte{reg, 0, 0, 0, 0},
			Fixup:    &Fixup{Offset: 1, Length: 4, Name: name},
		}, nil
	}
	num, err := numlit.Parse[uint32](name)
	if err != nil {
		return Encoded{}, fmt.Errorf("invalid address literal %q: %w", name, err)
	}
	buf := append([]byte{reg}, leb64(uint64(num), 4)...)
	return Encoded{Operands: buf}, nil
}
