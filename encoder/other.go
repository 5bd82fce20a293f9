package encoder

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/vrisc-as/numlit"
)

func init() {
	Table[0x00] = encodeNoOperand
	Table[0x14] = encodeImmediate8
	Table[0x15] = encodeNoOperand
	Table[0x16] = encodeNoOperand

	Table[0x30] = encodeNoOperand
	Table[0x31] = encodeNoOperand
	Table[0x32] = encodeNoOperand
	Table[0x33] = encodeNoOperand

	Table[0x34] = encodeOneRegister
	Table[0x35] = encodeOneRegister
	Table[0x36] = encodeOneRegister
	Table[0x37] = encodeOneRegister
	Table[0x38] = encodeOneRegister
	Table[0x39] = encodeOneRegister
	Table[0x3a] = encodeOneRegister
	Table[0x3b] = encodeOneRegister

	Table[0x3c] = encodeNoOperand
	Table[0x3d] = encodeOneRegister
	Table[0x3e] = encodeNoOperand
}

// encodeImmediate8 builds ir (0x14): a single 8-bit immediate literal.
func encodeImmediate8(tokens []string) (Encoded, error) {
	if len(tokens) < 2 {
		return Encoded{}, fmt.Errorf("ir requires an $immediate operand")
	}
	operand := tokens[1]
	if !strings.HasPrefix(operand, "$") {
		return Encoded{}, fmt.Errorf("invalid operand %q for ir: expected $literal", operand)
	}
	imm, err := numlit.Parse[uint8](operand[1:])
	if err != nil {
		return Encoded{}, fmt.Errorf("invalid immediate %q for ir: %w", operand, err)
	}
	return Encoded{Operands: []byte{imm}}, nil
}

// encodeOneRegister builds the privileged single-register instructions
// (livt/lkpt/lupt/lscp/l*dump/s*dump/initext).
func encodeOneRegister(tokens []string) (Encoded, error) {
	if len(tokens) < 2 {
		return Encoded{}, fmt.Errorf("%q requires a register operand", tokens[0])
	}
	reg, err := parseRegister(tokens[1])
	if err != nil {
		return Encoded{}, err
	}
	return Encoded{Operands: []byte{reg}}, nil
}
