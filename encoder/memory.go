package encoder

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/vrisc-as/numlit"
)

func init() {
	Table[0x20] = encodeLoadImmediate
	Table[0x21] = encodeTwoRegSeparateWidth
	Table[0x22] = encodeTwoRegSeparateWidth
	Table[0x24] = encodePortIO
	Table[0x25] = encodePortIO
}

// encodeLoadImmediate builds ldi (0x20): byte0 = r<<4|w, followed by a
// w-wide immediate, either an inline $literal or a *name/*literal
// address fixup.
func encodeLoadImmediate(tokens []string) (Encoded, error) {
	if len(tokens) < 3 {
		return Encoded{}, fmt.Errorf("ldi requires an immediate/address operand and a register")
	}
	operand := tokens[1]
	reg, err := parseRegister(tokens[2])
	if err != nil {
		return Encoded{}, err
	}
	w := getWidth(tokens[0])
	control := reg<<4 | w
	length := immLen(w)

	switch {
	case strings.HasPrefix(operand, "$"):
		num, err := numlit.Parse[uint64](operand[1:])
		if err != nil {
			return Encoded{}, fmt.Errorf("invalid immediate %q for ldi: %w", operand, err)
		}
		buf := append([]byte{control}, leb64(num, length)...)
		return Encoded{Operands: buf}, nil

	case strings.HasPrefix(operand, "*"):
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
			return Encoded{}, fmt.Errorf("invalid address literal %q for ldi: %w", name, err)
		}
		buf := append([]byte{control}, leb64(num, length)...)
		return Encoded{Operands: buf}, nil

	default:
		return Encoded{}, fmt.Errorf("invalid operand %q for ldi: expected $literal or *name", operand)
	}
}

// encodePortIO builds the "in"/"out" port instructions (0x24/0x25):
// byte0 = reg<<4|w, byte1 = 8-bit port literal.
func encodePortIO(tokens []string) (Encoded, error) {
	if len(tokens) < 3 {
		return Encoded{}, fmt.Errorf("%q requires a register and a port operand", tokens[0])
	}
	reg, err := parseRegister(tokens[1])
	if err != nil {
		return Encoded{}, err
	}
	port := tokens[2]
	if !strings.HasPrefix(port, "$") {
		return Encoded{}, fmt.Errorf("invalid port operand %q for %q: expected $literal", port, tokens[0])
	}
	w := getWidth(tokens[0])
	p, err := numlit.Parse[uint8](port[1:])
	if err != nil {
		return Encoded{}, fmt.Errorf("invalid port literal %q: %w", port, err)
	}
	return Encoded{Operands: []byte{reg<<4 | w, p}}, nil
}
