package encoder

import "fmt"

func init() {
	Table[0x01] = encodeThreeRegPackedWidth(0x01)
	Table[0x02] = encodeThreeRegPackedWidth(0x02)
	Table[0x03] = encodeOneRegPackedWidth
	Table[0x04] = encodeOneRegPackedWidth
	Table[0x05] = encodeTwoRegSeparateWidth
	Table[0x06] = encodeTwoRegSeparateWidth
	Table[0x07] = encodeTwoRegSeparateWidth
	Table[0x08] = encodeTwoRegSeparateWidth
	Table[0x09] = encodeCompare
	Table[0x0a] = encodeThreeRegPackedWidth(0x0a)
	Table[0x0b] = encodeThreeRegPackedWidth(0x0b)
	Table[0x0c] = encodeTwoRegSeparateWidth
	Table[0x0d] = encodeThreeRegPackedWidth(0x0d)
}

// encodeThreeRegPackedWidth builds the shared add/sub/and/or/xor shape:
// operands r1, r2, r3 with byte0 = r2<<4|r1, byte1 = w<<4|r3. The opcode
// parameter is unused by the closure itself (Table indexing already
// selects it) but documents which mnemonic group the shape belongs to.
func encodeThreeRegPackedWidth(_ int) EncodeFunc {
	return func(tokens []string) (Encoded, error) {
		if len(tokens) < 4 {
			return Encoded{}, fmt.Errorf("%q requires 3 register operands", tokens[0])
		}
		r1, err := parseRegister(tokens[1])
		if err != nil {
			return Encoded{}, err
		}
		r2, err := parseRegister(tokens[2])
		if err != nil {
			return Encoded{}, err
		}
		r3, err := parseRegister(tokens[3])
		if err != nil {
			return Encoded{}, err
		}
		w := getWidth(tokens[0])
		return Encoded{Operands: []byte{r2<<4 | r1, w<<4 | r3}}, nil
	}
}

// encodeOneRegPackedWidth builds the inc/dec shape: byte0 = w<<4|r1.
func encodeOneRegPackedWidth(tokens []string) (Encoded, error) {
	if len(tokens) < 2 {
		return Encoded{}, fmt.Errorf("%q requires 1 register operand", tokens[0])
	}
	r1, err := parseRegister(tokens[1])
	if err != nil {
		return Encoded{}, err
	}
	w := getWidth(tokens[0])
	return Encoded{Operands: []byte{w<<4 | r1}}, nil
}

// encodeTwoRegSeparateWidth builds the shl/shr/rol/ror/not shape:
// byte0 = r2<<4|r1, byte1 = w (unpacked).
func encodeTwoRegSeparateWidth(tokens []string) (Encoded, error) {
	if len(tokens) < 3 {
		return Encoded{}, fmt.Errorf("%q requires 2 register operands", tokens[0])
	}
	r1, err := parseRegister(tokens[1])
	if err != nil {
		return Encoded{}, err
	}
	r2, err := parseRegister(tokens[2])
	if err != nil {
		return Encoded{}, err
	}
	w := getWidth(tokens[0])
	return Encoded{Operands: []byte{r2<<4 | r1, w}}, nil
}

// encodeCompare builds cmp: byte0 = r2<<4|r1, no width byte.
func encodeCompare(tokens []string) (Encoded, error) {
	if len(tokens) < 3 {
		return Encoded{}, fmt.Errorf("cmp requires 2 register operands")
	}
	r1, err := parseRegister(tokens[1])
	if err != nil {
		return Encoded{}, err
	}
	r2, err := parseRegister(tokens[2])
	if err != nil {
		return Encoded{}, err
	}
	return Encoded{Operands: []byte{r2<<4 | r1}}, nil
}
