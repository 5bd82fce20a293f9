package parser

// RawData is the sentinel opcode marking a raw-data record (db/dw/dd/dq):
// it contributes only its operand bytes to the output, with no leading
// opcode byte.
const RawData = 255

// Instruction is a single record produced by pass 1: either a real
// instruction (opcode 0-63) or a raw-data record (opcode RawData).
type Instruction struct {
	Opcode   byte
	Operands []byte
}

// Len returns the number of bytes this record contributes to the final
// output: 1+len(Operands) for a real instruction, len(Operands) for a
// raw-data record.
func (i Instruction) Len() int {
	if i.Opcode == RawData {
		return len(i.Operands)
	}
	return 1 + len(i.Operands)
}

// Section describes a named, optionally absolutely-placed, aligned
// region of the output address space.
type Section struct {
	Name   string
	Starts uint64
	Align  uint64
}

// Fixup is a deferred patch: at the record it is attached to, starting at
// operand byte Offset, write the little-endian address of Name using
// Length bytes.
type Fixup struct {
	Offset int
	Length int
	Name   string
}
