package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assembleString(t *testing.T, src string) *Assembler {
	t.Helper()
	a := NewAssembler("test.vasm")
	err := a.Assemble(strings.NewReader(src))
	require.NoError(t, err)
	return a
}

func TestAssembleSingleNop(t *testing.T) {
	a := assembleString(t, "nop\n")
	require.Len(t, a.Stream, 1)
	assert.Equal(t, byte(0x00), a.Stream[0].Opcode)
	assert.Empty(t, a.Stream[0].Operands)
}

func TestAssembleSectionAndLabel(t *testing.T) {
	a := assembleString(t, "section data starts=16 align=8\n#x\ndb $1 $2 $3\n")

	require.Len(t, a.Stream, 3)
	for _, rec := range a.Stream {
		assert.Equal(t, byte(RawData), rec.Opcode)
	}

	sec, ok := a.Sections.Get(0)
	require.True(t, ok)
	assert.Equal(t, "data", sec.Name)
	assert.Equal(t, uint64(16), sec.Starts)
	assert.Equal(t, uint64(8), sec.Align)

	label, ok := a.Symbols.Get(0)
	require.True(t, ok)
	assert.Equal(t, "x", label)
}

func TestAssembleLoadImmediate(t *testing.T) {
	a := assembleString(t, "ldiq $305419896 %x0\n")
	require.Len(t, a.Stream, 1)
	rec := a.Stream[0]
	assert.Equal(t, byte(0x20), rec.Opcode)
	assert.Equal(t, []byte{0x03, 0x78, 0x56, 0x34, 0x12, 0x00, 0x00, 0x00, 0x00}, rec.Operands)
}

func TestAssembleForwardJump(t *testing.T) {
	a := assembleString(t, "jq *end\nnop\n#end\n")
	require.Len(t, a.Stream, 2)
	assert.Equal(t, byte(0x10), a.Stream[0].Opcode)
	require.NotNil(t, a.Stream[0].Operands)
	assert.Equal(t, byte(0x03), a.Stream[0].Operands[0])

	fixup, ok := a.Fixups.Get(0)
	require.True(t, ok)
	assert.Equal(t, 1, fixup.Offset)
	assert.Equal(t, 8, fixup.Length)
	assert.Equal(t, "end", fixup.Name)

	label, ok := a.Symbols.Get(2)
	require.True(t, ok)
	assert.Equal(t, "end", label)
}

func TestAssembleConditionalWidthBException(t *testing.T) {
	a := assembleString(t, "jb *t\n#t\n")
	require.Len(t, a.Stream, 1)
	rec := a.Stream[0]
	assert.Equal(t, byte(0x10), rec.Opcode)
	// cond = lookup("") = 0, width = 3 (the jb exception): control byte 0x03.
	assert.Equal(t, byte(0x03), rec.Operands[0])
	assert.Len(t, rec.Operands, 9)
}

func TestAssembleUnknownSymbol(t *testing.T) {
	a := NewAssembler("test.vasm")
	err := a.Assemble(strings.NewReader("bogus thing\n"))
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrorUnknownSymbol, perr.Kind)
}

func TestAssembleReservedLabel(t *testing.T) {
	a := NewAssembler("test.vasm")
	err := a.Assemble(strings.NewReader("#n\n"))
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrorReservedLabel, perr.Kind)
}

func TestAssembleDataDirectiveFixupAnomaly(t *testing.T) {
	a := assembleString(t, "dd ?missing\n")
	require.Len(t, a.Stream, 1)
	assert.Len(t, a.Stream[0].Operands, 4)
	fixup, ok := a.Fixups.Get(0)
	require.True(t, ok)
	assert.Equal(t, 2, fixup.Length)
	assert.Equal(t, "missing", fixup.Name)
}

func TestAssembleCommentStripping(t *testing.T) {
	a := assembleString(t, "nop // this is a comment\n// whole line comment\n")
	require.Len(t, a.Stream, 1)
}
