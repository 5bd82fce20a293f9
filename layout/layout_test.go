package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookbusy1344/vrisc-as/parser"
)

func assembleAndLayout(t *testing.T, src string) ([]byte, *parser.Assembler) {
	t.Helper()
	a := parser.NewAssembler("test.vasm")
	require.NoError(t, a.Assemble(strings.NewReader(src)))
	out, err := Assemble(a.Stream, a.Sections, a.Symbols, a.Fixups, FormatRaw)
	require.NoError(t, err)
	return out, a
}

func TestSingleNop(t *testing.T) {
	out, _ := assembleAndLayout(t, "nop\n")
	assert.Equal(t, []byte{0x00}, out)
}

func TestSectionPlacement(t *testing.T) {
	out, a := assembleAndLayout(t, "section data starts=16 align=8\n#x\ndb $1 $2 $3\n")

	want := append(make([]byte, 16), 0x01, 0x02, 0x03)
	assert.Equal(t, want, out)

	lay := Compute(a.Stream, a.Sections, a.Symbols)
	assert.Equal(t, uint64(16), lay.Addresses["data"])
	assert.Equal(t, uint64(16), lay.Addresses["data.x"])
}

func TestForwardJumpAddressing(t *testing.T) {
	out, _ := assembleAndLayout(t, "jq *end\nnop\n#end\n")
	want := []byte{0x10, 0x03, 0x0b, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	assert.Equal(t, want, out)
}

func TestUnknownSymbolAtFixupResolution(t *testing.T) {
	a := parser.NewAssembler("test.vasm")
	require.NoError(t, a.Assemble(strings.NewReader("ldiq *undef %x0\n")))
	_, err := Assemble(a.Stream, a.Sections, a.Symbols, a.Fixups, FormatRaw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undef")
}

func TestStartsLowerThanCurrentAddrIgnored(t *testing.T) {
	out, _ := assembleAndLayout(t, "nop\nnop\nsection s starts=1 align=1\nnop\n")
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, out)
}

func TestAlignOneNeverPads(t *testing.T) {
	out, _ := assembleAndLayout(t, "nop\nsection s align=1\ndb $1\n")
	assert.Equal(t, []byte{0x00, 0x01}, out)
}

func TestNPAnchorAlwaysFails(t *testing.T) {
	a := parser.NewAssembler("test.vasm")
	require.NoError(t, a.Assemble(strings.NewReader("section s\njq *n\n")))
	_, err := Assemble(a.Stream, a.Sections, a.Symbols, a.Fixups, FormatRaw)
	require.Error(t, err)
}

func TestELF64HeaderConstants(t *testing.T) {
	a := parser.NewAssembler("test.vasm")
	require.NoError(t, a.Assemble(strings.NewReader("nop\n")))
	out, err := Assemble(a.Stream, a.Sections, a.Symbols, a.Fixups, FormatELF64)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(out), elfHeaderSize+1)
	assert.Equal(t, []byte{0x7f, 'E', 'L', 'F'}, out[:4])
	assert.Equal(t, byte(elfOSABI), out[7])
	assert.Equal(t, byte(0x00), out[elfHeaderSize]) // trailing nop opcode byte
}

func TestSelFormatNotImplemented(t *testing.T) {
	a := parser.NewAssembler("test.vasm")
	require.NoError(t, a.Assemble(strings.NewReader("nop\n")))
	_, err := Assemble(a.Stream, a.Sections, a.Symbols, a.Fixups, FormatSel)
	assert.Error(t, err)
}
