package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookbusy1344/vrisc-as/parser"
)

func assembleString(t *testing.T, src string) *parser.Assembler {
	t.Helper()
	a := parser.NewAssembler("test.vasm")
	require.NoError(t, a.Assemble(strings.NewReader(src)))
	return a
}

func TestXRefDefinitionAndReference(t *testing.T) {
	a := assembleString(t, "jq *end\nnop\n#end\n")

	gen := NewXRefGenerator()
	symbols := gen.Generate(a)

	sym, ok := symbols["end"]
	require.True(t, ok)
	assert.True(t, sym.Defined)
	assert.Equal(t, 3, sym.DefinedAtLine)
	require.Len(t, sym.References, 1)
	assert.Equal(t, 1, sym.References[0].Line)
}

func TestXRefSectionQualifiedName(t *testing.T) {
	a := assembleString(t, "section data starts=16 align=8\n#x\ndb $1\n")

	gen := NewXRefGenerator()
	symbols := gen.Generate(a)

	_, ok := symbols["data.x"]
	assert.True(t, ok)
}

func TestXRefUndefinedSymbol(t *testing.T) {
	a := assembleString(t, "ldiq *undef %x0\n")

	gen := NewXRefGenerator()
	gen.Generate(a)

	undefined := gen.GetUndefinedSymbols()
	require.Len(t, undefined, 1)
	assert.Equal(t, "undef", undefined[0].Name)
}

func TestXRefUnusedSymbol(t *testing.T) {
	a := assembleString(t, "#unused\nnop\n")

	gen := NewXRefGenerator()
	gen.Generate(a)

	unused := gen.GetUnusedSymbols()
	require.Len(t, unused, 1)
	assert.Equal(t, "unused", unused[0].Name)
}

func TestXRefReportString(t *testing.T) {
	a := assembleString(t, "jq *end\nnop\n#end\n")
	report := GenerateXRef(a)
	assert.Contains(t, report, "end")
	assert.Contains(t, report, "Summary")
}
