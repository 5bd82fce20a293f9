package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lookbusy1344/vrisc-as/encoder"
	"github.com/lookbusy1344/vrisc-as/numlit"
)

// Assembler runs pass 1: it reads source lines and accumulates the
// instruction stream plus the section, symbol, and fixup tables. All
// four are populated monotonically here and are read-only to pass 2.
type Assembler struct {
	Filename string

	Stream   []Instruction
	Sections *SectionTable
	Symbols  *SymbolTable
	Fixups   *FixupTable

	// Lines holds the 1-based source line each record in Stream came
	// from, index-aligned with Stream. It exists for diagnostics and
	// tooling only; pass 2 never reads it.
	Lines []int
}

// NewAssembler creates an assembler for the named source file (used only
// for diagnostics; the actual bytes are supplied to Assemble).
func NewAssembler(filename string) *Assembler {
	return &Assembler{
		Filename: filename,
		Sections: NewSectionTable(),
		Symbols:  NewSymbolTable(),
		Fixups:   NewFixupTable(),
	}
}

// Assemble reads r line by line and runs pass 1 to completion, or returns
// the first fatal *Error encountered.
func (a *Assembler) Assemble(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if err := a.assembleLine(raw, lineNo); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return NewError(Position{Filename: a.Filename, Line: lineNo}, ErrorIO, "", "reading source: %v", err)
	}
	return nil
}

func (a *Assembler) pos(line int) Position {
	return Position{Filename: a.Filename, Line: line}
}

// assembleLine strips comments, tokenises, and dispatches a single
// source line per the front-end grammar.
func (a *Assembler) assembleLine(raw string, lineNo int) error {
	text := stripComment(raw)
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	head := tokens[0]

	if opcode, ok := encoder.MatchOpcode(head); ok {
		return a.assembleInstruction(opcode, tokens, raw, lineNo)
	}

	switch {
	case strings.HasPrefix(head, "#"):
		return a.assembleLabel(head, raw, lineNo)
	case head == "db" || head == "dw" || head == "dd" || head == "dq":
		return a.assembleData(head, tokens[1:], raw, lineNo)
	case head == "section":
		return a.assembleSection(tokens[1:], raw, lineNo)
	default:
		return NewError(a.pos(lineNo), ErrorUnknownSymbol, raw, "unknown symbol %q", head)
	}
}

// stripComment drops everything from the first "//" onward.
func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}
	return line
}

// tokenize splits on spaces and commas, dropping empty tokens.
func tokenize(line string) []string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ','
	})
	return fields
}

func (a *Assembler) assembleInstruction(opcode int, tokens []string, raw string, lineNo int) error {
	if encoder.ReservedOpcode(opcode) {
		return NewError(a.pos(lineNo), ErrorReservedOpcode, raw, "reserved opcode for %q", tokens[0])
	}
	enc, err := encoder.Table[opcode](tokens)
	if err != nil {
		return NewError(a.pos(lineNo), ErrorInvalidOperand, raw, "%v", err)
	}

	recordIndex := len(a.Stream)
	if enc.Fixup != nil {
		a.Fixups.Set(recordIndex, Fixup{
			Offset: enc.Fixup.Offset,
			Length: enc.Fixup.Length,
			Name:   enc.Fixup.Name,
		})
	}
	a.Stream = append(a.Stream, Instruction{Opcode: byte(opcode), Operands: enc.Operands})
	a.Lines = append(a.Lines, lineNo)
	return nil
}

func (a *Assembler) assembleLabel(head string, raw string, lineNo int) error {
	name := head[1:]
	if name == "n" || name == "p" {
		return NewError(a.pos(lineNo), ErrorReservedLabel, raw, "reserved label name %q", name)
	}
	a.Symbols.Set(len(a.Stream), name)
	return nil
}

// dataWidths maps db/dw/dd/dq to the literal byte width and the
// symbolic-fixup length the reference assembler uses for it (the
// fixup length anomaly — dw/dd/dq all register length 2 — is
// preserved deliberately; see DESIGN.md).
var dataWidths = map[string]struct {
	litLen   int
	fixupLen int
}{
	"db": {1, 1},
	"dw": {2, 2},
	"dd": {4, 2},
	"dq": {8, 2},
}

func (a *Assembler) assembleData(directive string, operands []string, raw string, lineNo int) error {
	widths := dataWidths[directive]
	if len(operands) == 0 {
		return NewError(a.pos(lineNo), ErrorMissingOperand, raw, "%q requires at least one operand", directive)
	}
	for _, operand := range operands {
		if len(operand) == 0 {
			return NewError(a.pos(lineNo), ErrorInvalidOperand, raw, "empty operand for %q", directive)
		}
		body := operand[1:]
		recordIndex := len(a.Stream)

		if strings.HasPrefix(operand, "$") {
			value, err := numlit.Parse[uint64](body)
			if err != nil {
				return NewError(a.pos(lineNo), ErrorLiteral, raw, "invalid literal %q: %v", operand, err)
			}
			buf := make([]byte, widths.litLen)
			for i := 0; i < widths.litLen; i++ {
				buf[i] = byte(value >> (8 * i))
			}
			a.Stream = append(a.Stream, Instruction{Opcode: RawData, Operands: buf})
			a.Lines = append(a.Lines, lineNo)
			continue
		}

		buf := make([]byte, widths.litLen)
		a.Fixups.Set(recordIndex, Fixup{Offset: 0, Length: widths.fixupLen, Name: body})
		a.Stream = append(a.Stream, Instruction{Opcode: RawData, Operands: buf})
		a.Lines = append(a.Lines, lineNo)
	}
	return nil
}

func (a *Assembler) assembleSection(tokens []string, raw string, lineNo int) error {
	if len(tokens) == 0 {
		return NewError(a.pos(lineNo), ErrorMissingOperand, raw, "section directive requires a name")
	}
	sec := Section{Name: tokens[0], Starts: 0, Align: 1}
	for _, kv := range tokens[1:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		switch key {
		case "starts":
			n, err := numlit.Parse[uint64](value)
			if err != nil {
				return NewError(a.pos(lineNo), ErrorLiteral, raw, "invalid starts= value %q: %v", value, err)
			}
			sec.Starts = n
		case "align":
			n, err := numlit.Parse[uint64](value)
			if err != nil {
				return NewError(a.pos(lineNo), ErrorLiteral, raw, "invalid align= value %q: %v", value, err)
			}
			sec.Align = n
		default:
			// unknown section attribute keys are silently ignored
		}
	}
	a.Sections.Set(len(a.Stream), sec)
	return nil
}

// QualifiedName builds the fully qualified form of a local symbol name
// given the section active at its record index: "<section>.<local>" if
// the enclosing section is not the implicit null section, else just
// "<local>".
func QualifiedName(section string, local string) string {
	if section == "" {
		return local
	}
	return fmt.Sprintf("%s.%s", section, local)
}
