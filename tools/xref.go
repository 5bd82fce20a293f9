// Package tools implements developer-facing analysis on top of an
// assembled vrisc source: a symbol cross-referencer and a source
// linter.
package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lookbusy1344/vrisc-as/parser"
)

// Symbol collects everything known about one name across an assembly:
// where (if anywhere) it was defined, and every record that references
// it through a fixup.
type Symbol struct {
	Name          string
	DefinedAtLine int  // 0 if never defined
	Defined       bool
	References    []Reference
}

// Reference is one fixup that names a symbol.
type Reference struct {
	RecordIndex int
	Line        int
	Source      string
}

// XRefGenerator builds a Symbol table by combining an Assembler's
// symbol and fixup tables: every label definition becomes a Symbol,
// and every fixup's referenced name becomes a Reference against it
// (creating the Symbol as undefined if it names nothing seen yet).
type XRefGenerator struct {
	symbols map[string]*Symbol
}

// NewXRefGenerator creates an empty cross-reference generator.
func NewXRefGenerator() *XRefGenerator {
	return &XRefGenerator{symbols: make(map[string]*Symbol)}
}

// Generate walks an already-run Assembler and returns its cross-reference
// table. qualifierAt yields the section active at each record index so
// qualified names line up with the addresses pass 2 will resolve. A
// label after the last record (index len(Stream)) is included.
func (x *XRefGenerator) Generate(a *parser.Assembler) map[string]*Symbol {
	qualifierAt := sectionQualifierBuilder(a)

	for i := 0; i <= len(a.Stream); i++ {
		if local, ok := a.Symbols.Get(i); ok {
			name := parser.QualifiedName(qualifierAt(i), local)
			sym := x.getOrCreate(name)
			sym.Defined = true
			sym.DefinedAtLine = lineAt(a, i)
		}
	}

	for i := range a.Stream {
		if fixup, ok := a.Fixups.Get(i); ok {
			sym := x.getOrCreate(fixup.Name)
			sym.References = append(sym.References, Reference{
				RecordIndex: i,
				Line:        lineAt(a, i),
				Source:      fixup.Name,
			})
		}
	}

	return x.symbols
}

func (x *XRefGenerator) getOrCreate(name string) *Symbol {
	sym, ok := x.symbols[name]
	if !ok {
		sym = &Symbol{Name: name}
		x.symbols[name] = sym
	}
	return sym
}

func lineAt(a *parser.Assembler, recordIndex int) int {
	if recordIndex < 0 || recordIndex >= len(a.Lines) {
		return 0
	}
	return a.Lines[recordIndex]
}

// sectionQualifierBuilder returns a function mapping record index to the
// section-name qualifier active at that index ("" for the null section).
func sectionQualifierBuilder(a *parser.Assembler) func(int) string {
	current := ""
	boundaries := make(map[int]string)
	for i := range a.Stream {
		if sec, ok := a.Sections.Get(i); ok {
			boundaries[i] = sec.Name
		}
	}
	return func(i int) string {
		if name, ok := boundaries[i]; ok {
			current = name
		}
		return current
	}
}

// GetUndefinedSymbols returns every symbol referenced by at least one
// fixup but never defined by a label.
func (x *XRefGenerator) GetUndefinedSymbols() []*Symbol {
	var undefined []*Symbol
	for _, sym := range x.symbols {
		if !sym.Defined && len(sym.References) > 0 {
			undefined = append(undefined, sym)
		}
	}
	sort.Slice(undefined, func(i, j int) bool { return undefined[i].Name < undefined[j].Name })
	return undefined
}

// GetUnusedSymbols returns every defined symbol with no references.
func (x *XRefGenerator) GetUnusedSymbols() []*Symbol {
	var unused []*Symbol
	for _, sym := range x.symbols {
		if sym.Defined && len(sym.References) == 0 {
			unused = append(unused, sym)
		}
	}
	sort.Slice(unused, func(i, j int) bool { return unused[i].Name < unused[j].Name })
	return unused
}

// XRefReport renders a Symbol table as a readable text report.
type XRefReport struct {
	symbols []*Symbol
}

// NewXRefReport sorts symbols by name for stable, readable output.
func NewXRefReport(symbols map[string]*Symbol) *XRefReport {
	sorted := make([]*Symbol, 0, len(symbols))
	for _, sym := range symbols {
		sorted = append(sorted, sym)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &XRefReport{symbols: sorted}
}

func (r *XRefReport) String() string {
	var sb strings.Builder
	sb.WriteString("Symbol Cross-Reference\n")
	sb.WriteString("======================\n\n")

	for _, sym := range r.symbols {
		sb.WriteString(fmt.Sprintf("%-30s", sym.Name))
		if sym.Defined {
			sb.WriteString(fmt.Sprintf(" [defined line %d]\n", sym.DefinedAtLine))
		} else {
			sb.WriteString(" [undefined]\n")
		}

		if len(sym.References) == 0 {
			sb.WriteString("  Referenced:  (never)\n")
		} else {
			lines := make([]string, len(sym.References))
			for i, ref := range sym.References {
				lines[i] = fmt.Sprintf("%d", ref.Line)
			}
			sb.WriteString(fmt.Sprintf("  Referenced:  line(s) %s\n", strings.Join(lines, ", ")))
		}
		sb.WriteString("\n")
	}

	defined, undefined, unused := 0, 0, 0
	for _, sym := range r.symbols {
		if sym.Defined {
			defined++
		} else {
			undefined++
		}
		if len(sym.References) == 0 {
			unused++
		}
	}

	sb.WriteString("Summary\n")
	sb.WriteString("=======\n")
	sb.WriteString(fmt.Sprintf("Total symbols: %d\n", len(r.symbols)))
	sb.WriteString(fmt.Sprintf("Defined:       %d\n", defined))
	sb.WriteString(fmt.Sprintf("Undefined:     %d\n", undefined))
	sb.WriteString(fmt.Sprintf("Unused:        %d\n", unused))

	return sb.String()
}

// GenerateXRef is a convenience wrapper: cross-reference an
// already-assembled source and render the report in one call.
func GenerateXRef(a *parser.Assembler) string {
	gen := NewXRefGenerator()
	symbols := gen.Generate(a)
	return NewXRefReport(symbols).String()
}
