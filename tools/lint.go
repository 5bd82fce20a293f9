package tools

import (
	"fmt"

	"github.com/lookbusy1344/vrisc-as/parser"
)

// LintLevel represents the severity of a lint issue.
type LintLevel int

const (
	LintError LintLevel = iota
	LintWarning
)

func (l LintLevel) String() string {
	switch l {
	case LintError:
		return "error"
	case LintWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// LintIssue is a single finding.
type LintIssue struct {
	Level   LintLevel
	Line    int
	Message string
	Code    string
}

func (i *LintIssue) String() string {
	return fmt.Sprintf("line %d: %s: %s [%s]", i.Line, i.Level, i.Message, i.Code)
}

// LintOptions controls linter behavior.
type LintOptions struct {
	CheckUndefined bool // flag fixups referencing never-defined symbols
	CheckUnused    bool // flag labels defined but never referenced
}

// DefaultLintOptions returns the options a plain lint run should use.
func DefaultLintOptions() *LintOptions {
	return &LintOptions{CheckUndefined: true, CheckUnused: true}
}

// Lint runs static checks over an already-assembled source using its
// cross-reference table: undefined symbols (a fatal condition at layout
// time) are reported as errors; unused labels are reported as warnings.
func Lint(a *parser.Assembler, opts *LintOptions) []*LintIssue {
	if opts == nil {
		opts = DefaultLintOptions()
	}

	gen := NewXRefGenerator()
	gen.Generate(a)

	var issues []*LintIssue

	if opts.CheckUndefined {
		for _, sym := range gen.GetUndefinedSymbols() {
			for _, ref := range sym.References {
				if sym.Name == "n" || sym.Name == "p" {
					continue // resolved structurally, not by definition
				}
				issues = append(issues, &LintIssue{
					Level:   LintError,
					Line:    ref.Line,
					Message: fmt.Sprintf("symbol %q is never defined", sym.Name),
					Code:    "UNDEF_SYMBOL",
				})
			}
		}
	}

	if opts.CheckUnused {
		for _, sym := range gen.GetUnusedSymbols() {
			issues = append(issues, &LintIssue{
				Level:   LintWarning,
				Line:    sym.DefinedAtLine,
				Message: fmt.Sprintf("label %q is never referenced", sym.Name),
				Code:    "UNUSED_LABEL",
			})
		}
	}

	return issues
}
