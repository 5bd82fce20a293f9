package tools

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// FormatOptions controls source formatting.
type FormatOptions struct {
	InstructionColumn int  // column mnemonics start at
	OperandColumn     int  // column the first operand starts at
	PreserveBlanks    bool // keep blank lines as-is
}

// DefaultFormatOptions returns the default layout: mnemonics at column 8,
// operands at column 16, blank lines kept.
func DefaultFormatOptions() *FormatOptions {
	return &FormatOptions{
		InstructionColumn: 8,
		OperandColumn:     16,
		PreserveBlanks:    true,
	}
}

// Formatter reformats vrisc source text: comment-only lines and labels
// (with any trailing comment) are kept as written apart from surrounding
// whitespace, and instruction/directive lines are re-tokenized and re-joined
// with normalized column spacing and single-space-after-comma operand
// separation.
type Formatter struct {
	options *FormatOptions
}

// NewFormatter creates a Formatter with the given options (nil selects
// DefaultFormatOptions).
func NewFormatter(opts *FormatOptions) *Formatter {
	if opts == nil {
		opts = DefaultFormatOptions()
	}
	return &Formatter{options: opts}
}

// Format reads src line by line and writes the reformatted source to w.
func (f *Formatter) Format(src io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		raw := scanner.Text()
		line := f.formatLine(raw)
		if line == "" && strings.TrimSpace(raw) == "" && !f.options.PreserveBlanks {
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (f *Formatter) formatLine(line string) string {
	code, comment := splitComment(line)
	trimmed := strings.TrimSpace(code)

	if trimmed == "" {
		if comment != "" {
			return strings.TrimSpace(line)
		}
		return ""
	}

	if strings.HasPrefix(trimmed, "#") {
		return strings.TrimSpace(line)
	}

	tokens := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ' ' || r == ','
	})
	if len(tokens) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", f.options.InstructionColumn))
	sb.WriteString(tokens[0])

	if len(tokens) > 1 {
		pad := f.options.OperandColumn - f.options.InstructionColumn - len(tokens[0])
		if pad < 1 {
			pad = 1
		}
		sb.WriteString(strings.Repeat(" ", pad))
		sb.WriteString(strings.Join(tokens[1:], ", "))
	}

	if comment != "" {
		sb.WriteString("  // ")
		sb.WriteString(strings.TrimSpace(comment))
	}

	return sb.String()
}

// splitComment separates a "//" trailing comment from the code before it.
func splitComment(line string) (code string, comment string) {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i], line[i+2:]
	}
	return line, ""
}

// FormatString is a convenience wrapper for formatting an in-memory
// source string.
func FormatString(src string, opts *FormatOptions) (string, error) {
	var sb strings.Builder
	if err := NewFormatter(opts).Format(strings.NewReader(src), &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
