package layout

import (
	"encoding/binary"
	"fmt"

	"github.com/lookbusy1344/vrisc-as/parser"
)

// Format selects an object back-end.
type Format int

const (
	FormatRaw Format = iota
	FormatELF64
	FormatSel
)

// ELF64 object constants for the vrisc architecture. These are the only
// values this back-end prescribes; a full section/program header layout
// is not implemented (see DESIGN.md).
const (
	elfOSABI      = 120   // custom "META" OSABI
	elfMachine    = 10086 // custom "VRISC" e_machine
	elfTypeExec   = 2
	elfShentsize  = 0x40
	elfPhentsize  = 0x38
	elfHeaderSize = 64
)

// Assemble runs Sweep A and Sweep B and encodes the result in the
// requested format.
func Assemble(stream []parser.Instruction, sections *parser.SectionTable, symbols *parser.SymbolTable, fixups *parser.FixupTable, format Format) ([]byte, error) {
	lay := Compute(stream, sections, symbols)
	raw, err := Emit(stream, sections, symbols, fixups, lay)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatRaw:
		return raw, nil
	case FormatELF64:
		return wrapELF64(raw, sections), nil
	case FormatSel:
		return nil, fmt.Errorf("sel object format is not implemented")
	default:
		return nil, fmt.Errorf("unknown object format %d", format)
	}
}

// wrapELF64 prefixes raw with a fixed-field ELF64 header. Section and
// program header tables are not built: e_shoff/e_phoff are left zero
// and e_shnum records only the declared section count, matching the
// layout-boundary-only scope of the ELF back-end.
func wrapELF64(raw []byte, sections *parser.SectionTable) []byte {
	header := make([]byte, elfHeaderSize)
	copy(header[:4], []byte{0x7f, 'E', 'L', 'F'})
	header[4] = 2 // ELFCLASS64
	header[5] = 1 // ELFDATA2LSB
	header[6] = 1 // EV_CURRENT
	header[7] = elfOSABI

	binary.LittleEndian.PutUint16(header[16:18], elfTypeExec)
	binary.LittleEndian.PutUint16(header[18:20], elfMachine)
	binary.LittleEndian.PutUint32(header[20:24], 1) // e_version
	binary.LittleEndian.PutUint16(header[52:54], elfHeaderSize)
	binary.LittleEndian.PutUint16(header[54:56], elfPhentsize)
	binary.LittleEndian.PutUint16(header[58:60], elfShentsize)
	binary.LittleEndian.PutUint16(header[60:62], uint16(sections.Len()))

	return append(header, raw...)
}
