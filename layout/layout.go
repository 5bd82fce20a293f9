// Package layout implements pass 2: it walks the instruction stream
// produced by the front-end assembler twice — once to assign every
// section and label a final address, once to emit bytes and patch
// fixups — and exposes the raw and ELF64 object back-ends.
package layout

import (
	"fmt"
	"sort"

	"github.com/lookbusy1344/vrisc-as/parser"
)

// nullSection is the implicit section in effect before any "section"
// directive is seen.
var nullSection = parser.Section{Name: "null", Starts: 0, Align: 8}

// AddressTable maps a fully qualified section or symbol name to its
// final assigned address.
type AddressTable map[string]uint64

// Layout holds the result of Sweep A: the resolved address of every
// section and symbol, plus the final length of the object in bytes.
type Layout struct {
	Addresses AddressTable
	Length    uint64
}

// Compute runs Sweep A over the stream: address assignment honouring
// section starts=/align= rules, without emitting any bytes.
func Compute(stream []parser.Instruction, sections *parser.SectionTable, symbols *parser.SymbolTable) *Layout {
	addr := uint64(0)
	section := nullSection
	addresses := make(AddressTable)

	for i, inst := range stream {
		if sec, ok := sections.Get(i); ok {
			section = sec
			if section.Starts != 0 && addr <= section.Starts {
				addr = section.Starts
			}
			addr = realign(addr, section.Align)
			addresses[section.Name] = addr
		}
		if sym, ok := symbols.Get(i); ok {
			addr = realign(addr, section.Align)
			addresses[parser.QualifiedName(sectionQualifier(section), sym)] = addr
		}
		addr += uint64(inst.Len())
	}

	// A label after the last record names the end address. No bytes
	// follow it, so it is not realigned.
	if sym, ok := symbols.Get(len(stream)); ok {
		addresses[parser.QualifiedName(sectionQualifier(section), sym)] = addr
	}

	return &Layout{Addresses: addresses, Length: addr}
}

// sectionQualifier returns the qualifier used to build a fully qualified
// symbol name: empty for the implicit null section, section.Name
// otherwise.
func sectionQualifier(section parser.Section) string {
	if section.Name == "null" {
		return ""
	}
	return section.Name
}

func realign(addr uint64, align uint64) uint64 {
	if align == 0 {
		return addr
	}
	if rem := addr % align; rem != 0 {
		addr += align - rem
	}
	return addr
}

// Emit runs Sweep B: it re-walks the stream, mirroring Sweep A's padding
// decisions while writing actual bytes, and patches every registered
// fixup using the addresses Compute resolved.
func Emit(stream []parser.Instruction, sections *parser.SectionTable, symbols *parser.SymbolTable, fixups *parser.FixupTable, layout *Layout) ([]byte, error) {
	addr := uint64(0)
	section := nullSection
	out := make([]byte, 0, layout.Length)

	for i, inst := range stream {
		if sec, ok := sections.Get(i); ok {
			section = sec
			if section.Starts != 0 && addr <= section.Starts {
				out = append(out, make([]byte, section.Starts-addr)...)
				addr = section.Starts
			}
			padded := realign(addr, section.Align)
			out = append(out, make([]byte, padded-addr)...)
			addr = padded
		}
		if _, ok := symbols.Get(i); ok {
			padded := realign(addr, section.Align)
			out = append(out, make([]byte, padded-addr)...)
			addr = padded
		}

		operands := append([]byte(nil), inst.Operands...)
		if fixup, ok := fixups.Get(i); ok {
			resolved, err := resolve(layout.Addresses, section, i, fixup.Name)
			if err != nil {
				return nil, err
			}
			if fixup.Offset+fixup.Length > len(operands) {
				return nil, fmt.Errorf("fixup at record %d overruns operand bytes", i)
			}
			scratch := make([]byte, 8)
			for b := 0; b < 8; b++ {
				scratch[b] = byte(resolved >> (8 * b))
			}
			copy(operands[fixup.Offset:fixup.Offset+fixup.Length], scratch[:fixup.Length])
		}

		if inst.Opcode != parser.RawData {
			out = append(out, inst.Opcode)
		}
		out = append(out, operands...)
		addr += uint64(inst.Len())
	}

	return out, nil
}

// resolve answers a fixup's referenced name: the reserved names "n"/"p"
// scan the address table (sorted by address) for the nearest following
// or preceding entry literally named "<section>.", which — by
// construction — Sweep A never inserts; any other name is looked up
// directly.
func resolve(addresses AddressTable, section parser.Section, recordIndex int, name string) (uint64, error) {
	switch name {
	case "n":
		return scanAnchor(addresses, section, recordIndex, +1)
	case "p":
		return scanAnchor(addresses, section, recordIndex, -1)
	default:
		addr, ok := addresses[name]
		if !ok {
			return 0, fmt.Errorf("unknown symbol %q", name)
		}
		return addr, nil
	}
}

type addressEntry struct {
	name string
	addr uint64
}

// scanAnchor reproduces the original n/p lookup verbatim, anchor bugs
// included: it sorts every resolved name by address, then walks from
// index recordIndex in direction dir looking for an entry named exactly
// "<section>." — a name Sweep A never produces, so the scan always runs
// off the list and this always returns an error for any real input.
func scanAnchor(addresses AddressTable, section parser.Section, recordIndex int, dir int) (uint64, error) {
	list := make([]addressEntry, 0, len(addresses))
	for name, addr := range addresses {
		list = append(list, addressEntry{name, addr})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].addr < list[j].addr })

	target := section.Name + "."
	x := recordIndex
	for {
		if x < 0 || x >= len(list) {
			return 0, fmt.Errorf("no location symbol for %q", target)
		}
		if list[x].name == target {
			return list[x].addr, nil
		}
		x += dir
	}
}
