// Command vrisc-as assembles vrisc assembly source into a vrisc object
// file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lookbusy1344/vrisc-as/config"
	"github.com/lookbusy1344/vrisc-as/layout"
	"github.com/lookbusy1344/vrisc-as/parser"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		input       = flag.String("i", "", "source file (required)")
		output      = flag.String("o", "", "destination object file (required)")
		format      = flag.String("f", "", "object format: elf64, sel, raw (default from config)")
		verboseMode = flag.Bool("v", false, "verbose output")
		showVersion = flag.Bool("version", false, "show version information")
	)
	flag.Usage = printUsage
	flag.Parse()

	if *showVersion {
		fmt.Printf("vrisc-as %s (%s)\n", Version, Commit)
		os.Exit(0)
	}

	if *input == "" || *output == "" {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	formatArg := *format
	if formatArg == "" {
		formatArg = cfg.Output.DefaultFormat
	}
	objFormat := parseFormat(formatArg)
	if objFormat < 0 {
		log.Fatalf("unknown format %q: expected elf64, sel, or raw", formatArg)
	}

	if !cfg.Output.Overwrite {
		if _, err := os.Stat(*output); err == nil {
			log.Fatalf("output file %q already exists and overwrite is disabled", *output)
		}
	}

	if *verboseMode {
		log.Printf("assembling %s -> %s (%s)", *input, *output, formatArg)
	}

	src, err := os.Open(*input) // #nosec G304 -- user-specified source path
	if err != nil {
		log.Fatalf("opening source file: %v", err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && *verboseMode {
			log.Printf("warning: failed to close source file: %v", cerr)
		}
	}()

	asm := parser.NewAssembler(*input)
	if err := asm.Assemble(src); err != nil {
		log.Fatalf("assembly error: %v", err)
	}

	if *verboseMode {
		log.Printf("assembled %d records, %d sections, %d symbols, %d fixups",
			len(asm.Stream), asm.Sections.Len(), symbolCount(asm), fixupCount(asm))
	}

	object, err := layout.Assemble(asm.Stream, asm.Sections, asm.Symbols, asm.Fixups, objFormat)
	if err != nil {
		log.Fatalf("layout error: %v", err)
	}

	dst, err := os.Create(*output) // #nosec G304 -- user-specified output path
	if err != nil {
		log.Fatalf("creating output file: %v", err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && *verboseMode {
			log.Printf("warning: failed to close output file: %v", cerr)
		}
	}()

	if _, err := dst.Write(object); err != nil {
		log.Fatalf("writing output file: %v", err)
	}

	if *verboseMode {
		log.Printf("wrote %d bytes to %s", len(object), *output)
	}
}

func parseFormat(s string) layout.Format {
	switch s {
	case "raw":
		return layout.FormatRaw
	case "elf64":
		return layout.FormatELF64
	case "sel":
		return layout.FormatSel
	default:
		return -1
	}
}

// symbolCount and fixupCount exist only to report verbose counts without
// exposing table internals beyond Get/Set.
func symbolCount(a *parser.Assembler) int {
	n := 0
	for i := range a.Stream {
		if _, ok := a.Symbols.Get(i); ok {
			n++
		}
	}
	return n
}

func fixupCount(a *parser.Assembler) int {
	n := 0
	for i := range a.Stream {
		if _, ok := a.Fixups.Get(i); ok {
			n++
		}
	}
	return n
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `vrisc-as %s

Usage: vrisc-as -i <source> -o <object> [-f <elf64|sel|raw>] [-v]

Options:
  -i PATH        source assembly file (required)
  -o PATH        destination object file (required)
  -f FORMAT      object format: elf64, sel, raw (default from config)
  -v             verbose output
  -version       show version information

Examples:
  vrisc-as -i boot.vasm -o boot.bin -f raw
  vrisc-as -i kernel.vasm -o kernel.elf -f elf64 -v
`, Version)
}
