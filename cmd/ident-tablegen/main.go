// Command ident-tablegen generates the built-in lookup tables from a YAML
// table file.
//
// Usage:
//
//	ident-tablegen -input testdata/en.yaml -output builtin_gen.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/mjstratton7/PrivacyScan/pkg/tables"
)

func main() {
	input := flag.String("input", "", "Table file (YAML)")
	output := flag.String("output", "", "Output path for the generated Go file")
	pkg := flag.String("package", "tables", "Package name of the generated file")
	varName := flag.String("var", "builtinFile", "Variable name of the generated table file")
	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: ident-tablegen -input <path> -output <path> [-package <name>] [-var <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*input, *output, *pkg, *varName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(input, output, pkg, varName string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading tables: %w", err)
	}
	file, err := tables.ParseFile(data)
	if err != nil {
		return err
	}

	code, err := Generate(file, filepath.ToSlash(input), pkg, varName)
	if err != nil {
		return fmt.Errorf("generating %s: %w", filepath.Base(output), err)
	}
	if err := writeFormatted(output, code); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(output), err)
	}
	fmt.Printf("  generated %s\n", output)
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
