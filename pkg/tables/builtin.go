package tables

//go:generate go run ../../cmd/ident-tablegen -input testdata/en.yaml -output builtin_gen.go

// Builtin returns the English tables compiled into the binary.
func Builtin() *Tables {
	t, err := builtinFile.Build()
	if err != nil {
		panic("tables: invalid builtin tables: " + err.Error())
	}
	return t
}
