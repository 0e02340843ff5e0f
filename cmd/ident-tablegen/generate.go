package main

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/mjstratton7/PrivacyScan/pkg/tables"
)

// funcMap provides helper functions available to the template.
var funcMap = template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}

var templates = template.Must(template.New("").Funcs(funcMap).Parse(tablesTmpl))

// --- Template data types ---

type fileData struct {
	Source   string
	Package  string
	Var      string
	Locale   string
	Sections []sectionData
}

type sectionData struct {
	Name    string
	Entries []tables.Entry
}

// --- Template definitions ---

const tablesTmpl = `{{define "tables"}}// Code generated by ident-tablegen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

var {{.Var}} = File{
	Locale: {{quote .Locale}},
{{- range .Sections}}
	{{.Name}}: []Entry{
{{- range .Entries}}
		{Key: {{quote .Key}}, Label: {{quote .Label}}{{if .Description}}, Description: {{quote .Description}}{{end}}},
{{- end}}
	},
{{- end}}
}
{{end}}`

// Generate renders file as Go source declaring varName in package pkg. The
// file is validated first so invalid tables never reach the binary.
func Generate(file *tables.File, source, pkg, varName string) (string, error) {
	if _, err := file.Build(); err != nil {
		return "", err
	}

	data := fileData{
		Source:  source,
		Package: pkg,
		Var:     varName,
		Locale:  file.Locale,
		Sections: []sectionData{
			{"Types", file.Types},
			{"Brands", file.Brands},
			{"Models", file.Models},
			{"Categories", file.Categories},
		},
	}

	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "tables", data); err != nil {
		return "", fmt.Errorf("template tables: %w", err)
	}
	return b.String(), nil
}
