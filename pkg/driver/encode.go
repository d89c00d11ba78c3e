package driver

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kr/pretty"
	"gopkg.in/yaml.v3"

	"github.com/nooga/tsgrammar/pkg/ast"
)

// Format selects how a tree is written out.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatPretty Format = "pretty"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML, FormatPretty:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json, yaml or pretty)", s)
}

// Encode writes n to w. JSON and YAML use the ESTree shape with keys in
// field order; pretty dumps the Go values.
func Encode(w io.Writer, n ast.Node, format Format, opts ast.EncodeOptions) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(ast.ToObject(n, opts), "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ast.ToObject(n, opts)); err != nil {
			return err
		}
		return enc.Close()
	case FormatPretty:
		_, err := pretty.Fprintf(w, "%# v\n", n)
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}
