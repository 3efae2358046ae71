package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/mermaidspec/pkg/errors"
	"github.com/matzehuels/mermaidspec/pkg/spec"
)

// WriteSpec encodes g in the given format and writes it to w.
// Routes are written as an ordered object. TOML output is not supported.
func WriteSpec(g *spec.Graph, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(g); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(g); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		return errs.New(errs.ErrCodeUnsupported, "writing toml is not supported")
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}

// ExportSpec writes g to path, choosing the format from its extension.
func ExportSpec(g *spec.Graph, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if format == FormatTOML {
		return errs.New(errs.ErrCodeUnsupported, "writing toml is not supported")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSpec(g, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
