package io

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/mermaidspec/pkg/errors"
	"github.com/matzehuels/mermaidspec/pkg/spec"
)

// ReadSpec decodes a spec document from r.
//
// ReadSpec returns an [errs.ErrCodeInvalidInput] error when the document
// cannot be decoded and [errs.ErrCodeInvalidFormat] for an unknown format.
// The graph itself is not validated. ReadSpec does not close r.
func ReadSpec(r io.Reader, format Format) (*spec.Graph, error) {
	var g spec.Graph
	var err error

	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&g)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&g)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&g)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown format %q", format)
	}

	if errors.Is(err, io.EOF) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "empty %s document", format)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode %s", format)
	}
	return &g, nil
}

// ImportSpec reads the spec document at path, choosing the format from its
// extension.
func ImportSpec(path string) (*spec.Graph, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	g, err := ReadSpec(f, format)
	var e *errs.Error
	if errors.As(err, &e) {
		return nil, errs.Wrap(e.Code, e.Cause, "%s: %s", path, e.Message)
	}
	return g, err
}
