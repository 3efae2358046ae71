package io

import (
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/mermaidspec/pkg/errors"
)

// Format identifies a spec document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ReadFormats lists the formats [ReadSpec] accepts.
var ReadFormats = []string{string(FormatJSON), string(FormatYAML), string(FormatTOML)}

// WriteFormats lists the formats [WriteSpec] can emit.
var WriteFormats = []string{string(FormatJSON), string(FormatYAML)}

var extFormats = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
}

// ParseFormat maps a format name to a Format. "yml" is accepted as YAML.
func ParseFormat(name string) (Format, error) {
	lower := strings.ToLower(name)
	if lower == "yml" {
		lower = string(FormatYAML)
	}
	if err := errs.ValidateFormat(lower, ReadFormats...); err != nil {
		return "", err
	}
	return Format(lower), nil
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "cannot infer format of %s (want .json, .yaml, .yml or .toml)", path)
}

// Ext returns the canonical file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}
