package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/errors"
)

// WriteMap encodes m in the given format and writes it to w.
// The output can be re-imported with [ReadMap].
func WriteMap(m *poi.Map, w io.Writer, format Format) error {
	if m == nil {
		return errors.New(errors.ErrCodeInvalidInput, "map is nil")
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return nil
}

// ExportMap writes m to a file at path, choosing the format by extension.
// This is a convenience wrapper around [WriteMap] for file-based output.
func ExportMap(m *poi.Map, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteMap(m, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
