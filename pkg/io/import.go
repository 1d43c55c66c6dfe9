package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/errors"
)

// ReadMap decodes a map document from r.
//
// ReadMap returns an INVALID_FORMAT error if the document is malformed, and
// an INVALID_INPUT or INVALID_CATEGORY error if:
//   - The map has no name
//   - A POI has an empty, malformed or duplicate id
//   - A POI has an unknown category
//
// Missing ids on the map or on bearing records are generated. A map without
// POIs is seeded with Lifeboat 5. Timestamps that are absent are set to now.
//
// ReadMap does not close r.
func ReadMap(r io.Reader, format Format, now time.Time) (*poi.Map, error) {
	m := &poi.Map{}
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}

	if err := normalize(m, now); err != nil {
		return nil, err
	}
	return m, nil
}

// ImportMap reads a map document from the file at path, choosing the format
// by extension.
func ImportMap(path string, now time.Time) (*poi.Map, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadMap(f, format, now)
}

func normalize(m *poi.Map, now time.Time) error {
	if m.ID == "" {
		m.ID = "map-" + poi.NewID()
	}
	if err := errors.ValidateID(m.ID); err != nil {
		return err
	}
	if err := errors.ValidateName(m.Name); err != nil {
		return err
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
	if len(m.POIs) == 0 {
		m.POIs = []poi.POI{poi.Lifeboat(now)}
		return nil
	}

	seen := make(map[string]bool, len(m.POIs))
	for i := range m.POIs {
		p := &m.POIs[i]
		if err := errors.ValidateID(p.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "poi %d", i)
		}
		if seen[p.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate poi id %s", p.ID)
		}
		seen[p.ID] = true
		if !p.Category.Valid() {
			return errors.New(errors.ErrCodeInvalidCategory, "poi %s: unknown type %q", p.ID, p.Category)
		}
		if p.DefinitionMode == "" {
			p.DefinitionMode = poi.ModeCoordinates
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = now
		}
		for j := range p.BearingRecords {
			if p.BearingRecords[j].ID == "" {
				p.BearingRecords[j].ID = poi.NewID()
			}
		}
	}
	return nil
}
