// Package store persists maps and the current-map selection.
//
// Two backends implement [Store]:
//
//   - [FileStore]: one JSON document per map plus an index file, for the CLI
//   - [MongoStore]: a MongoDB database, for the shared API server
//
// Every method returns copies; callers may mutate the returned maps freely.
// A missing map is reported with [errors.ErrCodeMapNotFound].
package store

import (
	"context"
	"time"

	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/errors"
)

// DefaultMapName names the map created when no map is selected.
const DefaultMapName = "Default Map"

// Store persists maps.
type Store interface {
	// Create makes a new map seeded with Lifeboat 5.
	Create(ctx context.Context, name string) (*poi.Map, error)

	// List returns every map, most recently updated first.
	List(ctx context.Context) ([]*poi.Map, error)

	// Get returns one map.
	Get(ctx context.Context, id string) (*poi.Map, error)

	// Save inserts m or replaces the stored map with the same id.
	Save(ctx context.Context, m *poi.Map) error

	// UpdatePOIs replaces the POIs of a map and bumps its UpdatedAt.
	UpdatePOIs(ctx context.Context, id string, pois []poi.POI) (*poi.Map, error)

	// Rename changes the display name of a map.
	Rename(ctx context.Context, id, name string) (*poi.Map, error)

	// Delete removes a map. If it was current, another map becomes current.
	Delete(ctx context.Context, id string) error

	// Current returns the selected map, falling back to the last viewed map
	// and finally to a newly created Default Map.
	Current(ctx context.Context) (*poi.Map, error)

	// SetCurrent selects a map.
	SetCurrent(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// Options configures store backends.
type Options struct {
	// Now is the clock used for timestamps. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func mapNotFound(id string) error {
	return errors.New(errors.ErrCodeMapNotFound, "map %s not found", id)
}

func validateMap(m *poi.Map) error {
	if m == nil {
		return errors.New(errors.ErrCodeInvalidInput, "map is nil")
	}
	if err := errors.ValidateID(m.ID); err != nil {
		return err
	}
	return errors.ValidateName(m.Name)
}
