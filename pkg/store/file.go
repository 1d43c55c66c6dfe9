package store

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/gosimple/slug"

	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/errors"
	"github.com/matzehuels/poimap/pkg/observability"
)

const (
	indexFile  = "index.json"
	mapsSubdir = "maps"
	backendFS  = "file"
)

// fileIndex is the on-disk selection state and id-to-file table.
type fileIndex struct {
	Current    string            `json:"current,omitempty"`
	LastViewed string            `json:"lastViewed,omitempty"`
	Files      map[string]string `json:"files"`
}

// FileStore keeps each map in <dir>/maps/<slug>-<id>.json and the selection
// in <dir>/index.json. All writes are atomic and serialized by a mutex, so
// one FileStore may be shared across goroutines. Separate processes writing
// the same directory are not coordinated.
type FileStore struct {
	dir  string
	opts Options
	mu   sync.Mutex
}

// NewFileStore opens (creating if needed) a store rooted at dir.
func NewFileStore(dir string, opts Options) (*FileStore, error) {
	if err := errors.ValidatePath(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(dir, mapsSubdir), 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create store directory %s", dir)
	}
	return &FileStore{dir: dir, opts: opts}, nil
}

// Dir returns the store root.
func (s *FileStore) Dir() string { return s.dir }

// Create makes a new map seeded with Lifeboat 5. The first map created
// becomes current.
func (s *FileStore) Create(ctx context.Context, name string) (*poi.Map, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	m := poi.NewMap(name, s.opts.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	if err := s.writeMap(idx, m); err != nil {
		return nil, err
	}
	if idx.Current == "" {
		idx.Current, idx.LastViewed = m.ID, m.ID
	}
	if err := s.writeIndex(idx); err != nil {
		return nil, err
	}
	return m.Clone(), nil
}

// List returns every map, most recently updated first.
func (s *FileStore) List(ctx context.Context) ([]*poi.Map, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	maps := make([]*poi.Map, 0, len(idx.Files))
	for id := range idx.Files {
		m, err := s.readMap(ctx, idx, id)
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	sortMaps(maps)
	return maps, nil
}

// Get returns one map.
func (s *FileStore) Get(ctx context.Context, id string) (*poi.Map, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	return s.readMap(ctx, idx, id)
}

// Save inserts m or replaces the stored map with the same id.
func (s *FileStore) Save(ctx context.Context, m *poi.Map) error {
	if err := validateMap(m); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.readIndex()
	if err != nil {
		return err
	}
	if err := s.writeMap(idx, m.Clone()); err != nil {
		return err
	}
	return s.writeIndex(idx)
}

// UpdatePOIs replaces the POIs of a map and bumps its UpdatedAt.
func (s *FileStore) UpdatePOIs(ctx context.Context, id string, pois []poi.POI) (*poi.Map, error) {
	return s.update(ctx, id, func(m *poi.Map) error {
		m.POIs = poi.CloneAll(pois)
		return nil
	})
}

// Rename changes the display name of a map.
func (s *FileStore) Rename(ctx context.Context, id, name string) (*poi.Map, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(m *poi.Map) error {
		m.Name = name
		return nil
	})
}

func (s *FileStore) update(ctx context.Context, id string, fn func(*poi.Map) error) (*poi.Map, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	m, err := s.readMap(ctx, idx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(m); err != nil {
		return nil, err
	}
	m.UpdatedAt = s.opts.now()
	if err := s.writeMap(idx, m); err != nil {
		return nil, err
	}
	if err := s.writeIndex(idx); err != nil {
		return nil, err
	}
	return m.Clone(), nil
}

// Delete removes a map. If it was current, the most recently updated
// remaining map becomes current.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.readIndex()
	if err != nil {
		return err
	}
	name, ok := idx.Files[id]
	if !ok {
		return mapNotFound(id)
	}
	if err := os.Remove(filepath.Join(s.dir, mapsSubdir, name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete map %s", id)
	}
	delete(idx.Files, id)

	if idx.LastViewed == id {
		idx.LastViewed = ""
	}
	if idx.Current == id {
		idx.Current = ""
		var rest []*poi.Map
		for other := range idx.Files {
			if m, err := s.readMap(ctx, idx, other); err == nil {
				rest = append(rest, m)
			}
		}
		if len(rest) > 0 {
			sortMaps(rest)
			idx.Current = rest[0].ID
			idx.LastViewed = rest[0].ID
		}
	}
	return s.writeIndex(idx)
}

// Current returns the selected map, falling back to the last viewed map
// and finally to a newly created Default Map.
func (s *FileStore) Current(ctx context.Context) (*poi.Map, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}

	for _, id := range []string{idx.Current, idx.LastViewed} {
		if _, ok := idx.Files[id]; !ok {
			continue
		}
		m, err := s.readMap(ctx, idx, id)
		if err != nil {
			return nil, err
		}
		if idx.Current != id {
			idx.Current = id
			if err := s.writeIndex(idx); err != nil {
				return nil, err
			}
		}
		return m, nil
	}

	m := poi.NewMap(DefaultMapName, s.opts.now())
	if err := s.writeMap(idx, m); err != nil {
		return nil, err
	}
	idx.Current, idx.LastViewed = m.ID, m.ID
	if err := s.writeIndex(idx); err != nil {
		return nil, err
	}
	return m.Clone(), nil
}

// SetCurrent selects a map.
func (s *FileStore) SetCurrent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.readIndex()
	if err != nil {
		return err
	}
	if _, ok := idx.Files[id]; !ok {
		return mapNotFound(id)
	}
	idx.Current, idx.LastViewed = id, id
	return s.writeIndex(idx)
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) readIndex() (*fileIndex, error) {
	idx := &fileIndex{Files: map[string]string{}}
	data, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if os.IsNotExist(err) {
		return idx, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read store index")
	}
	if err := json.Unmarshal(data, idx); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse store index")
	}
	if idx.Files == nil {
		idx.Files = map[string]string{}
	}
	return idx, nil
}

func (s *FileStore) writeIndex(idx *fileIndex) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode store index")
	}
	if err := writeFileAtomic(filepath.Join(s.dir, indexFile), data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write store index")
	}
	return nil
}

func (s *FileStore) readMap(ctx context.Context, idx *fileIndex, id string) (m *poi.Map, err error) {
	start := time.Now()
	defer func() {
		observability.Store().OnLoad(ctx, backendFS, id, time.Since(start), err)
	}()

	name, ok := idx.Files[id]
	if !ok {
		return nil, mapNotFound(id)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, mapsSubdir, name))
	if os.IsNotExist(err) {
		return nil, mapNotFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read map %s", id)
	}
	m = &poi.Map{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse map %s", id)
	}
	return m, nil
}

// writeMap stores m under a file name derived from its current name and
// records the name in idx. A rename leaves the old file to be removed here.
func (s *FileStore) writeMap(idx *fileIndex, m *poi.Map) (err error) {
	start := time.Now()
	defer func() {
		observability.Store().OnSave(context.Background(), backendFS, m.ID, len(m.POIs), time.Since(start), err)
	}()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode map %s", m.ID)
	}
	name := fileName(m)
	if err := writeFileAtomic(filepath.Join(s.dir, mapsSubdir, name), data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write map %s", m.ID)
	}
	if old, ok := idx.Files[m.ID]; ok && old != name {
		_ = os.Remove(filepath.Join(s.dir, mapsSubdir, old))
	}
	idx.Files[m.ID] = name
	return nil
}

func fileName(m *poi.Map) string {
	s := slug.Make(m.Name)
	if s == "" {
		return fmt.Sprintf("%s.json", m.ID)
	}
	return fmt.Sprintf("%s-%s.json", s, m.ID)
}

func sortMaps(maps []*poi.Map) {
	slices.SortStableFunc(maps, func(a, b *poi.Map) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

var _ Store = (*FileStore)(nil)
