package poi

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Category is the kind of place a POI marks. The set is closed; see [Categories].
type Category string

const (
	CategoryWreck     Category = "wreck"
	CategoryStructure Category = "structure"
	CategoryResource  Category = "resource"
	CategoryBiome     Category = "biome"
	CategoryLandmark  Category = "landmark"
	CategoryHazard    Category = "hazard"
	CategoryBase      Category = "base"
	CategoryBuoy      Category = "buoy"
	CategoryLifeboat  Category = "lifeboat"
	CategoryCave      Category = "cave"
)

// DefinitionMode selects how a POI's position is established.
type DefinitionMode string

const (
	// ModeCoordinates means X and Y are authoritative and edited directly.
	ModeCoordinates DefinitionMode = "coordinates"
	// ModeBearings means X and Y are derived from the POI's bearing records.
	ModeBearings DefinitionMode = "bearings"
)

// Direction states which way a bearing record's vector points.
type Direction string

const (
	// DirectionTo: the bearing and distance describe the vector from the
	// owning POI to the reference POI.
	DirectionTo Direction = "to"
	// DirectionFrom: the bearing and distance describe the vector from the
	// reference POI to the owning POI.
	DirectionFrom Direction = "from"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool { return d == DirectionTo || d == DirectionFrom }

// BearingRecord is one directional observation linking a POI to a reference POI.
type BearingRecord struct {
	ID             string    `json:"id" bson:"id" yaml:"id"`
	ReferencePOIID string    `json:"referencePOIId" bson:"reference_poi_id" yaml:"referencePOIId"`
	Distance       float64   `json:"distance" bson:"distance" yaml:"distance"` // 3-D metres, > 0
	Bearing        float64   `json:"bearing" bson:"bearing" yaml:"bearing"`    // compass degrees, [0, 360)
	Direction      Direction `json:"direction" bson:"direction" yaml:"direction"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at" yaml:"createdAt"`
}

// POI is a point of interest placed on a map.
//
// X and Y grow east and south respectively (screen orientation). Depth is a
// non-negative vertical distance in metres below the surface.
type POI struct {
	ID       string   `json:"id" bson:"id" yaml:"id"`
	Name     string   `json:"name" bson:"name" yaml:"name"`
	Category Category `json:"type" bson:"type" yaml:"type"`
	X        float64  `json:"x" bson:"x" yaml:"x"`
	Y        float64  `json:"y" bson:"y" yaml:"y"`
	Notes    string   `json:"notes,omitempty" bson:"notes,omitempty" yaml:"notes,omitempty"`
	Depth    float64  `json:"depth" bson:"depth" yaml:"depth"`

	DefinitionMode DefinitionMode  `json:"definitionMode" bson:"definition_mode" yaml:"definitionMode"`
	BearingRecords []BearingRecord `json:"bearingRecords,omitempty" bson:"bearing_records,omitempty" yaml:"bearingRecords,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at" yaml:"updatedAt"`
}

// IsBearingDefined reports whether the POI derives its position from bearings.
func (p POI) IsBearingDefined() bool { return p.DefinitionMode == ModeBearings }

// NeedsResolution reports whether the engine should compute X and Y for p:
// it is bearing-defined and owns at least one record.
func (p POI) NeedsResolution() bool {
	return p.IsBearingDefined() && len(p.BearingRecords) > 0
}

// Clone returns a copy of p that shares no mutable state with it.
func (p POI) Clone() POI {
	p.BearingRecords = slices.Clone(p.BearingRecords)
	return p
}

// References returns the distinct reference ids of p's bearing records in
// record order. Coordinates-mode POIs reference nothing.
func (p POI) References() []string {
	if !p.IsBearingDefined() {
		return nil
	}
	var refs []string
	for _, r := range p.BearingRecords {
		if !slices.Contains(refs, r.ReferencePOIID) {
			refs = append(refs, r.ReferencePOIID)
		}
	}
	return refs
}

// CloneAll deep-copies a POI collection.
func CloneAll(pois []POI) []POI {
	if pois == nil {
		return nil
	}
	out := make([]POI, len(pois))
	for i, p := range pois {
		out[i] = p.Clone()
	}
	return out
}

// Index maps POI ids to POIs. When ids collide the first POI wins, as in
// [Find].
func Index(pois []POI) map[string]POI {
	idx := make(map[string]POI, len(pois))
	for _, p := range pois {
		if _, ok := idx[p.ID]; !ok {
			idx[p.ID] = p
		}
	}
	return idx
}

// Find returns the POI with the given id and its position in pois.
func Find(pois []POI, id string) (POI, int, bool) {
	for i, p := range pois {
		if p.ID == id {
			return p, i, true
		}
	}
	return POI{}, -1, false
}

// NewID returns a fresh random identifier for POIs, records and maps.
func NewID() string { return uuid.NewString() }

// New creates a coordinates-mode POI at (x, y) with fresh id and timestamps.
func New(name string, category Category, x, y, depth float64, now time.Time) POI {
	return POI{
		ID:             NewID(),
		Name:           name,
		Category:       category,
		X:              x,
		Y:              y,
		Depth:          depth,
		DefinitionMode: ModeCoordinates,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// NewBearingRecord creates a bearing record with a fresh id.
func NewBearingRecord(ref string, bearing, distance float64, dir Direction, now time.Time) BearingRecord {
	return BearingRecord{
		ID:             NewID(),
		ReferencePOIID: ref,
		Distance:       distance,
		Bearing:        bearing,
		Direction:      dir,
		CreatedAt:      now,
	}
}
