package poi

import "time"

// Map is a named collection of POIs sharing one coordinate system.
type Map struct {
	ID        string    `json:"id" bson:"_id" yaml:"id"`
	Name      string    `json:"name" bson:"name" yaml:"name"`
	POIs      []POI     `json:"pois" bson:"pois" yaml:"pois"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at" yaml:"updatedAt"`
}

// NewMap creates a map seeded with the Lifeboat 5 origin.
func NewMap(name string, now time.Time) *Map {
	return &Map{
		ID:        "map-" + NewID(),
		Name:      name,
		POIs:      []POI{Lifeboat(now)},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	c := *m
	c.POIs = CloneAll(m.POIs)
	return &c
}
