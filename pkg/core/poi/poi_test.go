package poi

import (
	"testing"
	"time"
)

func TestCloneIsIndependent(t *testing.T) {
	p := POI{
		ID:             "p1",
		DefinitionMode: ModeBearings,
		BearingRecords: []BearingRecord{{ID: "b1", ReferencePOIID: LifeboatID, Distance: 10, Bearing: 90, Direction: DirectionTo}},
	}

	c := p.Clone()
	c.BearingRecords[0].Distance = 99
	c.X = 5

	if p.BearingRecords[0].Distance != 10 {
		t.Errorf("original record mutated: distance = %v", p.BearingRecords[0].Distance)
	}
	if p.X != 0 {
		t.Errorf("original X mutated: %v", p.X)
	}
}

func TestCloneAll(t *testing.T) {
	if CloneAll(nil) != nil {
		t.Error("CloneAll(nil) should be nil")
	}

	in := []POI{{ID: "a", BearingRecords: []BearingRecord{{ID: "r"}}}}
	out := CloneAll(in)
	out[0].BearingRecords[0].ID = "changed"
	if in[0].BearingRecords[0].ID != "r" {
		t.Error("CloneAll shares record slices with its input")
	}
}

func TestNeedsResolution(t *testing.T) {
	rec := []BearingRecord{{ID: "r", ReferencePOIID: "x"}}
	tests := []struct {
		name string
		poi  POI
		want bool
	}{
		{"coordinates", POI{DefinitionMode: ModeCoordinates, BearingRecords: rec}, false},
		{"bearings no records", POI{DefinitionMode: ModeBearings}, false},
		{"bearings with records", POI{DefinitionMode: ModeBearings, BearingRecords: rec}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.poi.NeedsResolution(); got != tt.want {
				t.Errorf("NeedsResolution() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReferences(t *testing.T) {
	p := POI{
		DefinitionMode: ModeBearings,
		BearingRecords: []BearingRecord{
			{ReferencePOIID: "a"},
			{ReferencePOIID: "b"},
			{ReferencePOIID: "a"},
		},
	}
	refs := p.References()
	if len(refs) != 2 || refs[0] != "a" || refs[1] != "b" {
		t.Errorf("References() = %v, want [a b]", refs)
	}

	p.DefinitionMode = ModeCoordinates
	if refs := p.References(); refs != nil {
		t.Errorf("coordinates-mode References() = %v, want nil", refs)
	}
}

func TestIndexAndFind(t *testing.T) {
	pois := []POI{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}

	idx := Index(pois)
	if idx["b"].Name != "B" {
		t.Errorf("Index()[b].Name = %q, want B", idx["b"].Name)
	}

	p, i, ok := Find(pois, "b")
	if !ok || i != 1 || p.Name != "B" {
		t.Errorf("Find(b) = %v, %d, %v", p, i, ok)
	}
	if _, i, ok := Find(pois, "zzz"); ok || i != -1 {
		t.Errorf("Find(zzz) = %d, %v, want -1, false", i, ok)
	}
}

func TestIndexKeepsFirstDuplicate(t *testing.T) {
	pois := []POI{{ID: "a", Name: "first"}, {ID: "b"}, {ID: "a", Name: "second"}}
	if got := Index(pois)["a"].Name; got != "first" {
		t.Errorf("Index()[a].Name = %q, want first", got)
	}
	if p, i, _ := Find(pois, "a"); p.Name != "first" || i != 0 {
		t.Errorf("Find(a) = %q at %d, want first at 0", p.Name, i)
	}
}

func TestCategories(t *testing.T) {
	if len(Categories) != 10 {
		t.Fatalf("len(Categories) = %d, want 10", len(Categories))
	}
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("%s.Valid() = false", c)
		}
		if c.Info().Label == "" {
			t.Errorf("%s has no label", c)
		}
	}
	if Category("submarine").Valid() {
		t.Error("unknown category reported valid")
	}
	if got := Category("submarine").Info().Label; got != "submarine" {
		t.Errorf("unknown Info().Label = %q", got)
	}
	if got := CategoryBase.Info().Label; got != "Player Base" {
		t.Errorf("base label = %q, want Player Base", got)
	}
}

func TestNewMapSeedsLifeboat(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewMap("Test", now)

	if len(m.POIs) != 1 {
		t.Fatalf("len(POIs) = %d, want 1", len(m.POIs))
	}
	lb := m.POIs[0]
	if lb.ID != LifeboatID || lb.X != 0 || lb.Y != 0 || lb.DefinitionMode != ModeCoordinates {
		t.Errorf("unexpected origin POI: %+v", lb)
	}
	if !m.CreatedAt.Equal(now) || !m.UpdatedAt.Equal(now) {
		t.Error("map timestamps not set from now")
	}

	c := m.Clone()
	c.POIs[0].Name = "changed"
	if m.POIs[0].Name != "Lifeboat 5" {
		t.Error("Map.Clone shares POIs")
	}
}

func TestNewIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
