package depgraph

import (
	"slices"
	"testing"

	"github.com/matzehuels/poimap/pkg/core/poi"
)

func TestOrder_RespectsDependencies(t *testing.T) {
	pois := []poi.POI{
		bearings("d", "c", "a"),
		bearings("c", "b"),
		bearings("b", "a", "L"),
		bearings("a", "L"),
		coord("L"),
		coord("M"),
	}
	g := Build(pois)
	order := Order(g)

	if len(order) != len(pois) {
		t.Fatalf("Order() = %v, want all %d POIs", order, len(pois))
	}

	idx := make(map[string]int)
	for i, id := range order {
		idx[id] = i
	}
	for _, p := range pois {
		for _, r := range p.BearingRecords {
			if idx[p.ID] <= idx[r.ReferencePOIID] {
				t.Errorf("%s (index %d) not after reference %s (index %d)", p.ID, idx[p.ID], r.ReferencePOIID, idx[r.ReferencePOIID])
			}
		}
	}
}

func TestOrder_RootsInInputOrder(t *testing.T) {
	g := Build([]poi.POI{coord("z"), coord("y"), bearings("x", "z")})

	if order := Order(g); !slices.Equal(order, []string{"z", "y", "x"}) {
		t.Errorf("Order() = %v, want [z y x]", order)
	}
}

func TestOrder_ExcludesCycles(t *testing.T) {
	g := Build([]poi.POI{
		coord("L"),
		bearings("A", "B"),
		bearings("B", "A"),
		bearings("C", "A"), // downstream of the cycle
		bearings("D", "L"),
	})

	order := Order(g)
	if !slices.Equal(order, []string{"L", "D"}) {
		t.Errorf("Order() = %v, want [L D]", order)
	}
	if blocked := Blocked(g, order); !slices.Equal(blocked, []string{"A", "B", "C"}) {
		t.Errorf("Blocked() = %v, want [A B C]", blocked)
	}
}

func TestOrder_UnknownReferencesDoNotBlock(t *testing.T) {
	g := Build([]poi.POI{bearings("a", "ghost"), bearings("b", "a")})

	if order := Order(g); !slices.Equal(order, []string{"a", "b"}) {
		t.Errorf("Order() = %v, want [a b]", order)
	}
}

func TestOrder_DuplicateRecords(t *testing.T) {
	g := Build([]poi.POI{coord("L"), bearings("a", "L", "L")})

	if order := Order(g); !slices.Equal(order, []string{"L", "a"}) {
		t.Errorf("Order() = %v, want [L a]", order)
	}
}
