package depgraph

import (
	"slices"
	"testing"

	"github.com/matzehuels/poimap/pkg/core/poi"
)

func TestDetectCycles_NoCycles(t *testing.T) {
	g := Build([]poi.POI{coord("L"), bearings("a", "L"), bearings("b", "a"), bearings("c", "a", "b")})

	if cycles := DetectCycles(g); len(cycles) != 0 {
		t.Errorf("DetectCycles() = %v, want none", cycles)
	}
}

func TestDetectCycles_SimpleCycle(t *testing.T) {
	g := Build([]poi.POI{bearings("A", "B"), bearings("B", "A")})

	cycles := DetectCycles(g)
	if len(cycles) != 1 {
		t.Fatalf("DetectCycles() = %v, want 1 cycle", cycles)
	}
	if !slices.Contains(cycles[0], "A") || !slices.Contains(cycles[0], "B") {
		t.Errorf("cycle %v does not contain both A and B", cycles[0])
	}
}

func TestDetectCycles_TrianglePath(t *testing.T) {
	// a -> b -> c -> a in reference direction; dependents edges run a->c->b->a.
	g := Build([]poi.POI{bearings("a", "c"), bearings("b", "a"), bearings("c", "b")})

	cycles := DetectCycles(g)
	if len(cycles) != 1 {
		t.Fatalf("DetectCycles() = %v, want 1 cycle", cycles)
	}
	if !slices.Equal(cycles[0], []string{"a", "b", "c"}) {
		t.Errorf("cycle = %v, want [a b c]", cycles[0])
	}
}

func TestDetectCycles_ReportsSubPathOnly(t *testing.T) {
	// L is an ancestor of the cycle but not part of it.
	g := Build([]poi.POI{coord("L"), bearings("x", "L", "y"), bearings("y", "x")})

	cycles := DetectCycles(g)
	if len(cycles) != 1 {
		t.Fatalf("DetectCycles() = %v, want 1 cycle", cycles)
	}
	if !slices.Equal(cycles[0], []string{"x", "y"}) {
		t.Errorf("cycle = %v, want [x y]", cycles[0])
	}
}

func TestDetectCycles_MultipleCycles(t *testing.T) {
	g := Build([]poi.POI{
		bearings("a", "b"), bearings("b", "a"),
		bearings("c", "d"), bearings("d", "c"),
	})

	cycles := DetectCycles(g)
	if len(cycles) != 2 {
		t.Fatalf("DetectCycles() = %v, want 2 cycles", cycles)
	}
	members := CycleMembers(cycles)
	for _, id := range []string{"a", "b", "c", "d"} {
		if !members[id] {
			t.Errorf("%s missing from cycle members", id)
		}
	}
}

func TestDetectCycles_SelfReference(t *testing.T) {
	g := Build([]poi.POI{bearings("me", "me")})

	cycles := DetectCycles(g)
	if len(cycles) != 1 || !slices.Equal(cycles[0], []string{"me"}) {
		t.Errorf("DetectCycles() = %v, want [[me]]", cycles)
	}
}

func TestDetectCycles_DoesNotModifyGraph(t *testing.T) {
	g := Build([]poi.POI{bearings("A", "B"), bearings("B", "A")})
	before := g.EdgeCount()

	DetectCycles(g)

	if g.EdgeCount() != before {
		t.Errorf("EdgeCount() = %d after detection, want %d", g.EdgeCount(), before)
	}
}
