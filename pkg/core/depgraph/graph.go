package depgraph

import (
	"github.com/matzehuels/poimap/pkg/core/poi"
)

// Edge is a dependency between two POIs: To was measured against From, so
// From must be resolved first. RecordID names the bearing record that
// created the edge.
type Edge struct {
	From     string
	To       string
	RecordID string
}

// Graph maps every POI to the POIs whose bearing records reference it.
//
// The zero value is an empty graph. Graph is not safe for concurrent
// mutation, but it is never mutated after [Build] returns.
type Graph struct {
	ids        []string
	index      map[string]int
	dependents [][]int // node -> dependent nodes, one entry per record
	records    [][]string
	inDegree   []int // node -> own records with a known reference
}

// Build constructs the dependency graph for a POI collection.
//
// Every POI id appears as a node, in input order, whether or not it is
// bearings-defined. For each bearings-defined POI and each of its records,
// the POI is appended to the dependents of the referenced POI. Records whose
// reference is not in pois are omitted; resolution reports them later.
// Duplicate ids collapse into a single node.
func Build(pois []poi.POI) *Graph {
	g := &Graph{index: make(map[string]int, len(pois))}
	for _, p := range pois {
		if _, ok := g.index[p.ID]; ok {
			continue
		}
		g.index[p.ID] = len(g.ids)
		g.ids = append(g.ids, p.ID)
	}
	g.dependents = make([][]int, len(g.ids))
	g.records = make([][]string, len(g.ids))
	g.inDegree = make([]int, len(g.ids))

	for _, p := range pois {
		if !p.IsBearingDefined() {
			continue
		}
		owner := g.index[p.ID]
		for _, r := range p.BearingRecords {
			ref, ok := g.index[r.ReferencePOIID]
			if !ok {
				continue
			}
			g.dependents[ref] = append(g.dependents[ref], owner)
			g.records[ref] = append(g.records[ref], r.ID)
			g.inDegree[owner]++
		}
	}
	return g
}

// Len returns the number of POIs in the graph.
func (g *Graph) Len() int { return len(g.ids) }

// EdgeCount returns the number of bearing records that became edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, deps := range g.dependents {
		n += len(deps)
	}
	return n
}

// IDs returns every POI id in input order.
func (g *Graph) IDs() []string {
	out := make([]string, len(g.ids))
	copy(out, g.ids)
	return out
}

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Dependents returns the ids of POIs with a bearing record referencing id,
// one entry per record. It returns an empty, non-nil slice for a known POI
// without dependents and nil for an unknown id.
func (g *Graph) Dependents(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, len(g.dependents[i]))
	for k, d := range g.dependents[i] {
		out[k] = g.ids[d]
	}
	return out
}

// InDegree returns the number of id's own bearing records that reference a
// POI in the graph, or 0 for an unknown id.
func (g *Graph) InDegree(id string) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	return g.inDegree[i]
}

// Edges returns every dependency edge, grouped by reference in input order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.EdgeCount())
	for from, deps := range g.dependents {
		for k, to := range deps {
			edges = append(edges, Edge{From: g.ids[from], To: g.ids[to], RecordID: g.records[from][k]})
		}
	}
	return edges
}

// Map returns the graph as an id-keyed dependents mapping. Every POI id is
// present, with an empty slice when nothing depends on it.
func (g *Graph) Map() map[string][]string {
	m := make(map[string][]string, len(g.ids))
	for _, id := range g.ids {
		m[id] = g.Dependents(id)
	}
	return m
}
