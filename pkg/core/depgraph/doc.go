// Package depgraph builds and analyses the dependency graph between POIs.
//
// POI A depends on POI B when one of A's bearing records names B as its
// reference. The graph stores the inverse relation: for every POI it keeps
// the list of dependents, i.e. the POIs that must be recomputed after it.
//
// Unlike a strict DAG the graph may legally contain cycles (two POIs
// measured against each other, or a record that references its own POI).
// [DetectCycles] reports them and [Order] leaves them out. Neither operation
// modifies the graph.
//
// # Representation
//
// Nodes are addressed by dense integer indices assigned in input order.
// Adjacency lists hold indices, and a single id-to-index map translates
// between POI ids and indices. POIs that reference each other never own one
// another.
//
// # Performance
//
// [Build], [DetectCycles] and [Order] each run in O(V + E) where V is the
// number of POIs and E the number of bearing records.
package depgraph
