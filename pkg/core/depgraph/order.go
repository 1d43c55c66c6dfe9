package depgraph

// Order returns POI ids such that every POI comes after all POIs its
// bearing records reference.
//
// Order uses Kahn's algorithm. A POI's in-degree is the number of its own
// records that reference a POI in the graph. POIs with in-degree 0 (every
// coordinates-defined POI, and bearings-defined POIs whose references are
// all unknown) are queued first, in input order. Dequeuing a POI decrements
// the in-degree of each dependent once per referencing record.
//
// POIs on a cycle, and POIs that depend on one, never reach in-degree 0 and
// are absent from the result. Use [Blocked] to list them.
func Order(g *Graph) []string {
	inDegree := make([]int, g.Len())
	copy(inDegree, g.inDegree)

	queue := make([]int, 0, g.Len())
	for n, d := range inDegree {
		if d == 0 {
			queue = append(queue, n)
		}
	}

	order := make([]string, 0, g.Len())
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, g.ids[curr])

		for _, dep := range g.dependents[curr] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}
	return order
}

// Blocked returns the ids of g that are missing from order, in input order.
func Blocked(g *Graph, order []string) []string {
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		seen[id] = true
	}
	var blocked []string
	for _, id := range g.ids {
		if !seen[id] {
			blocked = append(blocked, id)
		}
	}
	return blocked
}
