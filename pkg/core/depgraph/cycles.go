package depgraph

// DetectCycles reports cyclic reference chains in g.
//
// DetectCycles runs a depth-first search from every unvisited POI, in input
// order, keeping the current path on a stack. When the search reaches a POI
// that is already on the stack, the stack from that POI to the current one
// (inclusive) is reported as a cycle. Disjoint cycles are all reported; a
// record referencing its own POI is a cycle of length one.
//
// The graph is not modified. POIs caught in a cycle simply never become
// ready in [Order].
func DetectCycles(g *Graph) [][]string {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, g.Len())
	pos := make([]int, g.Len()) // index on stack while gray
	var (
		stack  []int
		cycles [][]string
	)

	var dfs func(n int)
	dfs = func(n int) {
		color[n] = gray
		pos[n] = len(stack)
		stack = append(stack, n)

		for _, child := range g.dependents[n] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				cycle := make([]string, 0, len(stack)-pos[child])
				for _, c := range stack[pos[child]:] {
					cycle = append(cycle, g.ids[c])
				}
				cycles = append(cycles, cycle)
			}
		}

		stack = stack[:len(stack)-1]
		color[n] = black
	}

	for n := range g.ids {
		if color[n] == white {
			dfs(n)
		}
	}
	return cycles
}

// CycleMembers flattens cycles into a set of POI ids.
func CycleMembers(cycles [][]string) map[string]bool {
	members := make(map[string]bool)
	for _, c := range cycles {
		for _, id := range c {
			members[id] = true
		}
	}
	return members
}
