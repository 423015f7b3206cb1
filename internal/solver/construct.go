package solver

// Constructor builds an initial feasible path from start to end visiting
// every node exactly once.
type Constructor interface {
	Build(m Matrix, start, end int) []int
}

// CheapestArc extends the path from start by the cheapest arc to an
// unvisited node and closes it at end. Ties go to the lowest node index.
type CheapestArc struct{}

func (CheapestArc) Build(m Matrix, start, end int) []int {
	n := m.Len()
	visited := make([]bool, n)
	visited[start] = true
	visited[end] = true

	path := make([]int, 0, n)
	path = append(path, start)
	cur := start
	for len(path) < n-1 {
		next, best := -1, 0
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			if c := m.Cost(cur, j); next < 0 || c < best {
				next, best = j, c
			}
		}
		visited[next] = true
		path = append(path, next)
		cur = next
	}
	return append(path, end)
}
