// Package solver orders a point set as an open path with fixed endpoints.
//
// Solving is two-phase: a Constructor builds a feasible path and an Improver
// refines it until a wall-clock deadline. Both are interfaces so the
// metaheuristic can be swapped without touching callers.
package solver

import (
	"github.com/geoprumo/route-service/internal/core/domain"
	"github.com/geoprumo/route-service/internal/geo"
)

// Matrix is a complete cost matrix between nodes 0..Len()-1.
type Matrix interface {
	Len() int
	Cost(from, to int) int
}

// DenseMatrix stores all pairwise costs.
type DenseMatrix struct {
	n     int
	costs []int
}

// NewDistanceMatrix computes great-circle distances in meters between all
// coordinate pairs.
func NewDistanceMatrix(coords []domain.Coordinates) *DenseMatrix {
	n := len(coords)
	m := &DenseMatrix{n: n, costs: make([]int, n*n)}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := geo.Distance(coords[i], coords[j])
			m.costs[i*n+j] = d
			m.costs[j*n+i] = d
		}
	}
	return m
}

// NewMatrix wraps explicit costs, mostly for tests.
func NewMatrix(costs [][]int) *DenseMatrix {
	n := len(costs)
	m := &DenseMatrix{n: n, costs: make([]int, n*n)}
	for i, row := range costs {
		copy(m.costs[i*n:(i+1)*n], row)
	}
	return m
}

func (m *DenseMatrix) Len() int { return m.n }

func (m *DenseMatrix) Cost(from, to int) int { return m.costs[from*m.n+to] }

// PathCost sums the arc costs along path.
func PathCost(m Matrix, path []int) int {
	total := 0
	for i := 1; i < len(path); i++ {
		total += m.Cost(path[i-1], path[i])
	}
	return total
}
