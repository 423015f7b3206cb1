package solver

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultTimeLimit bounds a single solve.
	DefaultTimeLimit = 5 * time.Second
	// DefaultMaxNodes bounds the node count. A solve holds two n×n int
	// matrices (costs and penalties), about 60 MiB at this size.
	DefaultMaxNodes  = 2000
)

var (
	ErrInvalidEndpoints = errors.New("solver: invalid start or end node")
	ErrNoSolution       = errors.New("solver: no feasible solution")
	ErrTooManyNodes     = errors.New("solver: too many nodes")
)

// Options configures a Solver. Zero values select the defaults.
type Options struct {
	TimeLimit   time.Duration
	MaxNodes    int
	Constructor Constructor
	Improver    Improver
}

// Solver runs construction followed by local search under a time limit it
// enforces itself.
type Solver struct {
	constructor Constructor
	improver    Improver
	timeLimit   time.Duration
	maxNodes    int
}

// Result is a solved path over matrix node indices.
type Result struct {
	Path  []int
	Cost  int
	Moves int
}

func New(opts Options) *Solver {
	if opts.TimeLimit <= 0 {
		opts.TimeLimit = DefaultTimeLimit
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	if opts.Constructor == nil {
		opts.Constructor = CheapestArc{}
	}
	if opts.Improver == nil {
		opts.Improver = GuidedLocalSearch{}
	}
	return &Solver{
		constructor: opts.Constructor,
		improver:    opts.Improver,
		timeLimit:   opts.TimeLimit,
		maxNodes:    opts.MaxNodes,
	}
}

// MaxNodes is the largest matrix Solve accepts.
func (s *Solver) MaxNodes() int { return s.maxNodes }

// Solve finds a low-cost path from start to end visiting every node once.
func (s *Solver) Solve(m Matrix, start, end int) (Result, error) {
	n := m.Len()
	if n < 2 || start < 0 || start >= n || end < 0 || end >= n || start == end {
		return Result{}, fmt.Errorf("%w: start=%d end=%d nodes=%d", ErrInvalidEndpoints, start, end, n)
	}
	if n > s.maxNodes {
		return Result{}, fmt.Errorf("%w: %d > %d", ErrTooManyNodes, n, s.maxNodes)
	}
	deadline := time.Now().Add(s.timeLimit)

	path := s.constructor.Build(m, start, end)
	if !feasible(path, n, start, end) {
		return Result{}, ErrNoSolution
	}
	cost := PathCost(m, path)

	improved, moves := s.improver.Improve(m, append([]int(nil), path...), deadline)
	if feasible(improved, n, start, end) {
		if c := PathCost(m, improved); c <= cost {
			path, cost = improved, c
		}
	}
	return Result{Path: path, Cost: cost, Moves: moves}, nil
}

// feasible reports whether path is a permutation of 0..n-1 with the given
// endpoints.
func feasible(path []int, n, start, end int) bool {
	if len(path) != n || path[0] != start || path[n-1] != end {
		return false
	}
	seen := make([]bool, n)
	for _, v := range path {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
