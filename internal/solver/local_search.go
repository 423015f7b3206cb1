package solver

import "time"

// Improver refines a feasible path, keeping its first and last node fixed.
// It must return a feasible path no worse than the input and stop by
// deadline.
type Improver interface {
	Improve(m Matrix, path []int, deadline time.Time) (improved []int, moves int)
}

const (
	defaultLambdaCoefficient = 0.1
	defaultMaxStaleRounds    = 100
	deadlineCheckInterval    = 256
)

// GuidedLocalSearch descends with 2-opt, relocate and swap moves. At each
// local optimum it penalizes the path's highest-utility edges and descends
// again on the augmented cost, remembering the best path under the true
// cost. Costs must be symmetric.
type GuidedLocalSearch struct {
	// LambdaCoefficient scales penalties relative to the mean edge cost of
	// the first local optimum.
	LambdaCoefficient float64
	// MaxStaleRounds stops the search after this many penalty rounds
	// without a new best path.
	MaxStaleRounds int
}

func (g GuidedLocalSearch) Improve(m Matrix, path []int, deadline time.Time) ([]int, int) {
	if len(path) < 4 {
		return path, 0
	}
	coef := g.LambdaCoefficient
	if coef <= 0 {
		coef = defaultLambdaCoefficient
	}
	maxStale := g.MaxStaleRounds
	if maxStale <= 0 {
		maxStale = defaultMaxStaleRounds
	}

	s := newSearch(m, path, deadline)
	moves := s.descend()

	best := append([]int(nil), s.path...)
	bestCost := PathCost(m, best)
	s.lambda = int(coef * float64(bestCost) / float64(len(path)-1))
	if s.lambda < 1 {
		s.lambda = 1
	}

	for stale := 0; stale < maxStale && !s.expired(); {
		s.penalize()
		moves += s.descend()
		if c := PathCost(m, s.path); c < bestCost {
			best = append(best[:0], s.path...)
			bestCost = c
			stale = 0
		} else {
			stale++
		}
	}
	return best, moves
}

type search struct {
	m        Matrix
	n        int
	path     []int
	penalty  []int
	lambda   int
	deadline time.Time
	ticks    int
	timedOut bool
}

func newSearch(m Matrix, path []int, deadline time.Time) *search {
	return &search{
		m:        m,
		n:        m.Len(),
		path:     append([]int(nil), path...),
		penalty:  make([]int, m.Len()*m.Len()),
		deadline: deadline,
	}
}

// cost is the augmented arc cost; with lambda 0 it is the true cost.
func (s *search) cost(a, b int) int {
	return s.m.Cost(a, b) + s.lambda*s.penalty[a*s.n+b]
}

func (s *search) expired() bool {
	if s.timedOut {
		return true
	}
	if !time.Now().Before(s.deadline) {
		s.timedOut = true
	}
	return s.timedOut
}

func (s *search) tick() bool {
	s.ticks++
	if s.ticks%deadlineCheckInterval == 0 {
		return s.expired()
	}
	return s.timedOut
}

// descend applies first-improvement moves until none improves the augmented
// cost or the deadline passes.
func (s *search) descend() int {
	moves := 0
	for !s.expired() {
		if !s.twoOpt() && !s.relocate() && !s.swap() {
			break
		}
		moves++
	}
	return moves
}

func (s *search) twoOpt() bool {
	p := s.path
	last := len(p) - 1
	for i := 1; i < last-1; i++ {
		for j := i + 1; j < last; j++ {
			if s.tick() {
				return false
			}
			a, b, c, d := p[i-1], p[i], p[j], p[j+1]
			if s.cost(a, c)+s.cost(b, d) < s.cost(a, b)+s.cost(c, d) {
				for l, r := i, j; l < r; l, r = l+1, r-1 {
					p[l], p[r] = p[r], p[l]
				}
				return true
			}
		}
	}
	return false
}

// relocate moves one interior node between two other consecutive nodes.
func (s *search) relocate() bool {
	p := s.path
	last := len(p) - 1
	for i := 1; i < last; i++ {
		prev, node, next := p[i-1], p[i], p[i+1]
		gain := s.cost(prev, node) + s.cost(node, next) - s.cost(prev, next)
		for j := 0; j < last; j++ {
			if j == i || j == i-1 {
				continue
			}
			if s.tick() {
				return false
			}
			a, b := p[j], p[j+1]
			if s.cost(a, node)+s.cost(node, b)-s.cost(a, b) < gain {
				if j < i {
					copy(p[j+2:i+1], p[j+1:i])
					p[j+1] = node
				} else {
					copy(p[i:j], p[i+1:j+1])
					p[j] = node
				}
				return true
			}
		}
	}
	return false
}

// swap exchanges two interior nodes.
func (s *search) swap() bool {
	p := s.path
	last := len(p) - 1
	for i := 1; i < last-1; i++ {
		for j := i + 1; j < last; j++ {
			if s.tick() {
				return false
			}
			var before, after int
			if j == i+1 {
				before = s.cost(p[i-1], p[i]) + s.cost(p[i], p[j]) + s.cost(p[j], p[j+1])
				after = s.cost(p[i-1], p[j]) + s.cost(p[j], p[i]) + s.cost(p[i], p[j+1])
			} else {
				before = s.cost(p[i-1], p[i]) + s.cost(p[i], p[i+1]) + s.cost(p[j-1], p[j]) + s.cost(p[j], p[j+1])
				after = s.cost(p[i-1], p[j]) + s.cost(p[j], p[i+1]) + s.cost(p[j-1], p[i]) + s.cost(p[i], p[j+1])
			}
			if after < before {
				p[i], p[j] = p[j], p[i]
				return true
			}
		}
	}
	return false
}

// penalize bumps the penalty of every path edge with maximal utility
// cost/(1+penalty).
func (s *search) penalize() {
	p := s.path
	maxUtil := -1.0
	for k := 1; k < len(p); k++ {
		a, b := p[k-1], p[k]
		u := float64(s.m.Cost(a, b)) / float64(1+s.penalty[a*s.n+b])
		if u > maxUtil {
			maxUtil = u
		}
	}
	for k := 1; k < len(p); k++ {
		a, b := p[k-1], p[k]
		u := float64(s.m.Cost(a, b)) / float64(1+s.penalty[a*s.n+b])
		if u == maxUtil {
			s.penalty[a*s.n+b]++
			s.penalty[b*s.n+a]++
		}
	}
}
