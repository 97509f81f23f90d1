package bnb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dummyProblem is a minimal Problem used to exercise the driver in
// isolation, matching spec.md §8 scenario S5: branch always yields two
// children with bounds parent+1 and parent+2, and a warmstart at lb=8
// flagged feasible.
type dummyProblem struct {
	sol       *Solution
	depth     int
	maxDepth  int
	warmValue *float64
}

func newDummyProblem(depth, maxDepth int) *dummyProblem {
	return &dummyProblem{sol: NewSolution(), depth: depth, maxDepth: maxDepth}
}

func (p *dummyProblem) CurrentSolution() *Solution { return p.sol }

func (p *dummyProblem) CalcBound() float64 { return p.sol.Lb }

func (p *dummyProblem) IsFeasible() bool { return p.depth >= p.maxDepth }

func (p *dummyProblem) Branch() []Problem {
	if p.depth >= p.maxDepth {
		return nil
	}
	c1 := newDummyProblem(p.depth+1, p.maxDepth)
	c1.sol.SetLb(p.sol.Lb + 1)
	c2 := newDummyProblem(p.depth+1, p.maxDepth)
	c2.sol.SetLb(p.sol.Lb + 2)
	return []Problem{c1, c2}
}

func (p *dummyProblem) Warmstart() Problem {
	if p.warmValue == nil {
		return nil
	}
	w := newDummyProblem(p.maxDepth, p.maxDepth)
	w.sol.SetLb(*p.warmValue)
	return w
}

func (p *dummyProblem) Copy(deep bool) Problem      { other := *p; return &other }
func (p *dummyProblem) ChildCopy(deep bool) Problem { return p.Copy(deep) }

func TestSearch_RootOnly_MaxIterZero(t *testing.T) {
	// S5: root lb=5, warmstart feasible at lb=8; after maxiter=0,
	// ub=8, gap=(8-5)/8.
	root := newDummyProblem(0, 5)
	root.sol.SetLb(5)
	warm := 8.0
	root.warmValue = &warm

	s := NewSearch(DefaultConfig())
	results, err := s.Solve(context.Background(), root, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 8.0, results.Cost())
	assert.InDelta(t, (8.0-5.0)/8.0, s.Gap(), 1e-9)
}

func TestSearch_FindsOptimalLeaf(t *testing.T) {
	root := newDummyProblem(0, 3)
	root.sol.SetLb(0)

	s := NewSearch(DefaultConfig())
	results, err := s.Solve(context.Background(), root, -1, 0)
	require.NoError(t, err)

	assert.Equal(t, Optimal, results.Status())
	assert.Equal(t, 3.0, results.Cost())
	assert.LessOrEqual(t, results.Lb(), results.Cost())
}

func TestSearch_Disciplines_Deterministic(t *testing.T) {
	for _, disc := range []Discipline{DFS, BFS, BestFirst, DFSFlow} {
		cfg := DefaultConfig()
		cfg.Discipline = disc
		root := newDummyProblem(0, 4)
		root.sol.SetLb(0)

		s1 := NewSearch(cfg)
		r1, err := s1.Solve(context.Background(), root, -1, 0)
		require.NoError(t, err)

		root2 := newDummyProblem(0, 4)
		root2.sol.SetLb(0)
		s2 := NewSearch(cfg)
		r2, err := s2.Solve(context.Background(), root2, -1, 0)
		require.NoError(t, err)

		assert.Equal(t, r1.Cost(), r2.Cost(), "discipline %v should be deterministic", disc)
		assert.Equal(t, s1.Explored(), s2.Explored(), "discipline %v should explore the same node count", disc)
	}
}

func TestSearch_TimeLimit(t *testing.T) {
	root := newDummyProblem(0, 1000000)
	root.sol.SetLb(0)

	s := NewSearch(DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	results, err := s.Solve(ctx, root, -1, 0)
	require.NoError(t, err)
	assert.NotNil(t, results)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.Rtol = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad2 := cfg
	bad2.Discipline = Discipline(99)
	assert.ErrorIs(t, bad2.Validate(), ErrInvalidConfig)
}

func TestQueue_FilterByLB(t *testing.T) {
	q := NewQueue(BestFirst)
	root := newDummyProblem(0, 1)
	nodes := make([]*Node, 0, 5)
	for i := 0; i < 5; i++ {
		p := newDummyProblem(0, 1)
		p.sol.SetLb(float64(i))
		n := NewNode(p, nil)
		nodes = append(nodes, n)
		q.Enqueue(n)
	}
	_ = root
	q.FilterByLB(3)
	assert.Equal(t, 3, q.Len())
	min := q.PeekMinLB()
	assert.Equal(t, 0.0, min.Lb)
}

func TestQueue_DisciplineOrdering(t *testing.T) {
	q := NewQueue(DFS)
	shallow := NewNode(newDummyProblem(0, 1), nil)
	p := newDummyProblem(0, 1)
	deep := NewNode(p, shallow)
	q.Enqueue(shallow)
	q.Enqueue(deep)
	first := q.Dequeue()
	assert.Equal(t, deep, first, "DFS should pop the deeper node first")
}
