package deadline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bruscalia/bnbgo/pkg/bnb"
)

// scenario S4 (spec.md §8): a 6-job deadline instance with known
// optimal weighted completion time.
func s4Jobs() []*Job {
	p := []int{4, 3, 8, 2, 7, 6}
	w := []int{1, 1, 1, 1, 1, 1}
	d := []int{10, 20, 20, 30, 30, 30}
	jobs := make([]*Job, len(p))
	for i := range p {
		jobs[i] = NewJob(i, p[i], w[i], d[i])
	}
	return jobs
}

// property 10: Smith's rule, when it succeeds, produces a sequence
// satisfying every job's completion <= its deadline.
func TestApplySmith_FeasibleWhenSuccessful(t *testing.T) {
	jobs := s4Jobs()
	total := totalProcessingTime(jobs)
	res := ApplySmith(jobs, total, true)
	require.True(t, res.Success)

	c := 0
	for _, job := range res.Jobs {
		c += job.P
		assert.LessOrEqual(t, c, job.D)
	}
}

// property 11: Lagrangian multipliers are non-negative and satisfy the
// block-local WSPT-dominance inequality.
func TestLagrangianMultipliers_NonNegativeAndDominant(t *testing.T) {
	jobs := s4Jobs()
	total := totalProcessingTime(jobs)
	h := NewLagrangianHelper(jobs, total)
	require.True(t, h.Success)

	idx := 0
	for _, block := range h.Blocks {
		for i := 0; i < len(block); i++ {
			assert.GreaterOrEqual(t, h.Multipliers[idx+i], 0.0)
		}
		last := block[len(block)-1]
		lastLambda := h.Multipliers[idx+len(block)-1]
		for i := 0; i < len(block)-1; i++ {
			job := block[i]
			lhs := (float64(job.W) + h.Multipliers[idx+i]) * float64(last.P)
			rhs := (float64(last.W) + lastLambda) * float64(job.P)
			assert.GreaterOrEqual(t, lhs, rhs-1e-9)
		}
		idx += len(block)
	}
}

// property 12: the shared dominance cache is non-increasing for any
// fixed mask through a search.
func TestDominance_Monotonic(t *testing.T) {
	jobs := s4Jobs()
	root := NewProblem(jobs)
	lbRefs := root.lbRefs

	children := root.Branch()
	require.NotEmpty(t, children)

	masks := map[uint64][]int{}
	for _, c := range children {
		p := c.(*Problem)
		bnb.ComputeBound(p)
		masks[p.mask] = append(masks[p.mask], lbRefs[p.mask])
	}

	grandchildren := children[0].(*Problem).Branch()
	for _, gc := range grandchildren {
		p := gc.(*Problem)
		before, ok := lbRefs[p.mask]
		bnb.ComputeBound(p)
		after, stillOk := lbRefs[p.mask]
		if ok && stillOk {
			assert.LessOrEqual(t, after, before)
		}
	}
}

func TestSearch_S4_OptimalCost(t *testing.T) {
	cfg := bnb.DefaultConfig()
	cfg.EvalNode = bnb.EvalIn
	cfg.Discipline = bnb.DFS

	search := NewSearch(cfg)
	problem := NewProblem(s4Jobs())

	results, err := search.Solve(context.Background(), problem, -1, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 86.0, results.Cost())
	assert.Equal(t, bnb.Optimal, results.Status())
}

func TestSearch_S4_DisciplinesAgreeOnCost(t *testing.T) {
	for _, disc := range []bnb.Discipline{bnb.DFS, bnb.BFS, bnb.BestFirst} {
		cfg := bnb.DefaultConfig()
		cfg.Discipline = disc
		search := NewSearch(cfg)
		problem := NewProblem(s4Jobs())

		results, err := search.Solve(context.Background(), problem, -1, time.Second)
		require.NoError(t, err)
		assert.Equal(t, 86.0, results.Cost(), "discipline %v", disc)
	}
}
