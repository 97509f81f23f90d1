package pfssp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario S2 (spec.md §8): 4×4 instance with known root and
// post-push bound values.
var s2Matrix = [][]int{
	{5, 9, 7, 4},
	{9, 3, 3, 8},
	{8, 10, 5, 6},
	{1, 8, 6, 2},
}

func TestPermutation_S2_RootBounds(t *testing.T) {
	perm := StartPermutation(s2Matrix)
	assert.Equal(t, 39.0, perm.CalcLB1M())
	assert.Equal(t, 42.0, perm.CalcLB2M())
}

func TestPermutation_S2_PushBounds(t *testing.T) {
	cases := []struct {
		job      int
		lb1, lb5 float64
	}{
		{0, 43, 43},
		{1, 47, 47},
		{2, 46, 46},
		{3, 39, 42},
	}
	for _, tc := range cases {
		perm := StartPermutation(s2Matrix)
		perm.PushJob(tc.job)
		assert.Equal(t, tc.lb1, perm.CalcLB1M(), "job %d LB1", tc.job)
		assert.Equal(t, tc.lb5, perm.CalcLB2M(), "job %d LB5", tc.job)
	}
}

// property 7: LB1 <= LB5 <= makespan(optimal); S2's optimal makespan
// is 43.
func TestPermutation_S2_BoundOrdering(t *testing.T) {
	perm := StartPermutation(s2Matrix)
	lb1 := perm.CalcLB1M()
	lb5 := perm.CalcLB2M()
	assert.LessOrEqual(t, lb1, lb5)
	assert.LessOrEqual(t, lb5, 43.0)
}

// scenario S3 (spec.md §8): NEH on a 4×5 instance must yield makespan 54.
var s3Matrix = [][]int{
	{5, 9, 8, 10, 1},
	{9, 3, 10, 1, 8},
	{9, 4, 5, 8, 6},
	{4, 8, 8, 7, 2},
}

func TestNEHConstructive_S3(t *testing.T) {
	m := len(s3Matrix[0])
	jobs := make([]*Job, len(s3Matrix))
	for i, row := range s3Matrix {
		jobs[i] = NewJob(i, row)
	}
	sol := NEHConstructive(jobs)
	require.Equal(t, 0, sol.NFree())
	assert.True(t, sol.IsFeasible())
	assert.Equal(t, 54.0, sol.CalcLBFull())
	_ = m
}

// property 6: for a complete permutation, makespan equals
// max_k(sigma1.C[k] + sigma2.C[k]) with sigma1 = full sequence,
// sigma2 empty.
func TestPermutation_MakespanMatchesBruteForce(t *testing.T) {
	jobs := make([]*Job, len(s2Matrix))
	for i, row := range s2Matrix {
		jobs[i] = NewJob(i, row)
	}
	perm := NewPermutation(len(s2Matrix[0]), jobs)
	perm.CommitAllToSigma1()
	require.Equal(t, 0, perm.NFree())

	want := bruteForceMakespan(s2Matrix, []int{0, 1, 2, 3})
	assert.Equal(t, float64(want), perm.CalcLBFull())
}

// property 8: pushing all jobs via JobToBottom in the same order as
// NEH returns yields the same sigma1.C vector as evaluating that
// sequence directly.
func TestPermutation_RoundTripMatchesDirectEvaluation(t *testing.T) {
	m := len(s2Matrix[0])
	jobs := make([]*Job, len(s2Matrix))
	for i, row := range s2Matrix {
		jobs[i] = NewJob(i, row)
	}
	nehSol := NEHConstructive(jobs)
	order := make([]int, len(nehSol.Sigma1.Jobs))
	for i, job := range nehSol.Sigma1.Jobs {
		order[i] = job.ID
	}

	direct := NewSigma1(m)
	for _, id := range order {
		direct.JobToBottom(NewJob(id, s2Matrix[id]))
	}

	assert.Equal(t, nehSol.Sigma1.C, direct.C)
}

// property 9: local search is weakly improving.
func TestLocalSearch_WeaklyImproving(t *testing.T) {
	jobs := make([]*Job, len(s3Matrix))
	for i, row := range s3Matrix {
		jobs[i] = NewJob(i, row)
	}
	sol := NEHConstructive(jobs)
	base := sol.CalcLB1M()

	improved := LocalSearch(sol, base)
	if improved == nil {
		return
	}
	assert.Less(t, improved.CalcLB1M(), base)
}

func bruteForceMakespan(p [][]int, order []int) int {
	m := len(p[0])
	c := make([]int, m)
	for _, j := range order {
		c[0] += p[j][0]
		for k := 1; k < m; k++ {
			if c[k] < c[k-1] {
				c[k] = c[k-1]
			}
			c[k] += p[j][k]
		}
	}
	best := c[0]
	for _, v := range c {
		if v > best {
			best = v
		}
	}
	return best
}
