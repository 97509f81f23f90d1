package deadline

import (
	"container/heap"
	"sort"
)

// SmithResult is the outcome of applying Smith's rule from a given
// starting total time: the resulting job order (meaningful only when
// Success is true) and whether a feasible back-to-front assignment was
// found.
type SmithResult struct {
	Jobs    []*Job
	Success bool
}

// ApplySmith runs the back-to-front, feasibility-preserving scheduler
// of spec.md §4.4: repeatedly pull every job whose deadline is no
// longer binding into a candidate pool, then commit the one with the
// lowest weight-to-processing-time ratio to the next (from-the-back)
// slot. If no candidate is ever available, the instance is infeasible
// from this state. When reverse is true the result is returned
// earliest-first. Grounded on `machdeadline/smith.py: SmithHelper.apply`.
func ApplySmith(jobs []*Job, totalTime int, reverse bool) SmithResult {
	pool := make([]*Job, len(jobs))
	copy(pool, jobs)
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].D < pool[j].D })

	candidates := &candidateHeap{}
	heap.Init(candidates)

	sol := make([]*Job, 0, len(jobs))
	tot := totalTime
	for range jobs {
		pool = drainEligible(pool, candidates, tot)
		if candidates.Len() == 0 {
			return SmithResult{Jobs: jobs, Success: false}
		}
		next := heap.Pop(candidates).(*candidate).job
		sol = append(sol, next)
		tot -= next.P
	}

	if reverse {
		for i, j := 0, len(sol)-1; i < j; i, j = i+1, j-1 {
			sol[i], sol[j] = sol[j], sol[i]
		}
	}
	return SmithResult{Jobs: sol, Success: true}
}

// drainEligible moves every job at the back of pool (largest deadline
// first, since pool is sorted ascending by deadline) whose deadline is
// still >= totTime into candidates, stopping at the first ineligible
// job.
func drainEligible(pool []*Job, candidates *candidateHeap, totTime int) []*Job {
	for len(pool) > 0 {
		last := pool[len(pool)-1]
		if last.D < totTime {
			break
		}
		pool = pool[:len(pool)-1]
		heap.Push(candidates, &candidate{ratio: float64(last.W) / float64(last.P), job: last})
	}
	return pool
}

// candidate pairs a job with its WSPT ratio for the candidate heap.
type candidate struct {
	ratio float64
	job   *Job
}

// candidateHeap is a min-heap on ratio: ApplySmith always commits the
// candidate with the smallest weight/processing-time ratio next, which
// — because the sequence is built from the back — reproduces
// decreasing-WSPT order once reversed.
type candidateHeap []*candidate

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[i].ratio < h[j].ratio }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(*candidate)) }
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
