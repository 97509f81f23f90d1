package pfssp

import "sort"

// NEHConstructive builds a feasible Permutation using the insertion
// heuristic of Nawaz, Enscore & Ham (1983): sort by total processing
// time descending, seed with the better of the two orderings of the
// first pair, then insert every remaining job at its best-bound
// position. Grounded on `bnbprob/pfssp/pypure/problem.py:
// neh_constructive`.
func NEHConstructive(jobs []*Job) *Permutation {
	m := len(jobs[0].P)
	sorted := make([]*Job, len(jobs))
	copy(sorted, jobs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].T() > sorted[j].T() })

	s1 := NewPermutation(m, []*Job{sorted[0].Copy(), sorted[1].Copy()})
	s2 := NewPermutation(m, []*Job{sorted[1].Copy(), sorted[0].Copy()})
	s1.CommitAllToSigma1()
	s2.CommitAllToSigma1()
	sol := s1
	if s2.CalcBound() < s1.CalcBound() {
		sol = s2
	}

	for _, j := range sorted[2:] {
		best := bestInsertion(sol.Sequence(), j, m)
		sol = best
	}
	return sol
}

func bestInsertion(seq []*Job, j *Job, m int) *Permutation {
	var best *Permutation
	bestCost := positiveInf

	for i := 0; i <= len(seq); i++ {
		trial := make([]*Job, len(seq))
		for k, job := range seq {
			trial[k] = job.Copy()
		}
		trial = insertJobAt(trial, i, j.Copy())

		alt := NewPermutation(m, trial)
		alt.CommitAllToSigma1()
		cost := alt.CalcBound()
		if cost < bestCost {
			bestCost = cost
			best = alt
		}
	}
	return best
}

// QuickConstructive builds a feasible Permutation using Palmer's
// (1965) slope-index sort: jobs with the largest slope index go first.
// The index weights each machine's time by its position, so time spent
// on the later machines raises it. Grounded on `bnbprob/pfssp/pypure/heuristics.py:
// quick_constructive`.
func QuickConstructive(jobs []*Job) *Permutation {
	m := len(jobs[0].P)
	sorted := make([]*Job, len(jobs))
	for i, job := range jobs {
		sorted[i] = job.Copy()
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Slope > sorted[j].Slope })

	sol := NewPermutation(m, sorted)
	sol.CommitAllToSigma1()
	return sol
}

// LocalSearch performs best-improvement insertion search over a
// complete sequence: remove the job at position i, insert it at
// position j (skipping j == i, which restores the original order, and
// j == i+1, a swap that the move (i+1, i) also produces), rebuild Sigma1, and
// keep the move with the smallest LB1 strictly below baseLb. Returns
// nil if no move improves (testable property 9). Grounded on
// `bnbprob/pfssp/pypure/problem.py: local_search`.
func LocalSearch(perm *Permutation, baseLb float64) *Permutation {
	seq := perm.Sequence()
	jobs := make([]*Job, len(seq))
	for i, job := range seq {
		jobs[i] = job.Copy()
	}
	recomputeR0(jobs)

	var best *Permutation
	bestCost := baseLb

	for i := range jobs {
		for j := range jobs {
			if j == i || j == i+1 {
				continue
			}
			trial := make([]*Job, len(jobs))
			for k, job := range jobs {
				trial[k] = job.Copy()
			}
			removed, job := removeJobAt(trial, i)
			moved := insertJobAt(removed, j, job)
			recomputeR0(moved)

			alt := NewPermutation(perm.M, moved)
			alt.CommitAllToSigma1()
			cost := alt.CalcLB1M()
			if cost < bestCost {
				bestCost = cost
				best = alt
			}
		}
	}
	return best
}

const positiveInf = 1e18

func insertJobAt(jobs []*Job, idx int, job *Job) []*Job {
	out := make([]*Job, 0, len(jobs)+1)
	out = append(out, jobs[:idx]...)
	out = append(out, job)
	out = append(out, jobs[idx:]...)
	return out
}

func removeJobAt(jobs []*Job, idx int) ([]*Job, *Job) {
	job := jobs[idx]
	out := make([]*Job, 0, len(jobs)-1)
	out = append(out, jobs[:idx]...)
	out = append(out, jobs[idx+1:]...)
	return out, job
}

// recomputeR0 fixes up the machine-0 release vector after a job-list
// reordering, matching `problem.py: _recompute_r0`.
func recomputeR0(jobs []*Job) {
	jobs[0].R[0] = 0
	for j := 1; j < len(jobs); j++ {
		jobs[j].R[0] = jobs[j-1].R[0] + jobs[j-1].P[0]
	}
}
