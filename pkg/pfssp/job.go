// Package pfssp implements the permutation flow-shop scheduling problem:
// a partial-sequence branch-and-bound Problem built on the generic
// driver in package bnb, with LB1/LB5 lower bounds, NEH and Palmer
// constructive heuristics, and insertion-based local search.
package pfssp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Job holds one job's processing-time row plus the per-node state a
// partial sequence needs to evaluate it: its release vector R (earliest
// start on each machine after the committed head), its delivery vector
// Q (time remaining after the committed tail), a precomputed machine
// latency table Lat, and Palmer's slope index. Grounded on
// `bnbprob/pfssp/pypure/job.py`'s `Job` dataclass.
type Job struct {
	ID    int
	P     []int
	R     []int
	Q     []int
	Lat   *mat.Dense
	Slope float64
}

// NewJob builds a Job from a processing-time row, precomputing Lat and
// Slope once (spec.md §4.3): Lat[a][b] = Σ p[b+1..a) for a > b+1, and
// 0 otherwise, matching `job.py: start_job` / `fill_start`.
func NewJob(id int, p []int) *Job {
	m := len(p)
	r := make([]int, m)
	q := make([]int, m)
	lat := mat.NewDense(m, m, nil)
	for m1 := 0; m1 < m; m1++ {
		for m2 := 0; m2 < m; m2++ {
			if m2+1 < m1 {
				sum := 0
				for i := m2 + 1; i < m1; i++ {
					sum += p[i]
				}
				lat.Set(m1, m2, float64(sum))
			}
		}
	}

	mm := m + 1
	slope := 0.0
	for k := 1; k < mm; k++ {
		slope += (float64(k) - float64(mm+1)/2) * float64(p[k-1])
	}

	return &Job{ID: id, P: p, R: r, Q: q, Lat: lat, Slope: slope}
}

// T returns the job's total processing time across every machine.
func (j *Job) T() int {
	total := 0
	for _, p := range j.P {
		total += p
	}
	return total
}

// LatAt returns the precomputed machine latency between positions a
// and b (spec.md §4.3's `lat[a][b]`).
func (j *Job) LatAt(a, b int) int {
	return int(j.Lat.At(a, b))
}

// Copy returns a shallow copy: R and Q get independent backing arrays
// (spec.md §9 "mutable free-job state on copy"), while P, Lat and
// Slope are shared by reference since they never change after
// construction.
func (j *Job) Copy() *Job {
	r := make([]int, len(j.R))
	copy(r, j.R)
	q := make([]int, len(j.Q))
	copy(q, j.Q)
	return &Job{ID: j.ID, P: j.P, R: r, Q: q, Lat: j.Lat, Slope: j.Slope}
}

func (j *Job) String() string {
	return fmt.Sprintf("Job %d", j.ID)
}
