// Package deadline implements the single-machine weighted-completion-time
// scheduling problem with job deadlines: a Smith's-rule-and-Lagrangian
// branch-and-bound Problem built on the generic driver in package bnb.
package deadline

import "fmt"

// Job is one unit of work: a processing time P, a weight W in the
// objective, and a deadline D it must complete by. Position and
// Completion are filled in once a sequence is fixed (spec.md §8
// supplemented detail), mirroring `machdeadline/job.py`'s `k`/`c`
// fields.
type Job struct {
	ID         int
	P          int
	W          int
	D          int
	Position   *int
	Completion *int
}

// NewJob builds a Job with no position/completion assigned yet.
func NewJob(id, p, w, d int) *Job {
	return &Job{ID: id, P: p, W: w, D: d}
}

// SetPosition records the job's 0-based index in a fixed sequence.
func (j *Job) SetPosition(k int) { j.Position = &k }

// SetCompletion records the job's completion time in a fixed sequence.
func (j *Job) SetCompletion(c int) { j.Completion = &c }

// Feasible reports whether the job's recorded completion time meets
// its deadline. A job with no completion time yet is not feasible: it
// has not been scheduled.
func (j *Job) Feasible() bool {
	if j.Completion == nil {
		return false
	}
	return *j.Completion <= j.D
}

// Copy returns an independent Job: ID/P/W/D are immutable and copied
// by value, Position/Completion get fresh backing storage.
func (j *Job) Copy() *Job {
	out := &Job{ID: j.ID, P: j.P, W: j.W, D: j.D}
	if j.Position != nil {
		pos := *j.Position
		out.Position = &pos
	}
	if j.Completion != nil {
		c := *j.Completion
		out.Completion = &c
	}
	return out
}

func (j *Job) String() string {
	return fmt.Sprintf("Job %d (p=%d w=%d d=%d)", j.ID, j.P, j.W, j.D)
}

// SetSequencePositions fixes Position and Completion for every job in
// seq, front to back, matching `machdeadline/solution.py:
// MachSolution._set_job_attrs`.
func SetSequencePositions(seq []*Job) {
	c := 0
	for k, job := range seq {
		job.SetPosition(k)
		c += job.P
		job.SetCompletion(c)
	}
}

// totalProcessingTime sums P across jobs.
func totalProcessingTime(jobs []*Job) int {
	total := 0
	for _, j := range jobs {
		total += j.P
	}
	return total
}

func removeJob(jobs []*Job, target *Job) []*Job {
	out := make([]*Job, 0, len(jobs)-1)
	for _, j := range jobs {
		if j != target {
			out = append(out, j)
		}
	}
	return out
}

func copyJobs(jobs []*Job) []*Job {
	out := make([]*Job, len(jobs))
	for i, j := range jobs {
		out[i] = j.Copy()
	}
	return out
}
