package deadline

import (
	"math"

	"github.com/bruscalia/bnbgo/pkg/bnb"
)

// largeTerm stands in for Python's `sys.maxsize` default in the shared
// dominance cache: no real fixedTerm ever reaches it, so "absent from
// the map" and "present with this value" are interchangeable.
const largeTerm = math.MaxInt64

type unscheduledCosts struct {
	Real       int
	Lagrangian int
}

// Problem is the Smith's-rule-and-Lagrangian branch-and-bound state
// for deadline scheduling: a committed tail `fixed` (last-scheduled
// job first), the still-unscheduled jobs in Smith order, and a shared
// dominance cache keyed by the bitmask of scheduled job ids. Grounded
// on `machdeadline/lagrangian.py: LagrangianDeadline`.
type Problem struct {
	sol *bnb.Solution

	fixed                []*Job
	unscheduled          []*Job
	precomputed          bool
	fixedTerm            int
	unscheduledTerm      unscheduledCosts
	mask                 uint64
	lagrangian           *LagrangianHelper
	isDominated          bool
	lbRefs               map[uint64]int
	unscheduledTotalTime int
}

// NewProblem builds a root Problem from a job set, running Smith's
// rule once over the full set.
func NewProblem(jobs []*Job) *Problem {
	total := totalProcessingTime(jobs)
	p := &Problem{
		sol:                  bnb.NewSolution(),
		unscheduledTotalTime: total,
		lagrangian:           NewLagrangianHelper(jobs, total),
		lbRefs:               make(map[uint64]int),
	}
	p.unscheduled = p.lagrangian.Smith
	p.computeCompletionTimes()
	return p
}

// CurrentSolution returns the owned bnb.Solution.
func (p *Problem) CurrentSolution() *bnb.Solution { return p.sol }

// Sequence returns the full job order: still-unscheduled jobs (Smith
// order) followed by the fixed tail read front-to-back (fixed is
// stored last-scheduled-first).
func (p *Problem) Sequence() []*Job {
	seq := make([]*Job, 0, len(p.unscheduled)+len(p.fixed))
	seq = append(seq, p.unscheduled...)
	for i := len(p.fixed) - 1; i >= 0; i-- {
		seq = append(seq, p.fixed[i])
	}
	return seq
}

func (p *Problem) computeCompletionTimes() {
	realTerm := 0
	lagTerm := 0.0
	lags := p.lagrangian.Multipliers
	c := p.lagrangian.CompletionTimes
	for i, job := range p.unscheduled {
		realTerm += job.W * c[i]
		lagTerm += (float64(job.W)+lags[i])*float64(c[i]) - lags[i]*float64(job.D)
	}
	p.unscheduledTerm = unscheduledCosts{Real: realTerm, Lagrangian: int(math.Ceil(lagTerm))}
	p.precomputed = true
}

// CalcBound returns the Lagrangian-augmented cost (spec.md §4.4), or
// +Inf when Smith's rule failed over the unscheduled set. A node whose
// fixedTerm does not improve on the shared dominance cache for its
// mask is flagged dominated and its (unimproved) bound returned
// unchanged; the driver fathoms it once evaluated.
func (p *Problem) CalcBound() float64 {
	if !p.precomputed {
		p.computeCompletionTimes()
	}
	if !p.lagrangian.Success {
		return math.Inf(1)
	}
	cost := p.unscheduledTerm.Lagrangian + p.fixedTerm

	ref, ok := p.lbRefs[p.mask]
	if !ok {
		ref = largeTerm
	}
	if p.fixedTerm >= ref {
		p.isDominated = true
		return float64(cost)
	}
	p.lbRefs[p.mask] = p.fixedTerm
	return float64(cost)
}

// CalcRealCost returns the actual weighted completion time of the
// unscheduled part under its current Smith ordering plus the fixed
// term, ignoring the Lagrangian augmentation. Used by the search's
// post-eval callback to opportunistically commit a feasible solution
// (spec.md §8 supplemented detail).
func (p *Problem) CalcRealCost() int {
	if !p.precomputed {
		p.computeCompletionTimes()
	}
	return p.unscheduledTerm.Real + p.fixedTerm
}

// IsFeasible reports whether every job has been scheduled and every
// one meets its deadline, fixing Position/Completion along the way.
func (p *Problem) IsFeasible() bool {
	if len(p.unscheduled) != 0 {
		return false
	}
	seq := p.Sequence()
	SetSequencePositions(seq)
	for _, job := range seq {
		if !job.Feasible() {
			return false
		}
	}
	return true
}

// Branch spawns one child per unscheduled job whose deadline can still
// be met if it is scheduled next (spec.md §4.4's pruning check), after
// an early-exit for dominated or Smith-infeasible nodes.
func (p *Problem) Branch() []bnb.Problem {
	if p.isDominated || !p.lagrangian.Success {
		return nil
	}
	var children []bnb.Problem
	for _, job := range p.unscheduled {
		if job.D < p.unscheduledTotalTime {
			continue
		}
		child := p.copy()
		child.fixJob(job)
		children = append(children, child)
	}
	return children
}

func (p *Problem) fixJob(job *Job) {
	p.fixed = append(p.fixed, job)
	p.unscheduled = removeJob(p.unscheduled, job)
	p.mask |= 1 << uint(job.ID)
	p.fixedTerm += job.W * p.unscheduledTotalTime
	p.unscheduledTotalTime -= job.P
	p.lagrangian = NewLagrangianHelper(p.unscheduled, p.unscheduledTotalTime)
	p.unscheduled = p.lagrangian.Smith
	p.precomputed = false
}

// Warmstart commits every remaining job in the current Smith order,
// producing a feasible solution (spec.md §4.4's "Warmstart" rule), or
// nil if Smith's rule has not succeeded from this state.
func (p *Problem) Warmstart() bnb.Problem {
	if !p.lagrangian.Success {
		return nil
	}
	sol := p.copy()
	sol.fixAllSelf()
	return sol
}

func (p *Problem) fixAllSelf() {
	for i := len(p.unscheduled) - 1; i >= 0; i-- {
		p.simpleFixJob(p.unscheduled[i])
	}
	p.unscheduled = nil
	p.unscheduledTerm = unscheduledCosts{}
	p.precomputed = true
}

func (p *Problem) simpleFixJob(job *Job) {
	p.fixed = append(p.fixed, job)
	p.mask |= 1 << uint(job.ID)
	p.fixedTerm += job.W * p.unscheduledTotalTime
	p.unscheduledTotalTime -= job.P
}

// Copy returns an independent Problem. The shared dominance cache
// (lbRefs) is carried by reference on purpose: it must stay shared
// across every descendant of one search (spec.md §5, §9).
func (p *Problem) Copy(deep bool) bnb.Problem { return p.copy() }

// ChildCopy is equivalent to Copy; deadline scheduling has no
// enqueue-time special case.
func (p *Problem) ChildCopy(deep bool) bnb.Problem { return p.copy() }

func (p *Problem) copy() *Problem {
	return &Problem{
		sol:                  p.sol.Copy(),
		fixed:                append([]*Job(nil), p.fixed...),
		unscheduled:          append([]*Job(nil), p.unscheduled...),
		precomputed:          p.precomputed,
		fixedTerm:            p.fixedTerm,
		unscheduledTerm:      p.unscheduledTerm,
		mask:                 p.mask,
		lagrangian:           p.lagrangian,
		isDominated:          false,
		lbRefs:               p.lbRefs,
		unscheduledTotalTime: p.unscheduledTotalTime,
	}
}
