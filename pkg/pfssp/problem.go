package pfssp

import (
	"github.com/bruscalia/bnbgo/pkg/bnb"
)

// Constructive names the warmstart heuristic a Problem uses.
type Constructive string

const (
	// NEH is the Nawaz-Enscore-Ham insertion heuristic (default).
	NEH Constructive = "neh"
	// Quick is Palmer's (1965) slope-index heuristic.
	Quick Constructive = "quick"
)

type core struct {
	sol          *bnb.Solution
	m            int
	perm         *Permutation
	constructive Constructive
}

func newCore(m int, perm *Permutation, constructive Constructive) core {
	return core{sol: bnb.NewSolution(), m: m, perm: perm, constructive: constructive}
}

// CurrentSolution returns the owned bnb.Solution.
func (c *core) CurrentSolution() *bnb.Solution { return c.sol }

// IsFeasible delegates to the wrapped Permutation.
func (c *core) IsFeasible() bool { return c.perm.IsFeasible() }

// BoundUpgrade recomputes LB5 and raises the solution's bound if it
// improves on the current one. A no-op for the eager Problem, whose
// CalcBound already returns max(LB1, LB5); the real tightening
// happens for LazyProblem. Grounded on `PermFlowShop.bound_upgrade`,
// which both Python subclasses inherit unmodified.
func (c *core) BoundUpgrade() {
	lb5 := c.perm.CalcLB2M()
	if lb5 > c.sol.Lb {
		c.sol.SetLb(lb5)
	}
}

func (c *core) warmstartPermutation() *Permutation {
	jobs := make([]*Job, len(c.perm.FreeJobs))
	for i, job := range c.perm.FreeJobs {
		jobs[i] = job.Copy()
	}
	if len(jobs) == 0 {
		return nil
	}
	if c.constructive == Quick {
		return QuickConstructive(jobs)
	}
	return NEHConstructive(jobs)
}

func (c *core) localSearchPermutation() *Permutation {
	return LocalSearch(c.perm, c.sol.Lb)
}

func (c *core) branchPermutations() []*Permutation {
	children := make([]*Permutation, c.perm.NFree())
	for j := 0; j < c.perm.NFree(); j++ {
		child := c.perm.Copy(false)
		child.PushJob(j)
		children[j] = child
	}
	return children
}

// Problem is the eager PFSSP Problem variant: CalcBound always
// returns max(LB1, LB5). Grounded on `PermFlowShop`.
type Problem struct{ core }

// NewProblem builds an eager Problem from an n×m processing matrix.
func NewProblem(p [][]int, constructive Constructive) *Problem {
	perm := StartPermutation(p)
	return &Problem{core: newCore(perm.M, perm, constructive)}
}

// CalcBound returns max(LB1, LB5).
func (p *Problem) CalcBound() float64 { return p.perm.CalcLB2M() }

// Branch returns one child per free job (spec.md §4.3).
func (p *Problem) Branch() []bnb.Problem {
	children := p.branchPermutations()
	out := make([]bnb.Problem, len(children))
	for i, perm := range children {
		out[i] = &Problem{core: newCore(p.m, perm, p.constructive)}
	}
	return out
}

// Warmstart runs the configured constructive heuristic over the
// problem's free jobs.
func (p *Problem) Warmstart() bnb.Problem {
	perm := p.warmstartPermutation()
	if perm == nil {
		return nil
	}
	return &Problem{core: newCore(p.m, perm, p.constructive)}
}

// LocalSearch runs best-improvement insertion search from the current
// solution, returning nil if no improving move exists.
func (p *Problem) LocalSearch() *Problem {
	perm := p.localSearchPermutation()
	if perm == nil {
		return nil
	}
	out := &Problem{core: newCore(p.m, perm, p.constructive)}
	return out
}

// Copy returns an independent Problem sharing immutable job state.
func (p *Problem) Copy(deep bool) bnb.Problem {
	c := core{sol: p.sol.Copy(), m: p.m, perm: p.perm.Copy(deep), constructive: p.constructive}
	return &Problem{core: c}
}

// ChildCopy is equivalent to Copy for this Problem; PFSSP has no
// enqueue-time special case.
func (p *Problem) ChildCopy(deep bool) bnb.Problem { return p.Copy(deep) }

// Permutation exposes the wrapped partial sequence, for callers (CLI,
// tests) that need the final job order.
func (p *Problem) Permutation() *Permutation { return p.perm }

// LazyProblem is the lazy PFSSP Problem variant: CalcBound returns
// LB1 only; LB5 is deferred to a PostEvalCallback-driven BoundUpgrade
// (spec.md §9 "open question" on bound eagerness — both are carried).
// Grounded on `PermFlowShopLazy`.
type LazyProblem struct{ core }

// NewLazyProblem builds a lazy Problem from an n×m processing matrix.
func NewLazyProblem(p [][]int, constructive Constructive) *LazyProblem {
	perm := StartPermutation(p)
	return &LazyProblem{core: newCore(perm.M, perm, constructive)}
}

// CalcBound returns LB1 only.
func (p *LazyProblem) CalcBound() float64 { return p.perm.CalcLB1M() }

// Branch returns one child per free job.
func (p *LazyProblem) Branch() []bnb.Problem {
	children := p.branchPermutations()
	out := make([]bnb.Problem, len(children))
	for i, perm := range children {
		out[i] = &LazyProblem{core: newCore(p.m, perm, p.constructive)}
	}
	return out
}

// Warmstart runs the configured constructive heuristic.
func (p *LazyProblem) Warmstart() bnb.Problem {
	perm := p.warmstartPermutation()
	if perm == nil {
		return nil
	}
	return &LazyProblem{core: newCore(p.m, perm, p.constructive)}
}

// LocalSearch runs best-improvement insertion search.
func (p *LazyProblem) LocalSearch() *LazyProblem {
	perm := p.localSearchPermutation()
	if perm == nil {
		return nil
	}
	return &LazyProblem{core: newCore(p.m, perm, p.constructive)}
}

// Copy returns an independent Problem sharing immutable job state.
func (p *LazyProblem) Copy(deep bool) bnb.Problem {
	c := core{sol: p.sol.Copy(), m: p.m, perm: p.perm.Copy(deep), constructive: p.constructive}
	return &LazyProblem{core: c}
}

// ChildCopy is equivalent to Copy for this Problem.
func (p *LazyProblem) ChildCopy(deep bool) bnb.Problem { return p.Copy(deep) }

// Permutation exposes the wrapped partial sequence.
func (p *LazyProblem) Permutation() *Permutation { return p.perm }
