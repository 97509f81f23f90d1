package pfssp

import (
	"github.com/bruscalia/bnbgo/pkg/bnb"
)

const defaultRestartFreq = 10000

// NewLazySearch builds a Search whose PostEvalCallback tightens a
// node's bound into LB5 once it survives its first evaluation
// (spec.md §4.2.4: "PFSSP CallbackBnB uses post_eval_callback to
// tighten LB1 into LB5"). A plain bnb.Search also works for PFSSP
// without this callback — it only matters for LazyProblem, whose
// CalcBound deliberately stops at LB1. Grounded on `pypure/bnb.py:
// LazyBnB`; the Python base class dispatches via `isinstance(node,
// FSNode)`, translated here into a type switch over the two concrete
// pfssp Problem variants per spec.md §9's "prefer a closed enum of
// concrete variants over open-world dispatch."
func NewLazySearch(cfg bnb.Config) *bnb.Search {
	s := bnb.NewSearch(cfg)
	s.PostEvalCallback = func(n *bnb.Node) {
		if n.Lb >= s.Ub() {
			return
		}
		switch p := n.Problem.(type) {
		case *LazyProblem:
			p.BoundUpgrade()
			n.Lb = p.CurrentSolution().Lb
		case *Problem:
			p.BoundUpgrade()
			n.Lb = p.CurrentSolution().Lb
		}
	}
	return s
}

// NewCallbackSearch extends NewLazySearch with a SolutionCallback that
// runs insertion local search on every new incumbent, and a
// best-bound-guided restart every restartFreq dequeues (spec.md
// §4.2.7). restartFreq <= 0 uses the teacher-default 10000. Grounded
// on `pypure/bnb.py: CallbackBnB`.
func NewCallbackSearch(cfg bnb.Config, restartFreq int) *bnb.Search {
	if restartFreq <= 0 {
		restartFreq = defaultRestartFreq
	}
	s := NewLazySearch(cfg)
	s.SolutionCallback = func(n *bnb.Node) { applyLocalSearch(n) }
	s.DequeueOverride = func(search *bnb.Search) (*bnb.Node, bool) {
		if search.Explored() > 0 && search.Explored()%restartFreq == 0 {
			return search.Queue().PopMinLB(), true
		}
		return nil, false
	}
	return s
}

// NewCallbackSearchAge is NewCallbackSearch with an "age" restart
// trigger: every restartFreq dequeues *since the last incumbent
// improvement*, instead of since the search began. Grounded on
// `pypure/bnb.py: CallbackBnBAge`.
func NewCallbackSearchAge(cfg bnb.Config, restartFreq int) *bnb.Search {
	if restartFreq <= 0 {
		restartFreq = defaultRestartFreq
	}
	s := NewLazySearch(cfg)
	age := 0
	s.SolutionCallback = func(n *bnb.Node) {
		applyLocalSearch(n)
		age = 0
	}
	s.DequeueOverride = func(search *bnb.Search) (*bnb.Node, bool) {
		age++
		if age%restartFreq == 0 {
			return search.Queue().PopMinLB(), true
		}
		return nil, false
	}
	return s
}

func applyLocalSearch(n *bnb.Node) {
	switch p := n.Problem.(type) {
	case *Problem:
		if improved := p.LocalSearch(); improved != nil {
			commitLocalSearch(n, improved)
		}
	case *LazyProblem:
		if improved := p.LocalSearch(); improved != nil {
			commitLocalSearch(n, improved)
		}
	}
}

func commitLocalSearch(n *bnb.Node, improved bnb.Problem) {
	bnb.ComputeBound(improved)
	if !bnb.CheckFeasible(improved) {
		return
	}
	if improved.CurrentSolution().Lb < n.Solution().Lb {
		n.Problem = improved
		n.Lb = improved.CurrentSolution().Lb
	}
}
