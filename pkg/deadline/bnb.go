package deadline

import "github.com/bruscalia/bnbgo/pkg/bnb"

// NewSearch builds a Search whose PostEvalCallback opportunistically
// commits a new incumbent straight from a node's real (non-Lagrangian)
// cost, without waiting for the tree to reach a leaf by branching.
// Grounded on `machdeadline/bnb.py: DeadlineLagrangianSearch`.
func NewSearch(cfg bnb.Config) *bnb.Search {
	s := bnb.NewSearch(cfg)
	s.PostEvalCallback = func(n *bnb.Node) {
		problem, ok := n.Problem.(*Problem)
		if !ok {
			return
		}
		cost := problem.CalcRealCost()
		if float64(cost) >= s.Ub() {
			return
		}
		warm := problem.Warmstart()
		if warm == nil {
			return
		}
		bnb.ComputeBound(warm)
		bnb.CheckFeasible(warm)
		s.LogRow("Heuristic")
		s.SetSolution(bnb.NewNode(warm, nil))
	}
	return s
}
