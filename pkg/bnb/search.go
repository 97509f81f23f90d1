package bnb

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

const largeIter = math.MaxInt64

// SearchResults is the return value of Search.Solve: the best Solution
// found (feasible or not) and the Problem instance it came from.
type SearchResults struct {
	Solution *Solution
	Problem  Problem
}

func (r *SearchResults) String() string {
	if r.Solution == nil {
		return "<no solution>"
	}
	return r.Solution.String()
}

// Cost returns the cost of the best solution found.
func (r *SearchResults) Cost() float64 { return r.Solution.Cost }

// Lb returns the proven lower bound of the search.
func (r *SearchResults) Lb() float64 { return r.Solution.Lb }

// Status returns the optimization status of the returned solution.
func (r *SearchResults) Status() Status { return r.Solution.Status }

// Search drives a branch-and-bound traversal: priority-queued nodes,
// incumbent/bound tracking, optimality gap, and pluggable per-node
// callbacks. A structural port of `bnbpy.pypure.search.BranchAndBound`,
// using exported function-field hooks in place of Python subclassing
// (spec.md §9 Design Notes: prefer compile-time specialization of the
// callback-rich driver over open-world virtual dispatch).
type Search struct {
	Config
	RunID uuid.UUID

	problem Problem
	root    *Node
	queue   *Queue

	incumbent *Node
	boundNode *Node
	explored  int
	gap       float64

	logger  *searchLogger
	treeLog *TreeLog

	// PreEvalCallback / PostEvalCallback bracket ComputeBound.
	PreEvalCallback  func(*Node)
	PostEvalCallback func(*Node)
	// EnqueueCallback fires just before a node is pushed onto the queue.
	// DequeueCallback fires right after a node is dequeued (and, for
	// EvalOut/EvalBoth, evaluated).
	EnqueueCallback func(*Node)
	DequeueCallback func(*Node)
	// SolutionCallback fires after a new incumbent is committed.
	SolutionCallback func(*Node)
	// DequeueOverride, if set, replaces the discipline's normal Dequeue
	// for one call; used by restart policies (spec.md §4.2.7). It
	// returns (node, handled) — when handled is false the driver falls
	// back to the plain queue.Dequeue.
	DequeueOverride func(s *Search) (*Node, bool)
}

// NewSearch builds a Search driver with the given configuration. Panics
// are never used for bad configuration; call cfg.Validate() first (or
// rely on Solve to do so).
func NewSearch(cfg Config) *Search {
	return &Search{
		Config: cfg,
		queue:  NewQueue(cfg.Discipline),
		gap:    math.Inf(1),
		logger: newSearchLogger(),
	}
}

// EnableTreeLog attaches a TreeLog that records every node processed
// during the next Solve call, for later DOT export (spec.md §6,
// adapted from the teacher's `instrumentation.go` TreeLogger).
func (s *Search) EnableTreeLog() *TreeLog {
	s.treeLog = NewTreeLog()
	return s.treeLog
}

// Ub returns the current upper bound: the incumbent's lb, or +Inf.
func (s *Search) Ub() float64 {
	if s.incumbent != nil {
		return s.incumbent.Lb
	}
	return math.Inf(1)
}

// Lb returns the current proven lower bound: min(boundNode.lb, ub), or
// -Inf if no bound node exists yet.
func (s *Search) Lb() float64 {
	if s.boundNode != nil {
		return math.Min(s.boundNode.Lb, s.Ub())
	}
	return math.Inf(-1)
}

// Gap returns the current relative optimality gap.
func (s *Search) Gap() float64 { return s.gap }

// Explored returns the number of nodes evaluated so far.
func (s *Search) Explored() int { return s.explored }

// solution returns the best Solution known so far: the incumbent's, or
// the bound node's if there is no incumbent yet, or a fresh NoSolution.
func (s *Search) solution() *Solution {
	if s.incumbent != nil {
		return s.incumbent.Solution()
	}
	if s.boundNode != nil {
		return s.boundNode.Solution()
	}
	return NewSolution()
}

func (s *Search) restart() {
	s.incumbent = nil
	s.boundNode = nil
	s.gap = math.Inf(1)
	s.queue.Clear()
	s.explored = 0
}

// Solve runs the branch-and-bound main loop against problem until
// optimality, exhaustion, maxiter, timelimit, or ctx cancellation,
// matching spec.md §4.2's main loop. maxiter < 0 means unlimited (the Go
// stand-in for the Python `maxiter=None` default); maxiter == 0 is a
// literal "stop after the root" limit, matching spec.md §8 scenario S5.
// timelimit <= 0 means unlimited.
func (s *Search) Solve(ctx context.Context, problem Problem, maxiter int, timelimit time.Duration) (*SearchResults, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	s.RunID = uuid.New()
	s.problem = problem
	s.restart()
	if maxiter < 0 {
		maxiter = largeIter
	}

	var deadline time.Time
	hasDeadline := timelimit > 0
	if hasDeadline {
		deadline = time.Now().Add(timelimit)
	}

	log.Info().Str("run_id", s.RunID.String()).Msg("Starting exploration of search tree")
	s.logger.logHeaders()

	s.warmstart(problem.Warmstart())
	s.solveRoot()
	if s.checkTermination(maxiter) {
		return s.finish(problem), nil
	}

	for s.queue.NotEmpty() {
		if ctx.Err() != nil {
			s.logRow("Time Limit")
			break
		}
		if hasDeadline && time.Now().After(deadline) {
			s.logRow("Time Limit")
			break
		}

		node := s.dequeueCore()
		if node != nil {
			s.doIter(node)
		}
		if node == s.boundNode {
			s.updateBound()
		}
		if s.checkTermination(maxiter) {
			break
		}
	}

	return s.finish(problem), nil
}

func (s *Search) finish(problem Problem) *SearchResults {
	sol := s.solution()
	sol.SetLb(s.Lb())

	incProblem := problem
	if s.incumbent != nil {
		incProblem = s.incumbent.Problem
	}
	return &SearchResults{Solution: sol, Problem: incProblem}
}

func (s *Search) doIter(node *Node) {
	if node.Lb < s.Ub() {
		s.explored++
		s.feasibilityCheck(node)
	} else {
		s.fathom(node)
	}
}

func (s *Search) feasibilityCheck(node *Node) {
	if node.CheckFeasible() {
		s.setSolution(node)
	} else {
		s.branch(node)
	}
}

func (s *Search) setSolution(node *Node) {
	s.incumbent = node
	s.updateGap()
	s.logRow("New incumbent")
	if s.SolutionCallback != nil {
		s.SolutionCallback(node)
	}
}

func (s *Search) branch(node *Node) {
	children := node.Branch()
	if len(children) > 0 {
		for _, child := range children {
			s.enqueueCore(child)
		}
	} else {
		s.logRow("Cutoff")
	}
	if !s.SaveTree && node != s.root {
		node.Cleanup()
	}
}

func (s *Search) fathom(node *Node) {
	node.Fathom()
	if s.treeLog != nil {
		s.treeLog.Record(node)
	}
	if !s.SaveTree && node != s.root {
		node.Cleanup()
	}
}

func (s *Search) warmstart(warm Problem) {
	if warm == nil {
		return
	}
	if warm.CurrentSolution().Status == NoSolution {
		ComputeBound(warm)
	}
	node := NewNode(warm, nil)
	if node.Lb < s.Ub() {
		s.feasibilityCheck(node)
		s.logRow("Warmstart")
	}
}

func (s *Search) solveRoot() {
	s.root = NewNode(s.problem, nil)
	s.enqueueCore(s.root)
	s.updateBound()
	s.explored = 0
}

func (s *Search) nodeEval(node *Node) {
	if s.PreEvalCallback != nil {
		s.PreEvalCallback(node)
	}
	node.ComputeBound()
	if s.PostEvalCallback != nil {
		s.PostEvalCallback(node)
	}
}

func (s *Search) enqueueCore(node *Node) {
	if s.EvalNode.evalIn() {
		s.nodeEval(node)
	}
	if node.Lb < s.Ub() {
		if s.EnqueueCallback != nil {
			s.EnqueueCallback(node)
		}
		s.queue.Enqueue(node)
		if s.treeLog != nil {
			s.treeLog.Record(node)
		}
	} else {
		s.fathom(node)
	}
}

func (s *Search) dequeue() *Node {
	if s.DequeueOverride != nil {
		if node, handled := s.DequeueOverride(s); handled {
			return node
		}
	}
	return s.queue.Dequeue()
}

func (s *Search) dequeueCore() *Node {
	node := s.dequeue()
	if node == nil {
		return nil
	}
	if s.EvalNode.evalOut() {
		s.nodeEval(node)
	}
	if s.DequeueCallback != nil {
		s.DequeueCallback(node)
	}
	if node.Lb >= s.Ub() {
		if node == s.boundNode {
			s.updateBound()
		}
		s.fathom(node)
		return nil
	}
	return node
}

func (s *Search) checkTermination(maxiter int) bool {
	if s.optimalityCheck() {
		s.logRow("Optimal")
		s.solution().SetOptimal()
		return true
	}
	if s.explored >= maxiter {
		s.logRow("Iter Limit")
		return true
	}
	return false
}

func (s *Search) updateBound() {
	if s.queue.Len() == 0 {
		if s.incumbent != nil {
			s.boundNode = s.incumbent
		}
		s.updateGap()
		return
	}
	old := s.boundNode
	s.boundNode = s.queue.PeekMinLB()
	if old == nil || old == s.root || s.boundNode.Lb > old.Lb {
		s.updateGap()
		s.logRow("LB update")
	}
}

func (s *Search) updateGap() {
	if !math.IsInf(s.Ub(), 1) {
		s.gap = math.Abs(s.Ub()-s.Lb()) / math.Abs(s.Ub())
	}
}

func (s *Search) optimalityCheck() bool {
	if s.incumbent != nil && s.queue.Len() == 0 {
		return true
	}
	return s.Ub() <= s.Lb()+s.Atol || s.gap <= s.Rtol
}

func (s *Search) logRow(message string) {
	gap := fmt.Sprintf("%.2f%%", 100*s.gap)
	ub := fmt.Sprintf("%.4g", s.Ub())
	lb := fmt.Sprintf("%.4g", s.Lb())
	s.logger.logRow(s.explored, ub, lb, gap, message)
}

// Enqueue pushes a node straight onto the underlying queue, primarily for
// restart policies and tests that need to drive a node through the queue
// without going through Solve's full loop.
func (s *Search) Enqueue(n *Node) { s.queue.Enqueue(n) }

// Queue exposes the underlying priority queue for restart policies that
// need to scan or pop by bound (spec.md §4.2.7).
func (s *Search) Queue() *Queue { return s.queue }

// Incumbent returns the current incumbent node, or nil.
func (s *Search) Incumbent() *Node { return s.incumbent }

// BoundNode returns the current bound-carrying node, or nil.
func (s *Search) BoundNode() *Node { return s.boundNode }

// Root returns the search's root node, or nil before Solve is called.
func (s *Search) Root() *Node { return s.root }

// SetSolution installs node as the new incumbent outside the normal
// dequeue/branch flow, for callbacks that derive a feasible solution
// from heuristic means (spec.md §8 "Heuristic" log event) rather than
// from reaching a leaf by branching. Matches
// `bnbpy.pypure.search.BranchAndBound.set_solution`.
func (s *Search) SetSolution(node *Node) { s.setSolution(node) }

// LogRow emits one event row through the search's own logger, for
// callbacks that need to record a domain-specific event (e.g. the
// deadline solver's "Heuristic" event) between the normal event rows
// the driver logs itself.
func (s *Search) LogRow(message string) { s.logRow(message) }
