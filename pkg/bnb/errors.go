package bnb

import "errors"

// Sentinel errors surfaced at construction/configuration time. Domain
// infeasibility during the search itself is never an error — it is
// encoded on Solution.Status per spec.md §7 — these only cover the
// "programming failure, fail fast" row of the error taxonomy table,
// grounded on the teacher's sentinel-error table in `ilp.go`
// (INITIAL_RELAXATION_NOT_FEASIBLE, NO_INTEGER_FEASIBLE_SOLUTION).
var (
	// ErrInvalidConfig is returned by Config.Validate for an unknown
	// branching/queue discipline, an unknown EvalNode mode, or negative
	// tolerances.
	ErrInvalidConfig = errors.New("bnb: invalid search configuration")

	// ErrNoFeasibleSolution names the outcome of a search that never
	// finds a feasible incumbent. Solve does not return it: that outcome
	// is reported through the returned Solution's Status.
	ErrNoFeasibleSolution = errors.New("bnb: no feasible solution found")

	// ErrCyclicPrecedence names a cycle among machine precedence
	// constraints (e.g. an assembly-variant PFSSP precedence DAG). No
	// package in this module returns it: neither pfssp nor deadline has
	// precedence constraints.
	ErrCyclicPrecedence = errors.New("bnb: cyclic precedence constraint")
)
