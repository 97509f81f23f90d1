package bnb

import (
	"fmt"
	"math"
)

// Solution is the cost/bound/status carrier owned by every Problem.
// Invariant: Lb <= Cost whenever both are finite.
type Solution struct {
	Cost   float64
	Lb     float64
	Status Status
}

// NewSolution returns a Solution in its initial NoSolution state:
// Cost = +Inf, Lb = -Inf.
func NewSolution() *Solution {
	return &Solution{
		Cost:   math.Inf(1),
		Lb:     math.Inf(-1),
		Status: NoSolution,
	}
}

func (s *Solution) String() string {
	return fmt.Sprintf("Status: %s | Cost: %v | LB: %v", s.Status, s.Cost, s.Lb)
}

// SetLb records a new lower bound. The status transitions out of
// NoSolution into Relaxation the first time a bound is set.
func (s *Solution) SetLb(lb float64) {
	s.Lb = lb
	if s.Status == NoSolution {
		s.Status = Relaxation
	}
}

// SetFeasible marks the solution feasible and collapses Cost to Lb.
func (s *Solution) SetFeasible() {
	s.Status = Feasible
	s.Cost = s.Lb
}

// SetInfeasible marks the solution infeasible with an unbounded cost.
func (s *Solution) SetInfeasible() {
	s.Status = Infeasible
	s.Cost = math.Inf(1)
}

// SetOptimal marks the current incumbent as proven optimal.
func (s *Solution) SetOptimal() {
	s.Status = Optimal
}

// Fathom discards the solution: status Fathom, cost +Inf.
func (s *Solution) Fathom() {
	s.Status = Fathom
	s.Cost = math.Inf(1)
}

// Copy returns a shallow copy of the solution value.
func (s *Solution) Copy() *Solution {
	other := *s
	return &other
}
