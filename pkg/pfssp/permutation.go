package pfssp

import "math"

// Permutation is a partially-fixed permutation of jobs across m
// machines: a committed head (Sigma1), a committed tail (Sigma2), and
// the still-free jobs in between, each carrying release (R) and
// delivery (Q) vectors kept tight by FrontUpdates/BackUpdates.
// Grounded on `bnbprob/pfssp/pypure/solution.py`'s `Permutation` (the
// type actually wired into `PermFlowShop`), with method names taken
// from spec.md §4.3 / `pypure/permutation.py`'s terminology
// (`job_to_bottom`/`job_to_top` in place of `add_job`).
type Permutation struct {
	M        int
	FreeJobs []*Job
	Sigma1   *Sigma1
	Sigma2   *Sigma2
	Level    int
}

// NewPermutation builds a Permutation with every job free and empty
// head/tail sequences, then runs the initial front/back update pass.
func NewPermutation(m int, freeJobs []*Job) *Permutation {
	p := &Permutation{
		M:        m,
		FreeJobs: freeJobs,
		Sigma1:   NewSigma1(m),
		Sigma2:   NewSigma2(m),
	}
	p.UpdateParams()
	return p
}

// StartPermutation builds a fresh Permutation directly from an n×m
// processing-time matrix, constructing one Job per row.
func StartPermutation(p [][]int) *Permutation {
	m := len(p[0])
	jobs := make([]*Job, len(p))
	for j, row := range p {
		jobs[j] = NewJob(j, row)
	}
	return NewPermutation(m, jobs)
}

// Sequence returns the full job order: head, free jobs (in their
// current order), tail.
func (p *Permutation) Sequence() []*Job {
	seq := make([]*Job, 0, len(p.Sigma1.Jobs)+len(p.FreeJobs)+len(p.Sigma2.Jobs))
	seq = append(seq, p.Sigma1.Jobs...)
	seq = append(seq, p.FreeJobs...)
	seq = append(seq, p.Sigma2.Jobs...)
	return seq
}

// NJobs returns the total job count.
func (p *Permutation) NJobs() int {
	return len(p.Sigma1.Jobs) + len(p.FreeJobs) + len(p.Sigma2.Jobs)
}

// NFree returns the number of still-free jobs.
func (p *Permutation) NFree() int { return len(p.FreeJobs) }

// PushJob fixes the j-th free job: appended to Sigma1 on an even
// level, prepended to Sigma2 on an odd level, alternating to tighten
// both bounds (spec.md §4.3).
func (p *Permutation) PushJob(j int) {
	job := p.FreeJobs[j]
	p.FreeJobs = append(p.FreeJobs[:j], p.FreeJobs[j+1:]...)
	if p.Level%2 == 0 {
		p.Sigma1.JobToBottom(job)
		p.FrontUpdates()
	} else {
		p.Sigma2.JobToTop(job)
		p.BackUpdates()
	}
	p.Level++
}

// UpdateParams recomputes every free job's R and Q vector from the
// current head/tail, used at construction and after a copy.
func (p *Permutation) UpdateParams() {
	p.FrontUpdates()
	p.BackUpdates()
}

// FrontUpdates recomputes every free job's release vector R from
// Sigma1.C, per spec.md §4.3's invariant.
func (p *Permutation) FrontUpdates() {
	for _, job := range p.FreeJobs {
		job.R[0] = p.Sigma1.C[0]
		for k := 1; k < p.M; k++ {
			job.R[k] = max(p.Sigma1.C[k], job.R[k-1]+job.P[k-1])
		}
	}
}

// BackUpdates recomputes every free job's delivery vector Q from
// Sigma2.C, symmetric to FrontUpdates.
func (p *Permutation) BackUpdates() {
	last := p.M - 1
	for _, job := range p.FreeJobs {
		job.Q[last] = p.Sigma2.C[last]
		for k := last - 1; k >= 0; k-- {
			job.Q[k] = max(p.Sigma2.C[k], job.Q[k+1]+job.P[k+1])
		}
	}
}

// CommitAllToSigma1 drains FreeJobs into Sigma1 via JobToBottom, in
// order, skipping the front/back recomputation PushJob performs. Used
// by the constructive heuristics, which only ever evaluate the bound
// once every job is committed (grounded on `neh_constructive` /
// `quick_constructive`'s direct `sigma1.add_job` drain loops).
func (p *Permutation) CommitAllToSigma1() {
	for len(p.FreeJobs) > 0 {
		job := p.FreeJobs[0]
		p.FreeJobs = p.FreeJobs[1:]
		p.Sigma1.JobToBottom(job)
	}
}

// CalcBound is the Permutation-level bound used internally by the
// constructive heuristics: always the tighter of LB1 and LB5
// (`Permutation.calc_bound` in the original always calls
// `calc_lb_2m`, independent of which Problem variant wraps it).
func (p *Permutation) CalcBound() float64 { return p.CalcLB2M() }

// CalcLB1M is the single-machine relaxation bound (LB1), or the exact
// cost once every job is fixed.
func (p *Permutation) CalcLB1M() float64 {
	if len(p.FreeJobs) == 0 {
		return p.CalcLBFull()
	}
	return p.lowerBound1M()
}

// CalcLB2M is max(LB1, LB5), or the exact cost once every job is
// fixed.
func (p *Permutation) CalcLB2M() float64 {
	if len(p.FreeJobs) == 0 {
		return p.CalcLBFull()
	}
	return math.Max(p.lowerBound1M(), p.lowerBound2M())
}

// CalcLBFull returns the exact makespan once no job is free: the
// max over machines of Sigma1.C[k] + Sigma2.C[k] (testable property 6).
func (p *Permutation) CalcLBFull() float64 {
	best := math.Inf(-1)
	for k := 0; k < p.M; k++ {
		v := float64(p.Sigma1.C[k] + p.Sigma2.C[k])
		best = math.Max(best, v)
	}
	return best
}

// IsFeasible reports whether every job has been fixed, and if so
// computes final per-job start times (spec.md §4.3).
func (p *Permutation) IsFeasible() bool {
	valid := len(p.FreeJobs) == 0
	if valid {
		p.ComputeStarts()
	}
	return valid
}

// ComputeStarts fills in each job's final release vector once the
// sequence is complete.
func (p *Permutation) ComputeStarts() {
	seq := p.Sequence()
	for _, job := range seq {
		job.R = make([]int, p.M)
	}
	first := seq[0]
	for k := 1; k < p.M; k++ {
		first.R[k] = first.R[k-1] + first.P[k-1]
	}
	for i := 1; i < len(seq); i++ {
		job := seq[i]
		prev := seq[i-1]
		job.R[0] = prev.R[0] + prev.P[0]
		for k := 1; k < p.M; k++ {
			job.R[k] = max(job.R[k-1]+job.P[k-1], prev.R[k]+prev.P[k])
		}
	}
}

func (p *Permutation) lowerBound1M() float64 {
	best := math.Inf(-1)
	for k := 0; k < p.M; k++ {
		minR, sumP, minQ := math.MaxInt, 0, math.MaxInt
		for _, job := range p.FreeJobs {
			minR = min(minR, job.R[k])
			sumP += job.P[k]
			minQ = min(minQ, job.Q[k])
		}
		v := float64(minR + sumP + minQ)
		best = math.Max(best, v)
	}
	return best
}

func (p *Permutation) lowerBound2M() float64 {
	r := p.getR()
	q := p.getQ()
	best := math.Inf(-1)
	for a := 0; a < p.M-1; a++ {
		for b := a + 1; b < p.M; b++ {
			tm := twoMachineProblem(p.FreeJobs, a, b)
			v := float64(r[a] + tm + q[b])
			best = math.Max(best, v)
		}
	}
	return best
}

func (p *Permutation) getR() []int {
	out := make([]int, p.M)
	for k := 0; k < p.M; k++ {
		m := math.MaxInt
		for _, job := range p.FreeJobs {
			m = min(m, job.R[k])
		}
		out[k] = m
	}
	return out
}

func (p *Permutation) getQ() []int {
	out := make([]int, p.M)
	for k := 0; k < p.M; k++ {
		m := math.MaxInt
		for _, job := range p.FreeJobs {
			m = min(m, job.Q[k])
		}
		out[k] = m
	}
	return out
}

// Copy returns a shallow copy (fresh free-job vectors, shared
// immutable per-job state) matching spec.md §9's copy-on-branch rule.
// deep is accepted for Problem-interface symmetry but currently
// produces the same result: Lat and P are immutable and already
// shared by Job.Copy, so a recursive deep clone has no observable
// difference for this type.
func (p *Permutation) Copy(deep bool) *Permutation {
	free := make([]*Job, len(p.FreeJobs))
	for i, job := range p.FreeJobs {
		free[i] = job.Copy()
	}
	return &Permutation{
		M:        p.M,
		FreeJobs: free,
		Sigma1:   p.Sigma1.Copy(),
		Sigma2:   p.Sigma2.Copy(),
		Level:    p.Level,
	}
}

type jobTimes struct {
	job    *Job
	t1, t2 int
}

// twoMachineProblem evaluates Johnson's two-machine makespan over the
// free jobs projected onto machines a and b, per spec.md §4.3's LB5
// construction.
func twoMachineProblem(jobs []*Job, a, b int) int {
	all := make([]jobTimes, len(jobs))
	for i, job := range jobs {
		lat := job.LatAt(b, a)
		all[i] = jobTimes{job: job, t1: job.P[a] + lat, t2: job.P[b] + lat}
	}

	var set1, set2 []jobTimes
	for _, jt := range all {
		if jt.t1 <= jt.t2 {
			set1 = append(set1, jt)
		} else {
			set2 = append(set2, jt)
		}
	}
	insertionSortAsc(set1)
	insertionSortDescT2(set2)
	ordered := append(set1, set2...)

	return twoMachineMakespan(ordered, a, b)
}

func twoMachineMakespan(ordered []jobTimes, a, b int) int {
	t1, t2 := 0, 0
	for _, jt := range ordered {
		t1 += jt.job.P[a]
		lat := jt.job.LatAt(b, a)
		t2 = max(t1+lat, t2) + jt.job.P[b]
	}
	return max(t1, t2)
}

func insertionSortAsc(jt []jobTimes) {
	for i := 1; i < len(jt); i++ {
		for j := i; j > 0 && jt[j-1].t1 > jt[j].t1; j-- {
			jt[j-1], jt[j] = jt[j], jt[j-1]
		}
	}
}

func insertionSortDescT2(jt []jobTimes) {
	for i := 1; i < len(jt); i++ {
		for j := i; j > 0 && jt[j-1].t2 < jt[j].t2; j-- {
			jt[j-1], jt[j] = jt[j], jt[j-1]
		}
	}
}
