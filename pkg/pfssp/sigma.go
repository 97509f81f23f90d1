package pfssp

// Sigma1 is the committed head sequence of a partial permutation. It
// owns the machine-completion vector C, updated front-to-back as jobs
// are appended. Grounded on `bnbprob/pfssp/pypure/sequence.py`'s
// `Sigma1`, renamed `job_to_bottom` per spec.md §4.3's terminology.
type Sigma1 struct {
	Jobs []*Job
	C    []int
}

// NewSigma1 returns an empty head sequence over m machines.
func NewSigma1(m int) *Sigma1 {
	return &Sigma1{C: make([]int, m)}
}

// JobToBottom appends job to the head and advances C, matching spec.md
// §4.3: `C[0] := max(C[0], r_job[0]) + p_job[0]`, then for k=1..m-1,
// `C[k] := max(C[k], C[k-1]) + p_job[k]`.
func (s *Sigma1) JobToBottom(job *Job) {
	s.Jobs = append(s.Jobs, job)
	s.C[0] = max(s.C[0], job.R[0]) + job.P[0]
	for k := 1; k < len(s.C); k++ {
		s.C[k] = max(s.C[k], s.C[k-1]) + job.P[k]
	}
}

// Copy returns a shallow copy: a fresh Jobs/C slice, same underlying
// Job pointers (already-committed jobs are never mutated further).
func (s *Sigma1) Copy() *Sigma1 {
	jobs := make([]*Job, len(s.Jobs))
	copy(jobs, s.Jobs)
	c := make([]int, len(s.C))
	copy(c, s.C)
	return &Sigma1{Jobs: jobs, C: c}
}

// Sigma2 is the committed tail sequence of a partial permutation,
// symmetric to Sigma1 but built from the right.
type Sigma2 struct {
	Jobs []*Job
	C    []int
}

// NewSigma2 returns an empty tail sequence over m machines.
func NewSigma2(m int) *Sigma2 {
	return &Sigma2{C: make([]int, m)}
}

// JobToTop prepends job to the tail and advances C from the right,
// matching spec.md §4.3's symmetric formula.
func (s *Sigma2) JobToTop(job *Job) {
	s.Jobs = append([]*Job{job}, s.Jobs...)
	last := len(s.C) - 1
	s.C[last] = max(s.C[last], job.Q[last]) + job.P[last]
	for k := last - 1; k >= 0; k-- {
		s.C[k] = max(s.C[k], s.C[k+1]) + job.P[k]
	}
}

// Copy returns a shallow copy, mirroring Sigma1.Copy.
func (s *Sigma2) Copy() *Sigma2 {
	jobs := make([]*Job, len(s.Jobs))
	copy(jobs, s.Jobs)
	c := make([]int, len(s.C))
	copy(c, s.C)
	return &Sigma2{Jobs: jobs, C: c}
}
