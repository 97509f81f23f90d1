package deadline

import "math"

// LagrangianHelper runs Smith's rule over a job set and derives the
// block partition and Lagrangian multipliers spec.md §4.4 needs to
// augment the weighted-completion-time bound. Grounded on
// `machdeadline/lagrangian.py: LagrangianHelper`.
type LagrangianHelper struct {
	Smith           []*Job
	CompletionTimes []int
	Multipliers     []float64
	Blocks          [][]*Job
	Success         bool
}

// NewLagrangianHelper runs Smith's rule over jobs (from the given
// total processing time) and computes the resulting block partition
// and multipliers.
func NewLagrangianHelper(jobs []*Job, totalTime int) *LagrangianHelper {
	h := &LagrangianHelper{}
	h.compute(jobs, totalTime)
	return h
}

func (h *LagrangianHelper) compute(jobs []*Job, totalTime int) {
	res := ApplySmith(jobs, totalTime, true)
	h.Smith = res.Jobs
	h.Success = res.Success
	h.calcCompletionTimes()
	h.Blocks = h.getBlocks()
	h.Multipliers = h.calcMultipliers()
}

func (h *LagrangianHelper) calcCompletionTimes() {
	c := 0
	h.CompletionTimes = make([]int, 0, len(h.Smith))
	for _, job := range h.Smith {
		c += job.P
		h.CompletionTimes = append(h.CompletionTimes, c)
	}
}

// getBlocks partitions the Smith-ordered sequence into maximal runs
// whose deadlines remain binding: a block closes before job i+1 once
// the running max deadline in the block no longer exceeds C[i+1].
// Grounded on `lagrangian.py: LagrangianHelper._get_blocks`.
func (h *LagrangianHelper) getBlocks() [][]*Job {
	if len(h.Smith) == 0 {
		return nil
	}
	job := h.Smith[0]
	currentBlock := []*Job{job}
	blocks := [][]*Job{currentBlock}
	maxD := job.D

	for i := 1; i < len(h.Smith)-1; i++ {
		job = h.Smith[i]
		maxD = max(maxD, job.D)
		if maxD > h.CompletionTimes[i+1] {
			currentBlock = append(currentBlock, job)
		} else {
			currentBlock = []*Job{job}
			blocks = append(blocks, currentBlock)
		}
		blocks[len(blocks)-1] = currentBlock
	}
	currentBlock = append(currentBlock, h.Smith[len(h.Smith)-1])
	blocks[len(blocks)-1] = currentBlock
	return blocks
}

// calcMultipliers walks the blocks right-to-left, and within each
// block right-to-left, per spec.md §4.4's recurrence: the last job of
// a block gets multiplier 0, and each job before it gets
// `max(0, (p_i/p_last)*(w_last+lambda_next) - w_i)`.
func (h *LagrangianHelper) calcMultipliers() []float64 {
	var revLagrange []float64
	for bi := len(h.Blocks) - 1; bi >= 0; bi-- {
		block := h.Blocks[bi]
		if len(block) == 0 {
			continue
		}
		lagMult := 0.0
		revLagrange = append(revLagrange, lagMult)
		lastJob := block[len(block)-1]
		for j := len(block) - 2; j >= 0; j-- {
			job := block[j]
			lagMult = math.Max(0.0, (float64(job.P)/float64(lastJob.P))*(float64(lastJob.W)+lagMult)-float64(job.W))
			revLagrange = append(revLagrange, lagMult)
			lastJob = job
		}
	}
	for i, j := 0, len(revLagrange)-1; i < j; i, j = i+1, j-1 {
		revLagrange[i], revLagrange[j] = revLagrange[j], revLagrange[i]
	}
	return revLagrange
}
