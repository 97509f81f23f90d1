package deadline

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// lValues and rValues are the grids of (L, R) deadline-tightness
// parameters tested in Potts & Van Wassenhove (1983), used when the
// caller does not pin one explicitly.
var (
	lValues = []float64{0.6, 0.7, 0.8, 0.9, 1.0}
	rValues = []float64{0.2, 0.4, 0.6, 0.8, 1.0, 1.2, 1.4, 1.6}
)

// JobSpec is the serializable form of one job.
type JobSpec struct {
	ID int `json:"id" yaml:"id"`
	P  int `json:"p" yaml:"p"`
	W  int `json:"w" yaml:"w"`
	D  int `json:"d" yaml:"d"`
}

// Meta records the parameters a randomized instance was drawn with.
type Meta struct {
	L            float64 `json:"l,omitempty" yaml:"l,omitempty"`
	R            float64 `json:"r,omitempty" yaml:"r,omitempty"`
	P            int     `json:"p,omitempty" yaml:"p,omitempty"`
	DeadlineLow  int     `json:"deadline_low,omitempty" yaml:"deadline_low,omitempty"`
	DeadlineHigh int     `json:"deadline_high,omitempty" yaml:"deadline_high,omitempty"`
}

// Instance is the serializable form of a deadline-scheduling instance.
type Instance struct {
	JobSpecs []JobSpec `json:"jobs" yaml:"jobs"`
	Meta     Meta      `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Jobs builds the runtime []*Job slice from the instance's job specs.
func (i *Instance) Jobs() []*Job {
	jobs := make([]*Job, len(i.JobSpecs))
	for idx, spec := range i.JobSpecs {
		jobs[idx] = NewJob(spec.ID, spec.P, spec.W, spec.D)
	}
	return jobs
}

// ToProblem builds a root Problem from the instance.
func (i *Instance) ToProblem() *Problem {
	return NewProblem(i.Jobs())
}

// RandomInstance draws a Potts & Van Wassenhove (1983) instance: `p ~
// U{1,100}`, `w ~ U{1,10}`, `d ~ U{P(L-R/2), P(L+R/2)}` with `P =
// Σp`. A nil l or r samples from the paper's tested grids. Grounded on
// `machdeadline/instance.py: _generate_jobs_from_paper`.
func RandomInstance(n, seed int, l, r *float64) *Instance {
	rng := rand.New(rand.NewSource(int64(seed)))

	L := pick(rng, lValues, l)
	R := pick(rng, rValues, r)

	p := make([]int, n)
	w := make([]int, n)
	total := 0
	for k := 0; k < n; k++ {
		p[k] = 1 + rng.Intn(100)
		w[k] = 1 + rng.Intn(10)
		total += p[k]
	}

	dLow := int(float64(total) * (L - R/2))
	dHigh := int(float64(total) * (L + R/2))
	if dLow < 1 {
		dLow = 1
	}
	if dHigh < dLow {
		dHigh = dLow
	}

	specs := make([]JobSpec, n)
	for k := 0; k < n; k++ {
		d := dLow + rng.Intn(dHigh-dLow+1)
		specs[k] = JobSpec{ID: k, P: p[k], W: w[k], D: d}
	}

	return &Instance{
		JobSpecs: specs,
		Meta:     Meta{L: L, R: R, P: total, DeadlineLow: dLow, DeadlineHigh: dHigh},
	}
}

func pick(rng *rand.Rand, grid []float64, pinned *float64) float64 {
	if pinned != nil {
		return *pinned
	}
	return grid[rng.Intn(len(grid))]
}

// LoadInstance reads a deadline instance from a JSON or YAML file.
func LoadInstance(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("deadline: read instance %s: %w", path, err)
	}
	var inst Instance
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &inst); err != nil {
			return nil, fmt.Errorf("deadline: parse YAML instance %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &inst); err != nil {
			return nil, fmt.Errorf("deadline: parse JSON instance %s: %w", path, err)
		}
	}
	return &inst, nil
}
