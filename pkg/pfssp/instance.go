package pfssp

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Instance is the serializable form of a PFSSP instance: an n×m
// processing-time matrix plus the constructive heuristic to warmstart
// with (spec.md §6: "A 2-D integer matrix p[n][m] of processing
// times... Processing times must be non-negative integers").
type Instance struct {
	P            [][]int      `json:"p" yaml:"p"`
	Constructive Constructive `json:"constructive,omitempty" yaml:"constructive,omitempty"`
}

// RandomInstance draws an n×m processing-time matrix uniformly from
// [low, high] using an explicit *rand.Rand, never the global generator
// (spec.md §9: "un-seeded heuristic use is a configuration error"),
// matching scenario S1's generator ("seed 42 drawing p from {5..24}
// uniformly").
func RandomInstance(n, m, seed, low, high int) *Instance {
	rng := rand.New(rand.NewSource(int64(seed)))
	p := make([][]int, n)
	for j := range p {
		row := make([]int, m)
		for k := range row {
			row[k] = low + rng.Intn(high-low+1)
		}
		p[j] = row
	}
	return &Instance{P: p, Constructive: NEH}
}

// LoadInstance reads a PFSSP instance from a JSON or YAML file
// (spec.md §6: "No bit-exact file format is mandated; JSON arrays of
// arrays suffice"), dispatching on the file extension.
func LoadInstance(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pfssp: read instance %s: %w", path, err)
	}
	var inst Instance
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &inst); err != nil {
			return nil, fmt.Errorf("pfssp: parse YAML instance %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &inst); err != nil {
			return nil, fmt.Errorf("pfssp: parse JSON instance %s: %w", path, err)
		}
	}
	if inst.Constructive == "" {
		inst.Constructive = NEH
	}
	return &inst, nil
}

// ToProblem builds an eager Problem from the instance.
func (i *Instance) ToProblem() *Problem {
	return NewProblem(i.P, i.Constructive)
}

// ToLazyProblem builds a LazyProblem from the instance.
func (i *Instance) ToLazyProblem() *LazyProblem {
	return NewLazyProblem(i.P, i.Constructive)
}
