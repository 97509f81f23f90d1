package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/bruscalia/bnbgo/pkg/bnb"
)

// searchFlags holds the tunable Search/Solve parameters common to
// every subcommand.
type searchFlags struct {
	discipline string
	rtol       float64
	atol       float64
	evalNode   string
	saveTree   bool
	maxiter    int
	timelimit  time.Duration
	dot        string
}

func addSearchFlags(flags *pflag.FlagSet, f *searchFlags) {
	def := bnb.DefaultConfig()
	flags.StringVar(&f.discipline, "discipline", def.Discipline.String(), "queue discipline: DFS, BFS, BestFirst, DFSFlow")
	flags.Float64Var(&f.rtol, "rtol", def.Rtol, "relative optimality tolerance")
	flags.Float64Var(&f.atol, "atol", def.Atol, "absolute optimality tolerance")
	flags.StringVar(&f.evalNode, "eval-node", def.EvalNode.String(), "bound evaluation timing: in, out, both")
	flags.BoolVar(&f.saveTree, "save-tree", def.SaveTree, "keep the full node tree in memory (--dot turns this on)")
	flags.IntVar(&f.maxiter, "maxiter", -1, "maximum nodes explored; negative means unlimited")
	flags.DurationVar(&f.timelimit, "timelimit", 0, "wall-clock search budget; zero means unlimited")
	flags.StringVar(&f.dot, "dot", "", "write a Graphviz DOT dump of the explored tree to this path")
}

func (f *searchFlags) config() (bnb.Config, error) {
	cfg := bnb.DefaultConfig()

	switch strings.ToLower(f.discipline) {
	case "dfs":
		cfg.Discipline = bnb.DFS
	case "bfs":
		cfg.Discipline = bnb.BFS
	case "bestfirst", "best-first":
		cfg.Discipline = bnb.BestFirst
	case "dfsflow", "dfs-flow":
		cfg.Discipline = bnb.DFSFlow
	default:
		return cfg, fmt.Errorf("%w: unknown --discipline %q", bnb.ErrInvalidConfig, f.discipline)
	}

	switch strings.ToLower(f.evalNode) {
	case "in":
		cfg.EvalNode = bnb.EvalIn
	case "out":
		cfg.EvalNode = bnb.EvalOut
	case "both":
		cfg.EvalNode = bnb.EvalBoth
	default:
		return cfg, fmt.Errorf("%w: unknown --eval-node %q", bnb.ErrInvalidConfig, f.evalNode)
	}

	cfg.Rtol = f.rtol
	cfg.Atol = f.atol
	cfg.SaveTree = f.saveTree || f.dot != ""
	return cfg, cfg.Validate()
}

func writeDOT(path string, log *bnb.TreeLog) error {
	if path == "" || log == nil {
		return nil
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dot file %s: %w", path, err)
	}
	defer out.Close()
	return log.ToDOT(out)
}
