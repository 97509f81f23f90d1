package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bruscalia/bnbgo/pkg/bnb"
	"github.com/bruscalia/bnbgo/pkg/pfssp"
)

func pfsspCmd() *cobra.Command {
	var sf searchFlags
	var instancePath string
	var n, m, seed, low, high int
	var constructive string
	var lazy bool
	var callback bool
	var age bool
	var restartFreq int

	cmd := &cobra.Command{
		Use:   "pfssp",
		Short: "Solve a permutation flow-shop makespan instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sf.config()
			if err != nil {
				return err
			}

			var inst *pfssp.Instance
			if instancePath != "" {
				inst, err = pfssp.LoadInstance(instancePath)
				if err != nil {
					return err
				}
			} else {
				inst = pfssp.RandomInstance(n, m, seed, low, high)
			}
			switch constructive {
			case "neh":
				inst.Constructive = pfssp.NEH
			case "quick":
				inst.Constructive = pfssp.Quick
			default:
				return fmt.Errorf("unknown --constructive %q", constructive)
			}

			var search *bnb.Search
			switch {
			case callback && age:
				search = pfssp.NewCallbackSearchAge(cfg, restartFreq)
			case callback:
				search = pfssp.NewCallbackSearch(cfg, restartFreq)
			default:
				search = pfssp.NewLazySearch(cfg)
			}

			var tree *bnb.TreeLog
			if sf.dot != "" {
				tree = search.EnableTreeLog()
			}

			var problem bnb.Problem
			if lazy {
				problem = inst.ToLazyProblem()
			} else {
				problem = inst.ToProblem()
			}

			results, err := search.Solve(context.Background(), problem, sf.maxiter, sf.timelimit)
			if err != nil {
				return err
			}
			if err := writeDOT(sf.dot, tree); err != nil {
				return err
			}

			fmt.Printf("status=%s makespan=%v lb=%v explored=%d\n",
				results.Status(), results.Cost(), results.Lb(), search.Explored())
			return nil
		},
	}

	flags := cmd.Flags()
	addSearchFlags(flags, &sf)
	flags.StringVar(&instancePath, "instance", "", "path to a JSON/YAML instance file")
	flags.IntVar(&n, "n", 10, "number of jobs for a random instance")
	flags.IntVar(&m, "m", 4, "number of machines for a random instance")
	flags.IntVar(&seed, "seed", 42, "random seed for a generated instance")
	flags.IntVar(&low, "low", 5, "minimum processing time for a random instance")
	flags.IntVar(&high, "high", 24, "maximum processing time for a random instance")
	flags.StringVar(&constructive, "constructive", "neh", "warmstart heuristic: neh, quick")
	flags.BoolVar(&lazy, "lazy", false, "use the lazy (LB1-only) Problem variant")
	flags.BoolVar(&callback, "callback", false, "run local search on every incumbent with periodic restarts")
	flags.BoolVar(&age, "age-restart", false, "restart on incumbent age instead of total explored count (requires --callback)")
	flags.IntVar(&restartFreq, "restart-freq", 0, "dequeues between restarts; 0 uses the package default")

	return cmd
}
