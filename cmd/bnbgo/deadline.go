package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bruscalia/bnbgo/pkg/bnb"
	"github.com/bruscalia/bnbgo/pkg/deadline"
)

func deadlineCmd() *cobra.Command {
	var sf searchFlags
	var instancePath string
	var n, seed int
	var l, r float64
	var pinL, pinR bool

	cmd := &cobra.Command{
		Use:   "deadline",
		Short: "Solve a single-machine weighted completion time instance with deadlines",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sf.config()
			if err != nil {
				return err
			}

			var inst *deadline.Instance
			if instancePath != "" {
				inst, err = deadline.LoadInstance(instancePath)
				if err != nil {
					return err
				}
			} else {
				var lp, rp *float64
				if pinL {
					lp = &l
				}
				if pinR {
					rp = &r
				}
				inst = deadline.RandomInstance(n, seed, lp, rp)
			}

			search := deadline.NewSearch(cfg)
			var tree *bnb.TreeLog
			if sf.dot != "" {
				tree = search.EnableTreeLog()
			}

			problem := inst.ToProblem()
			results, err := search.Solve(context.Background(), problem, sf.maxiter, sf.timelimit)
			if err != nil {
				return err
			}
			if err := writeDOT(sf.dot, tree); err != nil {
				return err
			}

			fmt.Printf("status=%s cost=%v lb=%v explored=%d\n",
				results.Status(), results.Cost(), results.Lb(), search.Explored())
			return nil
		},
	}

	flags := cmd.Flags()
	addSearchFlags(flags, &sf)
	flags.StringVar(&instancePath, "instance", "", "path to a JSON/YAML instance file")
	flags.IntVar(&n, "n", 10, "number of jobs for a random instance")
	flags.IntVar(&seed, "seed", 42, "random seed for a generated instance")
	flags.Float64Var(&l, "deadline-l", 0.8, "deadline-tightness L parameter (use with --pin-l)")
	flags.Float64Var(&r, "deadline-r", 0.6, "deadline-range R parameter (use with --pin-r)")
	flags.BoolVar(&pinL, "pin-l", false, "pin L instead of sampling it from the Potts & Van Wassenhove grid")
	flags.BoolVar(&pinR, "pin-r", false, "pin R instead of sampling it from the Potts & Van Wassenhove grid")

	return cmd
}
