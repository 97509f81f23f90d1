// Command bnbgo runs the branch-and-bound driver in pkg/bnb against
// either of its two concrete problems: permutation flow-shop
// scheduling (pfssp) or deadline-constrained weighted-completion-time
// scheduling (deadline).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bnbgo",
		Short: "Branch-and-bound solver for scheduling problems",
		Long: `bnbgo drives the generic branch-and-bound search in pkg/bnb
against the two scheduling problems it ships with:

  pfssp      permutation flow-shop makespan minimization
  deadline   single-machine weighted completion time with deadlines`,
	}

	rootCmd.AddCommand(pfsspCmd())
	rootCmd.AddCommand(deadlineCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
