package cmd

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidlearn/internal/klotski"
)

func newPuzzleCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "puzzle",
		Short: "Print a shuffled sliding-tile puzzle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, _ := cmd.Flags().GetInt("size")
			if size < 2 || size > 6 {
				return fmt.Errorf("--size must be between 2 and 6, got %d", size)
			}
			seed := uint64(time.Now().UnixNano())
			b := klotski.Shuffle(size, rand.New(rand.NewPCG(seed, seed>>1)))
			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}
	c.Flags().Int("size", 3, "Board size (tiles per side)")
	c.AddCommand(newPuzzleCheckCmd())
	return c
}

func newPuzzleCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "check <tiles>",
		Short:   "Report whether a board can be solved",
		Example: `  kidlearn puzzle check 1,2,3,4,5,6,8,7,0`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := klotski.ParseBoard(strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, b.String())
			switch {
			case b.Solved():
				fmt.Fprintln(out, "solved")
			case b.Solvable():
				fmt.Fprintf(out, "solvable (%d inversions)\n", b.Inversions())
			default:
				fmt.Fprintf(out, "not solvable (%d inversions)\n", b.Inversions())
			}
			return nil
		},
	}
}
