package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidlearn/internal/spacedrep"
	"github.com/abhisek/kidlearn/internal/subject"
)

func newDueCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "due <subject>",
		Short: "List the items due for review, weakest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd, false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			subj, sched, err := rt.scheduler(args[0])
			if err != nil {
				return err
			}

			limit, _ := cmd.Flags().GetInt("limit")
			fallback := rt.cfg.Practice.FallbackToAll
			if cmd.Flags().Changed("all-if-empty") {
				fallback, _ = cmd.Flags().GetBool("all-if-empty")
			}

			progress, err := rt.loadProgress(cmd, sched)
			if err != nil {
				return err
			}
			ranked := sched.Ranked(progress, subj.Items, time.Now())
			due := make([]spacedrep.Entry[subject.Item], 0, len(ranked))
			for _, e := range ranked {
				if e.Due {
					due = append(due, e)
				}
			}
			dueCount := len(due)
			out := cmd.OutOrStdout()
			if dueCount == 0 {
				if !fallback {
					fmt.Fprintln(out, "Nothing is due. Come back later!")
					return nil
				}
				fmt.Fprintln(out, "Nothing is due; showing the whole pool.")
				due = ranked
			}

			if limit > 0 && limit < len(due) {
				due = due[:limit]
			}
			for _, e := range due {
				fmt.Fprintf(out, "%-12s  %s\n", e.Key, e.Item.Prompt)
			}
			fmt.Fprintf(out, "\n%d of %d items due\n", dueCount, len(subj.Items))
			return nil
		},
	}
	c.Flags().IntP("limit", "n", 0, "Show at most this many items (0 shows all)")
	c.Flags().Bool("all-if-empty", true, "List the whole pool when nothing is due (default from KIDLEARN_FALLBACK_TO_ALL)")
	return c
}
