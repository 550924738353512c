package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidlearn/internal/export"
)

func newStatsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "stats [subject]",
		Short: "Show accuracy per item, weakest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			if all == (len(args) == 1) {
				return errors.New("name one subject or pass --all")
			}
			xlsxPath, _ := cmd.Flags().GetString("xlsx")

			rt, err := openRuntime(cmd, false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			ids := args
			if all {
				ids = rt.registry.IDs()
			}

			out := cmd.OutOrStdout()
			now := time.Now()
			var sheets []export.Sheet
			for i, id := range ids {
				subj, sched, err := rt.scheduler(id)
				if err != nil {
					return err
				}
				progress, err := rt.loadProgress(cmd, sched)
				if err != nil {
					return err
				}
				entries := sched.Ranked(progress, subj.Items, now)
				sum := sched.Summarize(progress, subj.Items, now)
				sheets = append(sheets, export.Sheet{Name: subj.ID, Rows: export.RowsFrom(entries)})

				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s: %d items, %d practiced, %d due, %d mastered, %d%% overall\n",
					subj.Name, sum.Items, sum.Practiced, sum.Due, sum.Mastered, sum.Accuracy())
				if sum.Practiced == 0 {
					continue
				}
				fmt.Fprintf(out, "%-12s  %8s  %8s  %5s  %s\n", "Item", "Correct", "Accuracy", "Round", "Next review")
				fmt.Fprintln(out, strings.Repeat("─", 60))
				for _, e := range entries {
					if !e.Practiced {
						continue
					}
					fmt.Fprintf(out, "%-12s  %4d/%-3d  %7d%%  %5d  %s\n",
						e.Key, e.Record.CorrectAttempts, e.Record.TotalAttempts, e.Accuracy, e.Record.Round,
						e.Record.NextReviewAt.Local().Format("2006-01-02 15:04"))
				}
			}

			if xlsxPath == "" {
				return nil
			}
			f, err := os.Create(xlsxPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", xlsxPath, err)
			}
			if err := export.WriteAccuracy(f, sheets); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", xlsxPath, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nWrote %s\n", xlsxPath)
			return nil
		},
	}
	c.Flags().Bool("all", false, "Show every subject")
	c.Flags().String("xlsx", "", "Also write the table to this Excel file")
	return c
}
