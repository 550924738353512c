package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidlearn/internal/spacedrep"
)

func newRecordCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "record <subject> <item>",
		Short: "Record one attempt at an item without opening the app",
		Example: `  kidlearn record math "7 × 8" --correct
  kidlearn record english-words apple --wrong`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			correct, _ := cmd.Flags().GetBool("correct")
			wrong, _ := cmd.Flags().GetBool("wrong")
			if correct == wrong {
				return errors.New("pass exactly one of --correct or --wrong")
			}

			rt, err := openRuntime(cmd, false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			subj, sched, err := rt.scheduler(args[0])
			if err != nil {
				return err
			}
			item, ok := subj.Find(args[1])
			if !ok {
				return fmt.Errorf("no item %q in %s", args[1], subj.ID)
			}

			progress, err := rt.loadProgress(cmd, sched)
			if err != nil {
				return err
			}
			now := time.Now()
			_, rec, err := sched.RecordAttempt(cmd.Context(), progress, item, correct, now)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d correct (%d%%), round %d, next review %s\n",
				sched.Key(item),
				rec.CorrectAttempts, rec.TotalAttempts, spacedrep.Accuracy(rec),
				rec.Round,
				rec.NextReviewAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
	c.Flags().Bool("correct", false, "The attempt was correct")
	c.Flags().Bool("wrong", false, "The attempt was wrong")
	c.MarkFlagsMutuallyExclusive("correct", "wrong")
	return c
}
