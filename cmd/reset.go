package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "reset [subject]",
		Short: "Erase saved progress for a subject",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			yes, _ := cmd.Flags().GetBool("yes")
			if all == (len(args) == 1) {
				return errors.New("name one subject or pass --all")
			}

			rt, err := openRuntime(cmd, false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			ids := args
			if all {
				ids = rt.registry.IDs()
			}
			for _, id := range ids {
				if _, err := rt.registry.Get(id); err != nil {
					return err
				}
			}

			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Erase all progress for %s? [y/N] ", strings.Join(ids, ", "))
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing erased.")
					return nil
				}
			}

			var errs []error
			for _, id := range ids {
				subj, sched, _ := rt.scheduler(id)
				if err := sched.Reset(cmd.Context()); err != nil {
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Erased %s progress.\n", subj.Name)
			}
			return errors.Join(errs...)
		},
	}
	c.Flags().Bool("all", false, "Erase every subject")
	c.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return c
}
