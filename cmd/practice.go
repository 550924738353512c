package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/kidlearn/internal/app"
	"github.com/abhisek/kidlearn/internal/screens"
)

func newPracticeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "practice [subject]",
		Short: "Open the practice app, optionally straight into one subject",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) == 1 {
				id = args[0]
			}
			return runTUI(cmd, id)
		},
	}
}

// runTUI opens the runtime leniently and launches the app. Logs go to
// KIDLEARN_LOG_FILE only, since the terminal belongs to the TUI.
func runTUI(cmd *cobra.Command, subjectID string) error {
	rt, err := openRuntime(cmd, true, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	if subjectID != "" {
		if _, err := rt.registry.Get(subjectID); err != nil {
			return err
		}
	}

	return app.Run(cmd.Context(), app.Options{
		Env: &screens.Env{
			Registry:  rt.registry,
			Store:     rt.store,
			Logger:    rt.logger,
			RoundSize: rt.cfg.Practice.RoundSize,
		},
		Subject: subjectID,
	})
}
