package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidlearn/internal/config"
	"github.com/abhisek/kidlearn/internal/subject"
)

func newSubjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List the available subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			reg, err := subject.Load(cfg.ContentDir)
			if err != nil {
				return fmt.Errorf("load content: %w", err)
			}
			printSubjects(cmd, cfg, reg)
			return nil
		},
	}
}

func printSubjects(cmd *cobra.Command, cfg *config.Config, reg *subject.Registry) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-20s  %-18s  %-10s  %5s\n", "ID", "Name", "Kind", "Items")
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for _, s := range reg.All() {
		fmt.Fprintf(out, "%-20s  %-18s  %-10s  %5d\n", s.ID, s.Name, s.Kind, len(s.Items))
	}
	if cfg.ContentDir != "" {
		fmt.Fprintf(out, "\nContent overrides from %s\n", cfg.ContentDir)
	}
}
