package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidlearn/internal/config"
	"github.com/abhisek/kidlearn/internal/kv"
	"github.com/abhisek/kidlearn/internal/logging"
	"github.com/abhisek/kidlearn/internal/spacedrep"
	"github.com/abhisek/kidlearn/internal/subject"
)

// NewRootCmd builds the kidlearn command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kidlearn",
		Short: "Spaced-repetition practice for kids",
		Long: "KidLearn is a terminal app for practicing math facts, Chinese characters and " +
			"idioms, and English words. Items you miss come back sooner.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, "")
		},
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides KIDLEARN_DB env var)")
	root.PersistentFlags().String("store", "", "Storage backend: sqlite, redis, postgres or memory (overrides KIDLEARN_STORE)")
	root.PersistentFlags().String("content-dir", "", "Directory with content packs that replace the built-in ones")
	root.PersistentFlags().String("env-file", ".env", "Environment file to load before reading KIDLEARN_* variables")

	root.AddCommand(
		newPracticeCmd(),
		newDueCmd(),
		newRecordCmd(),
		newStatsCmd(),
		newResetCmd(),
		newSubjectsCmd(),
		newPuzzleCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// runtime bundles what a command needs: configuration, logger, store
// and content.
type runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    kv.Store
	registry *subject.Registry
	closers  []func() error
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store.Kind = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v, _ := cmd.Flags().GetString("content-dir"); v != "" {
		cfg.ContentDir = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openRuntime loads config, content and the store. With lenient set, a
// store that cannot be opened is replaced by an in-memory one so practice
// can go on; otherwise the failure is returned. logSink receives logs
// when no log file is configured, nil discards them.
func openRuntime(cmd *cobra.Command, lenient bool, logSink io.Writer) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.Open(cfg.Log.Level, cfg.Log.Format, cfg.Log.File, logSink)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, logger: logger, closers: []func() error{closeLog}}

	rt.registry, err = subject.Load(cfg.ContentDir)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("load content: %w", err)
	}

	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		if !lenient {
			rt.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: progress storage unavailable (%v); progress will not be saved\n", err)
		logger.Warn("store unavailable, using memory", "kind", cfg.Store.Kind, "error", err)
		store = kv.NewMemory()
	}
	rt.store = store
	rt.closers = append(rt.closers, store.Close)
	return rt, nil
}

// openStore opens the configured backend. Tests swap it out.
var openStore = func(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	opts, err := cfg.StoreOptions()
	if err != nil {
		return nil, err
	}
	return kv.Open(ctx, opts)
}

// Close releases the store and log file in reverse order of opening.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			rt.logger.Warn("close failed", "error", err)
		}
	}
}

// scheduler looks up a subject and its review scheduler.
func (rt *runtime) scheduler(id string) (*subject.Subject, *spacedrep.Scheduler[subject.Item], error) {
	subj, err := rt.registry.Get(id)
	if err != nil {
		return nil, nil, err
	}
	return subj, subject.NewScheduler(rt.store, subj, rt.logger), nil
}

// loadProgress loads a subject's progress. A failed read is returned as
// an error; dropped entries only print a warning.
func (rt *runtime) loadProgress(cmd *cobra.Command, sched *spacedrep.Scheduler[subject.Item]) (spacedrep.Progress, error) {
	progress, err := sched.Load(cmd.Context())
	if spacedrep.ReadFailed(err) {
		return nil, fmt.Errorf("progress could not be read: %w", err)
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	return progress, nil
}
