// Package config loads application configuration from environment
// variables. All variables use the KIDLEARN_ prefix; a .env file in the
// working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/abhisek/kidlearn/internal/kv"
)

// Config holds all application configuration.
type Config struct {
	Store      StoreConfig
	Log        LogConfig
	Practice   PracticeConfig
	ContentDir string
}

// PracticeConfig tunes practice sessions.
type PracticeConfig struct {
	RoundSize     int  // questions per CLI practice round, 0 means unlimited
	FallbackToAll bool // offer the whole pool when nothing is due
}

// StoreConfig selects the progress storage backend.
type StoreConfig struct {
	Kind        string // sqlite, redis, postgres or memory
	SQLitePath  string // empty resolves to kv.DefaultDBPath
	RedisURL    string
	PostgresURL string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
	File   string // empty discards logs in the TUI and uses stderr elsewhere
}

// Load reads configuration from envFile (when it exists) and then from
// environment variables. Variables already set in the environment win
// over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	roundSize, errRound := envInt("KIDLEARN_ROUND_SIZE", 10)
	fallbackToAll, errFallback := envBool("KIDLEARN_FALLBACK_TO_ALL", true)
	if err := errors.Join(errRound, errFallback); err != nil {
		return nil, err
	}

	cfg := &Config{
		Store: StoreConfig{
			Kind:        envStr("KIDLEARN_STORE", kv.KindSQLite),
			SQLitePath:  envStr("KIDLEARN_DB", ""),
			RedisURL:    envStr("KIDLEARN_REDIS_URL", ""),
			PostgresURL: envStr("KIDLEARN_POSTGRES_URL", ""),
		},
		Log: LogConfig{
			Level:  envStr("KIDLEARN_LOG_LEVEL", "warn"),
			Format: envStr("KIDLEARN_LOG_FORMAT", "text"),
			File:   envStr("KIDLEARN_LOG_FILE", ""),
		},
		Practice: PracticeConfig{
			RoundSize:     roundSize,
			FallbackToAll: fallbackToAll,
		},
		ContentDir: envStr("KIDLEARN_CONTENT_DIR", ""),
	}
	return cfg, nil
}

// Validate checks that the selected backend is fully configured.
func (c *Config) Validate() error {
	switch c.Store.Kind {
	case kv.KindSQLite, kv.KindMemory:
	case kv.KindRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("KIDLEARN_REDIS_URL is required when KIDLEARN_STORE=redis")
		}
	case kv.KindPostgres:
		if c.Store.PostgresURL == "" {
			return fmt.Errorf("KIDLEARN_POSTGRES_URL is required when KIDLEARN_STORE=postgres")
		}
	default:
		return fmt.Errorf("KIDLEARN_STORE must be one of sqlite, redis, postgres, memory, got %q", c.Store.Kind)
	}

	if c.Practice.RoundSize < 0 {
		return fmt.Errorf("KIDLEARN_ROUND_SIZE must not be negative, got %d", c.Practice.RoundSize)
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("KIDLEARN_LOG_FORMAT must be 'text' or 'json', got %q", c.Log.Format)
	}
	return nil
}

// StoreOptions resolves the backend options, filling in the default
// SQLite path.
func (c *Config) StoreOptions() (kv.Options, error) {
	opts := kv.Options{
		Kind:        c.Store.Kind,
		SQLitePath:  c.Store.SQLitePath,
		RedisURL:    c.Store.RedisURL,
		PostgresURL: c.Store.PostgresURL,
	}
	if opts.Kind == kv.KindSQLite {
		if opts.SQLitePath == "" {
			p, err := kv.DefaultDBPath()
			if err != nil {
				return opts, fmt.Errorf("resolve DB path: %w", err)
			}
			opts.SQLitePath = p
		} else if err := kv.EnsureDir(opts.SQLitePath); err != nil {
			return opts, fmt.Errorf("create DB dir: %w", err)
		}
	}
	return opts, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return i, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false, got %q", key, v)
	}
	return b, nil
}
