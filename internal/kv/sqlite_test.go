package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kidlearn.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("")
	require.Error(t, err)
}

func TestPragmasApplied(t *testing.T) {
	s, _ := openTestSQLite(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSQLite_GetSetRemove(t *testing.T) {
	s, _ := openTestSQLite(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "progress:math")
	require.NoError(t, err)
	assert.False(t, ok, "absent key must report ok=false")

	require.NoError(t, s.Set(ctx, "progress:math", []byte(`{"3+5":{}}`)))
	v, ok, err := s.Get(ctx, "progress:math")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"3+5":{}}`, string(v))

	require.NoError(t, s.Set(ctx, "progress:math", []byte(`{}`)))
	v, _, err = s.Get(ctx, "progress:math")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(v))

	require.NoError(t, s.Remove(ctx, "progress:math"))
	_, ok, err = s.Get(ctx, "progress:math")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing again is not an error.
	require.NoError(t, s.Remove(ctx, "progress:math"))
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	s, path := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "progress:chinese-characters", []byte(`{"日":{}}`)))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "progress:chinese-characters")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"日":{}}`, string(v))
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "my.db")
		t.Setenv("KIDLEARN_DB", want)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.DirExists(t, filepath.Dir(want))
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("KIDLEARN_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "kidlearn", "kidlearn.db"), got)
	})
}
