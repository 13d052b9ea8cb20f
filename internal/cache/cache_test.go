package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/msto63/smython/foundation/smython/parser"
	"github.com/msto63/smython/foundation/smython/token"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Memory)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndLookup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	se := &parser.SyntaxError{Pos: token.Position{Line: 3, Column: 9}, Msg: "invalid syntax"}
	require.NoError(t, s.Record(ctx, NewEntry("a.py", "h1", se)))
	require.NoError(t, s.Record(ctx, NewEntry("b.py", "h2", nil)))

	e, ok, err := s.Lookup(ctx, "a.py", "h1")
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, e.OK)
	require.Equal(t, se, e.SyntaxError())
	require.WithinDuration(t, time.Now(), e.CheckedAt, time.Minute)

	e, ok, err = s.Lookup(ctx, "b.py", "h2")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, e.OK)
	require.Nil(t, e.SyntaxError())
}

func TestLookupMisses(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, NewEntry("a.py", "old", nil)))

	_, ok, err := s.Lookup(ctx, "a.py", "new")
	require.NoError(t, err)
	require.False(t, ok, "changed content must miss")

	_, ok, err = s.Lookup(ctx, "other.py", "old")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRecordReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, NewEntry("a.py", "h1", &parser.SyntaxError{Msg: "bad"})))
	require.NoError(t, s.Record(ctx, NewEntry("a.py", "h2", nil)))

	total, failing, err := s.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, 0, failing)

	e, ok, err := s.Lookup(ctx, "a.py", "h2")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, e.OK)
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	old := NewEntry("old.py", "h", &parser.SyntaxError{Msg: "bad"})
	old.CheckedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, s.Record(ctx, old))
	require.NoError(t, s.Record(ctx, NewEntry("new.py", "h", nil)))

	n, err := s.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	total, failing, err := s.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, 0, failing)
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, NewEntry("a.py", "h", nil)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	_, ok, err := s.Lookup(ctx, "a.py", "h")
	require.NoError(t, err)
	require.True(t, ok)
}
