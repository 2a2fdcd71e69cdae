package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ofsconsole/internal/domain"
)

func newTestRepository(t *testing.T) *SQLiteHistoryRepository {
	t.Helper()
	repo, err := NewSQLiteHistoryRepository(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteHistoryRepository_AppendAndList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []domain.ExchangeRecord{
		{ID: "a", Verb: domain.VerbLogin, Args: []string{"admin", "***"}, Kind: domain.OutcomeSuccess, Message: "welcome", StartedAt: base, Duration: 12 * time.Millisecond, Address: "127.0.0.1:9090"},
		{ID: "b", Verb: domain.VerbStats, Args: []string{}, Kind: domain.OutcomeRaw, Message: "blocks: 10", StartedAt: base.Add(time.Second)},
		{ID: "c", Verb: domain.VerbStats, Error: "not connected to server", StartedAt: base.Add(2 * time.Second)},
	}
	for _, r := range records {
		require.NoError(t, repo.Append(ctx, r))
	}

	all, err := repo.List(ctx, domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	login := all[2]
	assert.Equal(t, []string{"admin", "***"}, login.Args)
	assert.Equal(t, 12*time.Millisecond, login.Duration)
	assert.Equal(t, "127.0.0.1:9090", login.Address)
	assert.True(t, base.Equal(login.StartedAt))

	stats, err := repo.List(ctx, domain.HistoryFilter{Verb: domain.VerbStats, Limit: 1})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "c", stats[0].ID)
	assert.Equal(t, "not connected to server", stats[0].Error)
}

func TestSQLiteHistoryRepository_Clear(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, domain.ExchangeRecord{ID: "x", Verb: domain.VerbLoad, StartedAt: time.Now()}))
	require.NoError(t, repo.Append(ctx, domain.ExchangeRecord{ID: "y", Verb: domain.VerbLoad, StartedAt: time.Now()}))

	removed, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	all, err := repo.List(ctx, domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLiteHistoryRepository_DuplicateIDFails(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	record := domain.ExchangeRecord{ID: "dup", Verb: domain.VerbStats, StartedAt: time.Now()}

	require.NoError(t, repo.Append(ctx, record))
	assert.Error(t, repo.Append(ctx, record))
}

func TestWithRetry(t *testing.T) {
	t.Run("retries busy errors", func(t *testing.T) {
		calls := 0
		err := withRetry(func() error {
			calls++
			if calls < 3 {
				return sqlite3.Error{Code: sqlite3.ErrBusy}
			}
			return nil
		}, 3)

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns other errors immediately", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := withRetry(func() error {
			calls++
			return boom
		}, 3)

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		err := withRetry(func() error { return sqlite3.Error{Code: sqlite3.ErrLocked} }, 2)

		assert.ErrorContains(t, err, "after 2 retries")
	})
}
