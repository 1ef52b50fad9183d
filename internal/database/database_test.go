package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/combobox/internal/database/repository"
)

func openTestDB(t *testing.T) (context.Context, string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, RunMigrations(dbPath))
	return ctx, dbPath
}

func TestMigrationsAreRepeatable(t *testing.T) {
	t.Parallel()

	_, dbPath := openTestDB(t)
	require.NoError(t, RunMigrations(dbPath), "second run reports no change")
}

func TestSeedDefaultsIdempotent(t *testing.T) {
	t.Parallel()

	ctx, dbPath := openTestDB(t)
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, SeedDefaults(ctx, db))
	require.NoError(t, SeedDefaults(ctx, db))

	items := repository.NewItemRepo(db)
	n, err := items.Count(ctx, DefaultCollection)
	require.NoError(t, err)
	require.Equal(t, len(defaultFruit), n)

	list, err := items.List(ctx, DefaultCollection)
	require.NoError(t, err)
	require.Equal(t, "Apple", list[0].Text)
	require.Equal(t, ItemID(DefaultCollection, "Apple"), list[0].ID)
}

func TestItemRepoSearchPrefix(t *testing.T) {
	t.Parallel()

	ctx, dbPath := openTestDB(t)
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, SeedCollection(ctx, db, "test", []string{"Apple", "Apricot", "Banana", "ap_x", "apXx"}))
	items := repository.NewItemRepo(db)

	got, err := items.SearchPrefix(ctx, "test", "AP")
	require.NoError(t, err)
	texts := make([]string, 0, len(got))
	for _, it := range got {
		texts = append(texts, it.Text)
	}
	require.Equal(t, []string{"Apple", "Apricot", "ap_x", "apXx"}, texts)

	got, err = items.SearchPrefix(ctx, "test", "ap_")
	require.NoError(t, err)
	require.Len(t, got, 1, "underscore is literal")
	require.Equal(t, "ap_x", got[0].Text)

	got, err = items.SearchPrefix(ctx, "test", "")
	require.NoError(t, err)
	require.Len(t, got, 5, "empty prefix lists the collection")
}

func TestSelectionRepoRecent(t *testing.T) {
	t.Parallel()

	ctx, dbPath := openTestDB(t)
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewSelectionRepo(db)
	base := Now()
	for i, text := range []string{"Apple", "Banana", "Cherry"} {
		require.NoError(t, repo.Record(ctx, repository.Selection{
			ID:         text,
			Combobox:   "fruit",
			Text:       text,
			SelectedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Record(ctx, repository.Selection{ID: "other", Combobox: "veg", Text: "Leek", SelectedAt: base}))

	recent, err := repo.Recent(ctx, "fruit", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "Cherry", recent[0].Text)
	require.Equal(t, "Banana", recent[1].Text)
	require.True(t, recent[0].SelectedAt.Equal(base.Add(2*time.Minute)))
}

func TestWithTxRollsBack(t *testing.T) {
	t.Parallel()

	ctx, dbPath := openTestDB(t)
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	errBoom := context.Canceled
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO items(id, collection, text) VALUES ('x', 'c', 'X')`)
		require.NoError(t, err)
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	n, err := repository.NewItemRepo(db).Count(ctx, "c")
	require.NoError(t, err)
	require.Zero(t, n)
}

// cancelAfter is a context that reports itself canceled once Done has been
// polled more than n times.
type cancelAfter struct {
	context.Context
	left atomic.Int32
	once sync.Once
	done chan struct{}
}

func newCancelAfter(n int32) *cancelAfter {
	c := &cancelAfter{Context: context.Background(), done: make(chan struct{})}
	c.left.Store(n)
	return c
}

func (c *cancelAfter) Done() <-chan struct{} {
	if c.left.Add(-1) < 0 {
		c.once.Do(func() { close(c.done) })
	}
	return c.done
}

func (c *cancelAfter) Err() error {
	select {
	case <-c.done:
		return context.Canceled
	default:
		return nil
	}
}

func TestSeedFailureLeavesNoPartialCollection(t *testing.T) {
	t.Parallel()

	ctx, dbPath := openTestDB(t)
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.Error(t, SeedDefaults(newCancelAfter(20), db))

	items := repository.NewItemRepo(db)
	n, err := items.Count(ctx, DefaultCollection)
	require.NoError(t, err)
	require.Zero(t, n, "a failed seed is rolled back")

	require.NoError(t, SeedDefaults(ctx, db))
	n, err = items.Count(ctx, DefaultCollection)
	require.NoError(t, err)
	require.Equal(t, len(defaultFruit), n, "the next start seeds the full collection")
}
