package docstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stayhub/pkg/errors"
)

type item struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func (i item) GetID() string { return i.ID }

func newFileDB(t *testing.T) (*Database, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	return NewDatabase(store), dir
}

func TestFileStore_MissingCollectionIsUnavailable(t *testing.T) {
	db, _ := newFileDB(t)
	items := NewCollection[item](db, "items")

	_, err := items.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissing)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFileStore_MalformedContentIsUnavailable(t *testing.T) {
	db, dir := newFileDB(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.json"), []byte("{not json"), 0o644))

	_, err := NewCollection[item](db, "items").Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrMissing)
}

func TestCollection_LoadSaveLoadIsIdempotent(t *testing.T) {
	stores := map[string]func(t *testing.T) *Database{
		"file":   func(t *testing.T) *Database { db, _ := newFileDB(t); return db },
		"memory": func(t *testing.T) *Database { return NewDatabase(NewMemoryStore()) },
	}

	for name, newDB := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			items := NewCollection[item](newDB(t), "items")
			require.NoError(t, items.Save(ctx, []item{{ID: "a", Value: 1}, {ID: "b", Value: 2}}))

			first, err := items.Load(ctx)
			require.NoError(t, err)
			require.NoError(t, items.Save(ctx, first))
			second, err := items.Load(ctx)
			require.NoError(t, err)

			assert.Equal(t, first, second)
			assert.Equal(t, []item{{ID: "a", Value: 1}, {ID: "b", Value: 2}}, second)
		})
	}
}

func TestCollection_SaveRejectsDuplicateIDs(t *testing.T) {
	items := NewCollection[item](NewDatabase(NewMemoryStore()), "items")

	err := items.Save(context.Background(), []item{{ID: "a"}, {ID: "a"}})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestCollection_EmptyCollectionIsWrittenAsArray(t *testing.T) {
	db, dir := newFileDB(t)
	items := NewCollection[item](db, "items")

	require.NoError(t, items.Save(context.Background(), nil))

	raw, err := os.ReadFile(filepath.Join(dir, "items.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))

	loaded, err := items.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestCollection_MutateErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	items := NewCollection[item](NewDatabase(NewMemoryStore()), "items")
	require.NoError(t, items.Save(ctx, []item{{ID: "a", Value: 1}}))

	boom := errors.New("boom")
	err := items.Mutate(ctx, func(records []item) ([]item, error) {
		return append(records, item{ID: "b"}), boom
	})
	assert.ErrorIs(t, err, boom)

	loaded, err := items.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestCollection_MutateAfterDeadlineWritesNothing(t *testing.T) {
	db, dir := newFileDB(t)
	items := NewCollection[item](db, "items")
	require.NoError(t, items.Save(context.Background(), []item{{ID: "a", Value: 1}}))

	ctx, cancel := context.WithCancel(context.Background())
	err := items.Mutate(ctx, func(records []item) ([]item, error) {
		cancel()
		return append(records, item{ID: "b", Value: 2}), nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	loaded, err := items.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "a", Value: 1}}, loaded)

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestCollection_MutateSerializesWriters(t *testing.T) {
	ctx := context.Background()
	db, _ := newFileDB(t)
	items := NewCollection[item](db, "items")
	require.NoError(t, items.Save(ctx, nil))

	const writers = 20
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := items.Mutate(ctx, func(records []item) ([]item, error) {
				return append(records, item{ID: fmt.Sprintf("item-%d", i), Value: i}), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	loaded, err := items.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, writers, "every append must survive the read-modify-write cycle")
}

func TestLocks_LockHonoursContext(t *testing.T) {
	locks := NewLocks()
	unlock, err := locks.Lock(context.Background(), "items")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = locks.Lock(ctx, "items")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := locks.Lock(context.Background(), "others")
	require.NoError(t, err)
	other()
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, Places, []byte(`[{"id":"p1"}]`)))

	created, err := Bootstrap(ctx, store, All...)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{Users, Owners, Reviews, Bookings}, created)

	places, err := store.Get(ctx, Places)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(places), "existing collections are left untouched")

	created, err = Bootstrap(ctx, store, All...)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestCopy(t *testing.T) {
	ctx := context.Background()
	from, to := NewMemoryStore(), NewMemoryStore()
	require.NoError(t, from.Put(ctx, Owners, []byte(`[{"id":"o1"}]`)))

	require.NoError(t, Copy(ctx, from, to, Owners))
	data, err := to.Get(ctx, Owners)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"o1"}]`, string(data))

	assert.ErrorIs(t, Copy(ctx, from, to, Users), ErrMissing)
}

func TestRemove(t *testing.T) {
	records := []item{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	out, ok := Remove(records, "b")
	assert.True(t, ok)
	assert.Equal(t, []item{{ID: "a"}, {ID: "c"}}, out)
	assert.Len(t, records, 3, "input slice is not modified")

	out, ok = Remove(records, "zzz")
	assert.False(t, ok)
	assert.Len(t, out, 3)
}

func TestAsAppError(t *testing.T) {
	assert.NoError(t, AsAppError("load places", nil))

	err := AsAppError("load places", fmt.Errorf("get: %w", ErrMissing))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStoreUnavailable))
	assert.ErrorIs(t, err, ErrUnavailable)

	err = AsAppError("load places", fmt.Errorf("find: %w", context.DeadlineExceeded))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTimeout))

	err = AsAppError("save places", errors.New("boom"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))

	conflict := apperrors.Conflict("taken")
	assert.Same(t, conflict, AsAppError("save users", conflict))
}
