package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partvault/assettag/internal/store/schema"
)

// RunStoreTests runs the full ledger test suite against a Store
// implementation. initDB is called before each test for a clean state;
// cleanupDB after each test.
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store Store)
	}{
		{"CreateReserved", testCreateReserved},
		{"CountReservedBy", testCountReservedBy},
		{"ClaimOldestReserved", testClaimOldestReserved},
		{"MarkAssigned", testMarkAssigned},
		{"MarkVoidByTag", testMarkVoidByTag},
		{"ListReservedTagsBy", testListReservedTagsBy},
		{"GetTagByString", testGetTagByString},
		{"Items", testItems},
		{"Transaction", testTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}

func testCreateReserved(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("mints a tag derived from the ledger id", func(t *testing.T) {
		rec, err := store.CreateReserved(ctx, "alice", now)
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.NotNil(t, rec.Tag)

		assert.Len(t, *rec.Tag, 6)
		assert.Equal(t, schema.TagStatusReserved, rec.Status)
		assert.Equal(t, "alice", rec.ReservedBy)
		assert.Nil(t, rec.AssignedItemID)
		assert.Nil(t, rec.AssignedAt)
	})

	t.Run("successive mints get strictly increasing ids and distinct tags", func(t *testing.T) {
		first, err := store.CreateReserved(ctx, "alice", now)
		require.NoError(t, err)
		second, err := store.CreateReserved(ctx, "alice", now)
		require.NoError(t, err)

		assert.Greater(t, second.ID, first.ID)
		assert.NotEqual(t, *first.Tag, *second.Tag)
	})
}

func testCountReservedBy(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	count, err := store.CountReservedBy(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for i := 0; i < 3; i++ {
		_, err := store.CreateReserved(ctx, "bob", now)
		require.NoError(t, err)
	}
	_, err = store.CreateReserved(ctx, "someone-else", now)
	require.NoError(t, err)

	count, err = store.CountReservedBy(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func testClaimOldestReserved(t *testing.T, store Store) {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	t.Run("returns nil when the user has no reservations", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Store) error {
			rec, err := tx.ClaimOldestReserved(ctx, "nobody")
			require.NoError(t, err)
			assert.Nil(t, rec)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("claims the oldest reservation first", func(t *testing.T) {
		oldest, err := store.CreateReserved(ctx, "carol", base)
		require.NoError(t, err)
		_, err = store.CreateReserved(ctx, "carol", base.Add(time.Minute))
		require.NoError(t, err)
		_, err = store.CreateReserved(ctx, "carol", base.Add(2*time.Minute))
		require.NoError(t, err)

		err = store.Transaction(ctx, func(tx Store) error {
			rec, err := tx.ClaimOldestReserved(ctx, "carol")
			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.Equal(t, oldest.ID, rec.ID)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("never claims another user's reservation", func(t *testing.T) {
		_, err := store.CreateReserved(ctx, "dave", base)
		require.NoError(t, err)

		err = store.Transaction(ctx, func(tx Store) error {
			rec, err := tx.ClaimOldestReserved(ctx, "dave-impostor")
			require.NoError(t, err)
			assert.Nil(t, rec)
			return nil
		})
		require.NoError(t, err)
	})
}

func testMarkAssigned(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	item, err := store.CreateItem(ctx, "erin", "signal generator")
	require.NoError(t, err)

	rec, err := store.CreateReserved(ctx, "erin", now)
	require.NoError(t, err)

	err = store.Transaction(ctx, func(tx Store) error {
		claimed, err := tx.ClaimOldestReserved(ctx, "erin")
		require.NoError(t, err)
		require.NotNil(t, claimed)
		return tx.MarkAssigned(ctx, claimed, item.ID, now)
	})
	require.NoError(t, err)

	got, err := store.GetTagByString(ctx, *rec.Tag)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, schema.TagStatusAssigned, got.Status)
	require.NotNil(t, got.AssignedItemID)
	assert.Equal(t, item.ID, *got.AssignedItemID)
	require.NotNil(t, got.AssignedAt)

	// An item carries at most one tag: binding a second tag to the same
	// item must violate the uniqueness of assigned_item_id
	second, err := store.CreateReserved(ctx, "erin", now)
	require.NoError(t, err)
	err = store.MarkAssigned(ctx, second, item.ID, now)
	assert.Error(t, err)
}

func testMarkVoidByTag(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("voids a reserved tag", func(t *testing.T) {
		rec, err := store.CreateReserved(ctx, "frank", now)
		require.NoError(t, err)

		require.NoError(t, store.MarkVoidByTag(ctx, *rec.Tag))

		got, err := store.GetTagByString(ctx, *rec.Tag)
		require.NoError(t, err)
		assert.Equal(t, schema.TagStatusVoid, got.Status)
	})

	t.Run("absent tag is a no-op", func(t *testing.T) {
		assert.NoError(t, store.MarkVoidByTag(ctx, "ZZZZZZ"))
	})

	t.Run("voiding twice is idempotent", func(t *testing.T) {
		rec, err := store.CreateReserved(ctx, "frank", now)
		require.NoError(t, err)

		require.NoError(t, store.MarkVoidByTag(ctx, *rec.Tag))
		require.NoError(t, store.MarkVoidByTag(ctx, *rec.Tag))

		got, err := store.GetTagByString(ctx, *rec.Tag)
		require.NoError(t, err)
		assert.Equal(t, schema.TagStatusVoid, got.Status)
	})

	t.Run("a void tag stays in the ledger", func(t *testing.T) {
		rec, err := store.CreateReserved(ctx, "frank", now)
		require.NoError(t, err)
		require.NoError(t, store.MarkVoidByTag(ctx, *rec.Tag))

		got, err := store.GetTagByString(ctx, *rec.Tag)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, rec.ID, got.ID)
	})
}

func testListReservedTagsBy(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	first, err := store.CreateReserved(ctx, "grace", now)
	require.NoError(t, err)
	second, err := store.CreateReserved(ctx, "grace", now)
	require.NoError(t, err)
	voided, err := store.CreateReserved(ctx, "grace", now)
	require.NoError(t, err)
	require.NoError(t, store.MarkVoidByTag(ctx, *voided.Tag))
	_, err = store.CreateReserved(ctx, "not-grace", now)
	require.NoError(t, err)

	tags, err := store.ListReservedTagsBy(ctx, "grace")
	require.NoError(t, err)
	assert.Equal(t, []string{*first.Tag, *second.Tag}, tags)
}

func testGetTagByString(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("absent tag returns nil", func(t *testing.T) {
		got, err := store.GetTagByString(ctx, "000000")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("finds a ledger record by its tag", func(t *testing.T) {
		rec, err := store.CreateReserved(ctx, "henry", time.Now().UTC())
		require.NoError(t, err)

		got, err := store.GetTagByString(ctx, *rec.Tag)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, "henry", got.ReservedBy)
	})
}

func testItems(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("create and get", func(t *testing.T) {
		item, err := store.CreateItem(ctx, "iris", "logic analyzer")
		require.NoError(t, err)
		assert.NotZero(t, item.ID)

		got, err := store.GetItemByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "iris", got.Owner)
		assert.Equal(t, "logic analyzer", got.Name)
		assert.Nil(t, got.AssetTag)
	})

	t.Run("get preloads the bound tag", func(t *testing.T) {
		item, err := store.CreateItem(ctx, "iris", "multimeter")
		require.NoError(t, err)
		rec, err := store.CreateReserved(ctx, "iris", now)
		require.NoError(t, err)
		require.NoError(t, store.MarkAssigned(ctx, rec, item.ID, now))

		got, err := store.GetItemByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, got.AssetTag)
		assert.Equal(t, *rec.Tag, got.AssetTag.TagString())
	})

	t.Run("get absent item returns nil", func(t *testing.T) {
		got, err := store.GetItemByID(ctx, 1<<40)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete removes the item, deleting again is a no-op", func(t *testing.T) {
		item, err := store.CreateItem(ctx, "iris", "spares bin")
		require.NoError(t, err)

		require.NoError(t, store.DeleteItem(ctx, item.ID))
		got, err := store.GetItemByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		assert.NoError(t, store.DeleteItem(ctx, item.ID))
	})
}

func testTransaction(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("rolls back everything when fn fails", func(t *testing.T) {
		boom := errors.New("boom")
		var minted string

		err := store.Transaction(ctx, func(tx Store) error {
			rec, err := tx.CreateReserved(ctx, "judy", now)
			if err != nil {
				return err
			}
			minted = *rec.Tag
			return boom
		})
		require.ErrorIs(t, err, boom)

		got, err := store.GetTagByString(ctx, minted)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("commits when fn succeeds", func(t *testing.T) {
		var minted string

		err := store.Transaction(ctx, func(tx Store) error {
			rec, err := tx.CreateReserved(ctx, "judy", now)
			if err != nil {
				return err
			}
			minted = *rec.Tag
			return nil
		})
		require.NoError(t, err)

		got, err := store.GetTagByString(ctx, minted)
		require.NoError(t, err)
		require.NotNil(t, got)
	})
}
