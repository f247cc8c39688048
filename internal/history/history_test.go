package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/chxlky/trello-bookmark/database"
	"github.com/chxlky/trello-bookmark/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RecordAndRecent(t *testing.T) {
	ctx := context.Background()
	db, err := database.Init(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	store := NewStore(db)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Record(ctx, models.Bookmark{
			CardID:    id,
			Name:      "card " + id,
			URL:       "https://example.com/" + id,
			ListID:    "list",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].CardID)
	assert.Equal(t, "b", recent[1].CardID)

	all, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_RecordSameCardUpdates(t *testing.T) {
	ctx := context.Background()
	db, err := database.Init(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	store := NewStore(db)

	require.NoError(t, store.Record(ctx, models.Bookmark{CardID: "x", Name: "old"}))
	require.NoError(t, store.Record(ctx, models.Bookmark{CardID: "x", Name: "new"}))

	all, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "new", all[0].Name)
}
