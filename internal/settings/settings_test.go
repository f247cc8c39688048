package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/chxlky/trello-bookmark/database"
	"github.com/chxlky/trello-bookmark/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestValid(t *testing.T) {
	samples := []struct {
		value  string
		filled bool
	}{
		{"", false},
		{"   ", false},
		{"\t\n ", false},
		{"x", true},
		{"  key  ", true},
	}

	for _, key := range samples {
		for _, token := range samples {
			for _, board := range samples {
				creds := models.Credentials{APIKey: key.value, APIToken: token.value, BoardID: board.value}
				want := key.filled && token.filled && board.filled
				assert.Equal(t, want, Valid(creds), "%q %q %q", key.value, token.value, board.value)
			}
		}
	}
}

func TestCredentialsTrimmed(t *testing.T) {
	creds := models.Credentials{APIKey: " k ", APIToken: "\tt\n", BoardID: "b"}
	assert.Equal(t, models.Credentials{APIKey: "k", APIToken: "t", BoardID: "b"}, creds.Trimmed())
}

func newSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := database.Init(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	return NewSQLStore(db)
}

func TestSQLStore_LoadEmpty(t *testing.T) {
	store := newSQLStore(t)
	assert.Equal(t, models.Credentials{}, store.Load(context.Background()))
}

func TestSQLStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)

	first := models.Credentials{APIKey: "key-1", APIToken: "token-1", BoardID: "list-1"}
	require.NoError(t, store.Save(ctx, first))
	assert.Equal(t, first, store.Load(ctx))

	second := models.Credentials{APIKey: "key-2", APIToken: "token-2", BoardID: "list-2"}
	require.NoError(t, store.Save(ctx, second))
	assert.Equal(t, second, store.Load(ctx))

	var count int64
	require.NoError(t, store.DB.Model(&models.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestSQLStore_MissingFieldIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)
	require.NoError(t, store.DB.Create(&models.Setting{Key: KeyAPIKey, Value: "only-key"}).Error)

	assert.Equal(t, models.Credentials{APIKey: "only-key"}, store.Load(ctx))
}

func TestKeyringStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	ctx := context.Background()
	store := NewKeyringStore("")

	assert.Equal(t, models.Credentials{}, store.Load(ctx))

	creds := models.Credentials{APIKey: "k", APIToken: "t", BoardID: "b"}
	require.NoError(t, store.Save(ctx, creds))
	assert.Equal(t, creds, store.Load(ctx))

	raw, err := keyring.Get(KeyringService, keyringUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"trelloApiKey":"k","trelloToken":"t","trelloBoardId":"b"}`, raw)
}

func TestKeyringStore_CorruptRecord(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, keyring.Set("corrupt", keyringUser, "not json"))

	assert.Equal(t, models.Credentials{}, NewKeyringStore("corrupt").Load(context.Background()))
}
