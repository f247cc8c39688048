package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chxlky/trello-bookmark/internal/models"
	"github.com/zalando/go-keyring"
	"go.uber.org/zap"
)

const (
	KeyringService = "trello-bookmark"
	keyringUser    = "settings"
)

// KeyringStore keeps the credentials as one JSON record in the OS secret
// store, keyed by the same field names the SQL backend uses.
type KeyringStore struct {
	Service string
}

func NewKeyringStore(service string) *KeyringStore {
	if service == "" {
		service = KeyringService
	}
	return &KeyringStore{Service: service}
}

func (s *KeyringStore) Load(_ context.Context) models.Credentials {
	secret, err := keyring.Get(s.Service, keyringUser)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			zap.L().Warn("Could not read settings from keyring, using empty values", zap.Error(err))
		}
		return models.Credentials{}
	}

	var values map[string]string
	if err := json.Unmarshal([]byte(secret), &values); err != nil {
		zap.L().Warn("Keyring settings record is not valid JSON, using empty values", zap.Error(err))
		return models.Credentials{}
	}
	return fromMap(values)
}

func (s *KeyringStore) Save(_ context.Context, creds models.Credentials) error {
	secret, err := json.Marshal(toMap(creds))
	if err != nil {
		return fmt.Errorf("unable to encode settings: %w", err)
	}
	if err := keyring.Set(s.Service, keyringUser, string(secret)); err != nil {
		return fmt.Errorf("unable to save settings to keyring: %w", err)
	}
	return nil
}
