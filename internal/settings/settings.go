// Package settings persists the popup's Trello credentials and decides
// whether they are complete enough to talk to Trello.
package settings

import (
	"context"
	"errors"
	"strings"

	"github.com/chxlky/trello-bookmark/internal/models"
	"github.com/samber/lo"
)

// Storage keys. Saved settings from older versions are read back through
// these names, so they must not change.
const (
	KeyAPIKey   = "trelloApiKey"
	KeyAPIToken = "trelloToken"
	KeyBoardID  = "trelloBoardId"
)

// ErrIncomplete is returned when an action needs all three credential
// fields and at least one of them is blank.
var ErrIncomplete = errors.New("trello credentials are incomplete")

// Store persists Credentials as a single record.
//
// Load never fails: a missing record or field comes back as an empty
// string. Save writes all three fields or none of them.
type Store interface {
	Load(ctx context.Context) models.Credentials
	Save(ctx context.Context, creds models.Credentials) error
}

// Valid reports whether every field is non-empty after trimming whitespace.
func Valid(creds models.Credentials) bool {
	return lo.EveryBy([]string{creds.APIKey, creds.APIToken, creds.BoardID}, func(field string) bool {
		return strings.TrimSpace(field) != ""
	})
}

func fromMap(values map[string]string) models.Credentials {
	return models.Credentials{
		APIKey:   values[KeyAPIKey],
		APIToken: values[KeyAPIToken],
		BoardID:  values[KeyBoardID],
	}
}

func toMap(creds models.Credentials) map[string]string {
	return map[string]string{
		KeyAPIKey:   creds.APIKey,
		KeyAPIToken: creds.APIToken,
		KeyBoardID:  creds.BoardID,
	}
}
