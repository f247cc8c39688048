package models

import "strings"

// Credentials are the three popup settings needed to talk to Trello.
// BoardID is the id of the destination list for new cards.
type Credentials struct {
	APIKey   string `json:"trelloApiKey"`
	APIToken string `json:"trelloToken"`
	BoardID  string `json:"trelloBoardId"`
}

// Trimmed returns a copy with leading and trailing whitespace removed from
// every field.
func (c Credentials) Trimmed() Credentials {
	return Credentials{
		APIKey:   strings.TrimSpace(c.APIKey),
		APIToken: strings.TrimSpace(c.APIToken),
		BoardID:  strings.TrimSpace(c.BoardID),
	}
}

// Setting is one persisted key/value pair of the settings table.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// TabSnapshot is the title and URL of the active browser tab, captured at
// the moment a bookmark is saved.
type TabSnapshot struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// StatusMessage is the transient feedback line shown under the buttons.
type StatusMessage struct {
	Text           string `json:"text"`
	IsError        bool   `json:"isError"`
	ExpiresAfterMs int64  `json:"expiresAfterMs"`
}
