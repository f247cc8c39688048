package models

import "time"

// Bookmark is a card this popup created on Trello, kept locally so the
// user can see what was saved without opening the board.
type Bookmark struct {
	CardID    string    `gorm:"primaryKey" json:"cardId"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	ListID    string    `gorm:"index" json:"listId"`
	ShortURL  string    `json:"shortUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
