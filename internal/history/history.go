// Package history keeps a local record of the cards the popup created.
package history

import (
	"context"
	"fmt"

	"github.com/chxlky/trello-bookmark/internal/models"
	"gorm.io/gorm"
)

const DefaultLimit = 20

type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Record saves a created card. Recording the same card id twice updates
// the existing row.
func (s *Store) Record(ctx context.Context, bookmark models.Bookmark) error {
	if result := s.DB.WithContext(ctx).Save(&bookmark); result.Error != nil {
		return fmt.Errorf("unable to record bookmark %s: %w", bookmark.CardID, result.Error)
	}
	return nil
}

// Recent returns up to limit bookmarks, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.Bookmark, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var bookmarks []models.Bookmark
	err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&bookmarks).Error
	if err != nil {
		return nil, fmt.Errorf("unable to list bookmarks: %w", err)
	}
	return bookmarks, nil
}
