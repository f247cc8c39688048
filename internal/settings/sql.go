package settings

import (
	"context"
	"fmt"

	"github.com/chxlky/trello-bookmark/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore keeps the credentials as rows of the settings table.
type SQLStore struct {
	DB *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) Load(ctx context.Context) models.Credentials {
	var rows []models.Setting
	if err := s.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		zap.L().Warn("Could not read settings, using empty values", zap.Error(err))
		return models.Credentials{}
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return fromMap(values)
}

func (s *SQLStore) Save(ctx context.Context, creds models.Credentials) error {
	rows := make([]models.Setting, 0, 3)
	for key, value := range toMap(creds) {
		rows = append(rows, models.Setting{Key: key, Value: value})
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("unable to save settings: %w", err)
	}
	return nil
}
