// Package settings provides database operations for application settings.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	err := repo.ReplaceSetting(ctx, entities.SettingNameLanguage, "en")
//	all, err := repo.ListSettings(ctx)
package settings

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListSettings returns every stored setting in storage order.
func (r *Repository) ListSettings(ctx context.Context) ([]entities.Setting, error) {
	all := make([]entities.Setting, 0)
	if err := r.db.WithContext(ctx).Find(&all).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return all, nil
}

// GetSetting retrieves a setting by name, or nil when it was never set.
func (r *Repository) GetSetting(ctx context.Context, name string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// ReplaceSetting updates the value of the named setting, creating it if
// no row has that name yet.
func (r *Repository) ReplaceSetting(ctx context.Context, name, value string) error {
	var setting entities.Setting
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		setting = entities.Setting{
			Name:  name,
			Value: value,
		}
		return r.db.WithContext(ctx).Create(&setting).Error
	} else if result.Error != nil {
		return result.Error
	}

	setting.Value = value
	return r.db.WithContext(ctx).Save(&setting).Error
}
