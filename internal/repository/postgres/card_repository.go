package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cardadvisor/domain"
)

type CardRepository struct {
	DB *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{
		DB: db,
	}
}

// LoadCards reads the whole catalog. The catalog service caches the result,
// so this runs once at startup.
func (r *CardRepository) LoadCards() ([]domain.Card, error) {
	var cards []domain.Card
	if err := r.DB.WithContext(context.Background()).Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	return cards, nil
}

func (r *CardRepository) Migrate() error {
	if err := r.DB.AutoMigrate(&domain.Card{}); err != nil {
		return fmt.Errorf("failed to migrate cards table: %w", err)
	}
	return nil
}
