// Package inquiry records buyer-to-realtor messages scoped to a listing.
package inquiry

import (
	"fmt"

	"gorm.io/gorm"

	"homebase/server/internal/listing"
	"homebase/server/internal/models"
)

type Service struct {
	db       *gorm.DB
	listings *listing.Service
}

func NewService(db *gorm.DB, listings *listing.Service) *Service {
	return &Service{db: db, listings: listings}
}

// Create persists a message from buyerID about homeID, addressed to the
// listing's current owner.
func (s *Service) Create(buyerID, homeID uint, text string) (*models.Message, error) {
	owner, err := s.listings.GetOwner(homeID)
	if err != nil {
		return nil, err
	}

	msg := models.Message{
		Text:      text,
		HomeID:    homeID,
		RealtorID: owner.ID,
		BuyerID:   buyerID,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &msg, nil
}

// ListFor returns every message for a listing, newest first.
func (s *Service) ListFor(homeID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.Where("home_id = ?", homeID).
		Order("created_at DESC, id DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	return msgs, nil
}
