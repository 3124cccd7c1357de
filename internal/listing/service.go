// Package listing implements CRUD and filtered queries over property
// listings and their image associations.
package listing

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"homebase/server/internal/apperr"
	"homebase/server/internal/models"
)

// Filter narrows List results. Every field is optional and they combine
// independently. Price bounds are inclusive.
type Filter struct {
	City         string
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType models.PropertyType
}

type CreateParams struct {
	Address      string
	City         string
	Price        float64
	Bedrooms     int
	Bathrooms    int
	LandSize     float64
	PropertyType models.PropertyType
	ImageURLs    []string
}

// UpdateParams applies only its non-nil fields.
type UpdateParams struct {
	Address      *string
	City         *string
	Price        *float64
	Bedrooms     *int
	Bathrooms    *int
	LandSize     *float64
	PropertyType *models.PropertyType
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns summaries matching the filter. An empty result set is an
// error, not an empty list: the API contract treats "no homes found" as
// a 404. A min bound above the max bound matches nothing and lands on
// the same error.
func (s *Service) List(filter Filter) ([]models.HomeResponse, error) {
	q := s.db.Preload("Images", imageOrder)
	if filter.City != "" {
		q = q.Where("city = ?", filter.City)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.PropertyType != "" {
		q = q.Where("property_type = ?", filter.PropertyType)
	}

	var homes []models.Home
	if err := q.Find(&homes).Error; err != nil {
		return nil, fmt.Errorf("query homes: %w", err)
	}
	if len(homes) == 0 {
		return nil, apperr.New(apperr.NotFound, "no homes found")
	}

	out := make([]models.HomeResponse, 0, len(homes))
	for i := range homes {
		out = append(out, toResponse(&homes[i]))
	}
	return out, nil
}

// GetByID returns the detail view of a single listing.
func (s *Service) GetByID(id uint) (*models.HomeResponse, error) {
	var home models.Home
	if err := s.db.Preload("Images", imageOrder).First(&home, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "home not found")
		}
		return nil, fmt.Errorf("query home: %w", err)
	}
	resp := toResponse(&home)
	return &resp, nil
}

// Create persists a new listing owned by realtorID together with its
// image rows, in one transaction.
func (s *Service) Create(params CreateParams, realtorID uint) (*models.HomeResponse, error) {
	home := models.Home{
		Address:      params.Address,
		City:         params.City,
		Price:        params.Price,
		Bedrooms:     params.Bedrooms,
		Bathrooms:    params.Bathrooms,
		LandSize:     params.LandSize,
		PropertyType: params.PropertyType,
		RealtorID:    realtorID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&home).Error; err != nil {
			return fmt.Errorf("create home: %w", err)
		}
		if len(params.ImageURLs) == 0 {
			return nil
		}
		images := make([]models.Image, 0, len(params.ImageURLs))
		for _, url := range params.ImageURLs {
			images = append(images, models.Image{URL: url, HomeID: home.ID})
		}
		if err := tx.Create(&images).Error; err != nil {
			return fmt.Errorf("create images: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toResponse(&home)
	if len(params.ImageURLs) > 0 {
		resp.Image = params.ImageURLs[0]
	}
	return &resp, nil
}

// Update applies the supplied fields and stamps UpdatedAt.
func (s *Service) Update(id uint, params UpdateParams) (*models.HomeResponse, error) {
	var home models.Home
	if err := s.db.First(&home, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "home not found")
		}
		return nil, fmt.Errorf("query home: %w", err)
	}

	if params.Address != nil {
		home.Address = *params.Address
	}
	if params.City != nil {
		home.City = *params.City
	}
	if params.Price != nil {
		home.Price = *params.Price
	}
	if params.Bedrooms != nil {
		home.Bedrooms = *params.Bedrooms
	}
	if params.Bathrooms != nil {
		home.Bathrooms = *params.Bathrooms
	}
	if params.LandSize != nil {
		home.LandSize = *params.LandSize
	}
	if params.PropertyType != nil {
		home.PropertyType = *params.PropertyType
	}

	// gorm stamps UpdatedAt on Save
	if err := s.db.Save(&home).Error; err != nil {
		return nil, fmt.Errorf("update home: %w", err)
	}

	resp := toResponse(&home)
	return &resp, nil
}

// Delete removes a listing and all of its image rows.
func (s *Service) Delete(id uint) error {
	var home models.Home
	if err := s.db.First(&home, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "home not found")
		}
		return fmt.Errorf("query home: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("home_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return fmt.Errorf("delete images: %w", err)
		}
		if err := tx.Delete(&models.Home{}, id).Error; err != nil {
			return fmt.Errorf("delete home: %w", err)
		}
		return nil
	})
}

// GetOwner resolves the realtor who owns a listing. Handlers compare the
// result against the requesting identity before any mutation and before
// exposing a listing's inquiries.
func (s *Service) GetOwner(id uint) (*models.Owner, error) {
	var home models.Home
	if err := s.db.First(&home, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "home not found")
		}
		return nil, fmt.Errorf("query home: %w", err)
	}

	var realtor models.User
	if err := s.db.First(&realtor, home.RealtorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "realtor not found")
		}
		return nil, fmt.Errorf("query realtor: %w", err)
	}

	return &models.Owner{
		ID:    realtor.ID,
		Name:  realtor.Name,
		Email: realtor.Email,
		Phone: realtor.Phone,
	}, nil
}

// imageOrder keeps "first stored" deterministic when picking the
// representative image.
func imageOrder(db *gorm.DB) *gorm.DB {
	return db.Order("images.id")
}

func toResponse(home *models.Home) models.HomeResponse {
	resp := models.HomeResponse{
		ID:           home.ID,
		Address:      home.Address,
		City:         home.City,
		Price:        home.Price,
		Bedrooms:     home.Bedrooms,
		Bathrooms:    home.Bathrooms,
		LandSize:     home.LandSize,
		PropertyType: home.PropertyType,
	}
	if len(home.Images) > 0 {
		resp.Image = home.Images[0].URL
	}
	return resp
}
