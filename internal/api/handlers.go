package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"homebase/server/internal/apperr"
	"homebase/server/internal/auth"
	"homebase/server/internal/inquiry"
	"homebase/server/internal/listing"
	"homebase/server/internal/models"
	"homebase/server/internal/token"
)

type Handler struct {
	auth      *auth.Service
	tokens    *token.Service
	listings  *listing.Service
	inquiries *inquiry.Service
	logger    *logrus.Logger
}

func NewHandler(authService *auth.Service, tokens *token.Service, listings *listing.Service, inquiries *inquiry.Service, logger *logrus.Logger) *Handler {
	return &Handler{
		auth:      authService,
		tokens:    tokens,
		listings:  listings,
		inquiries: inquiries,
		logger:    logger,
	}
}

type imagePayload struct {
	URL string `json:"url" binding:"required"`
}

type createHomeRequest struct {
	Address      string         `json:"address" binding:"required"`
	City         string         `json:"city" binding:"required"`
	Price        float64        `json:"price" binding:"required,gt=0"`
	Bedrooms     int            `json:"numberOfBedrooms" binding:"required,min=1"`
	Bathrooms    int            `json:"numberOfBathrooms" binding:"required,min=1"`
	LandSize     float64        `json:"landSize" binding:"required,gt=0"`
	PropertyType string         `json:"propertyType" binding:"required,oneof=RESIDENTIAL CONDO"`
	Images       []imagePayload `json:"images" binding:"required,dive"`
}

type updateHomeRequest struct {
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	Price        *float64 `json:"price" binding:"omitempty,gt=0"`
	Bedrooms     *int     `json:"numberOfBedrooms" binding:"omitempty,min=1"`
	Bathrooms    *int     `json:"numberOfBathrooms" binding:"omitempty,min=1"`
	LandSize     *float64 `json:"landSize" binding:"omitempty,gt=0"`
	PropertyType *string  `json:"propertyType" binding:"omitempty,oneof=RESIDENTIAL CONDO"`
}

type inquireRequest struct {
	Message string `json:"message" binding:"required"`
}

// GetHomes handles GET /home with optional city, minPrice, maxPrice and
// propertyType query filters.
func (h *Handler) GetHomes(c *gin.Context) {
	filter := listing.Filter{City: c.Query("city")}

	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minPrice"})
			return
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxPrice"})
			return
		}
		filter.MaxPrice = &v
	}
	if raw := c.Query("propertyType"); raw != "" {
		propertyType, ok := models.ParsePropertyType(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property type"})
			return
		}
		filter.PropertyType = propertyType
	}

	homes, err := h.listings.List(filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, homes)
}

func (h *Handler) GetHomeByID(c *gin.Context) {
	id, ok := homeID(c)
	if !ok {
		return
	}

	home, err := h.listings.GetByID(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, home)
}

func (h *Handler) CreateHome(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		h.denyRequest(c)
		return
	}

	var req createHomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	urls := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		urls = append(urls, img.URL)
	}

	home, err := h.listings.Create(listing.CreateParams{
		Address:      req.Address,
		City:         req.City,
		Price:        req.Price,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		LandSize:     req.LandSize,
		PropertyType: models.PropertyType(req.PropertyType),
		ImageURLs:    urls,
	}, identity.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, home)
}

func (h *Handler) UpdateHome(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		h.denyRequest(c)
		return
	}
	id, ok := homeID(c)
	if !ok {
		return
	}
	if !h.requireOwnership(c, id, identity) {
		return
	}

	var req updateHomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	params := listing.UpdateParams{
		Address:   req.Address,
		City:      req.City,
		Price:     req.Price,
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
		LandSize:  req.LandSize,
	}
	if req.PropertyType != nil {
		propertyType := models.PropertyType(*req.PropertyType)
		params.PropertyType = &propertyType
	}

	home, err := h.listings.Update(id, params)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, home)
}

func (h *Handler) DeleteHome(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		h.denyRequest(c)
		return
	}
	id, ok := homeID(c)
	if !ok {
		return
	}
	if !h.requireOwnership(c, id, identity) {
		return
	}

	if err := h.listings.Delete(id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) InquireHome(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		h.denyRequest(c)
		return
	}
	id, ok := homeID(c)
	if !ok {
		return
	}

	var req inquireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := h.inquiries.Create(identity.ID, id, req.Message)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

func (h *Handler) GetHomeMessages(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		h.denyRequest(c)
		return
	}
	id, ok := homeID(c)
	if !ok {
		return
	}
	if !h.requireOwnership(c, id, identity) {
		return
	}

	msgs, err := h.inquiries.ListFor(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, msgs)
}

// requireOwnership checks that the listing belongs to the requester. A
// mismatch is reported as the uniform unauthorized denial; a missing
// listing surfaces as 404 before any ownership comparison.
func (h *Handler) requireOwnership(c *gin.Context, id uint, identity *Identity) bool {
	owner, err := h.listings.GetOwner(id)
	if err != nil {
		h.respondError(c, err)
		return false
	}
	if owner.ID != identity.ID {
		h.respondError(c, apperr.New(apperr.Unauthorized, "not authorized"))
		return false
	}
	return true
}

func homeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid home id"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto status-coded responses. Anything
// without a declared kind is a 500 and gets logged; callers never see the
// underlying error text.
func (h *Handler) respondError(c *gin.Context, err error) {
	var appError *apperr.Error
	if errors.As(err, &appError) {
		c.JSON(statusFor(appError.Kind), gin.H{"error": appError.Message})
		return
	}

	h.logger.WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.InvalidCredentials:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
