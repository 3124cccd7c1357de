package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homebase/server/internal/auth"
	"homebase/server/internal/models"
)

type signUpRequest struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone" binding:"required,inphone"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	ProductKey string `json:"productKey"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type productKeyRequest struct {
	Email    string `json:"email" binding:"required,email"`
	UserType string `json:"userType" binding:"required"`
}

// SignUp handles POST /auth/signup/:userType. Non-buyer roles must
// present a product key minted for their email/role pair.
func (h *Handler) SignUp(c *gin.Context) {
	role, ok := models.ParseUserRole(c.Param("userType"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user type"})
		return
	}

	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if role != models.RoleBuyer {
		if req.ProductKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "product key is required"})
			return
		}
		if !h.auth.VerifyProductKey(req.ProductKey, req.Email, role) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid product key"})
			return
		}
	}

	tok, err := h.auth.SignUp(auth.SignUpParams{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
	}, role)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": tok})
}

func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tok, err := h.auth.SignIn(req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tok})
}

// GenerateProductKey handles POST /auth/key. The endpoint is public,
// matching the product behavior it reproduces.
func (h *Handler) GenerateProductKey(c *gin.Context) {
	var req productKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	role, ok := models.ParseUserRole(req.UserType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user type"})
		return
	}

	key, err := h.auth.GenerateProductKey(req.Email, role)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"productKey": key})
}

// Me returns the caller's token-derived identity.
func (h *Handler) Me(c *gin.Context) {
	raw, err := bearerToken(c)
	if err != nil {
		h.denyRequest(c)
		return
	}

	claims, err := h.tokens.Verify(raw)
	if err != nil {
		h.denyRequest(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   claims.ID,
		"name": claims.Name,
		"iat":  claims.IssuedAt.Unix(),
		"exp":  claims.ExpiresAt.Unix(),
	})
}
