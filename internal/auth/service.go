// Package auth handles signup, signin and the product keys that gate
// non-buyer registration.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"homebase/server/internal/apperr"
	"homebase/server/internal/models"
	"homebase/server/internal/token"
)

type SignUpParams struct {
	Name     string
	Phone    string
	Email    string
	Password string
}

type Service struct {
	db        *gorm.DB
	tokens    *token.Service
	keySecret string
}

func NewService(db *gorm.DB, tokens *token.Service, keySecret string) *Service {
	return &Service{db: db, tokens: tokens, keySecret: keySecret}
}

// SignUp stores a new user with a bcrypt-hashed password and returns a
// freshly issued token. Duplicate emails are rejected.
func (s *Service) SignUp(params SignUpParams, role models.UserRole) (string, error) {
	var existing models.User
	err := s.db.Where("email = ?", params.Email).First(&existing).Error
	if err == nil {
		return "", apperr.New(apperr.Conflict, "user already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:     params.Name,
		Phone:    params.Phone,
		Email:    params.Email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	return s.tokens.Issue(user.ID, user.Name)
}

// SignIn checks credentials and returns a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) SignIn(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.New(apperr.InvalidCredentials, "invalid credentials")
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", apperr.New(apperr.InvalidCredentials, "invalid credentials")
	}

	return s.tokens.Issue(user.ID, user.Name)
}

// UserByID resolves a token subject against the users table.
func (s *Service) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &user, nil
}

// GenerateProductKey mints the pre-shared credential an admin hands to
// someone who wants to register as a realtor or admin.
func (s *Service) GenerateProductKey(email string, role models.UserRole) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.productKeyString(email, role)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash product key: %w", err)
	}
	return string(hash), nil
}

// VerifyProductKey reports whether key was minted for this email/role pair.
func (s *Service) VerifyProductKey(key, email string, role models.UserRole) bool {
	return bcrypt.CompareHashAndPassword([]byte(key), []byte(s.productKeyString(email, role))) == nil
}

func (s *Service) productKeyString(email string, role models.UserRole) string {
	return fmt.Sprintf("%s-%s-%s", email, role, s.keySecret)
}
