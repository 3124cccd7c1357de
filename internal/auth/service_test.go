package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"homebase/server/internal/apperr"
	"homebase/server/internal/models"
	"homebase/server/internal/token"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	return NewService(db, token.NewService("test-secret"), "test-product-secret")
}

func validSignUp() SignUpParams {
	return SignUpParams{
		Name:     "Asha Rao",
		Phone:    "+919876543210",
		Email:    "asha@example.com",
		Password: "longenough",
	}
}

func TestSignUp(t *testing.T) {
	svc := newTestService(t)

	tok, err := svc.SignUp(validSignUp(), models.RoleBuyer)
	require.NoError(t, err)

	claims, err := svc.tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", claims.Name)

	user, err := svc.UserByID(claims.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleBuyer, user.Role)

	// Password is stored hashed, never plaintext
	assert.NotEqual(t, "longenough", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("longenough")))
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SignUp(validSignUp(), models.RoleBuyer)
	require.NoError(t, err)

	_, err = svc.SignUp(validSignUp(), models.RoleRealtor)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))
}

func TestSignIn(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.SignUp(validSignUp(), models.RoleBuyer)
	require.NoError(t, err)

	tok, err := svc.SignIn("asha@example.com", "longenough")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
}

func TestSignIn_BadCredentials(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.SignUp(validSignUp(), models.RoleBuyer)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "asha@example.com", "wrongpassword"},
		{"unknown email", "nobody@example.com", "longenough"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignIn(tt.email, tt.password)
			assert.True(t, apperr.IsKind(err, apperr.InvalidCredentials))
		})
	}
}

func TestUserByID_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UserByID(999)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestProductKey(t *testing.T) {
	svc := newTestService(t)

	key, err := svc.GenerateProductKey("realtor@example.com", models.RoleRealtor)
	require.NoError(t, err)

	assert.True(t, svc.VerifyProductKey(key, "realtor@example.com", models.RoleRealtor))

	// Key is bound to both the email and the role
	assert.False(t, svc.VerifyProductKey(key, "other@example.com", models.RoleRealtor))
	assert.False(t, svc.VerifyProductKey(key, "realtor@example.com", models.RoleAdmin))
	assert.False(t, svc.VerifyProductKey("not-a-key", "realtor@example.com", models.RoleRealtor))
}
