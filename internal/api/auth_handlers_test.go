package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homebase/server/internal/models"
)

func validSignUpBody() gin.H {
	return gin.H{
		"name":     "Asha Rao",
		"phone":    "+919876543210",
		"email":    "asha@example.com",
		"password": "longenough",
	}
}

func TestSignUpBuyer(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodPost, "/auth/signup/BUYER", "", validSignUpBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)

	claims, err := ts.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", claims.Name)

	user, err := ts.auth.UserByID(claims.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleBuyer, user.Role)
}

func TestSignUp_Validation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		mutate func(gin.H)
	}{
		{"missing name", func(b gin.H) { delete(b, "name") }},
		{"short password", func(b gin.H) { b["password"] = "short" }},
		{"not an email", func(b gin.H) { b["email"] = "not-an-email" }},
		{"non-indian phone", func(b gin.H) { b["phone"] = "+14155550123" }},
		{"phone too short", func(b gin.H) { b["phone"] = "98765" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validSignUpBody()
			tt.mutate(body)
			w := ts.request(t, http.MethodPost, "/auth/signup/BUYER", "", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSignUp_InvalidUserType(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodPost, "/auth/signup/LANDLORD", "", validSignUpBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodPost, "/auth/signup/BUYER", "", validSignUpBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.request(t, http.MethodPost, "/auth/signup/BUYER", "", validSignUpBody())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignUpRealtor_ProductKeyRequired(t *testing.T) {
	ts := newTestServer(t)

	// No key at all
	w := ts.request(t, http.MethodPost, "/auth/signup/REALTOR", "", validSignUpBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Key minted for a different email
	wrongKey, err := ts.auth.GenerateProductKey("someone-else@example.com", models.RoleRealtor)
	require.NoError(t, err)
	body := validSignUpBody()
	body["productKey"] = wrongKey
	w = ts.request(t, http.MethodPost, "/auth/signup/REALTOR", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Key minted through the public endpoint for the right pair
	w = ts.request(t, http.MethodPost, "/auth/key", "", gin.H{
		"email":    "asha@example.com",
		"userType": "REALTOR",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var keyResp struct {
		ProductKey string `json:"productKey"`
	}
	decode(t, w, &keyResp)

	body = validSignUpBody()
	body["productKey"] = keyResp.ProductKey
	w = ts.request(t, http.MethodPost, "/auth/signup/REALTOR", "", body)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestSignIn(t *testing.T) {
	ts := newTestServer(t)
	ts.signUpUser(t, models.RoleBuyer, "asha@example.com")

	w := ts.request(t, http.MethodPost, "/auth/signin", "", gin.H{
		"email":    "asha@example.com",
		"password": "longenough",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	_, err := ts.tokens.Verify(resp.Token)
	assert.NoError(t, err)
}

// Wrong password and unknown email produce the same response.
func TestSignIn_InvalidCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.signUpUser(t, models.RoleBuyer, "asha@example.com")

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
			w := ts.request(t, http.MethodPost, "/auth/signin", "", gin.H{
				"email":    tt.email,
				"password": tt.password,
			})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "invalid credentials")
		})
	}
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)
	bearer := ts.signUpUser(t, models.RoleBuyer, "asha@example.com")

	w := ts.request(t, http.MethodGet, "/auth/me", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
		Iat  int64  `json:"iat"`
		Exp  int64  `json:"exp"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "Test User", resp.Name)
	assert.NotZero(t, resp.ID)
	assert.Greater(t, resp.Exp, resp.Iat)
}

func TestMe_Denied(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		bearer string
	}{
		{"no token", ""},
		{"garbage token", "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.request(t, http.MethodGet, "/auth/me", tt.bearer, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
