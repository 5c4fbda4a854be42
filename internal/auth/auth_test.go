package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signToken(t *testing.T, claims Claims, key string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func validClaims() Claims {
	return Claims{
		Email: "asha@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestVerifier_Verify(t *testing.T) {
	v := NewVerifier(secret)

	identity, err := v.Verify(signToken(t, validClaims(), secret))

	require.NoError(t, err)
	assert.Equal(t, &domain.Identity{UserID: "u-1", Email: "asha@example.com", Role: "authenticated"}, identity)
}

func TestVerifier_Verify_Rejects(t *testing.T) {
	v := NewVerifier(secret)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noSubject := validClaims()
	noSubject.Subject = ""

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	testCases := []struct {
		name  string
		token string
	}{
		{"wrong key", signToken(t, validClaims(), "other-secret")},
		{"expired", signToken(t, expired, secret)},
		{"no subject", signToken(t, noSubject, secret)},
		{"no expiry", signToken(t, noExpiry, secret)},
		{"garbage", "not-a-token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			identity, err := v.Verify(tc.token)
			assert.Error(t, err)
			assert.Nil(t, identity)
		})
	}
}

func runMiddleware(t *testing.T, header string) (*httptest.ResponseRecorder, *domain.Identity, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen *domain.Identity
	reached := false
	router := gin.New()
	router.Use(Middleware(NewVerifier(secret)))
	router.GET("/", func(c *gin.Context) {
		reached = true
		seen = ContextProvider{}.CurrentIdentity(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	router.ServeHTTP(w, req)
	return w, seen, reached
}

func TestMiddleware_Anonymous(t *testing.T) {
	w, identity, reached := runMiddleware(t, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
	assert.Nil(t, identity)
}

func TestMiddleware_ValidToken(t *testing.T) {
	w, identity, _ := runMiddleware(t, "Bearer "+signToken(t, validClaims(), secret))
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, identity)
	assert.Equal(t, "u-1", identity.UserID)
}

func TestMiddleware_InvalidToken(t *testing.T) {
	w, _, reached := runMiddleware(t, "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)

	w, _, reached = runMiddleware(t, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}
