package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ryoptimus/DevStorm-backend/internal/auth"
	"github.com/ryoptimus/DevStorm-backend/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(testSecret, nil), func(c *gin.Context) {
		username, _ := GetUsername(c)
		c.JSON(http.StatusOK, gin.H{"username": username})
	})
	return r
}

func TestRequireAuth_ValidToken(t *testing.T) {
	r := setupRouter()

	pair, err := auth.GenerateTokenPair("alice", testSecret)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: constants.AccessTokenCookie, Value: pair.AccessToken})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	r := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	r := setupRouter()

	pair, err := auth.GenerateTokenPair("alice", testSecret)
	require.NoError(t, err)

	// A refresh token must not open protected routes
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: constants.AccessTokenCookie, Value: pair.RefreshToken})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_TamperedToken(t *testing.T) {
	r := setupRouter()

	pair, err := auth.GenerateTokenPair("alice", "other-secret")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: constants.AccessTokenCookie, Value: pair.AccessToken})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
