package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ryoptimus/DevStorm-backend/internal/config"
	"github.com/ryoptimus/DevStorm-backend/internal/constants"
	"github.com/ryoptimus/DevStorm-backend/internal/models"
	"github.com/ryoptimus/DevStorm-backend/internal/repository"
	"github.com/ryoptimus/DevStorm-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AuthHandlerTestSuite defines the test suite for AuthHandler
type AuthHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *AuthHandler
}

// SetupTest runs before each test
func (suite *AuthHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	authService := services.NewAuthService(repository.NewUserRepository(suite.db))
	cfg := &config.Config{JWTSecret: "test-secret", GinMode: gin.TestMode}

	// No blocklist or mailer: logout and refresh need Redis, the paths
	// under test here do not.
	suite.handler = NewAuthHandler(authService, nil, nil, cfg)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *AuthHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create a JSON request context
func (suite *AuthHandlerTestSuite) createJSONContext(method, url string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(method, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func (suite *AuthHandlerTestSuite) register(username string) {
	c, w := suite.createJSONContext("POST", "/register", map[string]interface{}{
		"email":    username + "@example.com",
		"username": username,
		"password": "correct horse battery",
	})
	suite.handler.Register(c)
	suite.Require().Equal(http.StatusCreated, w.Code)
}

// TestRegister_Success tests successful registration
func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	c, w := suite.createJSONContext("POST", "/register", map[string]interface{}{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "correct horse battery",
	})

	suite.handler.Register(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), response, "user")

	user := response["user"].(map[string]interface{})
	assert.Equal(suite.T(), "alice", user["username"])
	assert.NotContains(suite.T(), user, "password_hash")

	// Both token cookies are set
	cookies := w.Result().Cookies()
	names := make([]string, len(cookies))
	for i, cookie := range cookies {
		names[i] = cookie.Name
	}
	assert.Contains(suite.T(), names, constants.AccessTokenCookie)
	assert.Contains(suite.T(), names, constants.RefreshTokenCookie)
}

// TestRegister_InvalidBody tests registration with a malformed payload
func (suite *AuthHandlerTestSuite) TestRegister_InvalidBody() {
	c, w := suite.createJSONContext("POST", "/register", map[string]interface{}{
		"email":    "not-an-email",
		"username": "alice",
		"password": "correct horse battery",
	})

	suite.handler.Register(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestRegister_ShortPassword tests the minimum password length
func (suite *AuthHandlerTestSuite) TestRegister_ShortPassword() {
	c, w := suite.createJSONContext("POST", "/register", map[string]interface{}{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "short",
	})

	suite.handler.Register(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestRegister_DuplicateUsername tests registering a taken username
func (suite *AuthHandlerTestSuite) TestRegister_DuplicateUsername() {
	suite.register("alice")

	c, w := suite.createJSONContext("POST", "/register", map[string]interface{}{
		"email":    "other@example.com",
		"username": "alice",
		"password": "correct horse battery",
	})

	suite.handler.Register(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

// TestLogin_Success tests login with valid credentials
func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	suite.register("alice")

	c, w := suite.createJSONContext("POST", "/login", map[string]interface{}{
		"username": "alice",
		"password": "correct horse battery",
	})

	suite.handler.Login(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Login verified", response["message"])
}

// TestLogin_WrongPassword tests login with a bad credential
func (suite *AuthHandlerTestSuite) TestLogin_WrongPassword() {
	suite.register("alice")

	c, w := suite.createJSONContext("POST", "/login", map[string]interface{}{
		"username": "alice",
		"password": "wrong password",
	})

	suite.handler.Login(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestLogin_UnknownUser tests login for a missing account
func (suite *AuthHandlerTestSuite) TestLogin_UnknownUser() {
	c, w := suite.createJSONContext("POST", "/login", map[string]interface{}{
		"username": "ghost",
		"password": "whatever password",
	})

	suite.handler.Login(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestSuite runs the test suite
func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
