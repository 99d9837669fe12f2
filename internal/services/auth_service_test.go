package services

import (
	"testing"

	"github.com/ryoptimus/DevStorm-backend/internal/models"
	"github.com/ryoptimus/DevStorm-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

// SetupTest runs before each test
func (suite *AuthServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	suite.service = NewAuthService(repository.NewUserRepository(suite.db))
}

// TearDownTest runs after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// TestRegister_Success tests account creation
func (suite *AuthServiceTestSuite) TestRegister_Success() {
	user, err := suite.service.Register(RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correct horse battery",
	})
	suite.Require().NoError(err)
	assert.NotZero(suite.T(), user.ID)
	assert.Equal(suite.T(), models.MembershipStandard, user.Membership)
	assert.False(suite.T(), user.Confirmed)
	assert.Equal(suite.T(), 0, user.Projects)
	assert.Equal(suite.T(), 0, user.ProjectsCompleted)

	// Credential is stored hashed, never verbatim
	assert.NotEqual(suite.T(), "correct horse battery", user.PasswordHash)
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery"))
	assert.NoError(suite.T(), err)
}

// TestRegister_ShortPassword tests the minimum length rule
func (suite *AuthServiceTestSuite) TestRegister_ShortPassword() {
	_, err := suite.service.Register(RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "short",
	})
	assert.ErrorIs(suite.T(), err, ErrPasswordTooShort)
}

// TestRegister_DuplicateUsername tests username uniqueness
func (suite *AuthServiceTestSuite) TestRegister_DuplicateUsername() {
	_, err := suite.service.Register(RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correct horse battery",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Register(RegisterInput{
		Email:    "other@example.com",
		Username: "alice",
		Password: "correct horse battery",
	})
	assert.ErrorIs(suite.T(), err, ErrUsernameTaken)
}

// TestRegister_DuplicateEmail tests email uniqueness
func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	_, err := suite.service.Register(RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correct horse battery",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Register(RegisterInput{
		Email:    "alice@example.com",
		Username: "alice2",
		Password: "correct horse battery",
	})
	assert.ErrorIs(suite.T(), err, ErrEmailTaken)
}

// TestLogin_Success tests credential verification
func (suite *AuthServiceTestSuite) TestLogin_Success() {
	_, err := suite.service.Register(RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correct horse battery",
	})
	suite.Require().NoError(err)

	user, err := suite.service.Login(LoginInput{
		Username: "alice",
		Password: "correct horse battery",
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "alice", user.Username)
}

// TestLogin_WrongPassword tests rejection of a bad credential
func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	_, err := suite.service.Register(RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correct horse battery",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Login(LoginInput{
		Username: "alice",
		Password: "wrong password",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

// TestLogin_UnknownUser tests login for a missing account
func (suite *AuthServiceTestSuite) TestLogin_UnknownUser() {
	_, err := suite.service.Login(LoginInput{
		Username: "ghost",
		Password: "whatever password",
	})
	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

// TestSuite runs the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
