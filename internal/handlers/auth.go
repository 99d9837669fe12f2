package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryoptimus/DevStorm-backend/internal/auth"
	"github.com/ryoptimus/DevStorm-backend/internal/config"
	"github.com/ryoptimus/DevStorm-backend/internal/constants"
	"github.com/ryoptimus/DevStorm-backend/internal/dto"
	apierrors "github.com/ryoptimus/DevStorm-backend/internal/errors"
	"github.com/ryoptimus/DevStorm-backend/internal/logger"
	"github.com/ryoptimus/DevStorm-backend/internal/mailer"
	"github.com/ryoptimus/DevStorm-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// AuthHandler coordinates registration, login, logout, and token refresh.
type AuthHandler struct {
	authService *services.AuthService
	blocklist   *auth.Blocklist
	mailer      *mailer.Mailer
	cfg         *config.Config
}

// NewAuthHandler creates a new AuthHandler. mail may be nil when SMTP is
// not configured.
func NewAuthHandler(authService *services.AuthService, blocklist *auth.Blocklist, mail *mailer.Mailer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		blocklist:   blocklist,
		mailer:      mail,
		cfg:         cfg,
	}
}

// Register creates a new account and logs the caller straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required,min=3,max=50"`
		Password string `json:"password" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	// Confirmation mail is best-effort; registration stands either way.
	if h.mailer != nil {
		confirmURL := fmt.Sprintf("%s/user/%s/confirm", h.cfg.FrontendOrigin, user.Username)
		if err := h.mailer.SendConfirmation(user.Email, user.Username, confirmURL); err != nil {
			logger.WithFields(logrus.Fields{"username": user.Username}).
				WithError(err).Warn("failed to send confirmation email")
		}
	}

	if err := h.setTokenCookies(c, user.Username); err != nil {
		apierrors.InternalError(c, "Failed to issue tokens")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful, you are now logged in",
		"user":    dto.ToUserDTO(*user),
	})
}

// Login authenticates a user and sets the token cookies.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := h.setTokenCookies(c, user.Username); err != nil {
		apierrors.InternalError(c, "Failed to issue tokens")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login verified",
		"user":    dto.ToUserDTO(*user),
	})
}

// Logout revokes whatever tokens the request carries and clears the
// cookies. Expired or absent tokens are skipped, not errors.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.revokeCookieToken(c, constants.AccessTokenCookie)
	h.revokeCookieToken(c, constants.RefreshTokenCookie)

	clearTokenCookies(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}

// Refresh rotates the access token off a valid refresh token. The old
// refresh token's jti goes to the blocklist.
func (h *AuthHandler) Refresh(c *gin.Context) {
	tokenString, err := c.Cookie(constants.RefreshTokenCookie)
	if err != nil || tokenString == "" {
		apierrors.Unauthorized(c, "Refresh token required")
		return
	}

	claims, err := auth.ParseToken(tokenString, h.cfg.JWTSecret)
	if err != nil || claims.TokenType != auth.TokenTypeRefresh {
		apierrors.Unauthorized(c, "Invalid refresh token")
		return
	}

	if h.blocklist != nil {
		revoked, err := h.blocklist.Contains(c.Request.Context(), claims.ID)
		if err != nil {
			apierrors.InternalError(c, "Failed to verify token")
			return
		}
		if revoked {
			apierrors.Unauthorized(c, "Refresh token has been revoked")
			return
		}
		if err := h.blocklist.Revoke(c.Request.Context(), claims.ID, constants.RefreshTokenTTL); err != nil {
			apierrors.InternalError(c, "Failed to revoke token")
			return
		}
	}

	pair, err := auth.GenerateTokenPair(claims.Username, h.cfg.JWTSecret)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue tokens")
		return
	}
	setCookie(c, constants.AccessTokenCookie, pair.AccessToken, int(constants.AccessTokenTTL.Seconds()))
	setCookie(c, constants.RefreshTokenCookie, pair.RefreshToken, int(constants.RefreshTokenTTL.Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"message": "Access token refreshed",
	})
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, username string) error {
	pair, err := auth.GenerateTokenPair(username, h.cfg.JWTSecret)
	if err != nil {
		return err
	}
	setCookie(c, constants.AccessTokenCookie, pair.AccessToken, int(constants.AccessTokenTTL.Seconds()))
	setCookie(c, constants.RefreshTokenCookie, pair.RefreshToken, int(constants.RefreshTokenTTL.Seconds()))
	return nil
}

func (h *AuthHandler) revokeCookieToken(c *gin.Context, cookieName string) {
	tokenString, err := c.Cookie(cookieName)
	if err != nil || tokenString == "" {
		return
	}
	claims, err := auth.ParseToken(tokenString, h.cfg.JWTSecret)
	if err != nil {
		return
	}
	if h.blocklist == nil {
		return
	}
	if err := h.blocklist.Revoke(c.Request.Context(), claims.ID, constants.RefreshTokenTTL); err != nil {
		logger.L().WithError(err).Warn("failed to blocklist token on logout")
	}
}

func setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetCookie(name, value, maxAge, "/", "", false, true)
}

func clearTokenCookies(c *gin.Context) {
	setCookie(c, constants.AccessTokenCookie, "", -1)
	setCookie(c, constants.RefreshTokenCookie, "", -1)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
