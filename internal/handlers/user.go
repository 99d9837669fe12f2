package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryoptimus/DevStorm-backend/internal/dto"
	apierrors "github.com/ryoptimus/DevStorm-backend/internal/errors"
	"github.com/ryoptimus/DevStorm-backend/internal/middleware"
	"github.com/ryoptimus/DevStorm-backend/internal/services"
)

// UserHandler serves account-level endpoints.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns all accounts.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		if errors.Is(err, services.ErrNoUsers) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// GetUser returns one account by username.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Param("username"))
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetCurrentUser returns the authenticated caller's account.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.userService.GetUser(username)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdatePassword changes the caller's own credential after verifying the
// current one.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	if c.Param("username") != username {
		apierrors.Forbidden(c, "Cannot change another user's password")
		return
	}

	type UpdatePasswordRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.UpdatePassword(username, req.CurrentPassword, req.NewPassword); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated successfully",
	})
}

// ConfirmAccount marks an account confirmed.
func (h *UserHandler) ConfirmAccount(c *gin.Context) {
	if err := h.userService.ConfirmAccount(c.Param("username")); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account confirmed",
	})
}

// DeleteAccount removes the caller's own account with its full cascade.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	if c.Param("username") != username {
		apierrors.Forbidden(c, "Cannot delete another user's account")
		return
	}

	if err := h.userService.DeleteAccount(username); err != nil {
		respondUserError(c, err)
		return
	}

	clearTokenCookies(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidOldPassword):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
