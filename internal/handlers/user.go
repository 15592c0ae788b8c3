package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentspot/rentspot-api/internal/constants"
	"github.com/rentspot/rentspot-api/internal/dto"
	apierrors "github.com/rentspot/rentspot-api/internal/errors"
	"github.com/rentspot/rentspot-api/internal/middleware"
	"github.com/rentspot/rentspot-api/internal/services"
	"github.com/rentspot/rentspot-api/internal/storage"
)

// UserHandler coordinates profile and saved-listing HTTP handlers.
type UserHandler struct {
	userService *services.UserService
	images      storage.ImageStore
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, images storage.ImageStore) *UserHandler {
	return &UserHandler{
		userService: userService,
		images:      images,
	}
}

// Profile returns the caller's own account.
func (h *UserHandler) Profile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	user, err := h.userService.Get(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})
}

type updateProfileRequest struct {
	Name        *string    `json:"name"`
	Phone       *string    `json:"phone"`
	AvatarURL   *string    `json:"avatarUrl"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
}

// UpdateProfile applies a partial update to the caller's profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(userID, services.UpdateProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		AvatarURL:   req.AvatarURL,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    dto.ToUserDTO(*user),
	})
}

// UploadAvatar stores a new avatar image for the caller.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		apierrors.BadRequest(c, "No avatar file provided")
		return
	}

	if !middleware.ValidImageUpload(file) {
		apierrors.BadRequest(c, "Only image files are allowed")
		return
	}

	src, err := file.Open()
	if err != nil {
		apierrors.InternalError(c, "Error uploading avatar")
		return
	}
	defer src.Close()

	url, err := h.images.Save(file.Filename, src)
	if err != nil {
		apierrors.InternalError(c, "Error uploading avatar")
		return
	}

	userID, _ := middleware.GetUserID(c)
	user, err := h.userService.UpdateAvatar(userID, url)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Avatar updated successfully",
		"avatarUrl": user.AvatarURL,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ChangePassword verifies the current password and stores a new one.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Current and new password are required")
		return
	}

	if len(req.NewPassword) < constants.MinPasswordLength {
		apierrors.BadRequest(c, "Password must be at least 8 characters long")
		return
	}

	if err := h.userService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// Favorites returns the caller's saved listings.
func (h *UserHandler) Favorites(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	favorites, err := h.userService.Favorites(userID)
	if err != nil {
		apierrors.InternalError(c, "Error fetching favorites")
		return
	}

	items := make([]dto.FavoriteDTO, len(favorites))
	for i, favorite := range favorites {
		items[i] = dto.ToFavoriteDTO(favorite)
	}

	c.JSON(http.StatusOK, gin.H{"favorites": items})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrWrongPassword):
		apierrors.BadRequest(c, "Current password is incorrect")
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, "Password must be at least 8 characters long")
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, "Failed to process password")
	case errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, "Invalid role value")
	case errors.Is(err, services.ErrSelfRoleChange):
		apierrors.Forbidden(c, "You cannot change your own admin role")
	case errors.Is(err, services.ErrSelfDelete):
		apierrors.BadRequest(c, "You cannot delete your own account")
	case errors.Is(err, services.ErrOwnsActiveListing):
		apierrors.Conflict(c, "User still owns active properties")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
