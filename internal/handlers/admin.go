package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rentspot/rentspot-api/internal/dto"
	apierrors "github.com/rentspot/rentspot-api/internal/errors"
	"github.com/rentspot/rentspot-api/internal/middleware"
	"github.com/rentspot/rentspot-api/internal/models"
	"github.com/rentspot/rentspot-api/internal/services"
	"github.com/rentspot/rentspot-api/internal/utils"
)

// AdminHandler coordinates admin-only user management and platform stats.
type AdminHandler struct {
	userService *services.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService *services.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// ListUsers returns the paginated user table.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.List(params)
	if err != nil {
		apierrors.InternalError(c, "Error fetching users")
		return
	}

	items := make([]dto.UserDTO, len(users))
	for i, user := range users {
		items[i] = dto.ToUserDTO(user)
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      items,
		"pagination": utils.NewPaginationResponse(total, params),
	})
}

// GetUser returns one account by ID.
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})
}

type updateRoleRequest struct {
	Role *models.UserRole `json:"role" binding:"required"`
}

// UpdateUserRole changes an account's role.
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Role == nil {
		apierrors.BadRequest(c, "Role is required")
		return
	}

	actorID, _ := middleware.GetUserID(c)

	if err := h.userService.UpdateRole(id, *req.Role, actorID); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User role updated successfully"})
}

// DeleteUser soft-deletes an account.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	actorID, _ := middleware.GetUserID(c)

	if err := h.userService.Delete(id, actorID); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// Stats returns platform-wide counts for the admin dashboard.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.userService.DashboardStats()
	if err != nil {
		apierrors.InternalError(c, "Error fetching platform stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
