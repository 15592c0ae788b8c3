package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentspot/rentspot-api/internal/database"
	"github.com/rentspot/rentspot-api/internal/middleware"
	"github.com/rentspot/rentspot-api/internal/models"
	"github.com/rentspot/rentspot-api/internal/repository"
	"github.com/rentspot/rentspot-api/internal/services"
	"github.com/rentspot/rentspot-api/internal/token"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type userTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *token.Manager
}

func setupUserTestEnv(t *testing.T) userTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyImage{},
		&models.Booking{},
		&models.Favorite{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	tokens := token.NewManager("test-secret", time.Hour)

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	userService := services.NewUserService(userRepo, propertyRepo, favoriteRepo, bookingRepo)
	handler := NewUserHandler(userService, nil)

	r := gin.New()
	users := r.Group("/api/users")
	users.Use(middleware.RequireAuth(tokens))
	{
		users.GET("/profile", handler.Profile)
		users.PUT("/profile", handler.UpdateProfile)
		users.POST("/change-password", handler.ChangePassword)
		users.GET("/favorites", handler.Favorites)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return userTestEnv{db: db, router: r, tokens: tokens}
}

func TestUserHandler_Profile(t *testing.T) {
	env := setupUserTestEnv(t)
	user, auth := createTestUser(t, env.db, env.tokens, "me@example.com", models.RoleRenter)

	w := doRequest(t, env.router, http.MethodGet, "/api/users/profile", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		User struct {
			ID    uint64 `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response.User.ID)
	require.Equal(t, "me@example.com", response.User.Email)

	// Password hashes never appear in responses.
	require.NotContains(t, w.Body.String(), "password")
}

func TestUserHandler_UpdateProfile_Partial(t *testing.T) {
	env := setupUserTestEnv(t)
	user, auth := createTestUser(t, env.db, env.tokens, "me@example.com", models.RoleRenter)

	w := doRequest(t, env.router, http.MethodPut, "/api/users/profile", map[string]interface{}{
		"phone": "0411222333",
	}, auth)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, env.db.First(&updated, user.ID).Error)
	require.Equal(t, "0411222333", updated.Phone)
	require.Equal(t, user.Name, updated.Name)
}

func TestUserHandler_ChangePassword(t *testing.T) {
	env := setupUserTestEnv(t)
	user, auth := createTestUser(t, env.db, env.tokens, "me@example.com", models.RoleRenter)

	// Wrong current password is rejected.
	w := doRequest(t, env.router, http.MethodPost, "/api/users/change-password", map[string]string{
		"currentPassword": "wrongpassword",
		"newPassword":     "newsecret123",
	}, auth)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Too-short replacement is rejected.
	w = doRequest(t, env.router, http.MethodPost, "/api/users/change-password", map[string]string{
		"currentPassword": "supersecret",
		"newPassword":     "short",
	}, auth)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, env.router, http.MethodPost, "/api/users/change-password", map[string]string{
		"currentPassword": "supersecret",
		"newPassword":     "newsecret123",
	}, auth)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, env.db.First(&updated, user.ID).Error)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newsecret123")))
}

func TestUserHandler_Favorites(t *testing.T) {
	env := setupUserTestEnv(t)
	owner, _ := createTestUser(t, env.db, env.tokens, "owner@example.com", models.RoleLandlord)
	renter, auth := createTestUser(t, env.db, env.tokens, "renter@example.com", models.RoleRenter)

	property := createTestProperty(t, env.db, owner.ID, "Saved", 500)
	require.NoError(t, env.db.Create(&models.Favorite{
		UserID:     renter.ID,
		PropertyID: property.ID,
	}).Error)

	w := doRequest(t, env.router, http.MethodGet, "/api/users/favorites", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Favorites []struct {
			Property struct {
				Title string `json:"title"`
			} `json:"property"`
		} `json:"favorites"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Favorites, 1)
	require.Equal(t, "Saved", response.Favorites[0].Property.Title)
}

func TestUserHandler_Unauthenticated(t *testing.T) {
	env := setupUserTestEnv(t)

	w := doRequest(t, env.router, http.MethodGet, "/api/users/profile", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, env.router, http.MethodGet, "/api/users/profile", nil, "Bearer not-a-token")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
