package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rentspot/rentspot-api/internal/models"
	"github.com/rentspot/rentspot-api/internal/repository"
	"github.com/rentspot/rentspot-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrWrongPassword     = errors.New("current password is incorrect")
	ErrInvalidRole       = errors.New("invalid role value")
	ErrSelfRoleChange    = errors.New("cannot change your own admin role")
	ErrSelfDelete        = errors.New("cannot delete your own account")
	ErrOwnsActiveListing = errors.New("user still owns active properties")
)

// UserService handles profile management, saved listings, and admin user
// management.
type UserService struct {
	userRepo     repository.UserRepository
	propertyRepo repository.PropertyRepository
	favoriteRepo repository.FavoriteRepository
	bookingRepo  repository.BookingRepository
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repository.UserRepository,
	propertyRepo repository.PropertyRepository,
	favoriteRepo repository.FavoriteRepository,
	bookingRepo repository.BookingRepository,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		favoriteRepo: favoriteRepo,
		bookingRepo:  bookingRepo,
	}
}

// Get retrieves a user by ID.
func (s *UserService) Get(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfileInput represents a partial profile update.
type UpdateProfileInput struct {
	Name        *string
	Phone       *string
	AvatarURL   *string
	DateOfBirth *time.Time
}

// UpdateProfile applies a partial update to the caller's own profile.
func (s *UserService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// UpdateAvatar stores a new avatar URL for the caller.
func (s *UserService) UpdateAvatar(userID uint64, avatarURL string) (*models.User, error) {
	return s.UpdateProfile(userID, UpdateProfileInput{AvatarURL: &avatarURL})
}

// ChangePassword verifies the current password and stores a new hash.
func (s *UserService) ChangePassword(userID uint64, currentPassword, newPassword string) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	if err := s.userRepo.UpdatePassword(userID, string(hashed)); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

// Favorites returns the user's saved listings.
func (s *UserService) Favorites(userID uint64) ([]models.Favorite, error) {
	return s.favoriteRepo.ListByUser(userID)
}

// List returns users for the admin user table.
func (s *UserService) List(params utils.PaginationParams) ([]models.User, int64, error) {
	return s.userRepo.List(params)
}

// UpdateRole sets a user's role. An admin cannot demote themselves; that
// guard keeps the platform from losing its last admin by accident.
func (s *UserService) UpdateRole(targetID uint64, role models.UserRole, actorID uint64) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}

	if targetID == actorID && role != models.RoleAdmin {
		return ErrSelfRoleChange
	}

	if _, err := s.Get(targetID); err != nil {
		return err
	}

	if err := s.userRepo.UpdateRole(targetID, role); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

// Delete soft-deletes an account by moving its role to the deleted tier. The
// row survives so owned listings keep a resolvable owner. Admins cannot
// delete themselves, and an account owning non-removed properties must
// transfer or remove them first.
func (s *UserService) Delete(targetID, actorID uint64) error {
	if targetID == actorID {
		return ErrSelfDelete
	}

	if _, err := s.Get(targetID); err != nil {
		return err
	}

	active, err := s.propertyRepo.CountActiveByOwner(targetID)
	if err != nil {
		return fmt.Errorf("failed to count properties: %w", err)
	}
	if active > 0 {
		return ErrOwnsActiveListing
	}

	if err := s.userRepo.UpdateRole(targetID, models.RoleDeleted); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// PlatformStats is the admin dashboard aggregate.
type PlatformStats struct {
	Users      repository.UserBreakdown `json:"users"`
	Properties int64                    `json:"properties"`
	Bookings   int64                    `json:"bookings"`
}

// DashboardStats aggregates platform-wide counts for the admin overview.
func (s *UserService) DashboardStats() (*PlatformStats, error) {
	breakdown, err := s.userRepo.Breakdown()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate users: %w", err)
	}

	properties, err := s.propertyRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}

	bookings, err := s.bookingRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	return &PlatformStats{
		Users:      *breakdown,
		Properties: properties,
		Bookings:   bookings,
	}, nil
}
