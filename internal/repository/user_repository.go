package repository

import (
	"github.com/rentspot/rentspot-api/internal/database"
	"github.com/rentspot/rentspot-api/internal/models"
	"github.com/rentspot/rentspot-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateRole sets a user's role
func (r *GormUserRepository) UpdateRole(id uint64, role models.UserRole) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

// UpdatePassword sets a user's password hash
func (r *GormUserRepository) UpdatePassword(id uint64, passwordHash string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// List retrieves users newest-registration-first with a total count
func (r *GormUserRepository) List(params utils.PaginationParams) ([]models.User, int64, error) {
	var users []models.User

	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Order("registered_at DESC").
		Scopes(database.Paginate(params)).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Breakdown aggregates user counts per role for the admin dashboard
func (r *GormUserRepository) Breakdown() (*UserBreakdown, error) {
	var breakdown UserBreakdown
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total_users,
			SUM(CASE WHEN role = ? THEN 1 ELSE 0 END) AS renters,
			SUM(CASE WHEN role = ? THEN 1 ELSE 0 END) AS landlords,
			SUM(CASE WHEN role = ? THEN 1 ELSE 0 END) AS admins
		FROM users
	`, models.RoleRenter, models.RoleLandlord, models.RoleAdmin).
		Scan(&breakdown).Error
	if err != nil {
		return nil, err
	}
	return &breakdown, nil
}
