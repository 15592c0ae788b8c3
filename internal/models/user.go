package models

import "time"

// UserRole is the permission tier of an account. Deleted accounts keep their
// row with RoleDeleted so properties they own stay resolvable.
type UserRole int

const (
	RoleDeleted  UserRole = -1
	RoleRenter   UserRole = 0
	RoleLandlord UserRole = 1
	RoleAdmin    UserRole = 2
)

// IsValid reports whether r is an assignable role. RoleDeleted is excluded:
// it is only reachable through account deletion, never assignment.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleRenter, RoleLandlord, RoleAdmin:
		return true
	}
	return false
}

func (r UserRole) String() string {
	switch r {
	case RoleDeleted:
		return "deleted"
	case RoleRenter:
		return "renter"
	case RoleLandlord:
		return "landlord"
	case RoleAdmin:
		return "admin"
	}
	return "unknown"
}

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Phone        string     `gorm:"type:varchar(50)" json:"phone"`
	Role         UserRole   `gorm:"not null;default:0" json:"role"`
	AvatarURL    string     `gorm:"type:varchar(512)" json:"avatarUrl"`
	DateOfBirth  *time.Time `json:"dateOfBirth"`
	RegisteredAt time.Time  `gorm:"autoCreateTime" json:"registeredAt"`

	// Relations
	Properties []Property `gorm:"foreignKey:OwnerID" json:"-"`
	Bookings   []Booking  `gorm:"foreignKey:UserID" json:"-"`
	Favorites  []Favorite `gorm:"foreignKey:UserID" json:"-"`
}
