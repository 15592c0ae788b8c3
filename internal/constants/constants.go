package constants

import "time"

// Context keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
	TokenTTL          = time.Hour
)

// BookingLeadTime is the minimum interval between "now" and a booking's
// scheduled time. It is enforced at creation and again at cancellation.
const BookingLeadTime = 4 * time.Hour

// Inspection slot template
const (
	SlotTemplateDays  = 7
	MorningSlotHour   = 10
	AfternoonSlotHour = 14
)

// Uploads
const (
	MaxUploadSize  = 5 << 20 // 5 MB per image
	MaxUploadFiles = 10
)

// DefaultAvatarURL is assigned to newly registered users.
const DefaultAvatarURL = "/images/profile.png"
