package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentspot/rentspot-api/internal/dto"
	apierrors "github.com/rentspot/rentspot-api/internal/errors"
	"github.com/rentspot/rentspot-api/internal/middleware"
	"github.com/rentspot/rentspot-api/internal/models"
	"github.com/rentspot/rentspot-api/internal/services"
)

// BookingHandler coordinates inspection-booking HTTP handlers.
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// List returns the caller's bookings, newest inspection first.
func (h *BookingHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	bookings, err := h.bookingService.ListForUser(userID)
	if err != nil {
		apierrors.InternalError(c, "Error fetching bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": dto.ToBookingDTOs(bookings),
	})
}

type createBookingRequest struct {
	PropertyID uint64    `json:"propertyId" binding:"required"`
	Datetime   time.Time `json:"datetime" binding:"required"`
}

// Create books an inspection for the caller.
func (h *BookingHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Property ID and datetime are required")
		return
	}

	booking, err := h.bookingService.Create(services.CreateBookingInput{
		UserID:     userID,
		PropertyID: req.PropertyID,
		Datetime:   req.Datetime,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Inspection booked successfully",
		"booking": dto.ToBookingDTO(*booking),
	})
}

type updateBookingRequest struct {
	Status *models.BookingStatus `json:"status" binding:"required"`
}

// UpdateStatus transitions a booking through its lifecycle.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid booking ID")
		return
	}

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		apierrors.BadRequest(c, "Status is required")
		return
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	booking, err := h.bookingService.UpdateStatus(id, *req.Status, userID, role)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking " + booking.Status.String() + " successfully",
		"booking": dto.ToBookingDTO(*booking),
	})
}

// Cancel cancels the caller's booking, subject to the cancellation cutoff.
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid booking ID")
		return
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	if err := h.bookingService.Cancel(id, userID, role); err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking cancelled successfully",
	})
}

// Slots returns the inspection slot template for a property.
func (h *BookingHandler) Slots(c *gin.Context) {
	propertyID, err := strconv.ParseUint(c.Param("propertyId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid property ID")
		return
	}

	slots, err := h.bookingService.AvailableSlots(propertyID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"slots":   slots,
	})
}

// Stats returns booking statistics across the landlord's listings.
func (h *BookingHandler) Stats(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	stats, err := h.bookingService.LandlordStats(userID)
	if err != nil {
		apierrors.InternalError(c, "Error fetching booking stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

// ListForProperty returns bookings against one listing for its landlord.
func (h *BookingHandler) ListForProperty(c *gin.Context) {
	propertyID, err := strconv.ParseUint(c.Param("propertyId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid property ID")
		return
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	bookings, err := h.bookingService.ListForProperty(propertyID, userID, role)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": dto.ToBookingDTOs(bookings),
	})
}

func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		apierrors.NotFound(c, "Booking not found")
	case errors.Is(err, services.ErrPropertyNotFound):
		apierrors.NotFound(c, "Property not found")
	case errors.Is(err, services.ErrDatetimeRequired):
		apierrors.BadRequest(c, "Property ID and datetime are required")
	case errors.Is(err, services.ErrBookingLeadTime):
		apierrors.BadRequest(c, "Booking must be at least 4 hours in advance")
	case errors.Is(err, services.ErrCancelLeadTime):
		apierrors.BadRequest(c, "Cannot cancel booking less than 4 hours before inspection time")
	case errors.Is(err, services.ErrDuplicateBooking):
		apierrors.BadRequest(c, "You already have an active booking for this property")
	case errors.Is(err, services.ErrInvalidBookingStatus):
		apierrors.BadRequest(c, "Invalid status value")
	case errors.Is(err, services.ErrBookingForbidden):
		apierrors.Forbidden(c, "Not authorized for this booking")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
