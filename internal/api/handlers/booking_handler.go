package handlers

import (
	"net/http"
	"time"

	"bajaj-rental-api-server/internal/api/middleware"
	"bajaj-rental-api-server/internal/booking"
	"bajaj-rental-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	Service *booking.Service
}

type CreateBookingPayload struct {
	VehicleID string `json:"vehicleId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

type UpdateStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// statusFor maps a service error kind to an HTTP status code.
func statusFor(err error) int {
	switch booking.KindOf(err) {
	case booking.KindInvalidInput:
		return http.StatusBadRequest
	case booking.KindNotFound:
		return http.StatusNotFound
	case booking.KindConflict:
		return http.StatusConflict
	case booking.KindForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// parseDate accepts both RFC3339 timestamps and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user authentication"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// CreateBooking reserves a vehicle for the authenticated caller.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var payload CreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	vehicleID, err := primitive.ObjectIDFromHex(payload.VehicleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	start, err := parseDate(payload.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
		return
	}
	end, err := parseDate(payload.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date"})
		return
	}

	details, err := h.Service.Create(c.Request.Context(), userID, vehicleID, start, end)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, details)
}

// MyBookings lists the caller's bookings, newest first.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	bookings, err := h.Service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// AllBookings lists every booking. The service rejects non-admin callers.
func (h *BookingHandler) AllBookings(c *gin.Context) {
	bookings, err := h.Service.ListAll(c.Request.Context(), c.GetString(middleware.CtxRole))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// UpdateStatus moves a booking to a new status. Admins may update any
// booking, users only their own; the service enforces both.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var payload UpdateStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	details, err := h.Service.SetStatus(c.Request.Context(), bookingID, userID,
		c.GetString(middleware.CtxRole), models.Status(payload.Status))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, details)
}

// DeleteBooking removes a booking and releases its vehicle. Admin only.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	if err := h.Service.Delete(c.Request.Context(), bookingID, c.GetString(middleware.CtxRole)); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
