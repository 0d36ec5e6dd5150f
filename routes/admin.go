package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photostudio-server/models"
	"photostudio-server/store"
	ws "photostudio-server/websocket"
)

// AdminHandler serves the admin area: dashboard stats, booking lifecycle
// management and user management.
type AdminHandler struct {
	Store *store.Store
	Hub   *ws.Hub
}

// UpdateStatusRequest carries a booking status change
type UpdateStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

// Register registers admin routes. The group must already carry the auth
// and admin middleware.
func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/dashboard/stats", h.dashboardStats)

	router.GET("/bookings", h.listBookings)
	router.PATCH("/bookings/:id/status", h.updateBookingStatus)

	router.GET("/users", h.listUsers)
	router.PATCH("/users/:id/status", h.updateUserStatus)
}

// dashboardStats returns booking totals per status plus headline counts
func (h *AdminHandler) dashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	counts, err := h.Store.CountBookingsByStatus(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	var userCount int64
	if err := h.Store.DB().WithContext(ctx).Model(&models.User{}).Count(&userCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	c.JSON(http.StatusOK, gin.H{
		"total_bookings":     total,
		"bookings_by_status": counts,
		"total_users":        userCount,
		"connected_admins":   h.Hub.ClientCount(),
	})
}

// listBookings returns all bookings, newest first
func (h *AdminHandler) listBookings(c *gin.Context) {
	bookings, err := h.Store.Bookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// updateBookingStatus moves a booking through its lifecycle
func (h *AdminHandler) updateBookingStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	err = h.Store.UpdateBookingStatus(c.Request.Context(), uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, store.ErrInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status", "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		}
		return
	}

	h.Hub.Publish(ws.EventBookingStatusChanged, gin.H{
		"booking_id": id,
		"status":     req.Status,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Booking status updated"})
}

// listUsers returns all user accounts
func (h *AdminHandler) listUsers(c *gin.Context) {
	var users []models.User
	if err := h.Store.DB().WithContext(c.Request.Context()).
		Order("created_at desc").
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// updateUserStatus activates or deactivates an account
func (h *AdminHandler) updateUserStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	result := h.Store.DB().WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("is_active", *req.IsActive)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User status updated"})
}
