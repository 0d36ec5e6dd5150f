package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"photostudio-server/config"
	"photostudio-server/middleware"
	"photostudio-server/models"
	"photostudio-server/services"
	"photostudio-server/store"
	ws "photostudio-server/websocket"
)

// BookingHandler runs the booking flow: validate the submitted form, notify
// the studio by email, and only then commit the booking to the store.
type BookingHandler struct {
	Store  *store.Store
	Mailer services.Mailer
	Drafts *services.DraftService
	Hub    *ws.Hub
}

// Register registers booking routes. Submission is public (the form asks
// for contact details, not an account); reads require authentication.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.submitBooking)

	authed := router.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/mine", h.myBookings)
		authed.GET("/:id", h.getBooking)
	}
}

// submitBooking validates the form, sends the studio notification and
// commits the booking. On email-send failure nothing is committed.
func (h *BookingHandler) submitBooking(c *gin.Context) {
	var form models.BookingDraft
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	result := store.ValidateBookingForm(form, time.Now())
	if !result.IsValid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"errors": result.Errors,
		})
		return
	}

	ctx := c.Request.Context()

	pkg, err := h.Store.PackageBySlug(ctx, form.PackageSlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Validation failed",
				"errors": []store.FieldError{
					{Field: "package_slug", Message: "Selected package does not exist"},
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load package"})
		return
	}

	// Drop add-ons that do not belong to the chosen package's catalog
	kept, removed := store.PruneAddOns(form.AddOnSlugs, pkg.AddOns)
	if len(removed) > 0 {
		log.Printf("✂️ Pruned %d add-ons not offered by package %s", len(removed), pkg.Slug)
	}

	reference := uuid.NewString()

	addOnNames := make([]string, 0, len(kept))
	for _, addon := range pkg.AddOns {
		for _, slug := range kept {
			if addon.Slug == slug {
				addOnNames = append(addOnNames, addon.Name)
			}
		}
	}

	// Notify the studio first; the booking is only committed after the
	// relay accepts the message.
	subject := services.BookingEmailSubject(form)
	body := services.BookingEmailBody(form, reference, pkg.Name, addOnNames)
	if err := h.Mailer.Send(ctx, config.AppConfig.Mail.StudioInbox, subject, body); err != nil {
		log.Printf("❌ Booking email failed for %s: %v", form.ClientEmail, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Email delivery failed",
			"message": err.Error(),
		})
		return
	}

	booking := &models.Booking{
		Reference:   reference,
		ClientName:  form.ClientName,
		ClientEmail: form.ClientEmail,
		Phone:       form.Phone,
		PackageSlug: form.PackageSlug,
		Date:        form.Date,
		Venue:       form.Venue,
		Notes:       form.Notes,
		AddOnSlugs:  models.StringList(kept),
		Status:      models.BookingStatusPending,
	}

	if err := h.Store.AddBooking(ctx, booking); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save booking"})
		return
	}

	// Submission succeeded; the resumable draft is no longer needed
	if err := h.Drafts.Clear(ctx, form.ClientEmail); err != nil {
		log.Printf("⚠️ Failed to clear draft for %s: %v", form.ClientEmail, err)
	}

	h.Hub.Publish(ws.EventBookingCreated, gin.H{
		"booking_id": booking.ID,
		"reference":  booking.Reference,
		"client":     booking.ClientName,
		"package":    booking.PackageSlug,
		"date":       booking.Date,
	})

	log.Printf("✅ Booking %s created for %s", booking.Reference, booking.ClientEmail)

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Booking submitted successfully",
		"booking":         booking,
		"removed_add_ons": removed,
	})
}

// myBookings returns the authenticated client's bookings
func (h *BookingHandler) myBookings(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	bookings, err := h.Store.BookingsByEmail(c.Request.Context(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// getBooking returns one booking. Clients can only read their own; admins
// can read any.
func (h *BookingHandler) getBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	booking, err := h.Store.BookingByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		return
	}

	user := c.MustGet("user").(models.User)
	if !user.IsAdmin() && booking.ClientEmail != user.Email {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
