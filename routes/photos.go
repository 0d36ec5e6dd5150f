package routes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"photostudio-server/config"
	"photostudio-server/models"
	"photostudio-server/store"
	ws "photostudio-server/websocket"
)

// Uploader stores an uploaded image and returns its public URL
type Uploader interface {
	Upload(ctx context.Context, file multipart.File, filename, folder string) (string, error)
}

// CloudinaryUploader sends images to Cloudinary
type CloudinaryUploader struct{}

func (CloudinaryUploader) Upload(ctx context.Context, file multipart.File, filename, folder string) (string, error) {
	cfg := config.AppConfig.Cloudinary
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return "", errors.New("cloudinary not configured")
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", cfg.APIKey, cfg.APISecret, cfg.CloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return "", err
	}

	publicID := fmt.Sprintf("%s/%d_%s", folder, time.Now().UnixNano(),
		strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: publicID,
		Folder:   folder,
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

// validateImageFile validates extension and size (<= 10MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 10*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// PhotoHandler manages a booking's photo set: upload, print-workflow status,
// selection toggling and the admin-entered counters.
type PhotoHandler struct {
	Store    *store.Store
	Uploader Uploader
	Hub      *ws.Hub
}

// Register registers photo management routes under the admin group
func (h *PhotoHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings/:id/photos", h.uploadPhoto)
	router.PATCH("/bookings/:id/photos/:photoId/status", h.updatePhotoStatus)
	router.POST("/bookings/:id/photos/:photoId/toggle", h.togglePhotoSelection)
	router.PATCH("/bookings/:id/photo-counts", h.updatePhotoCount)
}

func parseIDPair(c *gin.Context) (bookingID, photoID uint, ok bool) {
	bid, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return 0, 0, false
	}
	pid, err := strconv.ParseUint(c.Param("photoId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo ID"})
		return 0, 0, false
	}
	return uint(bid), uint(pid), true
}

// uploadPhoto adds an image to the booking's photo set
func (h *PhotoHandler) uploadPhoto(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photo provided"})
		return
	}
	if !validateImageFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo file"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read photo"})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	folder := fmt.Sprintf("bookings/%d", bookingID)
	url, err := h.Uploader.Upload(ctx, file, header.Filename, folder)
	if err != nil {
		log.Printf("❌ Photo upload failed for booking %d: %v", bookingID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Photo upload failed", "message": err.Error()})
		return
	}

	photo, err := h.Store.AddPhoto(ctx, uint(bookingID), url)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
		return
	}

	h.Hub.Publish(ws.EventPhotoUpdated, gin.H{
		"booking_id": bookingID,
		"photo_id":   photo.ID,
		"action":     "uploaded",
	})

	c.JSON(http.StatusCreated, gin.H{"photo": photo})
}

// updatePhotoStatus moves a photo through the print workflow
func (h *PhotoHandler) updatePhotoStatus(c *gin.Context) {
	bookingID, photoID, ok := parseIDPair(c)
	if !ok {
		return
	}

	var req struct {
		Status models.PhotoStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	err := h.Store.UpdatePhotoStatus(c.Request.Context(), bookingID, photoID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		case errors.Is(err, store.ErrInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status", "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update photo"})
		}
		return
	}

	h.Hub.Publish(ws.EventPhotoUpdated, gin.H{
		"booking_id": bookingID,
		"photo_id":   photoID,
		"status":     req.Status,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Photo status updated"})
}

// togglePhotoSelection flips a photo's selected flag; the booking's
// SelectedPhotos counter moves with it in the same transaction.
func (h *PhotoHandler) togglePhotoSelection(c *gin.Context) {
	bookingID, photoID, ok := parseIDPair(c)
	if !ok {
		return
	}

	selected, err := h.Store.TogglePhotoSelection(c.Request.Context(), bookingID, photoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle photo"})
		return
	}

	h.Hub.Publish(ws.EventPhotoUpdated, gin.H{
		"booking_id": bookingID,
		"photo_id":   photoID,
		"selected":   selected,
	})

	c.JSON(http.StatusOK, gin.H{"selected": selected})
}

// updatePhotoCount overwrites the printed or delivered counter
func (h *PhotoHandler) updatePhotoCount(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req struct {
		Kind  store.PhotoCountKind `json:"kind" binding:"required"`
		Count *int                 `json:"count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	err = h.Store.UpdatePhotoCount(c.Request.Context(), uint(bookingID), req.Kind, *req.Count)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, store.ErrInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid count", "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update count"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo count updated"})
}
