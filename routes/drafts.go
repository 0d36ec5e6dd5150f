package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photostudio-server/models"
	"photostudio-server/services"
	"photostudio-server/store"
)

// DraftHandler exposes the resumable booking-form draft. Drafts are keyed
// by the client's email and expire 24 hours after their last save.
type DraftHandler struct {
	Store  *store.Store
	Drafts *services.DraftService
}

// Register registers the draft routes
func (h *DraftHandler) Register(router *gin.RouterGroup) {
	router.PUT("/:email", h.saveDraft)
	router.GET("/:email", h.loadDraft)
	router.DELETE("/:email", h.clearDraft)
}

// saveDraft overwrites the client's draft with a fresh timestamp. When the
// package selection changed, add-ons the new package does not offer are
// pruned and reported so the client can show its notice.
func (h *DraftHandler) saveDraft(c *gin.Context) {
	email := c.Param("email")
	if !store.ValidateEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}

	var draft models.BookingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}
	draft.ClientEmail = email

	ctx := c.Request.Context()

	var removed []string
	if draft.PackageSlug != "" && len(draft.AddOnSlugs) > 0 {
		pkg, err := h.Store.PackageBySlug(ctx, draft.PackageSlug)
		switch {
		case err == nil:
			draft.AddOnSlugs, removed = store.PruneAddOns(draft.AddOnSlugs, pkg.AddOns)
		case errors.Is(err, store.ErrNotFound):
			// Unknown package in a draft is tolerated; submission checks it
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load package"})
			return
		}
	}

	if err := h.Drafts.Save(ctx, email, draft); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Draft saved",
		"draft":           draft,
		"removed_add_ons": removed,
	})
}

// loadDraft returns the client's draft, or nothing when none exists or the
// saved one is stale.
func (h *DraftHandler) loadDraft(c *gin.Context) {
	email := c.Param("email")
	if !store.ValidateEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}

	draft, err := h.Drafts.Load(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load draft"})
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No draft found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// clearDraft removes the client's draft
func (h *DraftHandler) clearDraft(c *gin.Context) {
	email := c.Param("email")
	if !store.ValidateEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}

	if err := h.Drafts.Clear(c.Request.Context(), email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Draft cleared"})
}
