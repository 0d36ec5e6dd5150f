package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photostudio-server/store"
)

// PackageHandler serves the public package catalog
type PackageHandler struct {
	Store *store.Store
}

// Register registers the catalog routes
func (h *PackageHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.listPackages)
	router.GET("/:slug", h.getPackage)
	router.GET("/:slug/add-ons", h.listAddOns)
}

// listPackages returns the active catalog, optionally filtered by category
func (h *PackageHandler) listPackages(c *gin.Context) {
	packages, err := h.Store.Packages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch packages"})
		return
	}

	if category := c.Query("category"); category != "" {
		filtered := packages[:0]
		for _, pkg := range packages {
			if pkg.Category == category {
				filtered = append(filtered, pkg)
			}
		}
		packages = filtered
	}

	c.JSON(http.StatusOK, gin.H{"packages": packages})
}

// getPackage returns one package with its add-on catalog
func (h *PackageHandler) getPackage(c *gin.Context) {
	pkg, err := h.Store.PackageBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch package"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"package": pkg})
}

// listAddOns returns the add-on catalog for one package
func (h *PackageHandler) listAddOns(c *gin.Context) {
	pkg, err := h.Store.PackageBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch package"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"add_ons": pkg.AddOns})
}
