package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/illineats/backend/internal/middleware"
	"github.com/illineats/backend/internal/service"
	"github.com/illineats/backend/internal/types"
)

// maxImportBody bounds a bulk import document.
const maxImportBody = 32 << 20

// AdminHandler serves menu maintenance routes
type AdminHandler struct {
	importer     service.IImportService
	adminKeyHash string
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(importer service.IImportService, adminKeyHash string) *AdminHandler {
	return &AdminHandler{importer: importer, adminKeyHash: adminKeyHash}
}

// RegisterRoutes registers the admin routes
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AdminKey(h.adminKeyHash))
	{
		admin.POST("/import", h.Import)
		admin.POST("/prune", h.Prune)
	}
}

// Import loads a JSON array of scraped foods
func (h *AdminHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBody)
	var foods []types.ImportFood
	if err := c.ShouldBindJSON(&foods); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	summary, err := h.importer.Import(c.Request.Context(), foods)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Prune deletes meal entries dated before today
func (h *AdminHandler) Prune(c *gin.Context) {
	summary, err := h.importer.PrunePast(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
