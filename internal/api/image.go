package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/illineats/backend/internal/middleware"
	"github.com/illineats/backend/internal/service"
)

// imageFormField is the multipart field carrying the upload.
const imageFormField = "image"

// maxUploadBody bounds the whole multipart request.
const maxUploadBody = service.MaxImageSize + 1<<20

// ImageHandler serves food photos
type ImageHandler struct {
	images      service.IImageService
	authService service.IAuthService
	limiter     *middleware.RateLimiter
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(images service.IImageService, authService service.IAuthService, limiter *middleware.RateLimiter) *ImageHandler {
	return &ImageHandler{images: images, authService: authService, limiter: limiter}
}

// RegisterRoutes registers the image routes
func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	router.GET("/images", h.ListGrouped)
	router.POST("/foods/:id/images", auth, h.limiter.RateLimitMiddleware(), h.UploadImage)
	router.POST("/images/:id/like", auth, h.LikeImage)
}

// UploadImage stores a multipart photo of a food
func (h *ImageHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	foodID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)
	header, err := c.FormFile(imageFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, service.ErrImageTooLarge)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close()

	image, err := h.images.UploadImage(c.Request.Context(), userID, foodID, header.Filename, file, header.Size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

// ListGrouped returns images keyed by food id, most liked first
func (h *ImageHandler) ListGrouped(c *gin.Context) {
	ids, ok := idListQuery(c)
	if !ok {
		return
	}
	grouped, err := h.images.ListGrouped(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": grouped})
}

// LikeImage increments an image's likes
func (h *ImageHandler) LikeImage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	image, err := h.images.LikeImage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}
