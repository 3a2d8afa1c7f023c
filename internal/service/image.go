package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/illineats/backend/internal/logging"
	"github.com/illineats/backend/internal/metrics"
	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/storage"
)

// MaxImageSize is the largest accepted upload, in bytes.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageService implements IImageService
type ImageService struct {
	db    *gorm.DB
	store storage.ObjectStore
}

// Ensure ImageService implements IImageService
var _ IImageService = (*ImageService)(nil)

// NewImageService creates a new ImageService instance
func NewImageService(db *gorm.DB, store storage.ObjectStore) *ImageService {
	return &ImageService{db: db, store: store}
}

// UploadImage stores a photo of a food and records it. The content type is
// sniffed from the data; the client's filename is only logged.
func (s *ImageService) UploadImage(ctx context.Context, userID, foodID uuid.UUID, filename string, body io.Reader, size int64) (*models.FoodImage, error) {
	if size > MaxImageSize {
		metrics.ImageUploads.WithLabelValues("too_large").Inc()
		return nil, ErrImageTooLarge
	}
	if err := exists(s.db.WithContext(ctx), &models.FoodItem{}, foodID, ErrFoodNotFound); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(body, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > MaxImageSize {
		metrics.ImageUploads.WithLabelValues("too_large").Inc()
		return nil, ErrImageTooLarge
	}
	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		metrics.ImageUploads.WithLabelValues("unsupported").Inc()
		return nil, ErrUnsupportedImage
	}

	id := uuid.New()
	key := fmt.Sprintf("foods/%s/%s%s", foodID, id, ext)
	url, err := s.store.Put(ctx, key, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		metrics.ImageUploads.WithLabelValues("storage_error").Inc()
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	image := &models.FoodImage{
		ID:        id,
		FoodID:    foodID,
		UserID:    userID,
		ObjectKey: key,
		URL:       url,
	}
	if err := s.db.WithContext(ctx).Create(image).Error; err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			logging.Ctx(ctx).Error().Err(delErr).Str("key", key).Msg("Failed to remove orphaned image")
		}
		metrics.ImageUploads.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	logging.Ctx(ctx).Info().
		Str("food_id", foodID.String()).
		Str("key", key).
		Str("filename", filename).
		Int("bytes", len(data)).
		Msg("Image uploaded")
	metrics.ImageUploads.WithLabelValues("ok").Inc()
	return image, nil
}

// ListGrouped returns the images of several foods keyed by food id, most liked first
func (s *ImageService) ListGrouped(ctx context.Context, foodIDs []uuid.UUID) (map[string][]models.FoodImage, error) {
	out := make(map[string][]models.FoodImage, len(foodIDs))
	for _, id := range foodIDs {
		out[id.String()] = []models.FoodImage{}
	}
	if len(foodIDs) == 0 {
		return out, nil
	}
	var images []models.FoodImage
	if err := s.db.WithContext(ctx).Where("food_id IN ?", foodIDs).Order("likes DESC, created_at ASC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	for _, img := range images {
		key := img.FoodID.String()
		out[key] = append(out[key], img)
	}
	return out, nil
}

// LikeImage increments an image's like count
func (s *ImageService) LikeImage(ctx context.Context, id uuid.UUID) (*models.FoodImage, error) {
	res := s.db.WithContext(ctx).Model(&models.FoodImage{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to like image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrImageNotFound
	}
	var image models.FoodImage
	if err := s.db.WithContext(ctx).First(&image, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return &image, nil
}
