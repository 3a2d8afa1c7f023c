package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/types"
)

// SubscriptionService implements ISubscriptionService
type SubscriptionService struct {
	db *gorm.DB
}

// Ensure SubscriptionService implements ISubscriptionService
var _ ISubscriptionService = (*SubscriptionService)(nil)

// NewSubscriptionService creates a new SubscriptionService instance
func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Subscribe stores a push endpoint, refreshing its keys if already known
func (s *SubscriptionService) Subscribe(ctx context.Context, userID uuid.UUID, req *types.SubscribeRequest) (*models.PushSubscription, error) {
	sub := &models.PushSubscription{
		UserID:   userID,
		Endpoint: strings.TrimSpace(req.Endpoint),
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "updated_at"}),
	}).Create(sub).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	var stored models.PushSubscription
	if err := s.db.WithContext(ctx).First(&stored, "user_id = ? AND endpoint = ?", userID, sub.Endpoint).Error; err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &stored, nil
}

// HasSubscription reports whether the user has any push endpoint stored
func (s *SubscriptionService) HasSubscription(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.PushSubscription{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return count > 0, nil
}

// Unsubscribe removes one endpoint, or all of the user's endpoints when
// endpoint is empty, and reports how many were removed
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID uuid.UUID, endpoint string) (int64, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
		q = q.Where("endpoint = ?", endpoint)
	}
	res := q.Delete(&models.PushSubscription{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to remove subscription: %w", res.Error)
	}
	return res.RowsAffected, nil
}
