package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodImage is a user-uploaded photo of a food.
type FoodImage struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	FoodID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"foodId"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"userId"`
	ObjectKey string    `gorm:"size:512;not null" json:"-"`
	URL       string    `gorm:"size:1024;not null" json:"url"`
	Likes     int       `gorm:"not null;default:0;index" json:"likes"`
}

// BeforeCreate assigns an ID when the caller did not.
func (i *FoodImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// PushSubscription is a browser push endpoint registered by a user.
type PushSubscription struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_push_subscriptions_user_endpoint" json:"userId"`
	Endpoint  string    `gorm:"size:1024;not null;uniqueIndex:idx_push_subscriptions_user_endpoint" json:"endpoint"`
	P256dh    string    `gorm:"size:255;not null" json:"p256dh"`
	Auth      string    `gorm:"size:255;not null" json:"auth"`
}

// BeforeCreate assigns an ID when the caller did not.
func (p *PushSubscription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// All lists every persisted model, in dependency order, for auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&FoodItem{},
		&MealEntry{},
		&Review{},
		&Favorite{},
		&FoodImage{},
		&PushSubscription{},
	}
}
