package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is a diner's verdict on a food.
type Rating string

const (
	RatingBad  Rating = "bad"
	RatingMid  Rating = "mid"
	RatingGood Rating = "good"
)

// Valid reports whether r is one of the three ratings.
func (r Rating) Valid() bool {
	return r == RatingBad || r == RatingMid || r == RatingGood
}

// Score maps the rating onto the 0-100 scale used for averages.
func (r Rating) Score() float64 {
	switch r {
	case RatingGood:
		return 100
	case RatingMid:
		return 50
	}
	return 0
}

// Review is one user's rating of a food. A user may review a food once per day.
type Review struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_user_food_day" json:"userId"`
	FoodID    uuid.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_reviews_user_food_day" json:"foodId"`
	ReviewDay string    `gorm:"size:10;not null;uniqueIndex:idx_reviews_user_food_day" json:"-"`
	Rating    Rating    `gorm:"size:8;not null" json:"rating"`
	Text      string    `gorm:"type:text" json:"text"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// BeforeCreate assigns an ID when the caller did not.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Favorite marks a food a user wants to track.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_food" json:"userId"`
	FoodID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_food" json:"foodId"`
	Food      *FoodItem `gorm:"foreignKey:FoodID;constraint:OnDelete:CASCADE" json:"food,omitempty"`
}

// BeforeCreate assigns an ID when the caller did not.
func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
