package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/illineats/backend/internal/tags"
)

// Dietary goals a user may select.
const (
	GoalBulk       = "bulk"
	GoalLoseWeight = "lose_weight"
	GoalEatHealthy = "eat_healthy"
)

// User is a diner profile. The ID is the subject of the auth provider's token.
type User struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Email       string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name        string         `gorm:"size:255" json:"name"`
	Allergies   string         `gorm:"type:text" json:"allergies"`
	Preferences string         `gorm:"type:text" json:"preferences"`
	Locations   string         `gorm:"type:text" json:"locations"`
	Goal        string         `gorm:"size:32" json:"goal"`
	IsNew       bool           `gorm:"not null;default:true" json:"isNew"`
}

// AllergySet parses the user's comma separated allergies.
func (u *User) AllergySet() tags.Set {
	return tags.ParseList(u.Allergies)
}

// PreferenceSet parses the user's dietary preferences.
func (u *User) PreferenceSet() tags.Set {
	return tags.ParseWords(u.Preferences)
}

// LocationList splits the comma separated preferred dining halls.
func (u *User) LocationList() []string {
	var out []string
	for _, l := range strings.Split(u.Locations, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// ValidGoal reports whether g is empty or a known goal.
func ValidGoal(g string) bool {
	switch g {
	case "", GoalBulk, GoalLoseWeight, GoalEatHealthy:
		return true
	}
	return false
}
