package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cotillion/backend/internal/config"
)

// Gender values recognized by the registry. Asks always run girl -> guy.
const (
	GenderGirl = "girl"
	GenderGuy  = "guy"
)

// User is a registered participant. The display name is fixed at signup
// and unique across the registry; the access code is stored as a bcrypt
// hash and never serialized.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:40;not null" json:"name"`
	CodeHash  string    `gorm:"not null" json:"-"`
	Gender    string    `gorm:"type:varchar(10);not null" json:"gender"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate generates a UUID for the user if the ID is not set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// Member is the directory view of a user: identity plus derived pairing
// state. PartnerID and PartnerName are resolved by joining against
// current pairings and are nil for unpaired members.
type Member struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Gender      string  `json:"gender"`
	PartnerID   *string `json:"partnerId"`
	PartnerName *string `json:"partnerName"`
}

// SanitizeName trims the name, collapses internal whitespace runs to a
// single space, and clips the result to the maximum length.
func SanitizeName(s string) string {
	name := strings.Join(strings.Fields(s), " ")
	if runes := []rune(name); len(runes) > config.NameMaxLen {
		name = strings.TrimSpace(string(runes[:config.NameMaxLen]))
	}
	return name
}

// NormalizeGender maps case-insensitive aliases onto the two known
// genders. Returns the empty string for anything unrecognized.
func NormalizeGender(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "girl", "female", "f":
		return GenderGirl
	case "guy", "male", "m":
		return GenderGuy
	default:
		return ""
	}
}
