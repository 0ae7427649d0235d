package models

import "time"

// Pairing is a committed couple. One row per couple makes the symmetry
// of the partner relation structural: each side can appear in at most
// one pairing, enforced by the unique indexes.
type Pairing struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GirlID    string    `gorm:"uniqueIndex;not null" json:"girlId"`
	GuyID     string    `gorm:"uniqueIndex;not null" json:"guyId"`
	AskID     string    `gorm:"not null" json:"askId"`
	CreatedAt time.Time `json:"createdAt"`
}
