package models

import "gorm.io/gorm"

// Product is a catalogue entry. The order path reads it to build item
// snapshots and never writes to it.
type Product struct {
	gorm.Model
	Slug        string   `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Name        string   `gorm:"size:255;not null"             json:"name"`
	Description string   `gorm:"type:text"                     json:"description"`
	Price       int64    `gorm:"not null"                      json:"price"` // whole rupees
	Image       string   `gorm:"size:512;not null"             json:"image"`
	Images      []string `gorm:"serializer:json"               json:"images"`
	Category    string   `gorm:"size:100;index"                json:"category"`
	Ingredients []string `gorm:"serializer:json"               json:"ingredients"`
	Weight      string   `gorm:"size:50"                       json:"weight"`
	// Boolean availability gate. There is no per-unit reservation: two
	// concurrent checkouts can both pass this check for the last unit.
	InStock bool     `gorm:"not null;default:true;index" json:"inStock"`
	Rating  float64  `gorm:"default:0"                   json:"rating"`
	Reviews int      `gorm:"default:0"                   json:"reviews"`
	Tags    []string `gorm:"serializer:json"             json:"tags"`
}
