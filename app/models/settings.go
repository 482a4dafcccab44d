package models

import "gorm.io/gorm"

// Settings is the single-row shipping configuration edited from the
// back-office. Read per-request by the pricing path (through the cache).
type Settings struct {
	gorm.Model
	ShippingCost          int64 `gorm:"not null;default:0"   json:"shippingCost"`
	FreeShippingThreshold int64 `gorm:"not null;default:699" json:"freeShippingThreshold"`
}

// DefaultSettings is the row created on first boot: paid shipping off,
// free shipping above ₹699.
func DefaultSettings() Settings {
	return Settings{ShippingCost: 0, FreeShippingThreshold: 699}
}

// ShippingSettings is the read-only view handed to the pricing engine.
type ShippingSettings struct {
	ShippingCost          int64 `json:"shippingCost"`
	FreeShippingThreshold int64 `json:"freeShippingThreshold"`
}

// Shipping projects the stored row into the pricing view.
func (s Settings) Shipping() ShippingSettings {
	return ShippingSettings{
		ShippingCost:          s.ShippingCost,
		FreeShippingThreshold: s.FreeShippingThreshold,
	}
}
