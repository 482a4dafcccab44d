package services

import (
	"math"

	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/app/repositories"
)

// TaxRate is the GST applied to the order subtotal.
const TaxRate = 0.18

// Totals is the priced breakdown of a cart, in whole rupees.
type Totals struct {
	Subtotal     int64 `json:"subtotal"`
	ShippingCost int64 `json:"shippingCost"`
	Tax          int64 `json:"tax"`
	Total        int64 `json:"total"`
}

// ComputeTotals prices a snapshotted cart against the given shipping
// settings. Pure function: settings are an explicit argument so the engine
// stays testable without a database.
//
// Shipping is waived when a positive free-shipping threshold is met by the
// subtotal. Tax is round(subtotal * 0.18) and is not charged on shipping.
func ComputeTotals(items []models.OrderItem, shipping models.ShippingSettings) Totals {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Price * int64(item.Quantity)
	}

	shippingCost := shipping.ShippingCost
	if shipping.FreeShippingThreshold > 0 && subtotal >= shipping.FreeShippingThreshold {
		shippingCost = 0
	}

	tax := int64(math.Round(float64(subtotal) * TaxRate))

	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shippingCost,
		Tax:          tax,
		Total:        subtotal + shippingCost + tax,
	}
}

// PricingService wraps ComputeTotals with the store's live shipping
// settings (read through the cache).
type PricingService struct {
	settings *repositories.SettingsRepository
}

func NewPricingService() *PricingService {
	return &PricingService{settings: repositories.NewSettingsRepository()}
}

// Quote prices items against the current shipping settings.
func (s *PricingService) Quote(items []models.OrderItem) (Totals, error) {
	shipping, err := s.settings.Shipping()
	if err != nil {
		return Totals{}, err
	}
	return ComputeTotals(items, shipping), nil
}
