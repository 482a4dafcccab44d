package controllers

import (
	"net/http"

	"github.com/shringarlabs/shringar/app/repositories"
	"github.com/shringarlabs/shringar/pkg/bind"
	"github.com/shringarlabs/shringar/pkg/response"
)

type SettingsController struct {
	settings *repositories.SettingsRepository
}

func NewSettingsController() *SettingsController {
	return &SettingsController{settings: repositories.NewSettingsRepository()}
}

// Show exposes the shipping configuration so the storefront can render
// "free shipping above ₹X" banners.
func (c *SettingsController) Show(w http.ResponseWriter, r *http.Request) {
	shipping, err := c.settings.Shipping()
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, shipping)
}

// Update patches the shipping configuration (admin only). Omitted
// fields keep their current value.
func (c *SettingsController) Update(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ShippingCost          *int64 `json:"shippingCost"          validate:"nullable,integer,gte=0"`
		FreeShippingThreshold *int64 `json:"freeShippingThreshold" validate:"nullable,integer,gte=0"`
	}
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, err)
		return
	}

	settings, err := c.settings.Get()
	if err != nil {
		response.Error(w, err)
		return
	}
	if input.ShippingCost != nil {
		settings.ShippingCost = *input.ShippingCost
	}
	if input.FreeShippingThreshold != nil {
		settings.FreeShippingThreshold = *input.FreeShippingThreshold
	}
	if err := c.settings.Update(&settings); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, settings.Shipping())
}
