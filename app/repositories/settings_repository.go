package repositories

import (
	"time"

	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/pkg/cache"
	"github.com/shringarlabs/shringar/pkg/orm"
)

const (
	settingsCacheKey = "settings:shipping"
	settingsCacheTTL = 10 * time.Minute
)

// SettingsRepository manages the singleton store-settings row.
type SettingsRepository struct{}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

// Get returns the settings row, creating it with defaults on first access.
func (r *SettingsRepository) Get() (models.Settings, error) {
	var settings models.Settings
	err := orm.DB().Model(&models.Settings{}).OrderBy("id asc").First(&settings)
	if err == nil {
		return settings, nil
	}
	if !orm.IsNotFound(err) {
		return settings, err
	}

	settings = models.DefaultSettings()
	if err := orm.DB().Create(&settings); err != nil {
		return settings, err
	}
	return settings, nil
}

// Shipping returns the shipping configuration via a cache read-through.
// Pricing hits this on every checkout, so it avoids a DB round trip.
func (r *SettingsRepository) Shipping() (models.ShippingSettings, error) {
	var shipping models.ShippingSettings
	if cache.Get(settingsCacheKey, &shipping) {
		return shipping, nil
	}

	settings, err := r.Get()
	if err != nil {
		return shipping, err
	}

	shipping = settings.Shipping()
	_ = cache.Set(settingsCacheKey, shipping, settingsCacheTTL)
	return shipping, nil
}

// Update persists new settings and invalidates the cache.
func (r *SettingsRepository) Update(settings *models.Settings) error {
	if err := orm.DB().Save(settings); err != nil {
		return err
	}
	return cache.Forget(settingsCacheKey)
}
