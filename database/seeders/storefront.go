package seeders

import (
	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("settings", SeedSettings)
	Register("products", SeedProducts)
	Register("admin", SeedAdmin)
}

// SeedSettings ensures the single shipping-configuration row exists.
func SeedSettings(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Settings{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	defaults := models.DefaultSettings()
	return db.Create(&defaults).Error
}

// SeedProducts loads the starter catalogue. Re-running skips slugs that
// already exist.
func SeedProducts(db *gorm.DB) error {
	catalogue := []models.Product{
		{
			Slug:        "ubtan",
			Name:        "Herbal Ubtan",
			Description: "Traditional turmeric and gram-flour face pack.",
			Price:       299,
			Image:       "/images/products/ubtan.jpg",
			Category:    "skincare",
			Ingredients: []string{"turmeric", "gram flour", "sandalwood", "rose petals"},
			Weight:      "100g",
			InStock:     true,
			Tags:        []string{"ayurvedic", "bestseller"},
		},
		{
			Slug:        "kumkumadi-oil",
			Name:        "Kumkumadi Face Oil",
			Description: "Saffron-infused facial oil for glow and even tone.",
			Price:       549,
			Image:       "/images/products/kumkumadi-oil.jpg",
			Category:    "skincare",
			Ingredients: []string{"saffron", "sesame oil", "manjistha"},
			Weight:      "30ml",
			InStock:     true,
			Tags:        []string{"premium"},
		},
		{
			Slug:        "rose-water",
			Name:        "Steam-Distilled Rose Water",
			Description: "Pure gulab jal toner from Kannauj roses.",
			Price:       199,
			Image:       "/images/products/rose-water.jpg",
			Category:    "skincare",
			Ingredients: []string{"rose hydrosol"},
			Weight:      "200ml",
			InStock:     true,
			Tags:        []string{"toner"},
		},
		{
			Slug:        "kajal",
			Name:        "Herbal Kajal",
			Description: "Soot-free almond and castor kajal.",
			Price:       149,
			Image:       "/images/products/kajal.jpg",
			Category:    "cosmetics",
			Ingredients: []string{"almond oil", "castor oil", "camphor"},
			Weight:      "3g",
			InStock:     true,
			Tags:        []string{"eyes"},
		},
		{
			Slug:        "hair-oil",
			Name:        "Bhringraj Hair Oil",
			Description: "Cold-pressed strengthening hair oil.",
			Price:       399,
			Image:       "/images/products/hair-oil.jpg",
			Category:    "haircare",
			Ingredients: []string{"bhringraj", "amla", "coconut oil"},
			Weight:      "100ml",
			InStock:     false,
			Tags:        []string{"haircare"},
		},
	}

	for _, p := range catalogue {
		var n int64
		if err := db.Model(&models.Product{}).Where("slug = ?", p.Slug).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin creates the back-office account if it is missing. The
// password must be rotated after first login.
func SeedAdmin(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.User{}).Where("email = ?", "admin@shringar.in").Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword("changeme-on-first-login")
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Name:     "Store Admin",
		Email:    "admin@shringar.in",
		Password: hash,
		Role:     "admin",
	}).Error
}
