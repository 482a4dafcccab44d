package repositories

import (
	"time"

	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/pkg/cache"
	"github.com/shringarlabs/shringar/pkg/orm"
)

const productCacheTTL = 5 * time.Minute

// ProductRepository handles database operations for the catalog.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// FindBySlug looks up a product by its URL slug.
func (r *ProductRepository) FindBySlug(slug string) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Where("slug = ?", slug).First(&product)
	return product, err
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}

// FindBySlugs fetches all products matching the given slugs in one query.
// The checkout snapshot builder uses this; missing slugs simply don't
// appear in the result.
func (r *ProductRepository) FindBySlugs(slugs []string) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).Where("slug IN ?", slugs).Get(&products)
	return products, err
}

// ProductQuery narrows a catalog listing. Zero values mean "no filter".
type ProductQuery struct {
	Category string
	Tag      string
	MinPrice int64
	MaxPrice int64
	InStock  *bool
	Page     int
	Limit    int
}

// List returns a page of products matching the query, newest first.
func (r *ProductRepository) List(query ProductQuery) ([]models.Product, orm.Pagination, error) {
	var products []models.Product

	q := orm.DB().Model(&models.Product{})
	if query.Category != "" {
		q = q.Where("category = ?", query.Category)
	}
	if query.Tag != "" {
		// Tags are stored as a JSON array, so match the quoted element.
		q = q.Where("tags LIKE ?", "%\""+query.Tag+"\"%")
	}
	if query.MinPrice > 0 {
		q = q.Where("price >= ?", query.MinPrice)
	}
	if query.MaxPrice > 0 {
		q = q.Where("price <= ?", query.MaxPrice)
	}
	if query.InStock != nil {
		q = q.Where("in_stock = ?", *query.InStock)
	}

	pagination, err := q.OrderBy("created_at desc").GetWithPagination(&products, query.Page, query.Limit)
	return products, pagination, err
}

// Create persists a new product and drops the listing cache.
func (r *ProductRepository) Create(product *models.Product) error {
	if err := orm.DB().Create(product); err != nil {
		return err
	}
	cache.Forget("products:featured")
	return nil
}

// Update persists product changes and drops the listing cache.
func (r *ProductRepository) Update(product *models.Product) error {
	if err := orm.DB().Save(product); err != nil {
		return err
	}
	cache.Forget("products:featured")
	return nil
}

// Delete removes a product from the catalog.
func (r *ProductRepository) Delete(product *models.Product) error {
	if err := orm.DB().Delete(product); err != nil {
		return err
	}
	cache.Forget("products:featured")
	return nil
}

// SetStock flips the availability flag.
func (r *ProductRepository) SetStock(id uint, inStock bool) error {
	_, err := orm.DB().Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"in_stock": inStock})
	return err
}

// Featured returns the most recent in-stock products, cached for a few
// minutes since the home page hits this on every load.
func (r *ProductRepository) Featured(limit int) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("in_stock = ?", true).
		OrderBy("created_at desc").
		Limit(limit).
		Cache("products:featured", productCacheTTL, &products)
	return products, err
}

// Count returns the catalog size.
func (r *ProductRepository) Count() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Product{}).Count(&n)
	return n, err
}

// OutOfStock lists products that are currently unavailable.
func (r *ProductRepository) OutOfStock() ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("in_stock = ?", false).
		OrderBy("updated_at desc").
		Get(&products)
	return products, err
}

// CountInStock returns how many products are currently purchasable.
func (r *ProductRepository) CountInStock() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Product{}).Where("in_stock = ?", true).Count(&n)
	return n, err
}
