package services

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/app/repositories"
	"github.com/shringarlabs/shringar/pkg/errs"
	"github.com/shringarlabs/shringar/pkg/orm"
	"github.com/shringarlabs/shringar/pkg/storage"
)

type ProductInput struct {
	Slug        string   `json:"slug"        validate:"required,alpha_dash,max=255"`
	Name        string   `json:"name"        validate:"required,max=255"`
	Description string   `json:"description" validate:"nullable"`
	Price       int64    `json:"price"       validate:"required,integer,gte=1"`
	Image       string   `json:"image"       validate:"nullable,max=512"`
	Category    string   `json:"category"    validate:"nullable,max=100"`
	Ingredients []string `json:"ingredients"`
	Weight      string   `json:"weight"      validate:"nullable,max=50"`
	InStock     *bool    `json:"inStock"`
	Tags        []string `json:"tags"`
}

// ProductService serves the catalogue. Writes are admin-only, enforced
// at the route layer.
type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService() *ProductService {
	return &ProductService{products: repositories.NewProductRepository()}
}

// List returns a catalogue page matching the query filters.
func (s *ProductService) List(query repositories.ProductQuery) ([]models.Product, orm.Pagination, error) {
	return s.products.List(query)
}

// Featured returns the cached storefront landing selection.
func (s *ProductService) Featured() ([]models.Product, error) {
	return s.products.Featured(8)
}

// Get resolves a product by slug.
func (s *ProductService) Get(slug string) (models.Product, error) {
	product, err := s.products.FindBySlug(slug)
	if err != nil {
		if orm.IsNotFound(err) {
			return models.Product{}, errs.NotFound("product", slug)
		}
		return models.Product{}, err
	}
	return product, nil
}

// Create adds a catalogue entry.
func (s *ProductService) Create(input ProductInput) (models.Product, error) {
	product := models.Product{
		Slug:        input.Slug,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		Category:    input.Category,
		Ingredients: input.Ingredients,
		Weight:      input.Weight,
		InStock:     true,
		Tags:        input.Tags,
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if err := s.products.Create(&product); err != nil {
		if orm.IsDuplicateKey(err) {
			return models.Product{}, errs.Conflict("product", product.Slug)
		}
		return models.Product{}, err
	}
	return product, nil
}

// Update overwrites a catalogue entry identified by slug.
func (s *ProductService) Update(slug string, input ProductInput) (models.Product, error) {
	product, err := s.Get(slug)
	if err != nil {
		return models.Product{}, err
	}

	product.Slug = input.Slug
	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	if input.Image != "" {
		product.Image = input.Image
	}
	product.Category = input.Category
	product.Ingredients = input.Ingredients
	product.Weight = input.Weight
	product.Tags = input.Tags
	if input.InStock != nil {
		product.InStock = *input.InStock
	}

	if err := s.products.Update(&product); err != nil {
		if orm.IsDuplicateKey(err) {
			return models.Product{}, errs.Conflict("product", product.Slug)
		}
		return models.Product{}, err
	}
	return product, nil
}

// SetStock flips the availability gate.
func (s *ProductService) SetStock(slug string, inStock bool) (models.Product, error) {
	product, err := s.Get(slug)
	if err != nil {
		return models.Product{}, err
	}
	if err := s.products.SetStock(product.ID, inStock); err != nil {
		return models.Product{}, err
	}
	product.InStock = inStock
	return product, nil
}

// Delete removes a catalogue entry. Existing order item snapshots keep
// their copied name and price, so nothing breaks downstream.
func (s *ProductService) Delete(slug string) error {
	product, err := s.Get(slug)
	if err != nil {
		return err
	}
	return s.products.Delete(&product)
}

// UploadImage stores a product image on the configured disk and attaches
// its public URL. The filename is randomised so uploads never collide.
func (s *ProductService) UploadImage(slug, filename string, r io.Reader) (models.Product, error) {
	product, err := s.Get(slug)
	if err != nil {
		return models.Product{}, err
	}

	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return models.Product{}, errs.ValidationField("image", "unsupported image type")
	}

	key := fmt.Sprintf("products/%s/%d-%s%s", product.Slug, time.Now().Unix(), uuid.NewString()[:8], ext)
	if err := storage.PutStream(key, r); err != nil {
		return models.Product{}, err
	}

	url := storage.URL(key)
	product.Image = url
	product.Images = append(product.Images, url)
	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}
