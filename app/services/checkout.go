package services

import (
	"fmt"

	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/app/repositories"
	"github.com/shringarlabs/shringar/pkg/errs"
	"github.com/shringarlabs/shringar/pkg/event"
	"github.com/shringarlabs/shringar/pkg/metrics"
)

// Event names fired by the order paths.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderPaid          = "order.paid"
	EventOrderStatusChanged = "order.status_changed"
)

// CartLine is one client-submitted cart entry: a product reference and a
// quantity, nothing else. Price and name come from the catalog.
type CartLine struct {
	Slug     string `json:"slug"     validate:"required,max=255"`
	Quantity int    `json:"quantity" validate:"required,integer,gte=1"`
}

// CheckoutInput is the payload for placing an order.
type CheckoutInput struct {
	CustomerEmail   string                 `json:"customerEmail" validate:"required,email"`
	CustomerName    string                 `json:"customerName"  validate:"required,max=255"`
	Items           []CartLine             `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
}

// CheckoutService builds item snapshots from the live catalog, prices
// them, and persists the pending order.
type CheckoutService struct {
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
	pricing  *PricingService
}

func NewCheckoutService() *CheckoutService {
	return &CheckoutService{
		products: repositories.NewProductRepository(),
		orders:   repositories.NewOrderRepository(),
		pricing:  NewPricingService(),
	}
}

// Snapshot resolves cart lines against the catalog and freezes price,
// name, and image. Validation failures and stock misses happen here,
// before anything is persisted.
func (s *CheckoutService) Snapshot(lines []CartLine) ([]models.OrderItem, error) {
	if len(lines) == 0 {
		return nil, errs.ValidationField("items", "The items field is required.")
	}

	for i, line := range lines {
		if line.Slug == "" {
			return nil, errs.ValidationField(fmt.Sprintf("items.%d.slug", i), "The slug field is required.")
		}
		if line.Quantity < 1 {
			return nil, errs.ValidationField(fmt.Sprintf("items.%d.quantity", i), "The quantity must be at least 1.")
		}
	}

	slugs := make([]string, len(lines))
	for i, line := range lines {
		slugs[i] = line.Slug
	}

	found, err := s.products.FindBySlugs(slugs)
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]models.Product, len(found))
	for _, p := range found {
		bySlug[p.Slug] = p
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, ok := bySlug[line.Slug]
		if !ok {
			return nil, errs.NotFound("product", line.Slug)
		}
		if !product.InStock {
			return nil, errs.OutOfStock(product.Name)
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Slug:      product.Slug,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Image:     product.Image,
		})
	}

	return items, nil
}

// PlaceOrder creates a pending/pending order from the cart. userID is nil
// for guest checkout. No gateway transaction is opened here; this is the
// manual-payment path, and the payment service reuses it before opening one.
func (s *CheckoutService) PlaceOrder(input CheckoutInput, userID *uint) (models.Order, error) {
	if fields := validateCheckout(input); len(fields) > 0 {
		return models.Order{}, errs.Validation(fields)
	}

	items, err := s.Snapshot(input.Items)
	if err != nil {
		return models.Order{}, err
	}

	totals, err := s.pricing.Quote(items)
	if err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		UserID:          userID,
		CustomerEmail:   input.CustomerEmail,
		CustomerName:    input.CustomerName,
		Items:           items,
		ShippingAddress: input.ShippingAddress,
		Subtotal:        totals.Subtotal,
		ShippingCost:    totals.ShippingCost,
		Tax:             totals.Tax,
		Total:           totals.Total,
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
	}

	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, err
	}

	metrics.OrdersCreated.WithLabelValues("manual").Inc()
	event.Fire(EventOrderPlaced, order)

	return order, nil
}

// Orders exposes the underlying repository for collaborating services.
func (s *CheckoutService) Orders() *repositories.OrderRepository { return s.orders }

func validateCheckout(input CheckoutInput) map[string]string {
	fields := map[string]string{}

	if input.CustomerEmail == "" {
		fields["customerEmail"] = "The customerEmail field is required."
	}
	if input.CustomerName == "" {
		fields["customerName"] = "The customerName field is required."
	}
	if addr := input.ShippingAddress; addr.FullName == "" || addr.AddressLine1 == "" ||
		addr.City == "" || addr.State == "" || addr.PostalCode == "" ||
		addr.Country == "" || addr.Phone == "" {
		fields["shippingAddress"] = "The shippingAddress is incomplete."
	}

	return fields
}
