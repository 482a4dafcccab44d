package controllers

import (
	"net/http"

	"github.com/shringarlabs/shringar/app/services"
	"github.com/shringarlabs/shringar/pkg/bind"
	"github.com/shringarlabs/shringar/pkg/middleware"
	"github.com/shringarlabs/shringar/pkg/response"
	"github.com/shringarlabs/shringar/pkg/router"
)

type OrderController struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
	pricing  *services.PricingService
}

func NewOrderController() *OrderController {
	return &OrderController{
		checkout: services.NewCheckoutService(),
		orders:   services.NewOrderService(),
		pricing:  services.NewPricingService(),
	}
}

// Quote prices a cart without persisting anything. The storefront uses
// it to render the totals panel as the cart changes.
func (c *OrderController) Quote(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Items []services.CartLine `json:"items"`
	}
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, err)
		return
	}
	items, err := c.checkout.Snapshot(input.Items)
	if err != nil {
		response.Error(w, err)
		return
	}
	totals, err := c.pricing.Quote(items)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, totals)
}

// Store places an order without opening a payment, the cash-on-delivery
// path. Guests may use it; a logged-in caller gets the order attached
// to their account.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	var input services.CheckoutInput
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, err)
		return
	}

	var userID *uint
	if id, ok := middleware.UserIDFromCtx(r.Context()); ok {
		userID = &id
	}

	order, err := c.checkout.PlaceOrder(input, userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, order)
}

// Show resolves an order by numeric id or order number.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	order, err := c.orders.Get(router.Param(r, "ref"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, order)
}

// Mine lists the authenticated customer's own orders.
func (c *OrderController) Mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	orders, err := c.orders.ListForUser(userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, orders)
}

// Index is the admin listing with optional filters.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	page, limit := bind.Page(r)
	orders, pagination, err := c.orders.List(services.OrderQuery{
		Email:         bind.Query(r, "email", ""),
		Status:        bind.Query(r, "status", ""),
		PaymentStatus: bind.Query(r, "paymentStatus", ""),
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Paginated(w, orders, pagination)
}

// UpdateStatus applies an admin fulfilment change.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateStatusInput
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, err)
		return
	}
	order, err := c.orders.UpdateStatus(router.Param(r, "ref"), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, order)
}
