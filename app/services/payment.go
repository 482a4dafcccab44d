package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/app/repositories"
	"github.com/shringarlabs/shringar/config"
	"github.com/shringarlabs/shringar/pkg/errs"
	"github.com/shringarlabs/shringar/pkg/event"
	"github.com/shringarlabs/shringar/pkg/http"
	"github.com/shringarlabs/shringar/pkg/logger"
	"github.com/shringarlabs/shringar/pkg/metrics"
	"github.com/shringarlabs/shringar/pkg/orm"
	"github.com/shringarlabs/shringar/pkg/signature"
)

// GatewayOrder is the remote transaction opened against the payment
// provider, mapped into local terms.
type GatewayOrder struct {
	ID       string // provider-side order id ("order_...")
	Amount   int64  // minor units (paise)
	Currency string
	Receipt  string
}

// Gateway opens payment transactions with the external provider.
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (GatewayOrder, error)
}

// razorpayGateway talks to the Razorpay Orders API over the fluent client.
type razorpayGateway struct {
	baseURL string
	keyID   string
	secret  string
	timeout time.Duration
}

// NewRazorpayGateway builds the production gateway from config.
func NewRazorpayGateway() Gateway {
	return &razorpayGateway{
		baseURL: config.GatewayBaseURL(),
		keyID:   config.GatewayKeyID(),
		secret:  config.GatewaySecret(),
		timeout: config.GatewayTimeout(),
	}
}

type razorpayOrderRequest struct {
	Amount   int64             `json:"amount"` // paise
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (GatewayOrder, error) {
	defer metrics.ObserveGateway("create_order", time.Now())

	resp, err := http.Post(g.baseURL+"/orders").
		WithContext(ctx).
		Basic(g.keyID, g.secret).
		Body(razorpayOrderRequest{
			Amount:   amountPaise,
			Currency: currency,
			Receipt:  receipt,
			Notes:    notes,
		}).
		Timeout(g.timeout).
		Retry(2, 500*time.Millisecond).
		Send()
	if err != nil {
		return GatewayOrder{}, errs.Gateway("create_order", err)
	}
	if !resp.OK() {
		return GatewayOrder{}, errs.Gateway("create_order",
			fmt.Errorf("gateway returned %d: %s", resp.StatusCode, resp.Text()))
	}

	var out razorpayOrderResponse
	if err := resp.JSON(&out); err != nil {
		return GatewayOrder{}, errs.Gateway("create_order", err)
	}

	return GatewayOrder{
		ID:       out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
		Receipt:  out.Receipt,
	}, nil
}

// OpenPaymentResult is handed back to the client to launch the gateway's
// checkout widget.
type OpenPaymentResult struct {
	OrderID        uint   `json:"orderId"`
	OrderNumber    string `json:"orderNumber"`
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"` // minor units (paise)
	Currency       string `json:"currency"`
	KeyID          string `json:"keyId"`
}

// VerifyInput is the client-relayed payment callback.
type VerifyInput struct {
	OrderRef         string `json:"orderId"           validate:"required"`
	GatewayOrderID   string `json:"razorpayOrderId"   validate:"required"`
	GatewayPaymentID string `json:"razorpayPaymentId" validate:"required"`
	Signature        string `json:"razorpaySignature" validate:"required"`
}

// PaymentService opens gateway transactions and verifies callbacks.
type PaymentService struct {
	checkout *CheckoutService
	orders   *repositories.OrderRepository
	gateway  Gateway
	secret   func() string
	currency string
}

func NewPaymentService() *PaymentService {
	return &PaymentService{
		checkout: NewCheckoutService(),
		orders:   repositories.NewOrderRepository(),
		gateway:  NewRazorpayGateway(),
		secret:   config.GatewaySecret,
		currency: config.Currency(),
	}
}

// NewPaymentServiceWith wires explicit collaborators (tests use this).
func NewPaymentServiceWith(gateway Gateway, secret func() string) *PaymentService {
	s := NewPaymentService()
	s.gateway = gateway
	s.secret = secret
	return s
}

// OpenPayment places a pending order for the cart and opens a gateway
// transaction for its total. The caller must already be authenticated;
// the controller enforces that before any persistence happens.
//
// On gateway failure the order stays pending/pending. It is not rolled
// back: retrying against the same order or abandoning it are both safe.
func (s *PaymentService) OpenPayment(ctx context.Context, input CheckoutInput, userID *uint) (OpenPaymentResult, error) {
	order, err := s.checkout.PlaceOrder(input, userID)
	if err != nil {
		return OpenPaymentResult{}, err
	}

	gatewayOrder, err := s.openFor(ctx, &order)
	if err != nil {
		return OpenPaymentResult{}, err
	}

	return OpenPaymentResult{
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		GatewayOrderID: gatewayOrder.ID,
		Amount:         gatewayOrder.Amount,
		Currency:       gatewayOrder.Currency,
		KeyID:          config.GatewayKeyID(),
	}, nil
}

// Reopen opens a fresh gateway transaction for an existing unpaid order,
// the retry path after a gateway failure or an abandoned checkout.
func (s *PaymentService) Reopen(ctx context.Context, orderRef string) (OpenPaymentResult, error) {
	order, err := s.orders.FindByRef(orderRef)
	if err != nil {
		if orm.IsNotFound(err) {
			return OpenPaymentResult{}, errs.NotFound("order", orderRef)
		}
		return OpenPaymentResult{}, err
	}
	if order.PaymentStatus == models.PaymentPaid {
		return OpenPaymentResult{}, errs.ValidationField("orderId", "order is already paid")
	}

	gatewayOrder, err := s.openFor(ctx, &order)
	if err != nil {
		return OpenPaymentResult{}, err
	}

	return OpenPaymentResult{
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		GatewayOrderID: gatewayOrder.ID,
		Amount:         gatewayOrder.Amount,
		Currency:       gatewayOrder.Currency,
		KeyID:          config.GatewayKeyID(),
	}, nil
}

func (s *PaymentService) openFor(ctx context.Context, order *models.Order) (GatewayOrder, error) {
	// Rupees to paise only here, at the gateway boundary.
	amountPaise := order.Total * 100
	receipt := "rcpt_" + order.OrderNumber

	gatewayOrder, err := s.gateway.CreateOrder(ctx, amountPaise, s.currency, receipt, map[string]string{
		"customer_email": order.CustomerEmail,
		"customer_name":  order.CustomerName,
		"order_number":   order.OrderNumber,
	})
	if err != nil {
		return GatewayOrder{}, err
	}

	if err := s.orders.AttachGatewayOrder(order.ID, gatewayOrder.ID); err != nil {
		return GatewayOrder{}, err
	}
	order.RazorpayOrderID = gatewayOrder.ID

	return gatewayOrder, nil
}

// Verify checks the callback's HMAC signature and settles the order.
//
// Mismatch: paymentStatus flips to failed (status untouched) and
// ErrInvalidSignature comes back, every time, however often retried.
// Match: the order moves to (confirmed, paid) and the payment credentials
// are persisted. The write is guarded so a duplicate callback re-applies
// nothing and still returns the order as success.
func (s *PaymentService) Verify(input VerifyInput) (models.Order, error) {
	order, err := s.orders.FindByRef(input.OrderRef)
	if err != nil {
		if orm.IsNotFound(err) {
			return models.Order{}, errs.NotFound("order", input.OrderRef)
		}
		return models.Order{}, err
	}

	if !signature.VerifyPayment(s.secret(), input.GatewayOrderID, input.GatewayPaymentID, input.Signature) {
		metrics.PaymentVerifications.WithLabelValues("rejected").Inc()
		logger.Warn("payment: signature mismatch",
			"order", order.OrderNumber,
			"gateway_order_id", input.GatewayOrderID,
		)
		if err := s.orders.MarkPaymentFailed(order.ID); err != nil {
			return models.Order{}, err
		}
		return models.Order{}, errs.ErrInvalidSignature
	}

	applied, err := s.orders.MarkPaid(order.ID, input.GatewayPaymentID, input.Signature)
	if err != nil {
		return models.Order{}, err
	}

	order, err = s.orders.FindByID(order.ID)
	if err != nil {
		return models.Order{}, err
	}

	if applied {
		metrics.PaymentVerifications.WithLabelValues("verified").Inc()
		event.Fire(EventOrderPaid, order)
	} else {
		// Duplicate callback delivery: success, already applied.
		metrics.PaymentVerifications.WithLabelValues("replayed").Inc()
	}

	return order, nil
}
