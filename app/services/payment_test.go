package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	gohttp "net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/pkg/database"
	"github.com/shringarlabs/shringar/pkg/errs"
	"github.com/shringarlabs/shringar/pkg/http"
	"github.com/shringarlabs/shringar/pkg/signature"
	"github.com/shringarlabs/shringar/pkg/testkit"
)

const testSecret = "test_key_secret"

// fakeGateway satisfies Gateway without network access.
type fakeGateway struct {
	lastAmount   int64
	lastCurrency string
	lastReceipt  string
	fail         bool
	calls        int
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (GatewayOrder, error) {
	g.calls++
	g.lastAmount = amountPaise
	g.lastCurrency = currency
	g.lastReceipt = receipt
	if g.fail {
		return GatewayOrder{}, errs.Gateway("create_order", errors.New("gateway is down"))
	}
	return GatewayOrder{
		ID:       fmt.Sprintf("order_fake%04d", g.calls),
		Amount:   amountPaise,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

func newTestPaymentService(gw Gateway) *PaymentService {
	return NewPaymentServiceWith(gw, func() string { return testSecret })
}

func openTestPayment(t *testing.T, svc *PaymentService) OpenPaymentResult {
	t.Helper()
	userID := uint(7)
	result, err := svc.OpenPayment(context.Background(),
		validCheckout(CartLine{Slug: "ubtan", Quantity: 2}), &userID)
	require.NoError(t, err)
	return result
}

func TestOpenPaymentConvertsToPaise(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	gw := &fakeGateway{}
	svc := newTestPaymentService(gw)

	result := openTestPayment(t, svc)

	// Order total is 756 rupees; the gateway sees paise.
	assert.Equal(t, int64(75600), gw.lastAmount)
	assert.Equal(t, int64(75600), result.Amount)
	assert.Equal(t, "rcpt_"+result.OrderNumber, gw.lastReceipt)
	assert.Equal(t, result.GatewayOrderID, "order_fake0001")

	stored, err := svc.orders.FindByID(result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "order_fake0001", stored.RazorpayOrderID)
	assert.Equal(t, models.OrderPending, stored.Status)
	assert.Equal(t, models.PaymentPending, stored.PaymentStatus)
}

func TestOpenPaymentGatewayFailureKeepsOrder(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := newTestPaymentService(&fakeGateway{fail: true})

	userID := uint(7)
	_, err := svc.OpenPayment(context.Background(),
		validCheckout(CartLine{Slug: "ubtan", Quantity: 1}), &userID)

	var ge *errs.GatewayError
	require.ErrorAs(t, err, &ge)

	// The pending order survives for a later retry.
	var orders []models.Order
	require.NoError(t, database.DB.Find(&orders).Error)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderPending, orders[0].Status)
	assert.Equal(t, models.PaymentPending, orders[0].PaymentStatus)
	assert.Empty(t, orders[0].RazorpayOrderID)
}

func TestReopenAfterGatewayFailure(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	gw := &fakeGateway{fail: true}
	svc := newTestPaymentService(gw)

	userID := uint(7)
	_, err := svc.OpenPayment(context.Background(),
		validCheckout(CartLine{Slug: "ubtan", Quantity: 1}), &userID)
	require.Error(t, err)

	var orders []models.Order
	require.NoError(t, database.DB.Find(&orders).Error)
	require.Len(t, orders, 1)

	gw.fail = false
	result, err := svc.Reopen(context.Background(), orders[0].OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, orders[0].ID, result.OrderID)
	assert.NotEmpty(t, result.GatewayOrderID)
}

func TestVerifyValidSignatureConfirmsOrder(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := newTestPaymentService(&fakeGateway{})

	opened := openTestPayment(t, svc)
	sig := signature.Payment(testSecret, opened.GatewayOrderID, "pay_123")

	order, err := svc.Verify(VerifyInput{
		OrderRef:         opened.OrderNumber,
		GatewayOrderID:   opened.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        sig,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, order.Status)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)

	stored, err := svc.orders.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "pay_123", stored.RazorpayPaymentID)
	assert.Equal(t, models.OrderConfirmed, stored.Status)
}

func TestVerifyTamperedSignatureFailsEveryTime(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := newTestPaymentService(&fakeGateway{})

	opened := openTestPayment(t, svc)

	for i := 0; i < 3; i++ {
		_, err := svc.Verify(VerifyInput{
			OrderRef:         opened.OrderNumber,
			GatewayOrderID:   opened.GatewayOrderID,
			GatewayPaymentID: "pay_123",
			Signature:        "deadbeef",
		})
		require.ErrorIs(t, err, errs.ErrInvalidSignature)
	}

	stored, err := svc.orders.FindByID(opened.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, stored.PaymentStatus)
	assert.Equal(t, models.OrderPending, stored.Status, "fulfilment status stays put")
	assert.Empty(t, stored.RazorpayPaymentID)
}

func TestVerifyRecoversAfterFailedAttempt(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := newTestPaymentService(&fakeGateway{})

	opened := openTestPayment(t, svc)

	_, err := svc.Verify(VerifyInput{
		OrderRef:         opened.OrderNumber,
		GatewayOrderID:   opened.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        "tampered",
	})
	require.ErrorIs(t, err, errs.ErrInvalidSignature)

	// A subsequent genuine callback still settles the order.
	sig := signature.Payment(testSecret, opened.GatewayOrderID, "pay_123")
	order, err := svc.Verify(VerifyInput{
		OrderRef:         opened.OrderNumber,
		GatewayOrderID:   opened.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        sig,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
	assert.Equal(t, models.OrderConfirmed, order.Status)
}

func TestVerifyReplayIsIdempotent(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := newTestPaymentService(&fakeGateway{})

	opened := openTestPayment(t, svc)
	sig := signature.Payment(testSecret, opened.GatewayOrderID, "pay_123")
	input := VerifyInput{
		OrderRef:         opened.OrderNumber,
		GatewayOrderID:   opened.GatewayOrderID,
		GatewayPaymentID: "pay_123",
		Signature:        sig,
	}

	first, err := svc.Verify(input)
	require.NoError(t, err)

	// The gateway redelivers; the duplicate succeeds without re-applying.
	second, err := svc.Verify(input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.PaymentPaid, second.PaymentStatus)
	assert.Equal(t, first.UpdatedAt.Unix(), second.UpdatedAt.Unix())
}

func TestVerifyUnknownOrder(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := newTestPaymentService(&fakeGateway{})

	_, err := svc.Verify(VerifyInput{
		OrderRef:         "SS-20260101-ZZZZZZ",
		GatewayOrderID:   "order_x",
		GatewayPaymentID: "pay_x",
		Signature:        "any",
	})
	var nf *errs.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestRazorpayGatewayRequest(t *testing.T) {
	mt := testkit.NewMockTransport()
	var captured *gohttp.Request
	var capturedBody razorpayOrderRequest
	mt.StubFunc("https://api.test/v1/orders", func(req *gohttp.Request) (*gohttp.Response, error) {
		captured = req
		require.NoError(t, json.NewDecoder(req.Body).Decode(&capturedBody))
		return testkit.Response(req, 200,
			`{"id":"order_live1","amount":75600,"currency":"INR","receipt":"rcpt_SS-1","status":"created"}`), nil
	})
	http.DefaultClient.Transport = mt
	defer http.ResetTransport()

	gw := &razorpayGateway{
		baseURL: "https://api.test/v1",
		keyID:   "rzp_test_key",
		secret:  "rzp_test_secret",
	}

	out, err := gw.CreateOrder(context.Background(), 75600, "INR", "rcpt_SS-1", map[string]string{"order_number": "SS-1"})
	require.NoError(t, err)
	assert.Equal(t, "order_live1", out.ID)
	assert.Equal(t, int64(75600), out.Amount)

	require.NotNil(t, captured)
	user, pass, ok := captured.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "rzp_test_key", user)
	assert.Equal(t, "rzp_test_secret", pass)
	assert.Equal(t, int64(75600), capturedBody.Amount)
	assert.Equal(t, "INR", capturedBody.Currency)
	assert.Equal(t, "rcpt_SS-1", capturedBody.Receipt)
	require.NoError(t, mt.AssertAllCalled())
}

func TestRazorpayGatewayErrorStatus(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("https://api.test/v1/orders", 401, `{"error":{"description":"bad key"}}`)
	http.DefaultClient.Transport = mt
	defer http.ResetTransport()

	gw := &razorpayGateway{baseURL: "https://api.test/v1", keyID: "k", secret: "s"}
	_, err := gw.CreateOrder(context.Background(), 100, "INR", "rcpt_x", nil)

	var ge *errs.GatewayError
	require.ErrorAs(t, err, &ge)
}
