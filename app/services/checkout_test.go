package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/pkg/database"
	"github.com/shringarlabs/shringar/pkg/errs"
	"github.com/shringarlabs/shringar/pkg/queue"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, database.ConnectTest(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.Settings{},
		&queue.FailedJobRecord{},
	))
}

func seedCatalog(t *testing.T) {
	t.Helper()
	products := []models.Product{
		{Slug: "ubtan", Name: "Herbal Ubtan", Price: 299, InStock: true},
		{Slug: "kajal", Name: "Herbal Kajal", Price: 149, InStock: true},
		{Slug: "hair-oil", Name: "Bhringraj Hair Oil", Price: 399, InStock: false},
	}
	for i := range products {
		require.NoError(t, database.DB.Create(&products[i]).Error)
	}
	require.NoError(t, database.DB.Create(&models.Settings{
		ShippingCost:          50,
		FreeShippingThreshold: 699,
	}).Error)
}

func validCheckout(lines ...CartLine) CheckoutInput {
	return CheckoutInput{
		CustomerEmail: "meera@example.com",
		CustomerName:  "Meera Sharma",
		Items:         lines,
		ShippingAddress: models.ShippingAddress{
			FullName:     "Meera Sharma",
			AddressLine1: "14 MG Road",
			City:         "Jaipur",
			State:        "Rajasthan",
			PostalCode:   "302001",
			Country:      "India",
			Phone:        "9876543210",
		},
	}
}

func TestPlaceOrderPersistsPendingOrder(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewCheckoutService()

	order, err := svc.PlaceOrder(validCheckout(CartLine{Slug: "ubtan", Quantity: 2}), nil)
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, int64(598), order.Subtotal)
	assert.Equal(t, int64(50), order.ShippingCost)
	assert.Equal(t, int64(108), order.Tax)
	assert.Equal(t, int64(756), order.Total)
	assert.Regexp(t, `^SS-\d{8}-[0-9A-Z]{6}$`, order.OrderNumber)
	assert.Nil(t, order.UserID)

	var count int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPlaceOrderAttachesUser(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewCheckoutService()

	userID := uint(42)
	order, err := svc.PlaceOrder(validCheckout(CartLine{Slug: "kajal", Quantity: 1}), &userID)
	require.NoError(t, err)
	require.NotNil(t, order.UserID)
	assert.Equal(t, uint(42), *order.UserID)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewCheckoutService()

	_, err := svc.PlaceOrder(validCheckout(), nil)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "items")
}

func TestPlaceOrderRejectsBadQuantity(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewCheckoutService()

	_, err := svc.PlaceOrder(validCheckout(CartLine{Slug: "ubtan", Quantity: 0}), nil)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "items.0.quantity")

	var count int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "nothing may be persisted on validation failure")
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewCheckoutService()

	_, err := svc.PlaceOrder(validCheckout(CartLine{Slug: "no-such-thing", Quantity: 1}), nil)
	var nf *errs.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "no-such-thing", nf.Ref)
}

func TestPlaceOrderOutOfStock(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewCheckoutService()

	_, err := svc.PlaceOrder(validCheckout(
		CartLine{Slug: "ubtan", Quantity: 1},
		CartLine{Slug: "hair-oil", Quantity: 1},
	), nil)
	var oos *errs.OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, "Bhringraj Hair Oil", oos.Product)

	var count int64
	require.NoError(t, database.DB.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceOrderRequiresCompleteAddress(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewCheckoutService()

	input := validCheckout(CartLine{Slug: "ubtan", Quantity: 1})
	input.ShippingAddress.City = ""

	_, err := svc.PlaceOrder(input, nil)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "shippingAddress")
}

func TestOrderSnapshotSurvivesPriceChange(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewCheckoutService()

	order, err := svc.PlaceOrder(validCheckout(CartLine{Slug: "ubtan", Quantity: 1}), nil)
	require.NoError(t, err)

	// Reprice the product after the order was placed.
	require.NoError(t, database.DB.Model(&models.Product{}).
		Where("slug = ?", "ubtan").Update("price", 999).Error)

	stored, err := svc.Orders().FindByID(order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, int64(299), stored.Items[0].Price)
	assert.Equal(t, "Herbal Ubtan", stored.Items[0].Name)
	assert.Equal(t, int64(403), stored.Total) // 299 + 50 shipping + 54 tax, untouched
}
