package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/pkg/errs"
)

func placeTestOrder(t *testing.T) models.Order {
	t.Helper()
	order, err := NewCheckoutService().PlaceOrder(
		validCheckout(CartLine{Slug: "ubtan", Quantity: 1}), nil)
	require.NoError(t, err)
	return order
}

func TestGetByIDAndByNumber(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewOrderService()
	placed := placeTestOrder(t)

	byNumber, err := svc.Get(placed.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, byNumber.ID)

	byID, err := svc.Get(fmt.Sprint(placed.ID))
	require.NoError(t, err)
	assert.Equal(t, placed.OrderNumber, byID.OrderNumber)
}

func TestGetUnknownRef(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewOrderService()

	_, err := svc.Get("SS-20260101-AAAAAA")
	var nf *errs.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewOrderService()
	placed := placeTestOrder(t)

	_, err := svc.UpdateStatus(placed.OrderNumber, UpdateStatusInput{Status: "shipped!!"})
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "status")

	// The stored order is untouched.
	stored, err := svc.Get(placed.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, stored.Status)
}

func TestUpdateStatusRejectsUnknownPaymentValue(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewOrderService()
	placed := placeTestOrder(t)

	_, err := svc.UpdateStatus(placed.OrderNumber, UpdateStatusInput{PaymentStatus: "maybe"})
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "paymentStatus")
}

func TestUpdateStatusAppliesChange(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewOrderService()
	placed := placeTestOrder(t)

	updated, err := svc.UpdateStatus(placed.OrderNumber, UpdateStatusInput{
		Status:        string(models.OrderProcessing),
		PaymentStatus: string(models.PaymentPaid),
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, updated.Status)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
}

func TestUpdateStatusAllowsBackwardMoves(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewOrderService()
	placed := placeTestOrder(t)

	// Forward to delivered, then back to processing for a support case.
	_, err := svc.UpdateStatus(placed.OrderNumber, UpdateStatusInput{Status: string(models.OrderDelivered)})
	require.NoError(t, err)

	reverted, err := svc.UpdateStatus(placed.OrderNumber, UpdateStatusInput{Status: string(models.OrderProcessing)})
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, reverted.Status)
}

func TestUpdateStatusSameValueIsIdempotent(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewOrderService()
	placed := placeTestOrder(t)

	_, err := svc.UpdateStatus(placed.OrderNumber, UpdateStatusInput{Status: string(models.OrderShipped)})
	require.NoError(t, err)

	// A retried or double-submitted request writes the same value again.
	updated, err := svc.UpdateStatus(placed.OrderNumber, UpdateStatusInput{Status: string(models.OrderShipped)})
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.Status)
}

func TestUpdateStatusRequiresAField(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewOrderService()
	placed := placeTestOrder(t)

	_, err := svc.UpdateStatus(placed.OrderNumber, UpdateStatusInput{})
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestListFiltersByStatusPair(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewOrderService()

	a := placeTestOrder(t)
	placeTestOrder(t)
	_, err := svc.UpdateStatus(a.OrderNumber, UpdateStatusInput{Status: string(models.OrderShipped)})
	require.NoError(t, err)

	shipped, _, err := svc.List(OrderQuery{Status: string(models.OrderShipped), Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, shipped, 1)
	assert.Equal(t, a.ID, shipped[0].ID)

	all, pagination, err := svc.List(OrderQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(2), pagination.Total)
}

func TestListByEmail(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewOrderService()
	placeTestOrder(t)

	mine, pagination, err := svc.List(OrderQuery{Email: "meera@example.com", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, int64(1), pagination.Total)

	none, _, err := svc.List(OrderQuery{Email: "someone-else@example.com", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListCombinesEmailAndStatusFilters(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	svc := NewOrderService()

	shipped := placeTestOrder(t)
	placeTestOrder(t)
	_, err := svc.UpdateStatus(shipped.OrderNumber, UpdateStatusInput{Status: string(models.OrderShipped)})
	require.NoError(t, err)

	// Both orders share the customer email; the status filter still applies.
	orders, pagination, err := svc.List(OrderQuery{
		Email:  "meera@example.com",
		Status: string(models.OrderShipped),
		Page:   1,
		Limit:  20,
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, shipped.ID, orders[0].ID)
	assert.Equal(t, int64(1), pagination.Total)
}
