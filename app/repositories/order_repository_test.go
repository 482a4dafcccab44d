package repositories

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/pkg/database"
	"github.com/shringarlabs/shringar/pkg/orm"
)

func setupOrderDB(t *testing.T) *OrderRepository {
	t.Helper()
	require.NoError(t, database.ConnectTest(&models.Order{}))
	return NewOrderRepository()
}

func newOrder() *models.Order {
	return &models.Order{
		CustomerEmail: "meera@example.com",
		CustomerName:  "Meera Sharma",
		Items: []models.OrderItem{
			{Slug: "ubtan", Name: "Herbal Ubtan", Price: 299, Quantity: 1},
		},
		Subtotal:      299,
		ShippingCost:  50,
		Tax:           54,
		Total:         403,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentPending,
	}
}

func TestCreateAssignsOrderNumber(t *testing.T) {
	repo := setupOrderDB(t)

	order := newOrder()
	require.NoError(t, repo.Create(order))
	assert.Regexp(t, `^SS-\d{8}-[0-9A-Z]{6}$`, order.OrderNumber)
	assert.NotZero(t, order.ID)
}

func TestFindByRefDualLookup(t *testing.T) {
	repo := setupOrderDB(t)
	order := newOrder()
	require.NoError(t, repo.Create(order))

	byID, err := repo.FindByRef(fmt.Sprint(order.ID))
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, byID.OrderNumber)

	byNumber, err := repo.FindByRef(order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, order.ID, byNumber.ID)

	_, err = repo.FindByRef("SS-20260101-AAAAAA")
	assert.True(t, orm.IsNotFound(err))

	// A numeric ref with no matching id falls through to order_number
	// and still reports not found.
	_, err = repo.FindByRef("424242")
	assert.True(t, orm.IsNotFound(err))
}

func TestMarkPaidIsConditional(t *testing.T) {
	repo := setupOrderDB(t)
	order := newOrder()
	require.NoError(t, repo.Create(order))

	applied, err := repo.MarkPaid(order.ID, "pay_1", "sig_1")
	require.NoError(t, err)
	assert.True(t, applied)

	stored, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, stored.Status)
	assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
	assert.Equal(t, "pay_1", stored.RazorpayPaymentID)

	// A second application is a no-op and must not clobber the payment id.
	applied, err = repo.MarkPaid(order.ID, "pay_2", "sig_2")
	require.NoError(t, err)
	assert.False(t, applied)

	stored, err = repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "pay_1", stored.RazorpayPaymentID)
}

func TestMarkPaymentFailedNeverDemotesPaid(t *testing.T) {
	repo := setupOrderDB(t)
	order := newOrder()
	require.NoError(t, repo.Create(order))

	require.NoError(t, repo.MarkPaymentFailed(order.ID))
	stored, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, stored.PaymentStatus)
	assert.Equal(t, models.OrderPending, stored.Status)

	// Pay it, then try to fail it again.
	_, err = repo.MarkPaid(order.ID, "pay_1", "sig_1")
	require.NoError(t, err)
	require.NoError(t, repo.MarkPaymentFailed(order.ID))

	stored, err = repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
}

func TestListNewestFirstWithFilters(t *testing.T) {
	repo := setupOrderDB(t)

	first := newOrder()
	require.NoError(t, repo.Create(first))
	second := newOrder()
	require.NoError(t, repo.Create(second))
	_, err := repo.MarkPaid(second.ID, "pay_1", "sig_1")
	require.NoError(t, err)

	paid, _, err := repo.List(OrderFilter{PaymentStatus: string(models.PaymentPaid), Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, second.ID, paid[0].ID)

	all, pagination, err := repo.List(OrderFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(2), pagination.Total)
}

func TestRevenueCountsPaidOrdersOnly(t *testing.T) {
	repo := setupOrderDB(t)

	a := newOrder()
	require.NoError(t, repo.Create(a))
	b := newOrder()
	require.NoError(t, repo.Create(b))
	_, err := repo.MarkPaid(b.ID, "pay_1", "sig_1")
	require.NoError(t, err)

	revenue, err := repo.Revenue()
	require.NoError(t, err)
	assert.Equal(t, int64(403), revenue)
}
