package repositories

import (
	"strconv"
	"time"

	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/pkg/orm"
)

// maxNumberRetries bounds regeneration when an order number collides.
const maxNumberRetries = 3

// OrderRepository handles database operations for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create persists a new order. The order number is generated here; on the
// rare duplicate-key collision a fresh number is generated and the insert
// retried.
func (r *OrderRepository) Create(order *models.Order) error {
	var err error
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		order.OrderNumber = models.NewOrderNumber(time.Now())
		err = orm.DB().Create(order)
		if err == nil || !orm.IsDuplicateKey(err) {
			return err
		}
	}
	return err
}

// FindByRef resolves an order by either numeric ID or order number. A
// numeric ref is tried as a primary key first and falls through to the
// order-number lookup, so "SS-20260828-K3X9J2" and "42" both work.
func (r *OrderRepository) FindByRef(ref string) (models.Order, error) {
	if id, convErr := strconv.ParseUint(ref, 10, 64); convErr == nil {
		order, err := r.FindByID(uint(id))
		if err == nil {
			return order, nil
		}
		if !orm.IsNotFound(err) {
			return models.Order{}, err
		}
	}

	var order models.Order
	err := orm.DB().Model(&models.Order{}).Where("order_number = ?", ref).First(&order)
	return order, err
}

// FindByID looks up an order by primary key.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).Where("id = ?", id).First(&order)
	return order, err
}

// OrderFilter narrows an admin listing. Zero values mean "no filter";
// all set fields combine into one query.
type OrderFilter struct {
	Email         string
	Status        string
	PaymentStatus string
	Page          int
	Limit         int
}

// List returns a page of orders matching the filter, newest first.
func (r *OrderRepository) List(filter OrderFilter) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order

	q := orm.DB().Model(&models.Order{})
	if filter.Email != "" {
		q = q.Where("customer_email = ?", filter.Email)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		q = q.Where("payment_status = ?", filter.PaymentStatus)
	}

	pagination, err := q.OrderBy("created_at desc").GetWithPagination(&orders, filter.Page, filter.Limit)
	return orders, pagination, err
}

// ListByUser returns all orders placed by a registered user, newest first.
// Orders placed as a guest with the same email before the account existed
// are included, so a new account immediately sees its history.
func (r *OrderRepository) ListByUser(userID uint, email string) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("user_id = ? OR customer_email = ?", userID, email).
		OrderBy("created_at desc").
		Get(&orders)
	return orders, err
}

// UpdateStatus applies an admin status patch. Validation of the values and
// the transition happens in the service layer.
func (r *OrderRepository) UpdateStatus(id uint, fields map[string]interface{}) error {
	_, err := orm.DB().Model(&models.Order{}).
		Where("id = ?", id).
		Updates(fields)
	return err
}

// AttachGatewayOrder records the gateway-side order ID once a payment
// transaction has been opened.
func (r *OrderRepository) AttachGatewayOrder(id uint, gatewayOrderID string) error {
	_, err := orm.DB().Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"razorpay_order_id": gatewayOrderID})
	return err
}

// MarkPaid flips the order to confirmed/paid and records the payment
// credentials. The payment_status guard makes the write idempotent: a
// replayed verification matches zero rows and returns false, and a
// successful retry after a failed attempt still goes through.
func (r *OrderRepository) MarkPaid(id uint, paymentID, signature string) (bool, error) {
	rows, err := orm.DB().Model(&models.Order{}).
		Where("id = ? AND payment_status <> ?", id, models.PaymentPaid).
		Updates(map[string]interface{}{
			"payment_status":      models.PaymentPaid,
			"status":              models.OrderConfirmed,
			"razorpay_payment_id": paymentID,
			"razorpay_signature":  signature,
		})
	return rows > 0, err
}

// MarkPaymentFailed records a failed verification. Paid orders are never
// demoted: a stale or tampered retry after success must not undo it.
func (r *OrderRepository) MarkPaymentFailed(id uint) error {
	_, err := orm.DB().Model(&models.Order{}).
		Where("id = ? AND payment_status <> ?", id, models.PaymentPaid).
		Updates(map[string]interface{}{"payment_status": models.PaymentFailed})
	return err
}

// CountByStatus returns order counts grouped by fulfilment status.
func (r *OrderRepository) CountByStatus() (map[models.OrderStatus]int64, error) {
	counts := make(map[models.OrderStatus]int64, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		var n int64
		if err := orm.DB().Model(&models.Order{}).Where("status = ?", status).Count(&n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, nil
}

// Count returns the total number of orders.
func (r *OrderRepository) Count() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Order{}).Count(&n)
	return n, err
}

// Revenue sums the totals of all paid orders, in rupees.
func (r *OrderRepository) Revenue() (int64, error) {
	var paid []models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentPaid).
		Get(&paid)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, o := range paid {
		total += o.Total
	}
	return total, nil
}

// Recent returns the latest n orders for the admin dashboard.
func (r *OrderRepository) Recent(n int) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		OrderBy("created_at desc").
		Limit(n).
		Get(&orders)
	return orders, err
}
