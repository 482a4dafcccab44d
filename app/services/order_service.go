package services

import (
	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/app/repositories"
	"github.com/shringarlabs/shringar/pkg/errs"
	"github.com/shringarlabs/shringar/pkg/event"
	"github.com/shringarlabs/shringar/pkg/logger"
	"github.com/shringarlabs/shringar/pkg/orm"
)

// UpdateStatusInput carries the admin's patch. Either field may be
// empty, in which case it is left alone.
type UpdateStatusInput struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

// OrderQuery filters admin listings.
type OrderQuery struct {
	Email         string
	Status        string
	PaymentStatus string
	Page          int
	Limit         int
}

// OrderService serves lookups and admin status changes.
type OrderService struct {
	orders *repositories.OrderRepository
	users  *repositories.UserRepository
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders: repositories.NewOrderRepository(),
		users:  repositories.NewUserRepository(),
	}
}

// Get resolves an order by numeric id or order number.
func (s *OrderService) Get(ref string) (models.Order, error) {
	order, err := s.orders.FindByRef(ref)
	if err != nil {
		if orm.IsNotFound(err) {
			return models.Order{}, errs.NotFound("order", ref)
		}
		return models.Order{}, err
	}
	return order, nil
}

// List returns orders newest first. Email, status and payment status
// filters combine into one query, paginated as a whole.
func (s *OrderService) List(q OrderQuery) ([]models.Order, orm.Pagination, error) {
	return s.orders.List(repositories.OrderFilter{
		Email:         q.Email,
		Status:        q.Status,
		PaymentStatus: q.PaymentStatus,
		Page:          q.Page,
		Limit:         q.Limit,
	})
}

// ListForUser returns the authenticated customer's own orders, including
// guest checkouts made with the account's email.
func (s *OrderService) ListForUser(userID uint) ([]models.Order, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if orm.IsNotFound(err) {
			return nil, errs.NotFound("user", "")
		}
		return nil, err
	}
	return s.orders.ListByUser(userID, user.Email)
}

// UpdateStatus applies an admin status change. Unknown status values are
// rejected before anything is written; a change that canTransition
// refuses is rejected the same way.
func (s *OrderService) UpdateStatus(ref string, input UpdateStatusInput) (models.Order, error) {
	if input.Status == "" && input.PaymentStatus == "" {
		return models.Order{}, errs.ValidationField("status", "nothing to update")
	}

	order, err := s.Get(ref)
	if err != nil {
		return models.Order{}, err
	}

	fields := map[string]interface{}{}

	if input.Status != "" {
		next := models.OrderStatus(input.Status)
		if !next.Valid() {
			return models.Order{}, errs.ValidationField("status", "unknown order status")
		}
		if !canTransition(order.Status, next) {
			return models.Order{}, errs.ValidationField("status",
				"cannot move from "+string(order.Status)+" to "+string(next))
		}
		fields["status"] = next
	}

	if input.PaymentStatus != "" {
		next := models.PaymentStatus(input.PaymentStatus)
		if !next.Valid() {
			return models.Order{}, errs.ValidationField("paymentStatus", "unknown payment status")
		}
		fields["payment_status"] = next
	}

	if err := s.orders.UpdateStatus(order.ID, fields); err != nil {
		return models.Order{}, err
	}

	updated, err := s.orders.FindByID(order.ID)
	if err != nil {
		return models.Order{}, err
	}

	logger.Info("order: status updated",
		"order", updated.OrderNumber,
		"status", updated.Status,
		"payment_status", updated.PaymentStatus,
	)
	event.Fire(EventOrderStatusChanged, updated)

	return updated, nil
}

// canTransition is the single gate for admin fulfilment moves. The
// policy is deliberately permissive: admins resolve support cases by
// jumping states, including backwards, and a retried request writing
// the current status again is a harmless no-op. Tightening the flow
// later means editing this one function.
func canTransition(from, to models.OrderStatus) bool {
	return true
}
