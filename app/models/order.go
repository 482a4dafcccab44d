package models

import (
	"crypto/rand"
	"math/big"
	"time"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every legal order status, in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderProcessing,
	OrderShipped, OrderDelivered, OrderCancelled,
}

// Valid reports whether s is one of the enumerated order statuses.
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// PaymentStatus is the payment state of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentStatuses lists every legal payment status.
var PaymentStatuses = []PaymentStatus{
	PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded,
}

// Valid reports whether s is one of the enumerated payment statuses.
func (s PaymentStatus) Valid() bool {
	for _, v := range PaymentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// OrderItem is a product snapshot frozen at order-creation time. Later
// catalog or price changes never alter a placed order.
type OrderItem struct {
	ProductID uint   `json:"productId"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Price     int64  `json:"price"` // unit price in whole rupees
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
}

// ShippingAddress is embedded into the order as a value copy, never a
// reference to a saved address.
type ShippingAddress struct {
	FullName     string `gorm:"size:255"   json:"fullName"     validate:"required,max=255"`
	AddressLine1 string `gorm:"size:255"   json:"addressLine1" validate:"required,max=255"`
	AddressLine2 string `gorm:"size:255"   json:"addressLine2" validate:"nullable,max=255"`
	City         string `gorm:"size:100"   json:"city"         validate:"required,max=100"`
	State        string `gorm:"size:100"   json:"state"        validate:"required,max=100"`
	PostalCode   string `gorm:"size:20"    json:"postalCode"   validate:"required,max=20"`
	Country      string `gorm:"size:100"   json:"country"      validate:"required,max=100"`
	Phone        string `gorm:"size:20"    json:"phone"        validate:"required,max=20"`
}

// Order is the central entity: customer and item snapshots, money totals,
// and the status pair driven by payment verification and admin updates.
//
// All money fields are whole rupees. total == subtotal + shippingCost + tax
// holds at creation and is never recomputed afterwards.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;size:32;not null" json:"orderNumber"`

	// Weak back-reference to the purchaser; orders stay queryable by
	// customerEmail for sessions that predate account linkage.
	UserID *uint `gorm:"index" json:"userId,omitempty"`

	CustomerEmail string `gorm:"index;size:255;not null" json:"customerEmail"`
	CustomerName  string `gorm:"size:255;not null"       json:"customerName"`

	Items           []OrderItem     `gorm:"serializer:json;not null" json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`

	Subtotal     int64 `gorm:"not null" json:"subtotal"`
	ShippingCost int64 `gorm:"not null" json:"shippingCost"`
	Tax          int64 `gorm:"not null" json:"tax"`
	Total        int64 `gorm:"not null" json:"total"`

	Status        OrderStatus   `gorm:"size:20;not null;default:pending;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null;default:pending;index" json:"paymentStatus"`

	// Populated once a gateway transaction is opened / payment completes.
	RazorpayOrderID   string `gorm:"size:64;index" json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string `gorm:"size:64"       json:"razorpayPaymentId,omitempty"`
	RazorpaySignature string `gorm:"size:128"      json:"-"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderNumber builds a human-readable order number: SS-YYYYMMDD-XXXXXX
// with a random base-36 suffix. Collision-resistant, not collision-free;
// the store retries on a duplicate-key insert.
func NewOrderNumber(now time.Time) string {
	suffix := make([]byte, 6)
	max := big.NewInt(int64(len(orderNumberAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand never fails on supported platforms; fall back
			// to a fixed char rather than panic mid-checkout.
			suffix[i] = 'X'
			continue
		}
		suffix[i] = orderNumberAlphabet[n.Int64()]
	}
	return "SS-" + now.Format("20060102") + "-" + string(suffix)
}
