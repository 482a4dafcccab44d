package jobs

import (
	"fmt"
	"strings"

	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/pkg/logger"
	"github.com/shringarlabs/shringar/pkg/mail"
	"github.com/shringarlabs/shringar/pkg/queue"
)

// OrderConfirmationJob mails the customer after their payment clears.
// It carries a snapshot of the order so the worker never touches the
// database.
type OrderConfirmationJob struct {
	OrderNumber   string             `json:"orderNumber"`
	CustomerEmail string             `json:"customerEmail"`
	CustomerName  string             `json:"customerName"`
	Items         []models.OrderItem `json:"items"`
	Subtotal      int64              `json:"subtotal"`
	ShippingCost  int64              `json:"shippingCost"`
	Tax           int64              `json:"tax"`
	Total         int64              `json:"total"`
}

// NewOrderConfirmationJob snapshots the order into a mail job.
func NewOrderConfirmationJob(order models.Order) *OrderConfirmationJob {
	return &OrderConfirmationJob{
		OrderNumber:   order.OrderNumber,
		CustomerEmail: order.CustomerEmail,
		CustomerName:  order.CustomerName,
		Items:         order.Items,
		Subtotal:      order.Subtotal,
		ShippingCost:  order.ShippingCost,
		Tax:           order.Tax,
		Total:         order.Total,
	}
}

func (j *OrderConfirmationJob) Handle() error {
	err := mail.To(j.CustomerEmail).
		Subject("Order confirmed: " + j.OrderNumber).
		Body(j.html()).
		Send()
	if err != nil {
		return err
	}
	logger.Info("mail: order confirmation sent",
		"order", j.OrderNumber,
		"to", j.CustomerEmail,
	)
	return nil
}

func (j *OrderConfirmationJob) html() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Thank you, %s!</h2>", j.CustomerName)
	fmt.Fprintf(&b, "<p>Your order <strong>%s</strong> is confirmed.</p>", j.OrderNumber)
	b.WriteString("<table><tr><th>Item</th><th>Qty</th><th>Price</th></tr>")
	for _, item := range j.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>₹%d</td></tr>",
			item.Name, item.Quantity, item.Price)
	}
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p>Subtotal: ₹%d<br>", j.Subtotal)
	if j.ShippingCost == 0 {
		b.WriteString("Shipping: free<br>")
	} else {
		fmt.Fprintf(&b, "Shipping: ₹%d<br>", j.ShippingCost)
	}
	fmt.Fprintf(&b, "Tax: ₹%d<br><strong>Total: ₹%d</strong></p>", j.Tax, j.Total)
	return b.String()
}

// RegisterAll registers every job type with the queue so workers can
// rebuild them from their envelopes.
func RegisterAll() {
	queue.Register(fmt.Sprintf("%T", &OrderConfirmationJob{}), func() queue.Job {
		return &OrderConfirmationJob{}
	})
}
