// Package listeners wires domain events to their side effects: queued
// mail and the admin WebSocket feed. Side effects live here so services
// stay synchronous and testable.
package listeners

import (
	"encoding/json"

	"github.com/shringarlabs/shringar/app/jobs"
	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/app/services"
	"github.com/shringarlabs/shringar/pkg/event"
	"github.com/shringarlabs/shringar/pkg/logger"
	"github.com/shringarlabs/shringar/pkg/queue"
	"github.com/shringarlabs/shringar/pkg/ws"
)

// OrderFeed streams order activity to connected admin dashboards.
var OrderFeed = ws.NewHub()

// Register hooks up every listener. Call once at boot, before the
// router starts serving.
func Register() {
	go OrderFeed.Run()

	event.Listen(services.EventOrderPlaced, func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		broadcast("order.placed", order)
	})

	event.Listen(services.EventOrderPaid, func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		if err := queue.Dispatch(jobs.NewOrderConfirmationJob(order)); err != nil {
			logger.Error("listeners: confirmation mail dispatch failed",
				"order", order.OrderNumber, "error", err)
		}
		broadcast("order.paid", order)
	})

	event.Listen(services.EventOrderStatusChanged, func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		broadcast("order.status_changed", order)
	})
}

func broadcast(kind string, order models.Order) {
	msg, err := json.Marshal(map[string]interface{}{
		"event": kind,
		"order": order,
	})
	if err != nil {
		return
	}
	select {
	case OrderFeed.Broadcast <- msg:
	default:
		// Feed is saturated, drop rather than stall the request path.
	}
}
