package controllers

import (
	"net/http"

	"github.com/shringarlabs/shringar/app/services"
	"github.com/shringarlabs/shringar/pkg/bind"
	"github.com/shringarlabs/shringar/pkg/middleware"
	"github.com/shringarlabs/shringar/pkg/response"
)

type PaymentController struct {
	service *services.PaymentService
}

func NewPaymentController() *PaymentController {
	return &PaymentController{service: services.NewPaymentService()}
}

// Open places an order for the cart and opens a gateway transaction.
// Sign-in is required; the check runs before anything is persisted, so
// an anonymous call leaves no order behind.
func (c *PaymentController) Open(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "sign in to pay online")
		return
	}

	var input services.CheckoutInput
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, err)
		return
	}

	result, err := c.service.OpenPayment(r.Context(), input, &userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, result)
}

// Reopen opens a fresh gateway transaction for an existing unpaid order.
func (c *PaymentController) Reopen(w http.ResponseWriter, r *http.Request) {
	var input struct {
		OrderRef string `json:"orderId" validate:"required"`
	}
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, err)
		return
	}
	result, err := c.service.Reopen(r.Context(), input.OrderRef)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, result)
}

// Verify settles the order from the client-relayed gateway callback.
// It is deliberately unauthenticated: the HMAC signature is the proof,
// and the rate limiter in front of this route slows brute force.
func (c *PaymentController) Verify(w http.ResponseWriter, r *http.Request) {
	var input services.VerifyInput
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, err)
		return
	}
	order, err := c.service.Verify(input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, order)
}
