// Package signature implements the payment gateway's callback signing scheme.
//
// Razorpay signs its checkout callback as
//
//	hex(HMAC-SHA256(key_secret, razorpay_order_id + "|" + razorpay_payment_id))
//
// and the server must recompute and compare before trusting any payment
// confirmation, since the callback travels through the client.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Payment returns the expected hex signature for an order/payment pair.
func Payment(secret, gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPayment reports whether supplied matches the expected signature for
// the order/payment pair. The comparison is constant-time.
func VerifyPayment(secret, gatewayOrderID, gatewayPaymentID, supplied string) bool {
	expected := Payment(secret, gatewayOrderID, gatewayPaymentID)
	return Equal(expected, supplied)
}

// Equal compares two signatures in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
