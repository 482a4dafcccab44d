package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentIsDeterministic(t *testing.T) {
	a := Payment("secret", "order_abc", "pay_xyz")
	b := Payment("secret", "order_abc", "pay_xyz")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // hex-encoded SHA-256
}

func TestVerifyPayment(t *testing.T) {
	sig := Payment("secret", "order_abc", "pay_xyz")

	assert.True(t, VerifyPayment("secret", "order_abc", "pay_xyz", sig))
	assert.False(t, VerifyPayment("secret", "order_abc", "pay_xyz", sig+"0"))
	assert.False(t, VerifyPayment("other-secret", "order_abc", "pay_xyz", sig))
	assert.False(t, VerifyPayment("secret", "order_abc", "pay_other", sig))
}

func TestSeparatorBindsBothIdentifiers(t *testing.T) {
	// "ab|c" and "a|bc" must not collide.
	assert.NotEqual(t,
		Payment("secret", "ab", "c"),
		Payment("secret", "a", "bc"),
	)
}
