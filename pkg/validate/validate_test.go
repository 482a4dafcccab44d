package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type address struct {
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type checkoutInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Quantity int     `json:"quantity" validate:"required,integer,gte=1"`
	Status   string  `json:"status" validate:"nullable,in=pending,confirmed,cancelled"`
	Address  address `json:"address"`
	Notes    string  `json:"notes" validate:"nullable,max=10"`
}

func TestStructValid(t *testing.T) {
	in := checkoutInput{
		Email:    "asha@example.com",
		Quantity: 2,
		Status:   "confirmed",
		Address:  address{City: "Pune", Country: "IN"},
	}

	errs := Struct(&in)
	assert.Empty(t, errs)
}

func TestStructRequired(t *testing.T) {
	errs := Struct(&checkoutInput{Address: address{City: "Pune", Country: "IN"}})

	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "quantity")
}

func TestStructEmail(t *testing.T) {
	in := checkoutInput{Email: "not-an-email", Quantity: 1, Address: address{City: "Pune", Country: "IN"}}

	errs := Struct(&in)
	assert.Contains(t, errs["email"], "valid email")
}

func TestStructIn(t *testing.T) {
	in := checkoutInput{Email: "a@b.co", Quantity: 1, Status: "shipped->nope", Address: address{City: "Pune", Country: "IN"}}

	errs := Struct(&in)
	assert.Contains(t, errs, "status")
}

func TestStructNullableSkips(t *testing.T) {
	in := checkoutInput{Email: "a@b.co", Quantity: 1, Address: address{City: "Pune", Country: "IN"}}

	errs := Struct(&in)
	assert.NotContains(t, errs, "status")
	assert.NotContains(t, errs, "notes")
}

func TestStructNestedPrefix(t *testing.T) {
	in := checkoutInput{Email: "a@b.co", Quantity: 1}

	errs := Struct(&in)
	assert.Contains(t, errs, "address.city")
	assert.Contains(t, errs, "address.country")
}

func TestStructRange(t *testing.T) {
	type qty struct {
		N int `json:"n" validate:"gte=1,lte=10"`
	}

	assert.Contains(t, Struct(&qty{N: 0}), "n")
	assert.Contains(t, Struct(&qty{N: 11}), "n")
	assert.Empty(t, Struct(&qty{N: 5}))
}

func TestStructPointerFields(t *testing.T) {
	type patch struct {
		Cost *int64 `json:"cost" validate:"nullable,integer,gte=0"`
	}

	assert.Empty(t, Struct(&patch{}))

	cost := int64(50)
	assert.Empty(t, Struct(&patch{Cost: &cost}))

	negative := int64(-1)
	assert.Contains(t, Struct(&patch{Cost: &negative}), "cost")
}

func TestSplitRulesKeepsInParams(t *testing.T) {
	rules := splitRules("required,in=pending,paid,failed,max=20")
	assert.Equal(t, []string{"required", "in=pending,paid,failed", "max=20"}, rules)
}
