// Package errs defines the application error taxonomy.
//
// Services return these typed errors; controllers translate them to HTTP
// responses with errs.Status and errs.Fields. Anything else maps to a 500.
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ValidationError reports malformed input, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// Validation builds a ValidationError from a field → message map.
func Validation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ValidationField builds a single-field ValidationError.
func ValidationField(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Resource string // "product", "order", ...
	Ref      string // slug, id, or order number
}

func (e *NotFoundError) Error() string {
	if e.Ref == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Ref)
}

// NotFound builds a NotFoundError for the given resource and reference.
func NotFound(resource, ref string) *NotFoundError {
	return &NotFoundError{Resource: resource, Ref: ref}
}

// OutOfStockError reports a product that exists but cannot be ordered.
// Kept distinct from NotFoundError so clients can render "out of stock"
// rather than "doesn't exist".
type OutOfStockError struct {
	Product string // product name
}

func (e *OutOfStockError) Error() string {
	return "product is out of stock: " + e.Product
}

// OutOfStock builds an OutOfStockError naming the product.
func OutOfStock(product string) *OutOfStockError {
	return &OutOfStockError{Product: product}
}

// ConflictError reports a uniqueness collision, like creating a product
// with a slug that already exists.
type ConflictError struct {
	Resource string
	Ref      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Ref)
}

// Conflict builds a ConflictError for the given resource and reference.
func Conflict(resource, ref string) *ConflictError {
	return &ConflictError{Resource: resource, Ref: ref}
}

// ErrInvalidSignature is returned when a payment callback fails
// cryptographic verification. Treated as a security event.
var ErrInvalidSignature = errors.New("invalid payment signature")

// GatewayError reports a failed call to the external payment provider.
// The local order is left untouched and the operation is safe to retry.
type GatewayError struct {
	Op  string // "create order", ...
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway: %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Gateway wraps err as a GatewayError for the given operation.
func Gateway(op string, err error) *GatewayError {
	return &GatewayError{Op: op, Err: err}
}

// ErrUnauthenticated is returned when an operation requires a logged-in user.
var ErrUnauthenticated = errors.New("authentication required")

// ErrInvalidCredentials is returned for a failed login. Unknown email
// and wrong password share it so the response leaks nothing.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Status maps an application error to its HTTP status code.
func Status(err error) int {
	var (
		ve *ValidationError
		nf *NotFoundError
		os *OutOfStockError
		ge *GatewayError
		ce *ConflictError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &os):
		return http.StatusBadRequest
	case errors.As(err, &ce):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidSignature):
		return http.StatusBadRequest
	case errors.As(err, &ge):
		return http.StatusBadGateway
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Fields extracts the field map from a ValidationError, or nil.
func Fields(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
