// Package bind decodes and validates request payloads.
package bind

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shringarlabs/shringar/pkg/errs"
	"github.com/shringarlabs/shringar/pkg/validate"
)

const maxBodyBytes = 1 << 20

// JSON decodes the request body into dest and runs struct validation.
func JSON(r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		return errs.ValidationField("body", "malformed JSON payload")
	}

	if fields := validate.Struct(dest); len(fields) > 0 {
		return errs.Validation(fields)
	}

	return nil
}

// QueryInt reads an integer query parameter, falling back when absent or bad.
func QueryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}

// Query reads a string query parameter with a fallback.
func Query(r *http.Request, key, fallback string) string {
	if value := r.URL.Query().Get(key); value != "" {
		return value
	}
	return fallback
}

// Page extracts page and limit query parameters with sane bounds.
func Page(r *http.Request) (page, limit int) {
	page = QueryInt(r, "page", 1)
	limit = QueryInt(r, "limit", 20)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	return page, limit
}
