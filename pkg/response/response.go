// Package response renders the API's JSON envelopes.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shringarlabs/shringar/pkg/errs"
	"github.com/shringarlabs/shringar/pkg/orm"
)

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type apiError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if body == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Paginated wraps a page of results with its pagination meta.
func Paginated(w http.ResponseWriter, data interface{}, page orm.Pagination) {
	JSON(w, http.StatusOK, envelope{Success: true, Data: data, Meta: page})
}

// Error maps a domain error to its HTTP status via the errs taxonomy.
func Error(w http.ResponseWriter, err error) {
	status := errs.Status(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		JSON(w, status, envelope{Success: false, Error: &apiError{Message: "internal server error"}})
		return
	}

	JSON(w, status, envelope{Success: false, Error: &apiError{
		Message: err.Error(),
		Fields:  errs.Fields(err),
	}})
}

func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, envelope{Success: false, Error: &apiError{Message: message}})
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "unauthenticated"
	}
	JSON(w, http.StatusUnauthorized, envelope{Success: false, Error: &apiError{Message: message}})
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "forbidden"
	}
	JSON(w, http.StatusForbidden, envelope{Success: false, Error: &apiError{Message: message}})
}

func Internal(w http.ResponseWriter) {
	JSON(w, http.StatusInternalServerError, envelope{Success: false, Error: &apiError{Message: "internal server error"}})
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "not found"
	}
	JSON(w, http.StatusNotFound, envelope{Success: false, Error: &apiError{Message: message}})
}
