package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tiendaonline/backend/internal/entity"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ProductID string `json:"product_id,omitempty"`
	Available *int   `json:"available,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// statusFromError maps a taxonomy error to its HTTP status and a
// machine-readable code. Anything outside the taxonomy is an internal
// error; its details are logged, never sent to the client.
func statusFromError(err error) (int, string) {
	var stockErr *entity.InsufficientStockError
	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, entity.ErrEmptyCart):
		return http.StatusBadRequest, "EMPTY_CART"
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, entity.ErrUnauthenticated):
		return http.StatusUnauthorized, "UNAUTHENTICATED"
	case errors.Is(err, entity.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	case errors.As(err, &stockErr):
		return http.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, entity.ErrTransactionFailure):
		return http.StatusInternalServerError, "TRANSACTION_FAILURE"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, code := statusFromError(err)

	detail := errorDetail{Code: code, Message: err.Error()}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "err", err)
		detail.Message = "internal server error"
		if code == "TRANSACTION_FAILURE" {
			detail.Message = "the operation was rolled back; it is safe to retry"
		}
	}

	var stockErr *entity.InsufficientStockError
	if errors.As(err, &stockErr) {
		detail.ProductID = stockErr.ProductID
		available := stockErr.Available
		detail.Available = &available
	}

	writeJSON(w, status, errorBody{Error: detail})
}
