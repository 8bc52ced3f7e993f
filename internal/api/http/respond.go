package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/pricing"
	"rentaldesk-backend/internal/service"

	"github.com/gorilla/mux"
)

const defaultPerPage = 20

type errorBody struct {
	Error  string               `json:"error"`
	Fields []pricing.FieldError `json:"fields,omitempty"`
}

// Page is the envelope for paginated lists.
type Page[T any] struct {
	Data     []T   `json:"data"`
	Total    int32 `json:"total"`
	Page     int32 `json:"page"`
	PerPage  int32 `json:"per_page"`
	LastPage int32 `json:"last_page"`
}

func newPage[T any](data []T, total, page, perPage int32) Page[T] {
	if data == nil {
		data = []T{}
	}
	last := int32(1)
	if perPage > 0 && total > 0 {
		last = (total + perPage - 1) / perPage
	}
	return Page[T]{Data: data, Total: total, Page: page, PerPage: perPage, LastPage: last}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// statusFor maps service and pricing errors onto HTTP status codes.
func statusFor(err error) int {
	var verr *pricing.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &verr),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrNothingSelected),
		errors.Is(err, pricing.ErrInvalidRefundAmount),
		errors.Is(err, pricing.ErrRefundExceedsBalance):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrInvalidAccessCode):
		return http.StatusForbidden
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrFormNotPublished),
		errors.Is(err, service.ErrOrderNotRefundable):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error()}
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		body.Error = "internal server error"
	}
	var verr *pricing.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	writeJSON(w, status, body)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func pathID(r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func queryInt32(r *http.Request, key string) int32 {
	v, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}

// pageParams reads page and per_page, defaulting to the first page of twenty.
func pageParams(r *http.Request) (page, perPage int32) {
	page = queryInt32(r, "page")
	if page < 1 {
		page = 1
	}
	perPage = queryInt32(r, "per_page")
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > 200 {
		perPage = 200
	}
	return page, perPage
}
