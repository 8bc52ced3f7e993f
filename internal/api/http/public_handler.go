package http

import (
	"net/http"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/pricing"
	"rentaldesk-backend/internal/service"
)

// publicForm is what a client sees when opening an order form link.
type publicForm struct {
	ID          int32            `json:"id"`
	Title       string           `json:"title"`
	CompanyName string           `json:"company_name"`
	LogoURL     string           `json:"company_logo_url"`
	Event       domain.EventInfo `json:"event"`
	IsPrepaid   bool             `json:"is_prepaid"`
	Tax         domain.TaxConfig `json:"tax"`
	Catalog     domain.Catalog   `json:"catalog"`
	RentalDays  int              `json:"rental_days"`
}

type placeOrderRequest struct {
	Selection     domain.EquipmentSelection `json:"selection"`
	Client        domain.ClientInfo         `json:"client"`
	PaymentMethod string                    `json:"payment_method"`
	TransactionID string                    `json:"transaction_id"`
}

// verifiedForm checks the access code on a public request and writes the
// error response itself when it fails.
func (h *Handler) verifiedForm(w http.ResponseWriter, r *http.Request) (*domain.OrderForm, bool) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid form id")
		return nil, false
	}
	form, err := h.forms.VerifyAccessCode(r.Context(), id, accessCode(r))
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return form, true
}

func (h *Handler) PublicForm(w http.ResponseWriter, r *http.Request) {
	form, ok := h.verifiedForm(w, r)
	if !ok {
		return
	}
	catalog, err := h.orders.FormCatalog(r.Context(), form)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, publicForm{
		ID:          form.ID,
		Title:       form.Title,
		CompanyName: form.CompanyName,
		LogoURL:     form.CompanyLogoURL,
		Event:       form.Event,
		IsPrepaid:   form.IsPrepaid,
		Tax:         form.Tax,
		Catalog:     catalog,
		RentalDays:  pricing.RentalDays(form.Event.Window),
	})
}

func (h *Handler) PublicQuote(w http.ResponseWriter, r *http.Request) {
	form, ok := h.verifiedForm(w, r)
	if !ok {
		return
	}
	var sel domain.EquipmentSelection
	if err := decodeJSON(r, &sel); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	q, err := h.orders.Quote(r.Context(), form.ID, sel)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) PublicPlaceOrder(w http.ResponseWriter, r *http.Request) {
	form, ok := h.verifiedForm(w, r)
	if !ok {
		return
	}
	var req placeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	order, err := h.orders.PlaceOrder(r.Context(), service.PlaceOrderRequest{
		FormID:        form.ID,
		Selection:     req.Selection,
		Client:        req.Client,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"order_id":     order.ID,
		"status":       order.Status,
		"total_amount": order.TotalAmount.StringFixed(2),
		"rental_days":  order.Snapshot.RentalDays,
	})
}
