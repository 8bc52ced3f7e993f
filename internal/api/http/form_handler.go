package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/pricing"
	"rentaldesk-backend/internal/service"
)

// formRequest accepts the tax either as an object, as a JSON string holding
// one, or as the name of a preset.
type formRequest struct {
	domain.OrderForm
	Tax       json.RawMessage `json:"tax"`
	TaxPreset string          `json:"tax_preset"`
}

func (req formRequest) toForm() (*domain.OrderForm, error) {
	f := req.OrderForm
	if req.TaxPreset != "" {
		preset, ok := domain.TaxPresets[req.TaxPreset]
		if !ok {
			return nil, fmt.Errorf("%w: unknown tax preset %q", service.ErrInvalidInput, req.TaxPreset)
		}
		f.Tax = make(domain.TaxConfig, len(preset))
		for label, rate := range preset {
			f.Tax[label] = rate
		}
		return &f, nil
	}
	tax, err := pricing.ParseTaxConfig(req.Tax)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrInvalidInput, err)
	}
	f.Tax = tax
	return &f, nil
}

type formResponse struct {
	Form   *domain.OrderForm    `json:"form"`
	Access *service.AccessGrant `json:"access,omitempty"`
}

func (h *Handler) ListForms(w http.ResponseWriter, r *http.Request) {
	filter := domain.FormFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Status: domain.FormStatus(r.URL.Query().Get("status")),
	}
	filter.Page, filter.PageSize = pageParams(r)
	forms, total, err := h.forms.ListForms(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPage(forms, total, filter.Page, filter.PageSize))
}

func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid form id")
		return
	}
	f, err := h.forms.GetForm(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	f, err := req.toForm()
	if err != nil {
		writeError(w, r, err)
		return
	}
	f.ID = 0
	var ownerID int32
	if u := actor(r); u != nil {
		ownerID = u.ID
	}
	grant, err := h.forms.CreateForm(r.Context(), ownerID, f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, formResponse{Form: f, Access: grant})
}

func (h *Handler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid form id")
		return
	}
	var req formRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	f, err := req.toForm()
	if err != nil {
		writeError(w, r, err)
		return
	}
	f.ID = id
	grant, err := h.forms.UpdateForm(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formResponse{Form: f, Access: grant})
}

func (h *Handler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid form id")
		return
	}
	if err := h.forms.DeleteForm(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DuplicateForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid form id")
		return
	}
	var body struct {
		Title string `json:"title"`
	}
	// An empty body keeps the default "(Copy)" title.
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &body); err != nil {
			badRequest(w, "invalid request body")
			return
		}
	}
	f, err := h.forms.DuplicateForm(r.Context(), id, body.Title)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *Handler) RegenerateAccessCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid form id")
		return
	}
	grant, err := h.forms.RegenerateAccessCode(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, grant)
}

// QuoteForm lets staff price a selection against any form, published or not.
func (h *Handler) QuoteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid form id")
		return
	}
	var sel domain.EquipmentSelection
	if err := decodeJSON(r, &sel); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	q, err := h.orders.Quote(r.Context(), id, sel)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}
