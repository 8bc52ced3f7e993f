package http

import (
	"net/http"
	"strings"

	"rentaldesk-backend/internal/domain"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid category id")
		return
	}
	c, err := h.catalog.GetCategory(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c domain.Category
	if err := decodeJSON(r, &c); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	c.ID = 0
	if err := h.catalog.CreateCategory(r.Context(), &c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid category id")
		return
	}
	var c domain.Category
	if err := decodeJSON(r, &c); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	c.ID = id
	if err := h.catalog.UpdateCategory(r.Context(), &c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid category id")
		return
	}
	if err := h.catalog.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListProducts supports search, category_id, page and per_page; all=1 returns every product.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		Search:     strings.TrimSpace(q.Get("search")),
		CategoryID: queryInt32(r, "category_id"),
	}
	if q.Get("all") != "1" {
		filter.Page, filter.PageSize = pageParams(r)
	}
	products, total, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, perPage := filter.Page, filter.PageSize
	if perPage == 0 {
		page, perPage = 1, total
	}
	writeJSON(w, http.StatusOK, newPage(products, total, page, perPage))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid product id")
		return
	}
	p, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := decodeJSON(r, &p); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	p.ID = 0
	if err := h.catalog.CreateProduct(r.Context(), &p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid product id")
		return
	}
	var p domain.Product
	if err := decodeJSON(r, &p); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	p.ID = id
	if err := h.catalog.UpdateProduct(r.Context(), &p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid product id")
		return
	}
	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
