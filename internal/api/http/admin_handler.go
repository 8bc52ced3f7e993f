package http

import (
	"net/http"
	"strings"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/service"
)

func (h *Handler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.dashboard.Counts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u := actor(r)
	if u == nil {
		writeError(w, r, service.ErrUnauthorized)
		return
	}
	user, err := h.users.GetUser(r.Context(), u.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.GetSettings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var s domain.CompanySettings
	if err := decodeJSON(r, &s); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.settings.SaveSettings(r.Context(), &s); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := domain.UserFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Role:   domain.UserRole(r.URL.Query().Get("role")),
	}
	filter.Page, filter.PageSize = pageParams(r)
	users, total, err := h.users.ListUsers(r.Context(), actor(r), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPage(users, total, filter.Page, filter.PageSize))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid user id")
		return
	}
	u, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if err := decodeJSON(r, &u); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.users.CreateUser(r.Context(), actor(r), &u); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid user id")
		return
	}
	var u domain.User
	if err := decodeJSON(r, &u); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	u.ID = id
	if err := h.users.UpdateUser(r.Context(), actor(r), &u); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid user id")
		return
	}
	if err := h.users.DeleteUser(r.Context(), actor(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
