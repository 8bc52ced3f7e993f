package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/storage"
)

// WithFileStorage enables product image and company logo uploads.
func (h *Handler) WithFileStorage(files storage.Storage, maxBytes int64) *Handler {
	h.files = files
	h.maxUpload = maxBytes
	return h
}

// readImage pulls one image file out of a multipart form and sniffs its
// content type. It writes the error response itself when it fails.
func (h *Handler) readImage(w http.ResponseWriter, r *http.Request, field string) (io.Reader, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1024)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: fmt.Sprintf("file exceeds %d bytes", h.maxUpload)})
			return nil, "", false
		}
		badRequest(w, "expected a multipart form")
		return nil, "", false
	}
	file, _, err := r.FormFile(field)
	if err != nil {
		badRequest(w, fmt.Sprintf("missing %q file", field))
		return nil, "", false
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		badRequest(w, "empty file")
		return nil, "", false
	}
	contentType := http.DetectContentType(head[:n])
	if _, err := storage.NewImageKey("upload", contentType); err != nil {
		writeJSON(w, http.StatusUnsupportedMediaType, errorBody{Error: err.Error()})
		return nil, "", false
	}
	return io.MultiReader(bytes.NewReader(head[:n]), file), contentType, true
}

// store saves an upload under prefix and returns its public URL.
func (h *Handler) store(r *http.Request, prefix, contentType string, body io.Reader) (key, url string, err error) {
	key, err = storage.NewImageKey(prefix, contentType)
	if err != nil {
		return "", "", err
	}
	if err := h.files.Save(r.Context(), key, body); err != nil {
		return "", "", err
	}
	return key, h.files.URL(key), nil
}

// discard removes a file this storage owns once it is no longer referenced.
func (h *Handler) discard(r *http.Request, url string) {
	key, ok := h.files.KeyFromURL(url)
	if !ok {
		return
	}
	h.remove(r, key, "Failed to delete replaced file")
}

// remove deletes a stored file. Failures leave an orphan and are only logged.
func (h *Handler) remove(r *http.Request, key, msg string) {
	if err := h.files.Delete(r.Context(), key); err != nil {
		logger.WarnContext(r.Context(), msg, "key", key, "error", err)
	}
}

func (h *Handler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
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
	body, contentType, ok := h.readImage(w, r, "image")
	if !ok {
		return
	}
	key, url, err := h.store(r, fmt.Sprintf("products/%d", id), contentType, body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	previous := p.ImageURL
	p.ImageURL = url
	if err := h.catalog.UpdateProduct(r.Context(), p); err != nil {
		h.remove(r, key, "Failed to delete uploaded file")
		writeError(w, r, err)
		return
	}
	if previous != "" && previous != url {
		h.discard(r, previous)
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.GetSettings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, contentType, ok := h.readImage(w, r, "logo")
	if !ok {
		return
	}
	key, url, err := h.store(r, "logo", contentType, body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	previous := s.LogoURL
	s.LogoURL = url
	if err := h.settings.SaveSettings(r.Context(), s); err != nil {
		h.remove(r, key, "Failed to delete uploaded file")
		writeError(w, r, err)
		return
	}
	if previous != "" && previous != url {
		h.discard(r, previous)
	}
	writeJSON(w, http.StatusOK, s)
}

// ServeFile streams a stored upload. Files are public so order form links
// and invoices can show product images and the logo.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, storage.FilesRoute)
	file, err := h.files.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			http.NotFound(w, r)
			return
		}
		writeError(w, r, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", storage.ContentType(key))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := io.Copy(w, file); err != nil {
		logger.WarnContext(r.Context(), "Failed to stream file", "key", key, "error", err)
	}
}
