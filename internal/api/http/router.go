package http

import (
	"net/http"

	"rentaldesk-backend/internal/service"
	"rentaldesk-backend/internal/storage"

	"github.com/gorilla/mux"
)

type Handler struct {
	catalog   service.CatalogService
	forms     service.FormService
	orders    service.OrderService
	settings  service.SettingsService
	users     service.UserService
	dashboard service.DashboardService
	files     storage.Storage
	maxUpload int64
}

func NewHandler(
	catalog service.CatalogService,
	forms service.FormService,
	orders service.OrderService,
	settings service.SettingsService,
	users service.UserService,
	dashboard service.DashboardService,
) *Handler {
	return &Handler{
		catalog:   catalog,
		forms:     forms,
		orders:    orders,
		settings:  settings,
		users:     users,
		dashboard: dashboard,
	}
}

// NewRouter registers every route. Route templates must match the keys in
// config.EndpointSecurityConfig.
func NewRouter(h *Handler, auth *AuthMiddleware) http.Handler {
	r := mux.NewRouter()
	r.Use(auth.Handler)

	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	public := r.PathPrefix("/api/public").Subrouter()
	public.HandleFunc("/forms/{id}", h.PublicForm).Methods(http.MethodGet)
	public.HandleFunc("/forms/{id}/quote", h.PublicQuote).Methods(http.MethodPost)
	public.HandleFunc("/forms/{id}/orders", h.PublicPlaceOrder).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/counts", h.Counts).Methods(http.MethodGet)
	api.HandleFunc("/me", h.Me).Methods(http.MethodGet)

	api.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories", h.CreateCategory).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id}", h.GetCategory).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id}", h.UpdateCategory).Methods(http.MethodPut)
	api.HandleFunc("/categories/{id}", h.DeleteCategory).Methods(http.MethodDelete)

	api.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products", h.CreateProduct).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", h.GetProduct).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", h.UpdateProduct).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", h.DeleteProduct).Methods(http.MethodDelete)

	api.HandleFunc("/forms", h.ListForms).Methods(http.MethodGet)
	api.HandleFunc("/forms", h.CreateForm).Methods(http.MethodPost)
	api.HandleFunc("/forms/{id}", h.GetForm).Methods(http.MethodGet)
	api.HandleFunc("/forms/{id}", h.UpdateForm).Methods(http.MethodPut)
	api.HandleFunc("/forms/{id}", h.DeleteForm).Methods(http.MethodDelete)
	api.HandleFunc("/forms/{id}/duplicate", h.DuplicateForm).Methods(http.MethodPost)
	api.HandleFunc("/forms/{id}/access-code", h.RegenerateAccessCode).Methods(http.MethodPost)
	api.HandleFunc("/forms/{id}/quote", h.QuoteForm).Methods(http.MethodPost)

	api.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", h.GetOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", h.DeleteOrder).Methods(http.MethodDelete)
	api.HandleFunc("/orders/{id}/invoice", h.Invoice).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/refunds", h.Refund).Methods(http.MethodPost)

	api.HandleFunc("/settings", h.GetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", h.SaveSettings).Methods(http.MethodPut)

	api.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users", h.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", h.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", h.UpdateUser).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}", h.DeleteUser).Methods(http.MethodDelete)

	if h.files != nil {
		r.PathPrefix(storage.FilesRoute).HandlerFunc(h.ServeFile).Methods(http.MethodGet)
		api.HandleFunc("/products/{id}/image", h.UploadProductImage).Methods(http.MethodPost)
		api.HandleFunc("/settings/logo", h.UploadLogo).Methods(http.MethodPost)
	}

	return RequestLogger(Recoverer(r))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
