package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpapi "rentaldesk-backend/internal/api/http"
	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/pricing"
	"rentaldesk-backend/internal/security"
	"rentaldesk-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fixture struct {
	catalog   *MockCatalogService
	forms     *MockFormService
	orders    *MockOrderService
	settings  *MockSettingsService
	users     *MockUserService
	dashboard *MockDashboardService
	tokens    security.TokenManager
	router    http.Handler
}

func newFixture() *fixture {
	f := &fixture{
		catalog:   new(MockCatalogService),
		forms:     new(MockFormService),
		orders:    new(MockOrderService),
		settings:  new(MockSettingsService),
		users:     new(MockUserService),
		dashboard: new(MockDashboardService),
		tokens:    security.NewTokenManager(testSecret, ""),
	}
	h := httpapi.NewHandler(f.catalog, f.forms, f.orders, f.settings, f.users, f.dashboard)
	f.router = httpapi.NewRouter(h, httpapi.NewAuthMiddleware(f.tokens))
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string, role domain.UserRole) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if role != "" {
		token, err := f.tokens.GenerateAccessToken(7, "staff@example.com", role, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRouter_Auth(t *testing.T) {
	f := newFixture()

	t.Run("Health is public", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/healthz", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("Missing token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/counts", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/counts", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Manager blocked from admin routes", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, "/api/settings", `{"company_name":"X"}`, domain.UserRoleManager)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		f.settings.AssertNotCalled(t, "SaveSettings", mock.Anything, mock.Anything)
	})

	t.Run("Manager reads counts", func(t *testing.T) {
		f.dashboard.On("Counts", mock.Anything).Return(&domain.DashboardCounts{Forms: 2, Orders: 5}, nil).Once()
		rec := f.do(t, http.MethodGet, "/api/counts", "", domain.UserRoleManager)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(5), decodeBody(t, rec)["orders"])
	})
}

func TestRouter_ListProducts(t *testing.T) {
	f := newFixture()
	products := []domain.Product{{ID: 1, Title: "Screen"}, {ID: 2, Title: "Mount"}}

	t.Run("Paged", func(t *testing.T) {
		filter := domain.ProductFilter{Search: "s", CategoryID: 10, Page: 2, PageSize: 1}
		f.catalog.On("ListProducts", mock.Anything, filter).Return(products[:1], int32(2), nil).Once()

		rec := f.do(t, http.MethodGet, "/api/products?search=s&category_id=10&page=2&per_page=1", "", domain.UserRoleManager)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(2), body["total"])
		assert.Equal(t, float64(2), body["last_page"])
		assert.Len(t, body["data"], 1)
	})

	t.Run("All", func(t *testing.T) {
		f.catalog.On("ListProducts", mock.Anything, domain.ProductFilter{}).Return(products, int32(2), nil).Once()

		rec := f.do(t, http.MethodGet, "/api/products?all=1", "", domain.UserRoleManager)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(2), body["per_page"])
		assert.Equal(t, float64(1), body["last_page"])
	})
}

func TestRouter_CreateForm(t *testing.T) {
	f := newFixture()

	t.Run("Tax as encoded string", func(t *testing.T) {
		f.forms.On("CreateForm", mock.Anything, int32(7), mock.MatchedBy(func(form *domain.OrderForm) bool {
			return form.Title == "Expo" && form.Tax["GST 5%"].Equal(decimal.NewFromInt(5))
		})).Return(&service.AccessGrant{FormID: 3, Code: "ABCD1234", URL: "/orderform/3"}, nil).Once()

		body := `{"title":"Expo","status":"published","tax":"{\"GST 5%\":5}"}`
		rec := f.do(t, http.MethodPost, "/api/forms", body, domain.UserRoleManager)
		require.Equal(t, http.StatusCreated, rec.Code)
		access := decodeBody(t, rec)["access"].(map[string]any)
		assert.Equal(t, "ABCD1234", access["access_code"])
	})

	t.Run("Tax preset", func(t *testing.T) {
		f.forms.On("CreateForm", mock.Anything, int32(7), mock.MatchedBy(func(form *domain.OrderForm) bool {
			return form.Tax["VAT 20%"].Equal(decimal.NewFromInt(20))
		})).Return(nil, nil).Once()

		rec := f.do(t, http.MethodPost, "/api/forms", `{"title":"Expo","tax_preset":"VAT 20%"}`, domain.UserRoleManager)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Unknown preset", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/forms", `{"title":"Expo","tax_preset":"HST"}`, domain.UserRoleManager)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Window errors are listed", func(t *testing.T) {
		verr := &pricing.ValidationError{Fields: []pricing.FieldError{{Field: "finish", Message: "finish cannot be before start"}}}
		f.forms.On("CreateForm", mock.Anything, int32(7), mock.Anything).
			Return(nil, fmt.Errorf("%w: %w", service.ErrInvalidInput, verr)).Once()

		rec := f.do(t, http.MethodPost, "/api/forms", `{"title":"Expo"}`, domain.UserRoleManager)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		fields := decodeBody(t, rec)["fields"].([]any)
		require.Len(t, fields, 1)
		assert.Equal(t, "finish", fields[0].(map[string]any)["field"])
	})
}

func TestRouter_PublicOrderFlow(t *testing.T) {
	f := newFixture()
	form := &domain.OrderForm{ID: 5, Title: "Expo", Status: domain.FormStatusPublished}
	sel := domain.EquipmentSelection{Quantities: map[int32]int{1: 2}}

	t.Run("Wrong access code", func(t *testing.T) {
		f.forms.On("VerifyAccessCode", mock.Anything, int32(5), "NOPE").Return(nil, service.ErrInvalidAccessCode).Once()

		rec := f.do(t, http.MethodGet, "/api/public/forms/5?code=NOPE", "", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Quote", func(t *testing.T) {
		f.forms.On("VerifyAccessCode", mock.Anything, int32(5), "ABCD1234").Return(form, nil).Once()
		p := domain.OrderPricing{RentalDays: 3, GrandTotal: decimal.RequireFromString("1021.97")}
		f.orders.On("Quote", mock.Anything, int32(5), sel).
			Return(&service.Quote{FormID: 5, Pricing: p, Summary: pricing.Summarize(p, "CAD")}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/public/forms/5/quote", strings.NewReader(`{"quantities":{"1":2}}`))
		req.Header.Set("X-Access-Code", "ABCD1234")
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		summary := decodeBody(t, rec)["summary"].(map[string]any)
		assert.Equal(t, "$1,021.97", summary["total"].(map[string]any)["display"])
	})

	t.Run("Place order", func(t *testing.T) {
		f.forms.On("VerifyAccessCode", mock.Anything, int32(5), "ABCD1234").Return(form, nil).Once()
		want := service.PlaceOrderRequest{
			FormID:        5,
			Selection:     sel,
			Client:        domain.ClientInfo{Name: "Jo", Email: "jo@example.com"},
			TransactionID: "txn_1",
		}
		f.orders.On("PlaceOrder", mock.Anything, want).Return(&domain.Order{
			ID: 21, Status: domain.OrderStatusPaid, TotalAmount: decimal.RequireFromString("1021.97"),
			Snapshot: domain.OrderSnapshot{RentalDays: 3},
		}, nil).Once()

		body := `{"selection":{"quantities":{"1":2}},"client":{"name":"Jo","email":"jo@example.com"},"transaction_id":"txn_1"}`
		rec := f.do(t, http.MethodPost, "/api/public/forms/5/orders?code=ABCD1234", body, "")
		require.Equal(t, http.StatusCreated, rec.Code)
		out := decodeBody(t, rec)
		assert.Equal(t, "1021.97", out["total_amount"])
		assert.Equal(t, "paid", out["status"])
	})
}

func TestRouter_Orders(t *testing.T) {
	f := newFixture()

	t.Run("Refund over balance", func(t *testing.T) {
		f.orders.On("Refund", mock.Anything, int32(21), mock.Anything, "oops").
			Return(nil, fmt.Errorf("%w: requested 2000.00", pricing.ErrRefundExceedsBalance)).Once()

		rec := f.do(t, http.MethodPost, "/api/orders/21/refunds", `{"amount":"2000","reason":"oops"}`, domain.UserRoleAdmin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Refund needs admin", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/orders/21/refunds", `{"amount":"20"}`, domain.UserRoleManager)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Not found", func(t *testing.T) {
		f.orders.On("GetOrder", mock.Anything, int32(99)).Return(nil, service.ErrNotFound).Once()
		rec := f.do(t, http.MethodGet, "/api/orders/99", "", domain.UserRoleManager)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Bad id", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/orders/abc/invoice", "", domain.UserRoleManager)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Unexpected errors are hidden", func(t *testing.T) {
		f.orders.On("Invoice", mock.Anything, int32(21)).Return(nil, fmt.Errorf("pq: connection reset")).Once()
		rec := f.do(t, http.MethodGet, "/api/orders/21/invoice", "", domain.UserRoleManager)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", decodeBody(t, rec)["error"])
	})
}

func TestRouter_Users(t *testing.T) {
	f := newFixture()
	f.users.On("DeleteUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 7 && u.Role == domain.UserRoleAdmin
	}), int32(3)).Return(nil).Once()

	rec := f.do(t, http.MethodDelete, "/api/users/3", "", domain.UserRoleAdmin)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.users.AssertExpectations(t)
}
