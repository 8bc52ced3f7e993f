package http_test

import (
	"context"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCatalogService) GetCategory(ctx context.Context, id int32) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCatalogService) CreateCategory(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCatalogService) UpdateCategory(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCatalogService) DeleteCategory(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Get(1).(int32), args.Error(2)
}
func (m *MockCatalogService) GetProduct(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockCatalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockCatalogService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockCatalogService) DeleteProduct(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFormService
type MockFormService struct {
	mock.Mock
}

func (m *MockFormService) CreateForm(ctx context.Context, ownerID int32, f *domain.OrderForm) (*service.AccessGrant, error) {
	args := m.Called(ctx, ownerID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AccessGrant), args.Error(1)
}
func (m *MockFormService) UpdateForm(ctx context.Context, f *domain.OrderForm) (*service.AccessGrant, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AccessGrant), args.Error(1)
}
func (m *MockFormService) GetForm(ctx context.Context, id int32) (*domain.OrderForm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderForm), args.Error(1)
}
func (m *MockFormService) ListForms(ctx context.Context, filter domain.FormFilter) ([]domain.OrderForm, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.OrderForm), args.Get(1).(int32), args.Error(2)
}
func (m *MockFormService) DeleteForm(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockFormService) DuplicateForm(ctx context.Context, id int32, title string) (*domain.OrderForm, error) {
	args := m.Called(ctx, id, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderForm), args.Error(1)
}
func (m *MockFormService) RegenerateAccessCode(ctx context.Context, id int32) (*service.AccessGrant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AccessGrant), args.Error(1)
}
func (m *MockFormService) VerifyAccessCode(ctx context.Context, id int32, code string) (*domain.OrderForm, error) {
	args := m.Called(ctx, id, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderForm), args.Error(1)
}

// MockOrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) FormCatalog(ctx context.Context, f *domain.OrderForm) (domain.Catalog, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(domain.Catalog), args.Error(1)
}
func (m *MockOrderService) Quote(ctx context.Context, formID int32, sel domain.EquipmentSelection) (*service.Quote, error) {
	args := m.Called(ctx, formID, sel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Quote), args.Error(1)
}
func (m *MockOrderService) PlaceOrder(ctx context.Context, req service.PlaceOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) GetOrder(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderService) DeleteOrder(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOrderService) Invoice(ctx context.Context, id int32) (*service.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Invoice), args.Error(1)
}
func (m *MockOrderService) Refund(ctx context.Context, id int32, amount decimal.Decimal, reason string) (*domain.Order, error) {
	args := m.Called(ctx, id, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

// MockSettingsService
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSettings(ctx context.Context) (*domain.CompanySettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanySettings), args.Error(1)
}
func (m *MockSettingsService) SaveSettings(ctx context.Context, s *domain.CompanySettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context, actor *domain.User, filter domain.UserFilter) ([]domain.User, int32, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).([]domain.User), args.Get(1).(int32), args.Error(2)
}
func (m *MockUserService) GetUser(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, actor *domain.User, u *domain.User) error {
	args := m.Called(ctx, actor, u)
	return args.Error(0)
}
func (m *MockUserService) UpdateUser(ctx context.Context, actor *domain.User, u *domain.User) error {
	args := m.Called(ctx, actor, u)
	return args.Error(0)
}
func (m *MockUserService) DeleteUser(ctx context.Context, actor *domain.User, id int32) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

// MockDashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Counts(ctx context.Context) (*domain.DashboardCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardCounts), args.Error(1)
}
