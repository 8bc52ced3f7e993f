package service_test

import (
	"context"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepo
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCategoryRepo) GetByID(ctx context.Context, id int32) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCategoryRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryRepo) CountProducts(ctx context.Context, id int32) (int32, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int32), args.Error(1)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProductRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Get(1).(int32), args.Error(2)
}
func (m *MockProductRepo) ListByIDs(ctx context.Context, ids []int32) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Product), args.Error(1)
}

// MockFormRepo
type MockFormRepo struct {
	mock.Mock
}

func (m *MockFormRepo) Create(ctx context.Context, f *domain.OrderForm) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}
func (m *MockFormRepo) GetByID(ctx context.Context, id int32) (*domain.OrderForm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderForm), args.Error(1)
}
func (m *MockFormRepo) Update(ctx context.Context, f *domain.OrderForm) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}
func (m *MockFormRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockFormRepo) List(ctx context.Context, filter domain.FormFilter) ([]domain.OrderForm, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.OrderForm), args.Get(1).(int32), args.Error(2)
}
func (m *MockFormRepo) SetAccessCodeHash(ctx context.Context, id int32, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}
func (m *MockFormRepo) ListPublishedEndedBefore(ctx context.Context, date string) ([]domain.OrderForm, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.OrderForm), args.Error(1)
}
func (m *MockFormRepo) UpdateStatus(ctx context.Context, id int32, status domain.FormStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
// UpdateRefund hands the stubbed order to apply the way the locked read does.
func (m *MockOrderRepo) UpdateRefund(ctx context.Context, id int32, apply func(*domain.Order) error) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	o := args.Get(0).(*domain.Order)
	if err := apply(o); err != nil {
		return nil, err
	}
	return o, nil
}
func (m *MockOrderRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOrderRepo) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) ListByStatus(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).([]domain.Order), args.Error(1)
}

// MockSettingsRepo
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context) (*domain.CompanySettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanySettings), args.Error(1)
}
func (m *MockSettingsRepo) Save(ctx context.Context, s *domain.CompanySettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepo) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.User), args.Get(1).(int32), args.Error(2)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOrderConfirmation(ctx context.Context, order *domain.Order, summary pricing.Summary) error {
	args := m.Called(ctx, order, summary)
	return args.Error(0)
}
func (m *MockEmailService) SendRefundNotice(ctx context.Context, order *domain.Order, amount decimal.Decimal) error {
	args := m.Called(ctx, order, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendAdminNotification(ctx context.Context, adminEmail, subject, message string) error {
	args := m.Called(ctx, adminEmail, subject, message)
	return args.Error(0)
}

// MockMailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, toName, subject, body string) error {
	args := m.Called(ctx, to, toName, subject, body)
	return args.Error(0)
}
