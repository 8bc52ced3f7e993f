package service

import (
	"context"
	"errors"
	"fmt"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/pricing"
	"rentaldesk-backend/internal/repository"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrFormNotPublished   = errors.New("order form is not published")
	ErrInvalidAccessCode  = errors.New("invalid access code")
	ErrOrderNotRefundable = errors.New("order cannot be refunded in its current status")
	ErrNothingSelected    = errors.New("no equipment selected")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int32) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id int32) error

	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int32, error)
	GetProduct(ctx context.Context, id int32) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int32) error
}

// AccessGrant is handed out once when a form's access code is issued.
type AccessGrant struct {
	FormID int32  `json:"form_id"`
	Code   string `json:"access_code"`
	URL    string `json:"url"`
}

type FormService interface {
	// CreateForm and UpdateForm return a grant when the save publishes a form that had no access code yet.
	CreateForm(ctx context.Context, ownerID int32, form *domain.OrderForm) (*AccessGrant, error)
	UpdateForm(ctx context.Context, form *domain.OrderForm) (*AccessGrant, error)
	GetForm(ctx context.Context, id int32) (*domain.OrderForm, error)
	ListForms(ctx context.Context, filter domain.FormFilter) ([]domain.OrderForm, int32, error)
	DeleteForm(ctx context.Context, id int32) error
	DuplicateForm(ctx context.Context, id int32, title string) (*domain.OrderForm, error)
	RegenerateAccessCode(ctx context.Context, id int32) (*AccessGrant, error)
	// VerifyAccessCode returns the form when it is published and code matches.
	VerifyAccessCode(ctx context.Context, id int32, code string) (*domain.OrderForm, error)
}

// Quote is a priced selection that has not been stored.
type Quote struct {
	FormID  int32               `json:"form_id"`
	Pricing domain.OrderPricing `json:"pricing"`
	Lines   []pricing.LineItem  `json:"lines"`
	Summary pricing.Summary     `json:"summary"`
}

type PlaceOrderRequest struct {
	FormID        int32                     `json:"form_id"`
	Selection     domain.EquipmentSelection `json:"selection"`
	Client        domain.ClientInfo         `json:"client"`
	PaymentMethod string                    `json:"payment_method"`
	TransactionID string                    `json:"transaction_id"`
}

type Invoice struct {
	Number       string                                   `json:"number"`
	IssuedOn     string                                   `json:"issued_on"`
	Company      domain.CompanySettings                   `json:"company"`
	Order        domain.Order                             `json:"order"`
	Form         domain.OrderForm                         `json:"form"`
	Client       domain.ClientInfo                        `json:"client"`
	RentalDays   int                                      `json:"rental_days"`
	PricingDrift bool                                     `json:"pricing_drift"`
	Mounting     string                                   `json:"mounting"`
	OwnLaptop    string                                   `json:"own_laptop"`
	Groups       map[pricing.LineGroup][]pricing.LineItem `json:"groups"`
	Summary      pricing.Summary                          `json:"summary"`
	RefundAmount decimal.Decimal                          `json:"refund_amount"`
}

type OrderService interface {
	// FormCatalog is the live catalog a client orders from on the given form.
	FormCatalog(ctx context.Context, form *domain.OrderForm) (domain.Catalog, error)
	Quote(ctx context.Context, formID int32, selection domain.EquipmentSelection) (*Quote, error)
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, id int32) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int32, error)
	DeleteOrder(ctx context.Context, id int32) error
	Invoice(ctx context.Context, id int32) (*Invoice, error)
	Refund(ctx context.Context, id int32, amount decimal.Decimal, reason string) (*domain.Order, error)
}

type SettingsService interface {
	GetSettings(ctx context.Context) (*domain.CompanySettings, error)
	SaveSettings(ctx context.Context, settings *domain.CompanySettings) error
}

type UserService interface {
	ListUsers(ctx context.Context, actor *domain.User, filter domain.UserFilter) ([]domain.User, int32, error)
	GetUser(ctx context.Context, id int32) (*domain.User, error)
	CreateUser(ctx context.Context, actor *domain.User, user *domain.User) error
	UpdateUser(ctx context.Context, actor *domain.User, user *domain.User) error
	DeleteUser(ctx context.Context, actor *domain.User, id int32) error
}

type DashboardService interface {
	Counts(ctx context.Context) (*domain.DashboardCounts, error)
}

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, order *domain.Order, summary pricing.Summary) error
	SendRefundNotice(ctx context.Context, order *domain.Order, amount decimal.Decimal) error
	SendAdminNotification(ctx context.Context, adminEmail, subject, message string) error
}
