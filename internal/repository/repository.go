package repository

import (
	"context"
	"errors"

	"rentaldesk-backend/internal/domain"
)

var ErrNotFound = errors.New("record not found")

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int32) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Category, error)
	CountProducts(ctx context.Context, id int32) (int32, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int32) error
	// List pages through products; a zero PageSize returns every match.
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int32, error)
	ListByIDs(ctx context.Context, ids []int32) ([]domain.Product, error)
}

type FormRepository interface {
	Create(ctx context.Context, form *domain.OrderForm) error
	GetByID(ctx context.Context, id int32) (*domain.OrderForm, error)
	Update(ctx context.Context, form *domain.OrderForm) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.FormFilter) ([]domain.OrderForm, int32, error)
	SetAccessCodeHash(ctx context.Context, id int32, hash string) error
	// ListPublishedEndedBefore returns published forms whose finish date is before date (YYYY-MM-DD).
	ListPublishedEndedBefore(ctx context.Context, date string) ([]domain.OrderForm, error)
	UpdateStatus(ctx context.Context, id int32, status domain.FormStatus) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	// UpdateRefund applies a refund to the locked order and persists it.
	// An error from apply aborts without writing.
	UpdateRefund(ctx context.Context, id int32, apply func(order *domain.Order) error) (*domain.Order, error)
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int32, error)
	ListByStatus(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.CompanySettings, error)
	Save(ctx context.Context, settings *domain.CompanySettings) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int32, error)
}

type StatsRepository interface {
	Counts(ctx context.Context) (*domain.DashboardCounts, error)
}
