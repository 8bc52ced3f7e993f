package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCatalogService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogService) GetCategory(ctx context.Context, id int32) (*domain.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *catalogService) CreateCategory(ctx context.Context, category *domain.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return invalidInput("category name is required")
	}
	if err := s.ensureUniqueName(ctx, category.Name, 0); err != nil {
		return err
	}
	return s.categoryRepo.Create(ctx, category)
}

func (s *catalogService) UpdateCategory(ctx context.Context, category *domain.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return invalidInput("category name is required")
	}
	if err := s.ensureUniqueName(ctx, category.Name, category.ID); err != nil {
		return err
	}
	return s.categoryRepo.Update(ctx, category)
}

func (s *catalogService) ensureUniqueName(ctx context.Context, name string, selfID int32) error {
	existing, err := s.categoryRepo.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: category %q already exists", ErrConflict, name)
	}
	return nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id int32) error {
	n, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: category %d still has %d products", ErrConflict, id, n)
	}
	return s.categoryRepo.Delete(ctx, id)
}

func (s *catalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int32, error) {
	return s.productRepo.List(ctx, filter)
}

func (s *catalogService) GetProduct(ctx context.Context, id int32) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.normalizeProduct(ctx, product); err != nil {
		return err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Product created", "product_id", product.ID, "category_id", product.CategoryID)
	return nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.normalizeProduct(ctx, product); err != nil {
		return err
	}
	return s.productRepo.Update(ctx, product)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id int32) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *catalogService) normalizeProduct(ctx context.Context, p *domain.Product) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return invalidInput("product title is required")
	}
	if p.PrepaidPrice.IsNegative() || p.StandardPrice.IsNegative() || p.LabourPrice.IsNegative() {
		return invalidInput("prices cannot be negative")
	}
	if !p.HasLabourPrice {
		p.LabourPrice = decimal.Zero
	}
	category, err := s.categoryRepo.GetByID(ctx, p.CategoryID)
	if errors.Is(err, repository.ErrNotFound) {
		return invalidInput("category %d does not exist", p.CategoryID)
	}
	if err != nil {
		return err
	}
	p.Category = category
	return nil
}
