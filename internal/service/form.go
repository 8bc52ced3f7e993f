package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/pricing"
	"rentaldesk-backend/internal/repository"
	"rentaldesk-backend/internal/security"

	"github.com/go-playground/validator/v10"
)

// publishRules lists what a form must carry before clients can order from it.
type publishRules struct {
	Title        string           `validate:"required"`
	ContactName  string           `validate:"required"`
	ContactEmail string           `validate:"required,email"`
	ContactPhone string           `validate:"required"`
	CompanyName  string           `validate:"required"`
	ShowName     string           `validate:"required"`
	Facility     string           `validate:"required"`
	LoadInDate   string           `validate:"required"`
	StartDate    string           `validate:"required"`
	FinishDate   string           `validate:"required"`
	ProductIDs   []int32          `validate:"min=1,dive,gt=0"`
	Tax          domain.TaxConfig `validate:"min=1"`
}

type formService struct {
	formRepo     repository.FormRepository
	productRepo  repository.ProductRepository
	settingsRepo repository.SettingsRepository
	validate     *validator.Validate
}

func NewFormService(
	formRepo repository.FormRepository,
	productRepo repository.ProductRepository,
	settingsRepo repository.SettingsRepository,
) FormService {
	return &formService{
		formRepo:     formRepo,
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
		validate:     validator.New(),
	}
}

func (s *formService) CreateForm(ctx context.Context, ownerID int32, form *domain.OrderForm) (*AccessGrant, error) {
	form.OwnerID = ownerID
	form.AccessCodeHash = ""
	if err := s.check(ctx, form); err != nil {
		return nil, err
	}
	if err := s.formRepo.Create(ctx, form); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Order form created", "form_id", form.ID, "status", form.Status)

	if form.Status != domain.FormStatusPublished {
		return nil, nil
	}
	return s.issueAccessCode(ctx, form)
}

func (s *formService) UpdateForm(ctx context.Context, form *domain.OrderForm) (*AccessGrant, error) {
	existing, err := s.formRepo.GetByID(ctx, form.ID)
	if err != nil {
		return nil, err
	}
	form.OwnerID = existing.OwnerID
	form.AccessCodeHash = existing.AccessCodeHash
	form.CreatedOn = existing.CreatedOn
	if err := s.check(ctx, form); err != nil {
		return nil, err
	}
	if err := s.formRepo.Update(ctx, form); err != nil {
		return nil, err
	}

	if form.Status != domain.FormStatusPublished || form.AccessCodeHash != "" {
		return nil, nil
	}
	return s.issueAccessCode(ctx, form)
}

// check normalizes form and applies the rules of its target status.
func (s *formService) check(ctx context.Context, form *domain.OrderForm) error {
	form.Title = strings.TrimSpace(form.Title)
	if form.Status == "" {
		form.Status = domain.FormStatusDraft
	}
	switch form.Status {
	case domain.FormStatusDraft, domain.FormStatusPublished, domain.FormStatusClosed:
	default:
		return invalidInput("unknown form status %q", form.Status)
	}
	if form.Title == "" {
		return invalidInput("form title is required")
	}
	if err := pricing.ValidateTaxConfig(form.Tax); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	// Drafts may leave window fields blank but never out of order.
	w := form.Event.Window
	if _, err := pricing.ValidateWindow(w); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if form.Status != domain.FormStatusPublished {
		return nil
	}

	rules := publishRules{
		Title:        form.Title,
		ContactName:  form.ContactName,
		ContactEmail: form.ContactEmail,
		ContactPhone: form.ContactPhone,
		CompanyName:  form.CompanyName,
		ShowName:     form.Event.ShowName,
		Facility:     form.Event.Facility,
		LoadInDate:   w.LoadInDate,
		StartDate:    w.StartDate,
		FinishDate:   w.FinishDate,
		ProductIDs:   form.ProductIDs,
		Tax:          form.Tax,
	}
	if err := s.validate.Struct(rules); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return invalidInput("cannot publish, missing or invalid: %s", strings.Join(fields, ", "))
		}
		return err
	}

	products, err := s.productRepo.ListByIDs(ctx, form.ProductIDs)
	if err != nil {
		return err
	}
	known := make(map[int32]bool, len(products))
	for _, p := range products {
		known[p.ID] = true
	}
	for _, id := range form.ProductIDs {
		if !known[id] {
			return invalidInput("product %d does not exist", id)
		}
	}
	return nil
}

func (s *formService) GetForm(ctx context.Context, id int32) (*domain.OrderForm, error) {
	return s.formRepo.GetByID(ctx, id)
}

func (s *formService) ListForms(ctx context.Context, filter domain.FormFilter) ([]domain.OrderForm, int32, error) {
	return s.formRepo.List(ctx, filter)
}

func (s *formService) DeleteForm(ctx context.Context, id int32) error {
	return s.formRepo.Delete(ctx, id)
}

func (s *formService) DuplicateForm(ctx context.Context, id int32, title string) (*domain.OrderForm, error) {
	src, err := s.formRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dup := *src
	dup.ID = 0
	dup.Status = domain.FormStatusDraft
	dup.AccessCodeHash = ""
	dup.ProductIDs = append([]int32(nil), src.ProductIDs...)
	dup.Tax = make(domain.TaxConfig, len(src.Tax))
	for label, rate := range src.Tax {
		dup.Tax[label] = rate
	}
	dup.Title = strings.TrimSpace(title)
	if dup.Title == "" {
		dup.Title = src.Title + " (Copy)"
	}
	if err := s.formRepo.Create(ctx, &dup); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Order form duplicated", "source_id", id, "form_id", dup.ID)
	return &dup, nil
}

func (s *formService) RegenerateAccessCode(ctx context.Context, id int32) (*AccessGrant, error) {
	form, err := s.formRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.Status != domain.FormStatusPublished {
		return nil, ErrFormNotPublished
	}
	return s.issueAccessCode(ctx, form)
}

func (s *formService) VerifyAccessCode(ctx context.Context, id int32, code string) (*domain.OrderForm, error) {
	form, err := s.formRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.Status != domain.FormStatusPublished {
		return nil, ErrFormNotPublished
	}
	if !security.CheckAccessCode(form.AccessCodeHash, code) {
		logger.WarnContext(ctx, "Access code rejected", "form_id", id)
		return nil, ErrInvalidAccessCode
	}
	return form, nil
}

func (s *formService) issueAccessCode(ctx context.Context, form *domain.OrderForm) (*AccessGrant, error) {
	code, hash, err := security.NewAccessCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate access code: %w", err)
	}
	if err := s.formRepo.SetAccessCodeHash(ctx, form.ID, hash); err != nil {
		return nil, err
	}
	form.AccessCodeHash = hash
	logger.InfoContext(ctx, "Access code issued", "form_id", form.ID)

	return &AccessGrant{FormID: form.ID, Code: code, URL: s.formURL(ctx, form.ID)}, nil
}

// formURL is the public link clients open; it stays relative until a site URL is configured.
func (s *formService) formURL(ctx context.Context, id int32) string {
	base := ""
	settings, err := s.settingsRepo.Get(ctx)
	switch {
	case err == nil:
		base = strings.TrimRight(settings.SiteURL, "/")
	case !errors.Is(err, repository.ErrNotFound):
		logger.WarnContext(ctx, "Failed to load settings for form URL", "error", err)
	}
	return fmt.Sprintf("%s/orderform/%d", base, id)
}
