package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/pricing"
	"rentaldesk-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type clientRules struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

type orderService struct {
	formRepo        repository.FormRepository
	productRepo     repository.ProductRepository
	categoryRepo    repository.CategoryRepository
	orderRepo       repository.OrderRepository
	settingsRepo    repository.SettingsRepository
	emailSvc        EmailService
	engine          *pricing.Engine
	currency        string
	invoiceTemplate string
	validate        *validator.Validate
	now             func() time.Time
}

func NewOrderService(
	formRepo repository.FormRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	orderRepo repository.OrderRepository,
	settingsRepo repository.SettingsRepository,
	emailSvc EmailService,
	engine *pricing.Engine,
	currency, invoiceTemplate string,
) OrderService {
	if currency == "" {
		currency = pricing.DefaultCurrency
	}
	if invoiceTemplate == "" {
		invoiceTemplate = pricing.DefaultInvoiceNumberTemplate
	}
	return &orderService{
		formRepo:        formRepo,
		productRepo:     productRepo,
		categoryRepo:    categoryRepo,
		orderRepo:       orderRepo,
		settingsRepo:    settingsRepo,
		emailSvc:        emailSvc,
		engine:          engine,
		currency:        currency,
		invoiceTemplate: invoiceTemplate,
		validate:        validator.New(),
		now:             time.Now,
	}
}

func (s *orderService) FormCatalog(ctx context.Context, form *domain.OrderForm) (domain.Catalog, error) {
	return s.liveCatalog(ctx, form)
}

// liveCatalog loads the form's products and every category as they are right now.
func (s *orderService) liveCatalog(ctx context.Context, form *domain.OrderForm) (domain.Catalog, error) {
	products, err := s.productRepo.ListByIDs(ctx, form.ProductIDs)
	if err != nil {
		return domain.Catalog{}, err
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	return domain.Catalog{Products: products, Categories: categories}, nil
}

func (s *orderService) price(ctx context.Context, source string, in pricing.Input) (domain.OrderPricing, []pricing.LineItem, error) {
	p, err := s.engine.Compute(in)
	if err != nil {
		return domain.OrderPricing{}, nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	lines, err := pricing.LineItems(in)
	if err != nil {
		return domain.OrderPricing{}, nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	logger.PricingComputed(ctx, source, p.RentalDays, p.Subtotal.String(), p.GrandTotal.String())
	return p, lines, nil
}

func (s *orderService) Quote(ctx context.Context, formID int32, selection domain.EquipmentSelection) (*Quote, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.liveCatalog(ctx, form)
	if err != nil {
		return nil, err
	}
	window := form.Event.Window
	in := pricing.Input{
		Window:    &window,
		Selection: selection,
		Catalog:   catalog,
		IsPrepaid: form.IsPrepaid,
		Tax:       form.Tax,
	}
	p, lines, err := s.price(ctx, "quote", in)
	if err != nil {
		return nil, err
	}
	return &Quote{
		FormID:  form.ID,
		Pricing: p,
		Lines:   lines,
		Summary: pricing.Summarize(p, s.currency),
	}, nil
}

func (s *orderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error) {
	form, err := s.formRepo.GetByID(ctx, req.FormID)
	if err != nil {
		return nil, err
	}
	if form.Status != domain.FormStatusPublished {
		return nil, ErrFormNotPublished
	}
	req.Client.Name = strings.TrimSpace(req.Client.Name)
	req.Client.Email = strings.TrimSpace(req.Client.Email)
	if err := s.validate.Struct(clientRules{Name: req.Client.Name, Email: req.Client.Email}); err != nil {
		return nil, invalidInput("client name and a valid email are required")
	}

	catalog, err := s.liveCatalog(ctx, form)
	if err != nil {
		return nil, err
	}
	snapshot := domain.OrderSnapshot{
		Form:       *form,
		Catalog:    catalog,
		Selection:  req.Selection,
		Client:     req.Client,
		RentalDays: pricing.RentalDays(form.Event.Window),
	}
	p, _, err := s.price(ctx, "place_order", pricing.FromSnapshot(snapshot))
	if err != nil {
		return nil, err
	}
	if p.NoSelection {
		return nil, ErrNothingSelected
	}

	order := &domain.Order{
		FormID:        form.ID,
		Status:        domain.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
		TransactionID: strings.TrimSpace(req.TransactionID),
		TotalAmount:   pricing.Round(p.GrandTotal),
		RefundAmount:  decimal.Zero,
		Snapshot:      snapshot,
		Pricing:       p,
	}
	if order.TransactionID != "" {
		order.Status = domain.OrderStatusPaid
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Order placed", "order_id", order.ID, "form_id", form.ID,
		"status", order.Status, "total", order.TotalAmount.StringFixed(2))

	if err := s.emailSvc.SendOrderConfirmation(ctx, order, pricing.Summarize(p, s.currency)); err != nil {
		logger.WarnContext(ctx, "Failed to send order confirmation", "order_id", order.ID, "error", err)
	}
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int32) (*domain.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *orderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int32, error) {
	return s.orderRepo.List(ctx, filter)
}

func (s *orderService) DeleteOrder(ctx context.Context, id int32) error {
	return s.orderRepo.Delete(ctx, id)
}

func (s *orderService) Invoice(ctx context.Context, id int32) (*Invoice, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in := pricing.FromSnapshot(order.Snapshot)
	p, lines, err := s.price(ctx, "invoice", in)
	if err != nil {
		return nil, err
	}
	drift := !pricing.Round(p.GrandTotal).Equal(pricing.Round(order.Pricing.GrandTotal))
	if drift {
		// Rates changed since the order was placed; the charged breakdown stands
		// and the lines are rebuilt on the charged rental days.
		logger.WarnContext(ctx, "Invoice recomputation differs from stored pricing", "order_id", order.ID,
			"stored", pricing.Round(order.Pricing.GrandTotal).StringFixed(2), "recomputed", pricing.Round(p.GrandTotal).StringFixed(2))
		p = order.Pricing
		if p.RentalDays > 0 {
			in.RentalDays = p.RentalDays
		}
		if lines, err = pricing.LineItems(in); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		sum := decimal.Zero
		for _, l := range lines {
			sum = sum.Add(l.Total)
		}
		if !pricing.Round(sum).Equal(pricing.Round(p.EquipmentTotal)) {
			logger.WarnContext(ctx, "Invoice lines do not add up to the charged equipment total", "order_id", order.ID,
				"lines", pricing.Round(sum).StringFixed(2), "equipment", pricing.Round(p.EquipmentTotal).StringFixed(2))
		}
	}

	issuedAt, err := time.Parse(time.RFC3339, order.CreatedOn)
	if err != nil {
		issuedAt = s.now()
	}
	number, err := pricing.FormatInvoiceNumber(s.invoiceTemplate, issuedAt, int64(order.ID))
	if err != nil {
		return nil, err
	}

	company := domain.CompanySettings{}
	settings, err := s.settingsRepo.Get(ctx)
	switch {
	case err == nil:
		company = *settings
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	groups := make(map[pricing.LineGroup][]pricing.LineItem)
	for _, l := range lines {
		groups[l.Group] = append(groups[l.Group], l)
	}

	return &Invoice{
		Number:       number,
		IssuedOn:     issuedAt.Format("2006-01-02"),
		Company:      company,
		Order:        *order,
		Form:         order.Snapshot.Form,
		Client:       order.Snapshot.Client,
		RentalDays:   p.RentalDays,
		PricingDrift: drift,
		Mounting:     yesNo(order.Snapshot.Selection.MountingRequired),
		OwnLaptop:    yesNo(order.Snapshot.Selection.OwnLaptop == nil || *order.Snapshot.Selection.OwnLaptop),
		Groups:       groups,
		Summary:      pricing.Summarize(p, s.currency),
		RefundAmount: order.RefundAmount,
	}, nil
}

// yesNo renders an invoice flag. An unanswered laptop question prints as "yes".
func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func (s *orderService) Refund(ctx context.Context, id int32, amount decimal.Decimal, reason string) (*domain.Order, error) {
	var res pricing.RefundResult
	order, err := s.orderRepo.UpdateRefund(ctx, id, func(o *domain.Order) error {
		if !o.Status.Refundable() {
			return ErrOrderNotRefundable
		}
		r, err := pricing.ApplyRefund(o.TotalAmount, o.RefundAmount, amount)
		if err != nil {
			return err
		}
		res = r
		o.RefundAmount = r.Refunded
		o.Status = r.Status
		o.RefundReason = strings.TrimSpace(reason)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Order refunded", "order_id", order.ID, "amount", pricing.Round(amount).StringFixed(2),
		"remaining", res.Remaining.StringFixed(2), "status", order.Status)

	if err := s.emailSvc.SendRefundNotice(ctx, order, pricing.Round(amount)); err != nil {
		logger.WarnContext(ctx, "Failed to send refund notice", "order_id", order.ID, "error", err)
	}
	return order, nil
}
