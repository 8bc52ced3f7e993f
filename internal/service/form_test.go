package service_test

import (
	"context"
	"strings"
	"testing"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/pricing"
	"rentaldesk-backend/internal/security"
	"rentaldesk-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFormService() (service.FormService, *MockFormRepo, *MockProductRepo, *MockSettingsRepo) {
	formRepo := new(MockFormRepo)
	productRepo := new(MockProductRepo)
	settingsRepo := new(MockSettingsRepo)
	return service.NewFormService(formRepo, productRepo, settingsRepo), formRepo, productRepo, settingsRepo
}

func TestFormService_CreateForm(t *testing.T) {
	ctx := context.Background()

	t.Run("Draft needs only a title", func(t *testing.T) {
		svc, formRepo, _, _ := newFormService()
		form := &domain.OrderForm{Title: "  Fall show  "}
		formRepo.On("Create", ctx, form).Return(nil)

		grant, err := svc.CreateForm(ctx, 3, form)
		require.NoError(t, err)
		assert.Nil(t, grant)
		assert.Equal(t, domain.FormStatusDraft, form.Status)
		assert.Equal(t, "Fall show", form.Title)
		assert.Equal(t, int32(3), form.OwnerID)
	})

	t.Run("Publishing issues an access code and URL", func(t *testing.T) {
		svc, formRepo, productRepo, settingsRepo := newFormService()
		form := publishedForm()
		form.ID = 0
		form.AccessCodeHash = ""

		productRepo.On("ListByIDs", ctx, []int32{1}).Return([]domain.Product{screenProduct()}, nil)
		formRepo.On("Create", ctx, form).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.OrderForm).ID = 9
		}).Return(nil)
		formRepo.On("SetAccessCodeHash", ctx, int32(9), mock.AnythingOfType("string")).Return(nil)
		settingsRepo.On("Get", ctx).Return(&domain.CompanySettings{SiteURL: "https://orders.example.com/"}, nil)

		grant, err := svc.CreateForm(ctx, 1, form)
		require.NoError(t, err)
		require.NotNil(t, grant)
		assert.Len(t, grant.Code, 8)
		assert.Equal(t, "https://orders.example.com/orderform/9", grant.URL)
		assert.True(t, security.CheckAccessCode(form.AccessCodeHash, grant.Code))
	})

	t.Run("Publishing requires the event fields", func(t *testing.T) {
		svc, formRepo, _, _ := newFormService()
		form := publishedForm()
		form.ContactEmail = ""
		form.ProductIDs = nil

		_, err := svc.CreateForm(ctx, 1, form)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
		assert.Contains(t, err.Error(), "ContactEmail")
		assert.Contains(t, err.Error(), "ProductIDs")
		formRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Publishing rejects an out of order window", func(t *testing.T) {
		svc, _, _, _ := newFormService()
		form := publishedForm()
		form.Event.Window.FinishDate = "2026-05-09"

		_, err := svc.CreateForm(ctx, 1, form)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
		var verr *pricing.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("Draft rejects an out of order window", func(t *testing.T) {
		svc, formRepo, _, _ := newFormService()
		form := &domain.OrderForm{Title: "Fall show", Event: domain.EventInfo{Window: domain.RentalWindow{
			StartDate: "2026-05-11", FinishDate: "2026-05-09",
		}}}

		_, err := svc.CreateForm(ctx, 1, form)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
		var verr *pricing.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "finish", verr.Fields[0].Field)
		formRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Draft keeps a partial window", func(t *testing.T) {
		svc, formRepo, _, _ := newFormService()
		form := &domain.OrderForm{Title: "Fall show", Event: domain.EventInfo{Window: domain.RentalWindow{
			StartDate: "2026-05-11",
		}}}
		formRepo.On("Create", ctx, form).Return(nil)

		_, err := svc.CreateForm(ctx, 1, form)
		require.NoError(t, err)
	})

	t.Run("Publishing rejects unknown products", func(t *testing.T) {
		svc, _, productRepo, _ := newFormService()
		form := publishedForm()
		form.ProductIDs = []int32{1, 44}
		productRepo.On("ListByIDs", ctx, []int32{1, 44}).Return([]domain.Product{screenProduct()}, nil)

		_, err := svc.CreateForm(ctx, 1, form)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
		assert.Contains(t, err.Error(), "product 44")
	})

	t.Run("Tax rate out of range", func(t *testing.T) {
		svc, _, _, _ := newFormService()
		form := &domain.OrderForm{Title: "Bad tax", Tax: domain.TaxConfig{"HST": dec("130")}}

		_, err := svc.CreateForm(ctx, 1, form)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestFormService_UpdateForm_KeepsAccessCode(t *testing.T) {
	ctx := context.Background()
	svc, formRepo, productRepo, _ := newFormService()

	existing := publishedForm()
	formRepo.On("GetByID", ctx, int32(5)).Return(existing, nil)
	productRepo.On("ListByIDs", ctx, []int32{1}).Return([]domain.Product{screenProduct()}, nil)

	update := publishedForm()
	update.AccessCodeHash = ""
	update.Title = "Spring Expo 2026"
	formRepo.On("Update", ctx, update).Return(nil)

	grant, err := svc.UpdateForm(ctx, update)
	require.NoError(t, err)
	assert.Nil(t, grant)
	assert.Equal(t, "hash", update.AccessCodeHash)
	formRepo.AssertNotCalled(t, "SetAccessCodeHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestFormService_DuplicateForm(t *testing.T) {
	ctx := context.Background()
	svc, formRepo, _, _ := newFormService()

	src := publishedForm()
	formRepo.On("GetByID", ctx, int32(5)).Return(src, nil)
	formRepo.On("Create", ctx, mock.AnythingOfType("*domain.OrderForm")).Return(nil)

	dup, err := svc.DuplicateForm(ctx, 5, "")
	require.NoError(t, err)
	assert.Equal(t, "Spring Expo (Copy)", dup.Title)
	assert.Equal(t, domain.FormStatusDraft, dup.Status)
	assert.Empty(t, dup.AccessCodeHash)
	assert.Zero(t, dup.ID)

	dup.Tax["PST"] = dec("7")
	assert.NotContains(t, src.Tax, "PST")

	named, err := svc.DuplicateForm(ctx, 5, "Fall Expo")
	require.NoError(t, err)
	assert.Equal(t, "Fall Expo", named.Title)
}

func TestFormService_VerifyAccessCode(t *testing.T) {
	ctx := context.Background()
	code, hash, err := security.NewAccessCode()
	require.NoError(t, err)

	t.Run("Valid code in any case", func(t *testing.T) {
		svc, formRepo, _, _ := newFormService()
		form := publishedForm()
		form.AccessCodeHash = hash
		formRepo.On("GetByID", ctx, int32(5)).Return(form, nil)

		got, err := svc.VerifyAccessCode(ctx, 5, " "+strings.ToLower(code)+" ")
		require.NoError(t, err)
		assert.Equal(t, int32(5), got.ID)
	})

	t.Run("Wrong code", func(t *testing.T) {
		svc, formRepo, _, _ := newFormService()
		form := publishedForm()
		form.AccessCodeHash = hash
		formRepo.On("GetByID", ctx, int32(5)).Return(form, nil)

		_, err := svc.VerifyAccessCode(ctx, 5, "WRONG123")
		assert.ErrorIs(t, err, service.ErrInvalidAccessCode)
	})

	t.Run("Closed form", func(t *testing.T) {
		svc, formRepo, _, _ := newFormService()
		form := publishedForm()
		form.Status = domain.FormStatusClosed
		form.AccessCodeHash = hash
		formRepo.On("GetByID", ctx, int32(5)).Return(form, nil)

		_, err := svc.VerifyAccessCode(ctx, 5, code)
		assert.ErrorIs(t, err, service.ErrFormNotPublished)
	})
}
