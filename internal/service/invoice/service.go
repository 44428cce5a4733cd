package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/events"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type invoiceServiceImpl struct {
	invoiceRepo invoice.InvoiceRepository
	companyRepo company.CompanyRepository
	publisher   events.Publisher
}

func NewInvoiceService(
	invoiceRepo invoice.InvoiceRepository,
	companyRepo company.CompanyRepository,
	publisher events.Publisher,
) invoice.InvoiceService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &invoiceServiceImpl{
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		publisher:   publisher,
	}
}

func (s *invoiceServiceImpl) List(ctx context.Context) ([]invoice.InvoiceListItem, error) {
	summaries, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	items := make([]invoice.InvoiceListItem, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, invoice.InvoiceListItem{ID: summary.ID, CompCode: summary.CompCode})
	}
	return items, nil
}

// GetByID loads the invoice, then its company in a separate lookup. A company
// that is gone by the second lookup leaves Company nil instead of failing.
func (s *invoiceServiceImpl) GetByID(ctx context.Context, id int64) (invoice.InvoiceDetailResponse, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invoice.InvoiceDetailResponse{}, invoice.ErrInvoiceNotFound
		}
		return invoice.InvoiceDetailResponse{}, fmt.Errorf("failed to get invoice by id: %w", err)
	}

	detail := invoice.InvoiceDetailResponse{
		ID:       inv.ID,
		Amt:      inv.Amt,
		Paid:     inv.Paid,
		AddDate:  inv.AddDate,
		PaidDate: inv.PaidDate,
	}

	owner, err := s.companyRepo.GetByCode(ctx, inv.CompCode)
	switch {
	case err == nil:
		resp := company.NewCompanyResponse(owner)
		detail.Company = &resp
	case errors.Is(err, pgx.ErrNoRows):
		slog.Warn("Invoice references missing company", "invoice_id", inv.ID, "comp_code", inv.CompCode)
	default:
		return invoice.InvoiceDetailResponse{}, fmt.Errorf("failed to get company %s for invoice %d: %w", inv.CompCode, inv.ID, err)
	}

	return detail, nil
}

// Create relies on the foreign key to reject unknown companies.
func (s *invoiceServiceImpl) Create(ctx context.Context, req *invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error) {
	if req == nil {
		return invoice.InvoiceResponse{}, validator.ErrEmptyPayload
	}
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	created, err := s.invoiceRepo.Create(ctx, req.CompCode, *req.Amt)
	if err != nil {
		return invoice.InvoiceResponse{}, fmt.Errorf("failed to create invoice: %w", err)
	}

	resp := invoice.NewInvoiceResponse(created)
	s.publisher.Publish(ctx, events.NewEvent(events.InvoiceCreated, eventKey(created.ID), resp))
	slog.Info("Invoice created", "invoice_id", created.ID, "comp_code", created.CompCode)

	return resp, nil
}

func (s *invoiceServiceImpl) Update(ctx context.Context, id int64, req *invoice.UpdateInvoiceRequest) (invoice.InvoiceResponse, error) {
	if req == nil {
		return invoice.InvoiceResponse{}, validator.ErrEmptyPayload
	}
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	updated, err := s.invoiceRepo.UpdateAmount(ctx, id, *req.Amt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invoice.InvoiceResponse{}, invoice.ErrInvoiceNotFound
		}
		return invoice.InvoiceResponse{}, fmt.Errorf("failed to update invoice %d: %w", id, err)
	}

	resp := invoice.NewInvoiceResponse(updated)
	s.publisher.Publish(ctx, events.NewEvent(events.InvoiceUpdated, eventKey(updated.ID), resp))

	return resp, nil
}

func (s *invoiceServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invoice.ErrInvoiceNotFound
		}
		return fmt.Errorf("failed to delete invoice %d: %w", id, err)
	}

	s.publisher.Publish(ctx, events.NewEvent(events.InvoiceDeleted, eventKey(id), nil))
	slog.Info("Invoice deleted", "invoice_id", id)

	return nil
}

func eventKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
