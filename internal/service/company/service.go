package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/events"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
	invoiceLookup company.InvoiceLookup
	publisher     events.Publisher
}

// List implements company.CompanyService.
func (c *CompanyServiceImpl) List(ctx context.Context) ([]company.CompanyListItem, error) {
	companies, err := c.CompanyRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	items := make([]company.CompanyListItem, 0, len(companies))
	for _, found := range companies {
		items = append(items, company.CompanyListItem{Code: found.Code, Name: found.Name})
	}
	return items, nil
}

// GetByCode implements company.CompanyService.
// The invoice ids come from a second, independent query; a company deleted in
// between still yields its row with whatever invoices remain.
func (c *CompanyServiceImpl) GetByCode(ctx context.Context, code string) (company.CompanyDetailResponse, error) {
	companyData, err := c.CompanyRepository.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.CompanyDetailResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyDetailResponse{}, fmt.Errorf("failed to get company by code: %w", err)
	}

	invoiceIDs, err := c.invoiceLookup.ListIDsByCompanyCode(ctx, code)
	if err != nil {
		return company.CompanyDetailResponse{}, fmt.Errorf("failed to list invoices for company %s: %w", code, err)
	}
	if invoiceIDs == nil {
		invoiceIDs = []int64{}
	}

	return company.CompanyDetailResponse{
		Code:        companyData.Code,
		Name:        companyData.Name,
		Description: companyData.Description,
		Invoices:    invoiceIDs,
	}, nil
}

// Create implements company.CompanyService.
// Uniqueness of code is left to the storage constraint.
func (c *CompanyServiceImpl) Create(ctx context.Context, req *company.CreateCompanyRequest) (company.CompanyResponse, error) {
	if req == nil {
		return company.CompanyResponse{}, validator.ErrEmptyPayload
	}
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	created, err := c.CompanyRepository.Create(ctx, company.Company{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to create company: %w", err)
	}

	resp := company.NewCompanyResponse(created)
	c.publisher.Publish(ctx, events.NewEvent(events.CompanyCreated, created.Code, resp))
	slog.Info("Company created", "code", created.Code)

	return resp, nil
}

// Update implements company.CompanyService.
func (c *CompanyServiceImpl) Update(ctx context.Context, code string, req *company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	if req == nil {
		return company.CompanyResponse{}, validator.ErrEmptyPayload
	}
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	updated, err := c.CompanyRepository.Update(ctx, company.Company{
		Code:        code,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.CompanyResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to update company with code %s: %w", code, err)
	}

	resp := company.NewCompanyResponse(updated)
	c.publisher.Publish(ctx, events.NewEvent(events.CompanyUpdated, updated.Code, resp))

	return resp, nil
}

// Delete implements company.CompanyService.
func (c *CompanyServiceImpl) Delete(ctx context.Context, code string) error {
	if err := c.CompanyRepository.Delete(ctx, code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to delete company with code %s: %w", code, err)
	}

	c.publisher.Publish(ctx, events.NewEvent(events.CompanyDeleted, code, nil))
	slog.Info("Company deleted", "code", code)

	return nil
}

func NewCompanyService(
	companyRepository company.CompanyRepository,
	invoiceLookup company.InvoiceLookup,
	publisher events.Publisher,
) company.CompanyService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &CompanyServiceImpl{
		CompanyRepository: companyRepository,
		invoiceLookup:     invoiceLookup,
		publisher:         publisher,
	}
}
