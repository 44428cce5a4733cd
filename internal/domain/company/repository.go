package company

import "context"

type CompanyRepository interface {
	List(ctx context.Context) ([]Company, error)
	GetByCode(ctx context.Context, code string) (Company, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
	Update(ctx context.Context, updated Company) (Company, error)
	Delete(ctx context.Context, code string) error
}

// InvoiceLookup resolves the invoices billed to a company.
type InvoiceLookup interface {
	ListIDsByCompanyCode(ctx context.Context, code string) ([]int64, error)
}
