package invoice

import (
	"context"

	"github.com/shopspring/decimal"
)

type InvoiceRepository interface {
	List(ctx context.Context) ([]Summary, error)
	GetByID(ctx context.Context, id int64) (Invoice, error)
	Create(ctx context.Context, compCode string, amt decimal.Decimal) (Invoice, error)
	UpdateAmount(ctx context.Context, id int64, amt decimal.Decimal) (Invoice, error)
	Delete(ctx context.Context, id int64) error
}
