package invoice

import (
	"context"
)

type InvoiceService interface {
	List(ctx context.Context) ([]InvoiceListItem, error)
	GetByID(ctx context.Context, id int64) (InvoiceDetailResponse, error)
	Create(ctx context.Context, req *CreateInvoiceRequest) (InvoiceResponse, error)
	Update(ctx context.Context, id int64, req *UpdateInvoiceRequest) (InvoiceResponse, error)
	Delete(ctx context.Context, id int64) error
}
