package invoice

import (
	"time"

	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type InvoiceListItem struct {
	ID       int64  `json:"id"`
	CompCode string `json:"comp_code"`
}

type InvoiceResponse struct {
	ID       int64           `json:"id"`
	CompCode string          `json:"comp_code"`
	Amt      decimal.Decimal `json:"amt"`
	Paid     bool            `json:"paid"`
	AddDate  time.Time       `json:"add_date"`
	PaidDate *time.Time      `json:"paid_date"`
}

// InvoiceDetailResponse replaces comp_code with the embedded company. Company
// is nil when the referenced company no longer exists.
type InvoiceDetailResponse struct {
	ID       int64                    `json:"id"`
	Amt      decimal.Decimal          `json:"amt"`
	Paid     bool                     `json:"paid"`
	AddDate  time.Time                `json:"add_date"`
	PaidDate *time.Time               `json:"paid_date"`
	Company  *company.CompanyResponse `json:"company"`
}

func NewInvoiceResponse(inv Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:       inv.ID,
		CompCode: inv.CompCode,
		Amt:      inv.Amt,
		Paid:     inv.Paid,
		AddDate:  inv.AddDate,
		PaidDate: inv.PaidDate,
	}
}

type CreateInvoiceRequest struct {
	CompCode string           `json:"comp_code"`
	Amt      *decimal.Decimal `json:"amt"`
}

func (r *CreateInvoiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "comp_code",
			Message: "comp_code is required",
		})
	}
	errs = append(errs, validateAmount(r.Amt)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateInvoiceRequest struct {
	Amt *decimal.Decimal `json:"amt"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	if errs := validateAmount(r.Amt); len(errs) > 0 {
		return errs
	}
	return nil
}

func validateAmount(amt *decimal.Decimal) validator.ValidationErrors {
	switch {
	case amt == nil:
		return validator.ValidationErrors{{Field: "amt", Message: "amt is required"}}
	case !validator.IsPositiveAmount(amt):
		return validator.ValidationErrors{{Field: "amt", Message: "amt must be greater than zero"}}
	}
	return nil
}
