package company

import (
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/validator"
)

type CompanyListItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type CompanyResponse struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type CompanyDetailResponse struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Invoices    []int64 `json:"invoices"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
	}
}

type CreateCompanyRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	// Code
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	} else if !validator.IsValidCompanyCode(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must be 1-50 characters of letters, digits, '.', '_' or '-'",
		})
	}

	// Name
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateCompanyRequest replaces name and description. Code is accepted so a
// client may echo the full company back, but it is never written.
type UpdateCompanyRequest struct {
	Code        *string `json:"code,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
