package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/biztime-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CompanyHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	GetByCode(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

// List implements CompanyHandler.
func (c *CompanyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companies, err := c.companyService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, "companies", companies)
}

// GetByCode implements CompanyHandler.
func (c *CompanyHandlerImpl) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	found, err := c.companyService.GetByCode(r.Context(), code)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, "company", found)
}

// Create implements CompanyHandler.
func (c *CompanyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[company.CreateCompanyRequest](w, r)
	if err != nil {
		slog.Warn("Failed to decode create company request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := c.companyService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "company", created)
}

// Update implements CompanyHandler.
func (c *CompanyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	req, err := decodeJSON[company.UpdateCompanyRequest](w, r)
	if err != nil {
		slog.Warn("Failed to decode update company request", "error", err, "code", code)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := c.companyService.Update(r.Context(), code, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, "company", updated)
}

// Delete implements CompanyHandler.
func (c *CompanyHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := c.companyService.Delete(r.Context(), code); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Deleted(w)
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{
		companyService: companyService,
	}
}
