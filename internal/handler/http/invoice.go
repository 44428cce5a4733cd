package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/biztime-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/pdf"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type InvoiceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	GetPDF(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type InvoiceHandlerImpl struct {
	invoiceService invoice.InvoiceService
}

func invoiceID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := validator.ParseID(raw)
	switch {
	case errors.Is(err, validator.ErrIDOutOfRange):
		response.HandleError(w, invoice.ErrInvoiceNotFound)
		return 0, false
	case err != nil:
		response.BadRequest(w, "Invalid invoice id", map[string]string{"id": raw})
		return 0, false
	}
	return id, true
}

// List implements InvoiceHandler.
func (h *InvoiceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoiceService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, "invoices", invoices)
}

// GetByID implements InvoiceHandler.
func (h *InvoiceHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}

	found, err := h.invoiceService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, "invoice", found)
}

// GetPDF implements InvoiceHandler.
func (h *InvoiceHandlerImpl) GetPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}

	found, err := h.invoiceService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	doc, err := pdf.RenderInvoice(found)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.PDF(w, fmt.Sprintf("invoice-%d.pdf", id), doc)
}

// Create implements InvoiceHandler.
func (h *InvoiceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[invoice.CreateInvoiceRequest](w, r)
	if err != nil {
		slog.Warn("Failed to decode create invoice request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.invoiceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "invoice", created)
}

// Update implements InvoiceHandler.
func (h *InvoiceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}

	req, err := decodeJSON[invoice.UpdateInvoiceRequest](w, r)
	if err != nil {
		slog.Warn("Failed to decode update invoice request", "error", err, "invoice_id", id)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.invoiceService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, "invoice", updated)
}

// Delete implements InvoiceHandler.
func (h *InvoiceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := invoiceID(w, r)
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Deleted(w)
}

func NewInvoiceHandler(invoiceService invoice.InvoiceService) InvoiceHandler {
	return &InvoiceHandlerImpl{
		invoiceService: invoiceService,
	}
}
