package http

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testAddDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestInvoiceHandler_List(t *testing.T) {
	router, _, invoiceSvc := newTestRouter()

	invoiceSvc.On("List", mock.Anything).Return([]invoice.InvoiceListItem{
		{ID: 1, CompCode: "ibm"},
		{ID: 2, CompCode: "apple"},
	}, nil)

	rec := doRequest(router, http.MethodGet, "/invoices", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"invoices":[{"id":1,"comp_code":"ibm"},{"id":2,"comp_code":"apple"}]}`, rec.Body.String())
}

func TestInvoiceHandler_Create(t *testing.T) {
	router, _, invoiceSvc := newTestRouter()

	invoiceSvc.On("Create", mock.Anything, mock.MatchedBy(func(req *invoice.CreateInvoiceRequest) bool {
		return req != nil && req.CompCode == "ibm" && req.Amt != nil && req.Amt.Equal(decimal.NewFromInt(100))
	})).Return(invoice.InvoiceResponse{
		ID:       1,
		CompCode: "ibm",
		Amt:      decimal.NewFromInt(100),
		AddDate:  testAddDate,
	}, nil)

	rec := doRequest(router, http.MethodPost, "/invoices", `{"comp_code":"ibm","amt":100}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"invoice":{"id":1,"comp_code":"ibm","amt":100,"paid":false,"add_date":"2024-03-01T00:00:00Z","paid_date":null}}`, rec.Body.String())
}

func TestInvoiceHandler_Create_UnknownCompany(t *testing.T) {
	router, _, invoiceSvc := newTestRouter()

	fkErr := database.ClassifyError(&pgconn.PgError{
		Code:           "23503",
		Message:        `insert or update on table "invoices" violates foreign key constraint "invoices_comp_code_fkey"`,
		ConstraintName: "invoices_comp_code_fkey",
	})
	invoiceSvc.On("Create", mock.Anything, mock.Anything).
		Return(invoice.InvoiceResponse{}, fmt.Errorf("failed to create invoice: %w", fkErr))

	rec := doRequest(router, http.MethodPost, "/invoices", `{"comp_code":"nope","amt":10}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "invoices_comp_code_fkey")
}

func TestInvoiceHandler_Create_StringAmount(t *testing.T) {
	router, _, invoiceSvc := newTestRouter()

	invoiceSvc.On("Create", mock.Anything, mock.MatchedBy(func(req *invoice.CreateInvoiceRequest) bool {
		return req != nil && req.Amt != nil && req.Amt.Equal(decimal.RequireFromString("19.99"))
	})).Return(invoice.InvoiceResponse{ID: 3, CompCode: "ibm", Amt: decimal.RequireFromString("19.99"), AddDate: testAddDate}, nil)

	rec := doRequest(router, http.MethodPost, "/invoices", `{"comp_code":"ibm","amt":"19.99"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"amt":19.99`)
}

func TestInvoiceHandler_GetByID(t *testing.T) {
	router, _, invoiceSvc := newTestRouter()

	invoiceSvc.On("GetByID", mock.Anything, int64(1)).Return(invoice.InvoiceDetailResponse{
		ID:      1,
		Amt:     decimal.NewFromInt(100),
		AddDate: testAddDate,
		Company: &company.CompanyResponse{Code: "ibm", Name: "IBM", Description: strPtr("Big iron")},
	}, nil)

	rec := doRequest(router, http.MethodGet, "/invoices/1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"invoice":{"id":1,"amt":100,"paid":false,"add_date":"2024-03-01T00:00:00Z","paid_date":null,"company":{"code":"ibm","name":"IBM","description":"Big iron"}}}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "comp_code")
}

func TestInvoiceHandler_GetByID_MalformedID(t *testing.T) {
	for _, id := range []string{"abc", "1.5", "12a"} {
		t.Run(id, func(t *testing.T) {
			router, _, invoiceSvc := newTestRouter()

			rec := doRequest(router, http.MethodGet, "/invoices/"+id, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			invoiceSvc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestInvoiceHandler_UnreachableIDIsNotFound(t *testing.T) {
	ids := []string{"0", "-4", "2147483648", "3000000000", "99999999999999999999"}
	methods := []string{http.MethodGet, http.MethodDelete}

	for _, method := range methods {
		for _, id := range ids {
			t.Run(method+" "+id, func(t *testing.T) {
				router, _, invoiceSvc := newTestRouter()

				rec := doRequest(router, method, "/invoices/"+id, "")

				assert.Equal(t, http.StatusNotFound, rec.Code)
				assert.Contains(t, rec.Body.String(), "Invoice not found")
				invoiceSvc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
				invoiceSvc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			})
		}
	}
}

func TestInvoiceHandler_Update_UnreachableIDIsNotFound(t *testing.T) {
	router, _, invoiceSvc := newTestRouter()

	rec := doRequest(router, http.MethodPut, "/invoices/3000000000", `{"amt":10}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	invoiceSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceHandler_GetByID_NotFound(t *testing.T) {
	router, _, invoiceSvc := newTestRouter()

	invoiceSvc.On("GetByID", mock.Anything, int64(999)).Return(invoice.InvoiceDetailResponse{}, invoice.ErrInvoiceNotFound)

	rec := doRequest(router, http.MethodGet, "/invoices/999", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invoice not found")
}

func TestInvoiceHandler_GetPDF(t *testing.T) {
	router, _, invoiceSvc := newTestRouter()

	invoiceSvc.On("GetByID", mock.Anything, int64(1)).Return(invoice.InvoiceDetailResponse{
		ID:      1,
		Amt:     decimal.NewFromInt(100),
		AddDate: testAddDate,
		Company: &company.CompanyResponse{Code: "ibm", Name: "IBM"},
	}, nil)

	rec := doRequest(router, http.MethodGet, "/invoices/1/pdf", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestInvoiceHandler_GetPDF_NotFound(t *testing.T) {
	router, _, invoiceSvc := newTestRouter()

	invoiceSvc.On("GetByID", mock.Anything, int64(8)).Return(invoice.InvoiceDetailResponse{}, invoice.ErrInvoiceNotFound)

	rec := doRequest(router, http.MethodGet, "/invoices/8/pdf", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestInvoiceHandler_Update(t *testing.T) {
	router, _, invoiceSvc := newTestRouter()

	invoiceSvc.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(req *invoice.UpdateInvoiceRequest) bool {
		return req != nil && req.Amt != nil && req.Amt.Equal(decimal.NewFromInt(250))
	})).Return(invoice.InvoiceResponse{ID: 1, CompCode: "ibm", Amt: decimal.NewFromInt(250), AddDate: testAddDate}, nil)

	rec := doRequest(router, http.MethodPut, "/invoices/1", `{"amt":250}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"invoice":{"id":1,"comp_code":"ibm","amt":250,"paid":false,"add_date":"2024-03-01T00:00:00Z","paid_date":null}}`, rec.Body.String())
}

func TestInvoiceHandler_Update_RejectsPaid(t *testing.T) {
	router, _, invoiceSvc := newTestRouter()

	rec := doRequest(router, http.MethodPut, "/invoices/1", `{"amt":250,"paid":true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	invoiceSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Delete(t *testing.T) {
	router, _, invoiceSvc := newTestRouter()

	invoiceSvc.On("Delete", mock.Anything, int64(1)).Return(nil)

	rec := doRequest(router, http.MethodDelete, "/invoices/1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"deleted"}`, rec.Body.String())
}

func TestInvoiceHandler_Delete_NotFound(t *testing.T) {
	router, _, invoiceSvc := newTestRouter()

	invoiceSvc.On("Delete", mock.Anything, int64(999)).Return(invoice.ErrInvoiceNotFound)

	rec := doRequest(router, http.MethodDelete, "/invoices/999", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
