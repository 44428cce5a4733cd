package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/invoice"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInvoice(t *testing.T) {
	desc := "Big iron"
	paidOn := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		inv  invoice.InvoiceDetailResponse
	}{
		{
			name: "with company",
			inv: invoice.InvoiceDetailResponse{
				ID:      1,
				Amt:     decimal.RequireFromString("400"),
				AddDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				Company: &company.CompanyResponse{Code: "ibm", Name: "IBM", Description: &desc},
			},
		},
		{
			name: "paid without company",
			inv: invoice.InvoiceDetailResponse{
				ID:       2,
				Amt:      decimal.RequireFromString("12.5"),
				Paid:     true,
				AddDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				PaidDate: &paidOn,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderInvoice(tt.inv)

			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
			assert.Contains(t, string(out), "%%EOF")
		})
	}
}
