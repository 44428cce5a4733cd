package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const invoiceColumns = `id, comp_code, amt, paid, add_date, paid_date`

// InvoiceRepository also serves the company service's invoice id lookup.
type InvoiceRepository interface {
	invoice.InvoiceRepository
	company.InvoiceLookup
}

type invoiceRepositoryImpl struct {
	db *database.DB
}

func NewInvoiceRepository(db *database.DB) InvoiceRepository {
	return &invoiceRepositoryImpl{db: db}
}

func scanInvoice(row pgx.Row) (invoice.Invoice, error) {
	var inv invoice.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.CompCode,
		&inv.Amt,
		&inv.Paid,
		&inv.AddDate,
		&inv.PaidDate,
	)
	return inv, err
}

// List implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) List(ctx context.Context) ([]invoice.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, comp_code
		FROM invoices
		ORDER BY id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", database.ClassifyError(err))
	}
	defer rows.Close()

	invoices := make([]invoice.Summary, 0)
	for rows.Next() {
		var s invoice.Summary
		if err := rows.Scan(&s.ID, &s.CompCode); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", database.ClassifyError(err))
	}

	return invoices, nil
}

// ListIDsByCompanyCode implements company.InvoiceLookup.
func (r *invoiceRepositoryImpl) ListIDsByCompanyCode(ctx context.Context, code string) ([]int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id
		FROM invoices
		WHERE comp_code = $1
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for company %s: %w", code, database.ClassifyError(err))
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoice ids: %w", database.ClassifyError(err))
	}

	return ids, nil
}

// GetByID implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) GetByID(ctx context.Context, id int64) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return invoice.Invoice{}, fmt.Errorf("invoice not found: %w", err)
	}
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("failed to get invoice %d: %w", id, database.ClassifyError(err))
	}

	return inv, nil
}

// Create implements invoice.InvoiceRepository. paid and add_date take their
// column defaults.
func (r *invoiceRepositoryImpl) Create(ctx context.Context, compCode string, amt decimal.Decimal) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invoices (comp_code, amt)
		VALUES ($1, $2)
		RETURNING ` + invoiceColumns

	inv, err := scanInvoice(q.QueryRow(ctx, query, compCode, amt))
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("failed to create invoice: %w", database.ClassifyError(err))
	}

	return inv, nil
}

// UpdateAmount implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) UpdateAmount(ctx context.Context, id int64, amt decimal.Decimal) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invoices
		SET amt = $1
		WHERE id = $2
		RETURNING ` + invoiceColumns

	inv, err := scanInvoice(q.QueryRow(ctx, query, amt, id))
	if err == pgx.ErrNoRows {
		return invoice.Invoice{}, fmt.Errorf("invoice not found: %w", err)
	}
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("failed to update invoice %d: %w", id, database.ClassifyError(err))
	}

	return inv, nil
}

// Delete implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM invoices WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", database.ClassifyError(err))
	}

	if commandTag.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found: %w", pgx.ErrNoRows)
	}

	return nil
}
