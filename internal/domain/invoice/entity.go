package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID       int64
	CompCode string
	Amt      decimal.Decimal
	Paid     bool
	AddDate  time.Time
	PaidDate *time.Time
}

// Summary is the listing projection of an invoice.
type Summary struct {
	ID       int64
	CompCode string
}
