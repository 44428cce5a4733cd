package validator

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyPayload is returned when a write operation receives no request body.
var ErrEmptyPayload = errors.New("request payload is required")

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Company code: 1-50 chars, A-Z, a-z, 0-9, ., _, -
var companyCodeRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{1,50}$`)

func IsValidCompanyCode(code string) bool {
	return companyCodeRegex.MatchString(code)
}

// IsPositiveAmount reports whether amt is present and strictly greater than zero.
func IsPositiveAmount(amt *decimal.Decimal) bool {
	return amt != nil && amt.IsPositive()
}

var (
	ErrMalformedID  = errors.New("identifier is not an integer")
	ErrIDOutOfRange = errors.New("identifier is out of range")
)

// ParseID parses a path identifier of a 32-bit serial key. Input that is not
// an integer is ErrMalformedID; an integer no row can carry (<= 0 or beyond
// int4) is ErrIDOutOfRange.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrIDOutOfRange
		}
		return 0, ErrMalformedID
	}
	if id <= 0 {
		return 0, ErrIDOutOfRange
	}
	return id, nil
}
