package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "companies_pkey"`,
		Detail:         "Key (code)=(ibm) already exists.",
		ConstraintName: "companies_pkey",
		TableName:      "companies",
	}

	err := ClassifyError(fmt.Errorf("insert: %w", pgErr))

	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.NotErrorIs(t, err, ErrUnavailable)

	var constraintErr *ConstraintError
	require.ErrorAs(t, err, &constraintErr)
	assert.Equal(t, "companies_pkey", constraintErr.Constraint)
	assert.Equal(t, "companies", constraintErr.Table)
	assert.Equal(t, pgErr.Message, constraintErr.Message)
	assert.ErrorIs(t, err, pgErr)
}

func TestClassifyError_ForeignKeyViolation(t *testing.T) {
	err := ClassifyError(&pgconn.PgError{Code: "23503", ConstraintName: "invoices_comp_code_fkey"})

	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestClassifyError_Unavailable(t *testing.T) {
	cases := []error{
		&pgconn.PgError{Code: "08006"},
		&pgconn.PgError{Code: "57P01"},
		context.DeadlineExceeded,
	}
	for _, c := range cases {
		err := ClassifyError(c)
		assert.ErrorIs(t, err, ErrUnavailable, "input %v", c)
		assert.ErrorIs(t, err, c)
	}
}

func TestClassifyError_PassThrough(t *testing.T) {
	assert.Nil(t, ClassifyError(nil))
	assert.Equal(t, pgx.ErrNoRows, ClassifyError(pgx.ErrNoRows))

	syntax := &pgconn.PgError{Code: "42601"}
	assert.Equal(t, error(syntax), ClassifyError(syntax))

	plain := errors.New("boom")
	assert.Equal(t, plain, ClassifyError(plain))
}

func TestClassifyError_Idempotent(t *testing.T) {
	once := ClassifyError(&pgconn.PgError{Code: "23505"})
	twice := ClassifyError(once)

	assert.Same(t, once, twice)
}

func TestConstraintError_Error(t *testing.T) {
	err := &ConstraintError{Message: "violates", Detail: "Key (code)=(x) already exists."}
	assert.Equal(t, "violates (Key (code)=(x) already exists.)", err.Error())

	err.Detail = ""
	assert.Equal(t, "violates", err.Error())
}
