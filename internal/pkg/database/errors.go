package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrConstraintViolation = errors.New("storage constraint violation")
	ErrUnavailable         = errors.New("storage unavailable")
)

// ConstraintError is a write rejected by a uniqueness, foreign key, check or
// not-null constraint. Message is the server message, untouched.
type ConstraintError struct {
	Code       string
	Constraint string
	Table      string
	Message    string
	Detail     string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Detail)
	}
	return e.Message
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

func (e *ConstraintError) Unwrap() error { return e.Err }

type unavailableError struct {
	err error
}

func (e *unavailableError) Error() string {
	return fmt.Sprintf("%s: %v", ErrUnavailable, e.err)
}

func (e *unavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

func (e *unavailableError) Unwrap() error { return e.err }

// ClassifyError tags driver errors with the storage taxonomy. Errors that fit
// neither class (including pgx.ErrNoRows) are returned unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConstraintViolation) || errors.Is(err, ErrUnavailable) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "23"): // integrity_constraint_violation
			return &ConstraintError{
				Code:       pgErr.Code,
				Constraint: pgErr.ConstraintName,
				Table:      pgErr.TableName,
				Message:    pgErr.Message,
				Detail:     pgErr.Detail,
				Err:        err,
			}
		case strings.HasPrefix(pgErr.Code, "08"), // connection_exception
			strings.HasPrefix(pgErr.Code, "57P"): // operator_intervention
			return &unavailableError{err: err}
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connectErr),
		errors.As(err, &netErr),
		pgconn.Timeout(err),
		errors.Is(err, context.DeadlineExceeded):
		return &unavailableError{err: err}
	}

	return err
}
