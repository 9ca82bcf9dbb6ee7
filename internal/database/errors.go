package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// ConnectError is fatal: the client cannot run without its connection.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("Unable to Connect to Database: %v", e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// Error is a failure reported by one of the Gateway primitives.
type Error struct {
	Op   string
	Code string // SQLSTATE when the server produced the error
	Err  error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("SQL Exception (%s): %v", e.Code, e.message())
	}
	return fmt.Sprintf("SQL Exception: %v", e.message())
}

func (e *Error) message() string {
	var pgErr *pgconn.PgError
	if errors.As(e.Err, &pgErr) {
		return pgErr.Message
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	dbErr := &Error{Op: op, Err: err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		dbErr.Code = pgErr.Code
	}
	return dbErr
}

// IsConnectionLost distinguishes a dead connection from an ordinary statement failure.
// Server-side errors (PgError) always leave the session usable.
func IsConnectionLost(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
