package apperror

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)

	// Remaining carries the unused daily withdrawal allowance when the
	// daily limit rejects an operation. Nil for every other error.
	Remaining *decimal.Decimal `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Ledger Business Rules (LED) ----

func ErrInvalidAmount() *AppError {
	return New("LED_001", "Amount must be a positive value", http.StatusBadRequest)
}

func ErrPerTransactionLimitExceeded(limit decimal.Decimal) *AppError {
	return New("LED_002",
		fmt.Sprintf("Per-transaction withdrawal limit is %s", limit.StringFixed(2)),
		http.StatusUnprocessableEntity)
}

func ErrInsufficientFunds() *AppError {
	return New("LED_003", "Insufficient funds", http.StatusUnprocessableEntity)
}

// ErrDailyLimitExceeded reports how much of the daily allowance is still
// available, both as a typed field and in the display message.
func ErrDailyLimitExceeded(remaining decimal.Decimal) *AppError {
	e := New("LED_004",
		fmt.Sprintf("Daily limit exceeded. You can still withdraw up to %s today", remaining.StringFixed(2)),
		http.StatusUnprocessableEntity)
	e.Remaining = &remaining
	return e
}

func ErrAccountNotFound(id string) *AppError {
	return New("LED_005", fmt.Sprintf("Account %s not found", id), http.StatusNotFound)
}

func ErrSelfTransfer() *AppError {
	return New("LED_006", "Cannot transfer to the same account", http.StatusBadRequest)
}

// ---- Authentication & Session (AUTH) ----

func ErrAuthFailure() *AppError {
	return New("AUTH_001", "Invalid account or PIN", http.StatusUnauthorized)
}

func ErrPinMismatch() *AppError {
	return New("AUTH_002", "New PINs do not match", http.StatusBadRequest)
}

func ErrInvalidPinFormat() *AppError {
	return New("AUTH_003", "PIN must be 4 to 6 digits", http.StatusBadRequest)
}

func ErrInvalidSessionState() *AppError {
	return New("AUTH_004", "No active session for this account", http.StatusForbidden)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_005", "Invalid or expired session token", http.StatusUnauthorized)
}

// ---- System & Infrastructure (SYS) ----

// ErrStorageUnavailable marks persistence failures. Callers must not treat
// the triggering operation as committed.
func ErrStorageUnavailable(err error) *AppError {
	return Wrap("SYS_001", "Account storage unavailable", http.StatusServiceUnavailable, err)
}

// InternalError wraps an unexpected internal error.
func InternalError(err error) *AppError {
	return Wrap("SYS_000", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request-validation error with a caller-supplied message.
func Validation(message string) *AppError {
	return New("LED_001", message, http.StatusBadRequest)
}
