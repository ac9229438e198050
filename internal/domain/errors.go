package domain

import (
	"errors"
	"fmt"
)

// Error is a domain error with a stable machine-readable code. HTTP handlers
// translate the code into the {code, message} envelope.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError builds a domain error.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Domain errors shared across modules.
var (
	ErrNotFound           = NewError("NOT_FOUND", "resource not found")
	ErrInvalidInput       = NewError("VALIDATION", "invalid input")
	ErrDuplicate          = NewError("DUPLICATE", "resource already exists")
	ErrUnauthorized       = NewError("UNAUTHORIZED", "authentication required")
	ErrForbidden          = NewError("FORBIDDEN", "access denied")
	ErrInvalidCredentials = NewError("INVALID_CREDENTIALS", "invalid email or password")
	ErrEmailExists        = NewError("EMAIL_EXISTS", "email already registered")
	ErrRateLimited        = NewError("RATE_LIMITED", "too many attempts, try again later")

	ErrProductNotFound = NewError("PRODUCT_NOT_FOUND", "product not found or inactive")
	ErrBarcodeExists   = NewError("BARCODE_EXISTS", "barcode already assigned to another product")
	ErrCategoryInUse   = NewError("CATEGORY_IN_USE", "category still referenced by active products")

	ErrInvalidQuantity = NewError("INVALID_QUANTITY", "quantity must be greater than zero")
	ErrInvalidReason   = NewError("INVALID_REASON", "unknown disposal reason")
	ErrPhotoRequired   = NewError("PHOTO_REQUIRED", "this disposal reason requires at least one photo")
	ErrPhotoInvalid    = NewError("PHOTO_INVALID", "photo rejected by upload validation")
	ErrNoWasteData     = NewError("NO_WASTE_DATA", "no waste entries in the requested period")
	ErrNoTaxData       = NewError("NO_TAX_DATA", "no tax-deductible waste entries in the requested period")
	ErrNoSalesData     = NewError("NO_SALES_DATA", "no sales in the requested period")
	ErrInvalidFormat   = NewError("INVALID_FORMAT", "unsupported export format")
	ErrInvalidAction   = NewError("INVALID_ACTION", "unknown scanner action")

	ErrSessionAlreadyOpen = NewError("SESSION_ALREADY_OPEN", "an open sales session already exists for this machine")
	ErrSessionNotFound    = NewError("SESSION_NOT_FOUND", "sales session not found")
	ErrSessionClosed      = NewError("SESSION_CLOSED", "sales session is already closed")
)

// InsufficientStock reports a stock shortfall including the available quantity,
// so callers can show how many units could still be booked.
func InsufficientStock(available int) *Error {
	return &Error{
		Code:    "INSUFFICIENT_STOCK",
		Message: fmt.Sprintf("insufficient stock: %d available", available),
	}
}

// CodeOf extracts the machine-readable code from err, or "INTERNAL" for
// anything that is not a domain error.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return "INTERNAL"
}
