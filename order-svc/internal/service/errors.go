package service

import "errors"

var (
	ErrMissingContext  = errors.New("restaurant and table are required, scan the table QR code")
	ErrTableNotFound   = errors.New("table not found, scan the table QR code again")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrItemUnavailable = errors.New("menu item is not available")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrForbidden       = errors.New("order access denied")
	ErrVersionRequired = errors.New("order version is required")
)
