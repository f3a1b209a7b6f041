package domain

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrStaleVersion  = errors.New("order was modified by someone else, reload and try again")
	ErrInvalidStatus = errors.New("invalid order status")
)
