package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrItemNotFound       = errors.New("menu item not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryExists     = errors.New("category already exists")
	ErrCategoryInUse      = errors.New("category still has menu items")
	ErrTableNotFound      = errors.New("table not found")
	ErrTableExists        = errors.New("a table with this number already exists")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
