package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound         = errors.New("resource not found")
	ErrSourceNotFound   = fmt.Errorf("%w: data source", ErrNotFound)
	ErrParse            = errors.New("parse error")
	ErrEmptyTable       = errors.New("table has no rows")
	ErrInsufficientData = errors.New("insufficient data for imputation")
	ErrMissingColumn    = errors.New("column not found")
	ErrInvalidSelection = errors.New("invalid column selection")
)

// Error constructors with context
func NewSourceNotFoundError(source string) error {
	return fmt.Errorf("%w: %s", ErrSourceNotFound, source)
}

func NewParseError(row int, column string, reason string) error {
	if column == "" {
		return fmt.Errorf("%w: row %d: %s", ErrParse, row, reason)
	}
	return fmt.Errorf("%w: row %d, column %s: %s", ErrParse, row, column, reason)
}

func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

func NewInsufficientDataError(column string, sentinel float64) error {
	return fmt.Errorf("%w: column %s has no values other than %g", ErrInsufficientData, column, sentinel)
}

func NewInvalidSelectionError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSelection, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

func IsEmptyTableError(err error) bool {
	return errors.Is(err, ErrEmptyTable)
}

func IsInsufficientDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsMissingColumnError(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}

func IsInvalidSelectionError(err error) bool {
	return errors.Is(err, ErrInvalidSelection)
}
