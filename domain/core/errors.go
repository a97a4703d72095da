package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrSourceNotFound = fmt.Errorf("%w: price table source", ErrNotFound)
	ErrAssetNotFound  = fmt.Errorf("%w: image asset", ErrNotFound)

	// Load errors
	ErrLoad  = errors.New("price table load failed")
	ErrShape = fmt.Errorf("%w: unexpected sheet layout", ErrLoad)

	// ErrCellParse is local to the loader; a cell that fails to parse becomes an absent price.
	ErrCellParse = errors.New("cell is not a number")
)

// Error constructors with context
func NewSourceNotFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrSourceNotFound, path)
}

func NewAssetNotFoundError(name string) error {
	return fmt.Errorf("%w: %s", ErrAssetNotFound, name)
}

func NewShapeError(columns, want int) error {
	return fmt.Errorf("%w: %d non-empty columns, need at least %d", ErrShape, columns, want)
}

func NewLoadError(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
}

func NewCellParseError(raw string) error {
	return fmt.Errorf("%w: %q", ErrCellParse, raw)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsShapeError(err error) bool {
	return errors.Is(err, ErrShape)
}

func IsLoadError(err error) bool {
	return errors.Is(err, ErrLoad)
}
