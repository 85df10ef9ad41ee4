package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation")
	ErrConflict      = errors.New("conflict")
	ErrStockExceeded = errors.New("stock exceeded")
	ErrPersistence   = errors.New("persistence failure")
)

// StockExceeded carries the context a client needs to show why an add or
// update was rejected. InCart is zero when the product was not in the cart.
type StockExceeded struct {
	Available int
	InCart    int
	Requested int
}

func (e *StockExceeded) Error() string {
	if e.InCart > 0 {
		return fmt.Sprintf("quantity exceeds available stock. Available: %d, In cart: %d, Requested: %d",
			e.Available, e.InCart, e.Requested)
	}
	return fmt.Sprintf("quantity exceeds available stock. Available: %d", e.Available)
}

func (e *StockExceeded) Unwrap() error { return ErrStockExceeded }

// Persistence wraps a store-layer failure. The original error text is kept
// for the logs but matching is done against ErrPersistence only.
func Persistence(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, ErrPersistence)
}
