package inventory

import (
	"github.com/dmoralesb/mesafina-backend/pkg/db/models"
	pkgerrors "github.com/dmoralesb/mesafina-backend/pkg/errors"
)

// The policy functions are pure: they validate inputs and compute new stock
// values without touching the store. All persistence happens in the repository.

// ValidateResetQuantity rejects negative reset targets. Zero is allowed so a
// reset can deliberately empty an item.
func ValidateResetQuantity(quantity int) error {
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "reset quantity cannot be negative")
	}
	return nil
}

// RequireTracked ensures the item carries counted stock before a quantity
// mutation is attempted.
func RequireTracked(item *models.MenuItem, action string) error {
	if item.Tracked() {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeInvalidOperation, "cannot "+action+" for UNLIMITED items")
}

// ApplyAdd computes the stock level after adding qty units.
func ApplyAdd(current int, qty int) (int, error) {
	if qty <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}
	return current + qty, nil
}

// ApplyRemove computes the stock level after removing qty units. Stock can
// never go negative.
func ApplyRemove(current int, qty int) (int, error) {
	if qty <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}
	if qty > current {
		return 0, pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock to remove")
	}
	return current - qty, nil
}

// DeriveAvailability forces an item unavailable when auto-marking is on and
// stock just hit zero. Otherwise the caller-provided availability stands.
func DeriveAvailability(newStock int, autoMarkUnavailable bool, current bool) bool {
	if autoMarkUnavailable && newStock == 0 {
		return false
	}
	return current
}
