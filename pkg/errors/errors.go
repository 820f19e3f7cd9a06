package custom_error

import "fmt"

// NotFoundError signals that a referenced resource does not exist. Any
// transaction in progress must be rolled back by the caller.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id int) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// InsufficientStockError signals a withdrawal that would drive an item's
// quantity negative. The item's quantity is left untouched.
type InsufficientStockError struct {
	ItemID    int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %d: requested %d, available %d", e.ItemID, e.Requested, e.Available)
}

func NewInsufficientStockError(itemID, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ItemID: itemID, Requested: requested, Available: available}
}

// InvalidStateError signals an operation attempted against a resource in the
// wrong lifecycle state, e.g. completing a non-approved purchase request.
type InvalidStateError struct {
	Resource string
	State    string
	Expected string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s is %s, expected %s", e.Resource, e.State, e.Expected)
}

func NewInvalidStateError(resource, state, expected string) *InvalidStateError {
	return &InvalidStateError{Resource: resource, State: state, Expected: expected}
}
