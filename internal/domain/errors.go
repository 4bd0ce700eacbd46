package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation            = errors.New("invalid request")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrOrderNotFound         = errors.New("order not found")
	ErrItemUnavailable       = errors.New("item unavailable")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrConflict              = errors.New("conflicting concurrent update")
)

// ValidationError carries a field-level message. Matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UnavailableItemsError names the product ids that do not exist or are
// unavailable in the catalog. Matches ErrItemUnavailable with errors.Is.
type UnavailableItemsError struct {
	ProductIDs []string
}

func (e *UnavailableItemsError) Error() string {
	return fmt.Sprintf("items unavailable: %s", strings.Join(e.ProductIDs, ", "))
}

func (e *UnavailableItemsError) Is(target error) bool {
	return target == ErrItemUnavailable
}

// InvalidTransitionError names the current and requested statuses.
// Matches ErrInvalidTransition with errors.Is.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
