package forecast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrModelNotFound is matched by errors.Is for every *ModelNotFoundError.
	ErrModelNotFound = errors.New("no model available")
	// ErrInsufficientHistory is matched by errors.Is for every *InsufficientHistoryError.
	ErrInsufficientHistory = errors.New("insufficient history")
	// ErrNonFinite is returned when a model predicts NaN or an infinite value.
	ErrNonFinite = errors.New("model produced a non-finite prediction")
)

// ModelNotFoundError reports a product with no resolvable model together with
// the products that do have one.
type ModelNotFoundError struct {
	ProductID int
	Available []int
}

func (e *ModelNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("no model found for product %d: no models are loaded", e.ProductID)
	}
	ids := make([]string, len(e.Available))
	for i, id := range e.Available {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("no model found for product %d (available products: %s)", e.ProductID, strings.Join(ids, ", "))
}

func (e *ModelNotFoundError) Is(target error) bool {
	return target == ErrModelNotFound
}

// InsufficientHistoryError is returned under strict history validation when a
// product has fewer than Need real observations.
type InsufficientHistoryError struct {
	ProductID int
	Have      int
	Need      int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("not enough history for product %d (have %d days, needs %d)", e.ProductID, e.Have, e.Need)
}

func (e *InsufficientHistoryError) Is(target error) bool {
	return target == ErrInsufficientHistory
}
