package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoDiscounts indicates there are no known per-category discounts to fall back on.
var ErrNoDiscounts = errors.New("no known discounts to average")

// EmptyCategoryError indicates a requested category has zero records.
type EmptyCategoryError struct {
	Category string
}

func (e *EmptyCategoryError) Error() string {
	return fmt.Sprintf("category %q has no records", e.Category)
}

// UnknownCategoryError indicates a lookup for a category that was never aggregated.
type UnknownCategoryError struct {
	Category string
	Known    []string
}

func (e *UnknownCategoryError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("category %q not found", e.Category)
	}
	return fmt.Sprintf("category %q not found (known: %s)", e.Category, strings.Join(e.Known, ", "))
}
