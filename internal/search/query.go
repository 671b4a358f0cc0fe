package search

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/celeb-news/internal/types"
)

// Input error messages shown to users.
const (
	msgNameRequired   = "Please provide a subject name to search for."
	msgPartialFilter  = "To filter by date, provide both date_value and date_unit."
	msgUnsupportedFmt = "Unsupported date_unit '%s'. Choose day, week, or month."
	msgBadAmount      = "date_value must be a positive whole number."
	msgBadCount       = "count must not be negative."
)

// Query describes one news search.
type Query struct {
	Name   string               `validate:"required"`
	Filter *types.RecencyFilter `validate:"omitempty"`
	Count  int                  `validate:"gte=0"` // requested result count; 0 leaves it to the provider
}

var validate = validator.New()

// NewRecencyFilter builds a filter from optional CLI-style inputs.
// Both nil means no filter. Exactly one nil is a caller error.
func NewRecencyFilter(amount *int, unit *string) (*types.RecencyFilter, error) {
	if amount == nil && unit == nil {
		return nil, nil
	}
	if amount == nil || unit == nil {
		return nil, &InputError{Field: "filter", Message: msgPartialFilter}
	}

	normalized := types.RecencyUnit(strings.ToLower(strings.TrimSpace(*unit)))
	if !types.IsSupportedUnit(normalized) {
		return nil, &InputError{Field: "unit", Message: fmt.Sprintf(msgUnsupportedFmt, *unit)}
	}

	filter := &types.RecencyFilter{Amount: *amount, Unit: normalized}
	if err := filter.Validate(); err != nil {
		return nil, &InputError{Field: "amount", Message: msgBadAmount}
	}
	return filter, nil
}

// ValidateQuery checks a query before any provider is contacted.
func ValidateQuery(q Query) error {
	q.Name = strings.TrimSpace(q.Name)

	if err := validate.Struct(q); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			return inputErrorFor(fieldErrs[0])
		}
		return &InputError{Field: "query", Message: err.Error()}
	}
	return nil
}

// inputErrorFor converts the first failing field into a user-facing InputError.
func inputErrorFor(fe validator.FieldError) *InputError {
	switch fe.StructField() {
	case "Name":
		return &InputError{Field: "name", Message: msgNameRequired}
	case "Amount":
		return &InputError{Field: "amount", Message: msgBadAmount}
	case "Unit":
		return &InputError{Field: "unit", Message: fmt.Sprintf(msgUnsupportedFmt, fe.Value())}
	case "Count":
		return &InputError{Field: "count", Message: msgBadCount}
	default:
		return &InputError{Field: fe.Field(), Message: fe.Error()}
	}
}
