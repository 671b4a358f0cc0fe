package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RecencyUnit is the time unit of a recency filter.
type RecencyUnit string

// Supported recency units
const (
	UnitDay   RecencyUnit = "day"
	UnitWeek  RecencyUnit = "week"
	UnitMonth RecencyUnit = "month"
)

// shortCodes maps units to the single-letter codes used by Google-style search providers.
var shortCodes = map[RecencyUnit]string{
	UnitDay:   "d",
	UnitWeek:  "w",
	UnitMonth: "m",
}

// RecencyFilter restricts a search to results from the last Amount Units.
// It only shapes the outbound query.
type RecencyFilter struct {
	Amount int         `json:"amount" validate:"required,gt=0"`
	Unit   RecencyUnit `json:"unit" validate:"required,oneof=day week month"`
}

// Validate validates the RecencyFilter using the validator.
func (f *RecencyFilter) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}

// Code returns the provider short code, e.g. "w2" for two weeks.
func (f *RecencyFilter) Code() string {
	return fmt.Sprintf("%s%d", shortCodes[f.Unit], f.Amount)
}

// IsSupportedUnit reports whether unit has a provider short code.
func IsSupportedUnit(unit RecencyUnit) bool {
	_, ok := shortCodes[unit]
	return ok
}
