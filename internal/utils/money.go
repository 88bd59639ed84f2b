package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// minorUnitExponent is the number of fractional digits of every supported currency
const minorUnitExponent = 2

// ToMinorUnits parses a provider decimal amount such as "150.00" into minor units
func ToMinorUnits(amount string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return d.Shift(minorUnitExponent).Round(0).IntPart(), nil
}

// FromMinorUnits formats minor units as a decimal string with two fractional digits
func FromMinorUnits(amount int64) string {
	return decimal.New(amount, -minorUnitExponent).StringFixed(minorUnitExponent)
}

// FloatToMinorUnits converts a JSON float amount into minor units
func FloatToMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(minorUnitExponent).Round(0).IntPart()
}

// ConvertMinorUnits converts amount between currencies given their value in a
// common base. Rates are decimal strings.
func ConvertMinorUnits(amount int64, fromRate, toRate string) (int64, error) {
	from, err := decimal.NewFromString(fromRate)
	if err != nil {
		return 0, fmt.Errorf("invalid rate %q: %w", fromRate, err)
	}
	to, err := decimal.NewFromString(toRate)
	if err != nil {
		return 0, fmt.Errorf("invalid rate %q: %w", toRate, err)
	}
	if !from.IsPositive() || !to.IsPositive() {
		return 0, fmt.Errorf("rates must be positive")
	}
	if from.Equal(to) {
		return amount, nil
	}
	return decimal.NewFromInt(amount).Mul(from).Div(to).Round(0).IntPart(), nil
}
