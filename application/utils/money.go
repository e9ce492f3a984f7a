package utils

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts an amount in a currency's base unit to its smallest
// unit, rounding half away from zero (10.005 -> 1001).
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromMinorUnits is the inverse of ToMinorUnits.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(hundred)
}

// RoundMoney rounds to 2 decimal places, half away from zero.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
