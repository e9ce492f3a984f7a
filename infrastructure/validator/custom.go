package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex       = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
	countryCodeRegex = regexp.MustCompile(`^[A-Z]{2}$`)
	currencyRegex    = regexp.MustCompile(`^[A-Z]{3}$`)
	nameRegex        = regexp.MustCompile(`^[\p{L}'\- ]+$`)
)

// validatePhone accepts E.164-ish numbers with or without the leading plus.
func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(strings.ReplaceAll(fl.Field().String(), " ", ""))
}

func validateCountryCode(fl validator.FieldLevel) bool {
	return countryCodeRegex.MatchString(fl.Field().String())
}

func validateCurrency(fl validator.FieldLevel) bool {
	return currencyRegex.MatchString(fl.Field().String())
}

func validateNameWithSpecialChars(fl validator.FieldLevel) bool {
	return nameRegex.MatchString(fl.Field().String())
}
