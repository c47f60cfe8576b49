// Package decimalpkg provides decimal amount helpers for delivery layers.
package decimalpkg

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidAmount checks that the bound string parses as a decimal number.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if value, ok := fl.Field().Interface().(string); ok {
		_, err := decimal.NewFromString(value)
		return err == nil
	}

	return false
}
