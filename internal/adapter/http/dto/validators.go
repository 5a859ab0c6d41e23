package dto

import (
	"strings"

	"piggy-bank/internal/core/domain"
	"piggy-bank/pkg/money"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding validators on gin's
// validator engine. Call once at startup.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("pln_amount", validatePLNAmount); err != nil {
		return err
	}
	return v.RegisterValidation("instrument_type", validateInstrumentType)
}

// validatePLNAmount accepts non-negative decimal PLN strings with at most
// two fraction digits, within the representable grosze range.
func validatePLNAmount(fl validator.FieldLevel) bool {
	_, err := money.Parse(fl.Field().String())
	return err == nil
}

func validateInstrumentType(fl validator.FieldLevel) bool {
	return domain.InstrumentType(fl.Field().String()).Valid()
}

// TrimStrings normalises the free-text fields of a request in place.
func TrimStrings(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}
