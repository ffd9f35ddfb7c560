package middleware

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// minPhoneLength mirrors the directory's identity rule: anything shorter is
// not a usable phone number.
const minPhoneLength = 6

// SetupValidator registers custom validation tags on gin's binding engine.
// Call once at startup before routes are served.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("phone", validatePhone)
	}
}

// validatePhone accepts phone numbers long enough to identify a customer.
func validatePhone(fl validator.FieldLevel) bool {
	return len(strings.TrimSpace(fl.Field().String())) >= minPhoneLength
}
