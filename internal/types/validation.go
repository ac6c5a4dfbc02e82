package types

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// EmailTag is the struct tag for candidate addresses.
const EmailTag = "careers_email"

// RegisterValidations adds the custom tags used by the request types to v.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation(EmailTag, func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
}

// IsEmail accepts local@domain.tld: one @, no whitespace, and a dot in the
// domain with text on both sides of it.
func IsEmail(s string) bool {
	if strings.IndexFunc(s, isSpace) >= 0 || strings.Count(s, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(s, "@")
	if local == "" || len(domain) < 3 {
		return false
	}
	return strings.Contains(domain[1:len(domain)-1], ".")
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
