// Package validators wires go-playground/validator into Echo so handlers can
// call c.Validate(req) on bound payloads.
package validators

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator implements echo.Validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate validates the given struct and converts validator errors into a
// 400 echo.HTTPError whose body names each offending field.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
	return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"errors": fields})
}

// fieldName lowercases the struct field into its wire name. Request structs
// keep json tags aligned with snake_case fields, so CamelCase to snake_case
// is enough here.
func fieldName(fe validator.FieldError) string {
	var b strings.Builder
	for i, r := range fe.Field() {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
