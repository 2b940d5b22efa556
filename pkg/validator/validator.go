// Package validator valida los DTO de entrada con go-playground/validator
// y convierte los fallos al formato de errores por campo de la API.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/invorya/inventario-api/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Reportar los campos con su nombre json, no el del struct Go.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Struct valida un DTO. Si hay fallos devuelve *domain.ValidationError con
// un mensaje legible por campo; cualquier otro error se devuelve tal cual.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &domain.ValidationError{Fields: map[string][]string{}}
	for _, fe := range ve {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "este campo es obligatorio"
	case "min":
		return fmt.Sprintf("longitud o valor mínimo: %s", e.Param())
	case "max":
		return fmt.Sprintf("longitud o valor máximo: %s", e.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", e.Param())
	case "email":
		return "debe ser un email válido"
	case "oneof":
		return fmt.Sprintf("valores permitidos: %s", e.Param())
	case "uuid", "uuid4":
		return "debe ser un UUID válido"
	default:
		return fmt.Sprintf("no cumple la regla '%s'", e.Tag())
	}
}
