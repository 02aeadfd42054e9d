package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"inventory/internal/apperrors"
	"inventory/internal/models"
)

// Messages keyed by the struct field that failed.
var validationMessages = map[string]string{
	"Name":  "name cannot be empty",
	"Price": "price cannot be negative",
	"Stock": "stock cannot be negative",
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return v
}

// validateProduct returns a BadRequest error describing the first rule the
// product violates, or nil.
func validateProduct(v *validator.Validate, product models.Product) error {
	err := v.Struct(product)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Internal(err)
	}

	first := validationErrors[0]
	if msg, ok := validationMessages[first.StructField()]; ok {
		return apperrors.BadRequest(msg)
	}
	return apperrors.BadRequest(strings.ToLower(first.Field()) + " is invalid")
}
