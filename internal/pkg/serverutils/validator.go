// FILE: internal/pkg/serverutils/validator.go
package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and flattens failures into a
// single readable message.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s' rule", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
