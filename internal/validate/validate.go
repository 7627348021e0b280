// Package validate wraps a shared go-playground validator for IP addresses
// and for upstream payloads whose fields are all required.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/evyataryagoni/ipgeo/internal/apperror"
	"github.com/go-playground/validator/v10"
)

// validator.Validate caches struct metadata and is safe for concurrent use
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON key so error details match the wire names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// IP checks that ip is a textual IPv4 or IPv6 address
func IP(ip string) error {
	// "ip" is a built-in validation tag that accepts both IPv4 and IPv6
	if err := validate.Var(ip, "required,ip"); err != nil {
		return apperror.InvalidFormat()
	}
	return nil
}

// Struct validates s against its `validate` tags.
// It returns the JSON names of the fields that failed, in declaration order.
func Struct(s interface{}) ([]string, error) {
	err := validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fe.Field())
	}
	return fields, err
}
