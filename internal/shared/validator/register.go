package validator

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// GetValidator returns the validator instance from Gin binding
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("gin binding engine is not a go-playground validator")
	}
	return v, nil
}

// RegisterAll registers all common validators defined in this package.
// Safe to call more than once; tests set up many routers.
func RegisterAll() error {
	var err error
	registerOnce.Do(func() {
		err = register()
	})
	return err
}

func register() error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("get validator engine: %w", err)
	}

	// Report fields by their wire name (json, then form) instead of the Go name.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	if err := v.RegisterValidation("notblank", ValidateNotBlank); err != nil {
		return fmt.Errorf("register notblank: %w", err)
	}

	slog.Info("common validators registered", "validators", "notblank")
	return nil
}
