package dto

import (
	"github.com/crm/backend/internal/domain/connector"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs custom binding rules on gin's validator.
// The "provider" rule accepts only the closed set of supported providers.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("provider", func(fl validator.FieldLevel) bool {
		return connector.Provider(fl.Field().String()).IsValid()
	})
}
