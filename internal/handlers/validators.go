package handlers

import (
	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations installs binding validations used by request
// payloads. Call once before registering routes.
func RegisterCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accountcode", validAccountCode)
	}
}

// validAccountCode accepts display codes like "152" or "152-2".
func validAccountCode(fl validator.FieldLevel) bool {
	_, _, err := domain.ParseAccountCode(fl.Field().String())
	return err == nil
}
