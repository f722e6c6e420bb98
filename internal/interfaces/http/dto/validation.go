package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs custom binding validators on gin's validator
// engine. Call once at startup before serving requests.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("purity", validPurity)
}

// validPurity accepts per-mille purities in the 1-999 range. Zero passes so
// the tag can sit on optional fields; domain constructors reject zero where
// a purity is actually required.
func validPurity(fl validator.FieldLevel) bool {
	purity := fl.Field().Int()
	return purity >= 0 && purity <= 999
}
