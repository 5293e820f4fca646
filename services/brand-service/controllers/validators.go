package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/services"
)

// RegisterValidators adds the brand binding tags to gin's validator:
//
//	handle  the value must slugify to a non-empty handle
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return services.Slugify(fl.Field().String()) != ""
	})
}
