// File: internal/dto/validation.go
package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// 小寫英數字，以單一連字號分隔
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// RegisterValidations 註冊自訂驗證規則
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return IsValidSlug(fl.Field().String())
	})
}
