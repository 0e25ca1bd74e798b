package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/loooooooooogp/Account/internal/core/domain"
)

// RegisterCustomValidations registers the domain-specific binding tags used
// by the request DTOs. Called once at startup with gin's validator engine.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("txtype", validTransactionType); err != nil {
		return err
	}
	return v.RegisterValidation("permission", validPermissionLevel)
}

func validTransactionType(fl validator.FieldLevel) bool {
	return domain.TransactionType(fl.Field().String()).Valid()
}

func validPermissionLevel(fl validator.FieldLevel) bool {
	return domain.PermissionLevel(fl.Field().String()).Valid()
}
