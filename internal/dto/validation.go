package dto

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the ledger's custom binding tags to v:
//
//	isodate  a YYYY-MM-DD calendar date
//	flow     INCOME, EXPENSE or TRANSFER
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return domain.IsValidDate(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("flow", func(fl validator.FieldLevel) bool {
		return domain.Flow(fl.Field().String()).IsValid()
	})
}
