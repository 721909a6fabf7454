// Package validator wraps go-playground/validator with the error shape
// the handlers expect.
package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/Amazons-Team/fatima-api/pkg/errors"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks struct tags and returns a BadRequest AppError naming
// the offending fields.
func (v *Validator) Validate(obj interface{}) error {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.BadRequest("invalid request", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return apperrors.BadRequest("validation failed: "+strings.Join(fields, ", "), err)
}
