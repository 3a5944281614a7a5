package validation

import (
	"errors"
	"fmt"

	"poscore/internal/domain/model"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// ValidateTab checks a tab restored from the persisted snapshot. Line items
// are validated individually so one bad row fails the whole tab.
func (v *Validator) ValidateTab(tab model.Tab) error {
	if err := v.validate.Struct(tab); err != nil {
		var invalidErr *validator.InvalidValidationError
		if errors.As(err, &invalidErr) {
			return err
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	for i, item := range tab.Items {
		if err := v.validate.Struct(item); err != nil {
			return fmt.Errorf("item %d invalid: %w", i, err)
		}
	}
	return nil
}
