package models

import (
	"fmt"

	"github.com/benela/benela_backend/utils"
)

// updateMap is the column -> value set handed to gorm's Updates.
type updateMap map[string]interface{}

type enumValue interface {
	comparable
	IsValid() bool
}

// setValue applies a patch field on a NOT NULL column; an explicit null is rejected.
func setValue[T any](m updateMap, column string, o utils.Optional[T]) error {
	if !o.Set {
		return nil
	}
	if o.Null {
		return fmt.Errorf("%w: %s cannot be null", utils.ErrValidation, column)
	}
	m[column] = o.Value
	return nil
}

// setNullable applies a patch field on a nullable column; null clears it.
func setNullable[T any](m updateMap, column string, o utils.Optional[T]) {
	if !o.Set {
		return
	}
	if o.Null {
		m[column] = nil
		return
	}
	m[column] = o.Value
}

func setEnum[T enumValue](m updateMap, column string, o utils.Optional[T]) error {
	if err := setValue(m, column, o); err != nil {
		return err
	}
	if o.Set && !o.Value.IsValid() {
		return fmt.Errorf("%w: invalid %s %q", utils.ErrValidation, column, fmt.Sprint(o.Value))
	}
	return nil
}

func invalidField(column string) error {
	return fmt.Errorf("%w: invalid %s", utils.ErrValidation, column)
}
