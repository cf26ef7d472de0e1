package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// translateError maps storage errors onto domain errors so usecases and
// transports never depend on gorm.
func translateError(err error, op string, notFound, conflict error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if notFound != nil {
			return notFound
		}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		if conflict != nil {
			return conflict
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
