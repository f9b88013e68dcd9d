package services

import (
	"errors"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
)

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
