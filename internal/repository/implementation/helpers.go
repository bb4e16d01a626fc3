package implementation

import (
	"errors"
	"strings"

	"agrisense-be/internal/repository/contract"
	"agrisense-be/internal/repository/specification"

	"gorm.io/gorm"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// translateCreateError maps unique-index violations to contract.ErrDuplicate.
// Drivers without TranslateError support are matched on their message.
func translateCreateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return contract.ErrDuplicate
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") {
		return contract.ErrDuplicate
	}
	return err
}
