package services

import (
	"errors"

	apperrors "pousada/errors"
	"pousada/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockByID loads dest by primary key with SELECT ... FOR UPDATE
func lockByID(tx *gorm.DB, dest interface{}, id uint, notFound string) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(notFound)
	}
	if err != nil {
		return apperrors.Internal("failed to load record", err)
	}
	return nil
}

// findByID is lockByID without the row lock
func findByID(tx *gorm.DB, dest interface{}, id uint, notFound string) error {
	err := tx.First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(notFound)
	}
	if err != nil {
		return apperrors.Internal("failed to load record", err)
	}
	return nil
}

// exists reports whether a row of model matches the condition
func exists(tx *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, apperrors.Internal("failed to query store", err)
	}
	return count > 0, nil
}

// storeError maps a gorm error to the application taxonomy
func storeError(err error, message string) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(message)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict(message)
	case errors.Is(err, models.ErrReservationCodeExhausted):
		return apperrors.Conflict(models.ErrReservationCodeExhausted.Error())
	}
	return apperrors.Internal(message, err)
}
