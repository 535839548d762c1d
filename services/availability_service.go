package services

import (
	"context"
	"time"

	"pousada/constants"
	apperrors "pousada/errors"
	"pousada/models"

	"gorm.io/gorm"
)

// Overlaps reports whether two stays share at least one instant. Ranges are
// inclusive, so a check-out and a check-in on the same day conflict.
func Overlaps(existingIn, existingOut, checkIn, checkOut time.Time) bool {
	return !existingIn.After(checkOut) && !existingOut.Before(checkIn)
}

type AvailabilityService struct {
	db *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

// IsAvailable reports whether no active reservation on the accommodation
// overlaps [checkIn, checkOut], ignoring excludeID when set
func (s *AvailabilityService) IsAvailable(ctx context.Context, accommodationID uint, checkIn, checkOut time.Time, excludeID *uint) (bool, error) {
	if !checkIn.Before(checkOut) {
		return false, apperrors.InvalidArgument(apperrors.ErrInvalidDateRange.Error())
	}
	db := s.db.WithContext(ctx)
	var acc models.Accommodation
	if err := findByID(db, &acc, accommodationID, "accommodation not found"); err != nil {
		return false, err
	}
	conflict, err := findConflict(db, accommodationID, checkIn, checkOut, excludeID)
	if err != nil {
		return false, err
	}
	return conflict == nil, nil
}

// findConflict returns the first active reservation overlapping the range
func findConflict(tx *gorm.DB, accommodationID uint, checkIn, checkOut time.Time, excludeID *uint) (*models.Reservation, error) {
	q := tx.Model(&models.Reservation{}).
		Where("accommodation_id = ?", accommodationID).
		Where("status IN ?", constants.ActiveReservationStatuses).
		Where("check_in <= ? AND check_out >= ?", checkOut, checkIn)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var found []models.Reservation
	if err := q.Order("check_in").Limit(1).Find(&found).Error; err != nil {
		return nil, apperrors.Internal("failed to check availability", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// ensureAvailable fails with Conflict when the range is already held
func ensureAvailable(tx *gorm.DB, accommodationID uint, checkIn, checkOut time.Time, excludeID *uint) error {
	conflict, err := findConflict(tx, accommodationID, checkIn, checkOut, excludeID)
	if err != nil {
		return err
	}
	if conflict != nil {
		return apperrors.NewAppError(apperrors.ErrCodeConflict, apperrors.ErrRoomNotAvailable.Error(), apperrors.ErrRoomNotAvailable)
	}
	return nil
}
