package services

import (
	"pousada/constants"
	apperrors "pousada/errors"
	"pousada/models"

	"gorm.io/gorm"
)

// StatusMachine owns every accommodation status write so the counter
// moves exactly once per FREE boundary crossing
type StatusMachine struct {
	counter *InventoryCounter
}

func NewStatusMachine(counter *InventoryCounter) *StatusMachine {
	return &StatusMachine{counter: counter}
}

// SetStatus persists status on acc and adjusts the establishment counter
func (m *StatusMachine) SetStatus(tx *gorm.DB, acc *models.Accommodation, status string) error {
	if !models.IsAccommodationStatus(status) {
		return apperrors.InvalidArgument("invalid accommodation status: " + status)
	}
	if acc.Status == status {
		return nil
	}
	err := tx.Model(&models.Accommodation{}).Where("id = ?", acc.ID).Update("status", status).Error
	if err != nil {
		return apperrors.Internal("failed to update accommodation status", err)
	}
	wasFree := acc.IsFree()
	acc.Status = status

	switch {
	case wasFree && status != constants.AccommodationStatusFree:
		return m.counter.Decrement(tx, acc.EstablishmentID)
	case !wasFree && status == constants.AccommodationStatusFree:
		return m.counter.Increment(tx, acc.EstablishmentID)
	}
	return nil
}

// ApplyReservationStatus moves the room to the status implied by the
// reservation status, leaving it alone when the mapping has no effect
func (m *StatusMachine) ApplyReservationStatus(tx *gorm.DB, acc *models.Accommodation, reservationStatus string) error {
	status, ok := models.AccommodationStatusFor(reservationStatus)
	if !ok {
		return nil
	}
	return m.SetStatus(tx, acc, status)
}
