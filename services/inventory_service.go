package services

import (
	"context"

	"pousada/constants"
	apperrors "pousada/errors"
	"pousada/models"
	"pousada/services/logger"

	"gorm.io/gorm"
)

// InventoryCounter keeps establishment.availableRooms in step with the
// number of FREE accommodations. Every method runs inside the caller's tx.
type InventoryCounter struct {
	logger logger.Logger
}

func NewInventoryCounter(log logger.Logger) *InventoryCounter {
	if log == nil {
		log = logger.Nop{}
	}
	return &InventoryCounter{logger: log}
}

// Increment adds one available room, clamped at totalRooms
func (c *InventoryCounter) Increment(tx *gorm.DB, establishmentID uint) error {
	res := tx.Model(&models.Establishment{}).
		Where("id = ? AND available_rooms < total_rooms", establishmentID).
		UpdateColumn("available_rooms", gorm.Expr("available_rooms + 1"))
	if res.Error != nil {
		return apperrors.Internal("failed to increment available rooms", res.Error)
	}
	if res.RowsAffected == 0 {
		return c.clamped(tx, establishmentID, "increment")
	}
	return nil
}

// Decrement removes one available room, clamped at zero
func (c *InventoryCounter) Decrement(tx *gorm.DB, establishmentID uint) error {
	res := tx.Model(&models.Establishment{}).
		Where("id = ? AND available_rooms > 0", establishmentID).
		UpdateColumn("available_rooms", gorm.Expr("available_rooms - 1"))
	if res.Error != nil {
		return apperrors.Internal("failed to decrement available rooms", res.Error)
	}
	if res.RowsAffected == 0 {
		return c.clamped(tx, establishmentID, "decrement")
	}
	return nil
}

func (c *InventoryCounter) clamped(tx *gorm.DB, establishmentID uint, op string) error {
	ok, err := exists(tx, &models.Establishment{}, "id = ?", establishmentID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("establishment not found")
	}
	c.logger.Warn("available rooms %s clamped for establishment %d", op, establishmentID)
	return nil
}

// AddRoom registers a new accommodation on the establishment
func (c *InventoryCounter) AddRoom(tx *gorm.DB, establishmentID uint, free bool) error {
	var est models.Establishment
	if err := lockByID(tx, &est, establishmentID, "establishment not found"); err != nil {
		return err
	}
	total := est.TotalRooms + 1
	available := est.AvailableRooms
	if free {
		available++
	}
	return c.write(tx, &est, total, available)
}

// RemoveRoom unregisters an accommodation from the establishment
func (c *InventoryCounter) RemoveRoom(tx *gorm.DB, establishmentID uint, free bool) error {
	var est models.Establishment
	if err := lockByID(tx, &est, establishmentID, "establishment not found"); err != nil {
		return err
	}
	total := est.TotalRooms - 1
	available := est.AvailableRooms
	if free {
		available--
	}
	return c.write(tx, &est, total, available)
}

func (c *InventoryCounter) write(tx *gorm.DB, est *models.Establishment, total, available int) error {
	if total < 0 {
		c.logger.Warn("total rooms clamped at zero for establishment %d", est.ID)
		total = 0
	}
	if available > total {
		c.logger.Warn("available rooms clamped at %d for establishment %d", total, est.ID)
		available = total
	}
	if available < 0 {
		c.logger.Warn("available rooms clamped at zero for establishment %d", est.ID)
		available = 0
	}
	err := tx.Model(&models.Establishment{}).Where("id = ?", est.ID).
		UpdateColumns(map[string]interface{}{
			"total_rooms":     total,
			"available_rooms": available,
		}).Error
	if err != nil {
		return apperrors.Internal("failed to update room counters", err)
	}
	est.TotalRooms = total
	est.AvailableRooms = available
	return nil
}

// Drift describes an establishment whose cached counters disagreed with its rooms
type Drift struct {
	EstablishmentID        uint `json:"establishmentId"`
	TotalRooms             int  `json:"totalRooms"`
	AvailableRooms         int  `json:"availableRooms"`
	ExpectedTotalRooms     int  `json:"expectedTotalRooms"`
	ExpectedAvailableRooms int  `json:"expectedAvailableRooms"`
}

// Reconciler recomputes the cached counters from the accommodation rows
type Reconciler struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewReconciler(db *gorm.DB, log logger.Logger) *Reconciler {
	if log == nil {
		log = logger.Nop{}
	}
	return &Reconciler{db: db, logger: log}
}

// Reconcile fixes every drifted establishment and reports what it changed
func (r *Reconciler) Reconcile(ctx context.Context) ([]Drift, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Establishment{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, apperrors.Internal("failed to list establishments", err)
	}

	var drifts []Drift
	for _, id := range ids {
		var drift *Drift
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var est models.Establishment
			if err := lockByID(tx, &est, id, "establishment not found"); err != nil {
				return err
			}
			var total, free int64
			if err := tx.Model(&models.Accommodation{}).Where("establishment_id = ?", id).Count(&total).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Accommodation{}).
				Where("establishment_id = ? AND status = ?", id, constants.AccommodationStatusFree).
				Count(&free).Error; err != nil {
				return err
			}
			if int(total) == est.TotalRooms && int(free) == est.AvailableRooms {
				return nil
			}
			drift = &Drift{
				EstablishmentID:        id,
				TotalRooms:             est.TotalRooms,
				AvailableRooms:         est.AvailableRooms,
				ExpectedTotalRooms:     int(total),
				ExpectedAvailableRooms: int(free),
			}
			return tx.Model(&models.Establishment{}).Where("id = ?", id).
				UpdateColumns(map[string]interface{}{
					"total_rooms":     total,
					"available_rooms": free,
				}).Error
		})
		if apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
			continue
		}
		if err != nil {
			return drifts, storeError(err, "failed to reconcile establishment")
		}
		if drift != nil {
			r.logger.Warn("establishment %d counters drifted: rooms %d/%d, expected %d/%d",
				id, drift.AvailableRooms, drift.TotalRooms, drift.ExpectedAvailableRooms, drift.ExpectedTotalRooms)
			drifts = append(drifts, *drift)
		}
	}
	return drifts, nil
}
