package services

import (
	"context"
	"errors"

	apperrors "pousada/errors"
	"pousada/models"
	"pousada/services/logger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationAddonService attaches priced extras to reservations and keeps
// the reservation total in step with the attached line totals
type ReservationAddonService struct {
	db     *gorm.DB
	logger logger.Logger
	cache  Cache
}

type ReservationAddonServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Cache  Cache
}

func NewReservationAddonService(opts ReservationAddonServiceOptions) *ReservationAddonService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.Cache == nil {
		opts.Cache = NopCache{}
	}
	return &ReservationAddonService{db: opts.DB, logger: opts.Logger, cache: opts.Cache}
}

// Add attaches addonID to the reservation; quantity 0 means one
func (s *ReservationAddonService) Add(ctx context.Context, reservationID, addonID uint, quantity int) (*models.ReservationAddon, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, apperrors.InvalidArgument("quantity must be at least 1")
	}

	var line models.ReservationAddon
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Reservation
		if err := lockByID(tx, &r, reservationID, "reservation not found"); err != nil {
			return err
		}
		var addon models.Addon
		if err := findByID(tx, &addon, addonID, "addon not found"); err != nil {
			return err
		}
		attached, err := exists(tx, &models.ReservationAddon{}, "reservation_id = ? AND addon_id = ?", reservationID, addonID)
		if err != nil {
			return err
		}
		if attached {
			return apperrors.Conflict("addon already attached to reservation")
		}

		line = models.ReservationAddon{
			ReservationID: reservationID,
			AddonID:       addonID,
			Quantity:      quantity,
			LineTotal:     models.ComputeLineTotal(addon.Price, quantity),
		}
		if err := tx.Omit(clause.Associations).Create(&line).Error; err != nil {
			return storeError(err, "addon already attached to reservation")
		}
		line.Addon = &addon
		return s.setTotal(tx, &r, r.TotalValue.Add(line.LineTotal))
	})
	if err != nil {
		return nil, storeError(err, "failed to attach addon")
	}
	invalidate(ctx, s.cache, s.logger, CacheKeyDashboardSummary)
	return &line, nil
}

// UpdateQuantity reprices the line at the addon's current price
func (s *ReservationAddonService) UpdateQuantity(ctx context.Context, reservationID, addonID uint, quantity int) (*models.ReservationAddon, error) {
	if quantity < 1 {
		return nil, apperrors.InvalidArgument("quantity must be at least 1")
	}

	var line models.ReservationAddon
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Reservation
		if err := lockByID(tx, &r, reservationID, "reservation not found"); err != nil {
			return err
		}
		if err := s.findLine(tx, &line, reservationID, addonID); err != nil {
			return err
		}
		var addon models.Addon
		if err := findByID(tx, &addon, addonID, "addon not found"); err != nil {
			return err
		}

		previous := line.LineTotal
		line.Quantity = quantity
		line.LineTotal = models.ComputeLineTotal(addon.Price, quantity)
		err := tx.Model(&models.ReservationAddon{}).Where("id = ?", line.ID).
			Updates(map[string]interface{}{"quantity": line.Quantity, "line_total": line.LineTotal}).Error
		if err != nil {
			return storeError(err, "failed to update addon quantity")
		}
		line.Addon = &addon
		return s.setTotal(tx, &r, r.TotalValue.Add(line.LineTotal.Sub(previous)))
	})
	if err != nil {
		return nil, storeError(err, "failed to update addon quantity")
	}
	invalidate(ctx, s.cache, s.logger, CacheKeyDashboardSummary)
	return &line, nil
}

// Remove detaches the addon and subtracts its line total
func (s *ReservationAddonService) Remove(ctx context.Context, reservationID, addonID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Reservation
		if err := lockByID(tx, &r, reservationID, "reservation not found"); err != nil {
			return err
		}
		var line models.ReservationAddon
		if err := s.findLine(tx, &line, reservationID, addonID); err != nil {
			return err
		}
		if err := tx.Delete(&models.ReservationAddon{}, line.ID).Error; err != nil {
			return storeError(err, "failed to remove addon")
		}
		return s.setTotal(tx, &r, r.TotalValue.Sub(line.LineTotal))
	})
	if err != nil {
		return storeError(err, "failed to remove addon")
	}
	invalidate(ctx, s.cache, s.logger, CacheKeyDashboardSummary)
	return nil
}

func (s *ReservationAddonService) List(ctx context.Context, reservationID uint) ([]models.ReservationAddon, error) {
	db := s.db.WithContext(ctx)
	var r models.Reservation
	if err := findByID(db, &r, reservationID, "reservation not found"); err != nil {
		return nil, err
	}
	var lines []models.ReservationAddon
	if err := db.Preload("Addon").Where("reservation_id = ?", reservationID).Order("id").Find(&lines).Error; err != nil {
		return nil, storeError(err, "failed to list reservation addons")
	}
	return lines, nil
}

func (s *ReservationAddonService) findLine(tx *gorm.DB, line *models.ReservationAddon, reservationID, addonID uint) error {
	err := tx.Where("reservation_id = ? AND addon_id = ?", reservationID, addonID).First(line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("addon not attached to reservation")
	}
	return storeError(err, "failed to load reservation addon")
}

func (s *ReservationAddonService) setTotal(tx *gorm.DB, r *models.Reservation, total decimal.Decimal) error {
	if total.IsNegative() {
		s.logger.Warn("total value of reservation %d floored at zero", r.ID)
		total = decimal.Zero
	}
	r.TotalValue = total
	err := tx.Model(&models.Reservation{}).Where("id = ?", r.ID).Update("total_value", total).Error
	return storeError(err, "failed to update reservation total")
}
