package services

import (
	"context"
	"strings"

	"pousada/constants"
	apperrors "pousada/errors"
	"pousada/models"
	"pousada/services/logger"
	"pousada/validator"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccommodationPatch struct {
	Name                *string
	RoomNumber          *string
	Capacity            *int
	BasePrice           *decimal.Decimal
	Status              *string
	Description         *string
	Amenities           *[]string
	ImageURL            *string
	EstablishmentID     *uint
	AccommodationTypeID *uint
}

type AccommodationFilter struct {
	EstablishmentID     uint
	AccommodationTypeID uint
	Status              string
	Search              string
}

type AccommodationService struct {
	db      *gorm.DB
	logger  logger.Logger
	counter *InventoryCounter
	machine *StatusMachine
	cache   Cache
}

type AccommodationServiceOptions struct {
	DB      *gorm.DB
	Logger  logger.Logger
	Counter *InventoryCounter
	Machine *StatusMachine
	Cache   Cache
}

func NewAccommodationService(opts AccommodationServiceOptions) *AccommodationService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.Counter == nil {
		opts.Counter = NewInventoryCounter(opts.Logger)
	}
	if opts.Machine == nil {
		opts.Machine = NewStatusMachine(opts.Counter)
	}
	if opts.Cache == nil {
		opts.Cache = NopCache{}
	}
	return &AccommodationService{
		db:      opts.DB,
		logger:  opts.Logger,
		counter: opts.Counter,
		machine: opts.Machine,
		cache:   opts.Cache,
	}
}

// Create adds a room and registers it on its establishment's counters
func (s *AccommodationService) Create(ctx context.Context, a *models.Accommodation) (*models.Accommodation, error) {
	if a.Status == "" {
		a.Status = constants.AccommodationStatusFree
	}
	if a.Capacity == 0 {
		a.Capacity = 1
	}
	a.Name = strings.TrimSpace(a.Name)
	a.RoomNumber = strings.TrimSpace(a.RoomNumber)
	if err := validator.ValidateAccommodation(a); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkReferences(tx, a.EstablishmentID, a.AccommodationTypeID); err != nil {
			return err
		}
		if err := s.checkRoomNumber(tx, a.EstablishmentID, a.RoomNumber, 0); err != nil {
			return err
		}
		a.ID = 0
		if err := tx.Omit(clause.Associations).Create(a).Error; err != nil {
			return storeError(err, "room number already exists in this establishment")
		}
		return s.counter.AddRoom(tx, a.EstablishmentID, a.IsFree())
	})
	if err != nil {
		return nil, storeError(err, "failed to create accommodation")
	}
	s.invalidate(ctx)
	return s.Get(ctx, a.ID)
}

// Update edits the room. A manual status change goes through the status
// machine; moving to another establishment shifts the room between counters.
func (s *AccommodationService) Update(ctx context.Context, id uint, patch AccommodationPatch) (*models.Accommodation, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Accommodation
		if err := lockByID(tx, &a, id, "accommodation not found"); err != nil {
			return err
		}
		before := a
		applyString(&a.Name, patch.Name)
		applyString(&a.RoomNumber, patch.RoomNumber)
		applyString(&a.Description, patch.Description)
		applyString(&a.ImageURL, patch.ImageURL)
		if patch.Capacity != nil {
			a.Capacity = *patch.Capacity
		}
		if patch.BasePrice != nil {
			a.BasePrice = *patch.BasePrice
		}
		if patch.Amenities != nil {
			a.Amenities = models.StringList(*patch.Amenities)
		}
		if patch.EstablishmentID != nil {
			a.EstablishmentID = *patch.EstablishmentID
		}
		if patch.AccommodationTypeID != nil {
			a.AccommodationTypeID = *patch.AccommodationTypeID
		}
		if patch.Status != nil {
			a.Status = *patch.Status
		}
		if err := validator.ValidateAccommodation(&a); err != nil {
			return err
		}
		if err := s.checkReferences(tx, a.EstablishmentID, a.AccommodationTypeID); err != nil {
			return err
		}
		if a.RoomNumber != before.RoomNumber || a.EstablishmentID != before.EstablishmentID {
			if err := s.checkRoomNumber(tx, a.EstablishmentID, a.RoomNumber, id); err != nil {
				return err
			}
		}
		moving := a.EstablishmentID != before.EstablishmentID
		if moving {
			held, err := exists(tx, &models.Reservation{}, "accommodation_id = ? AND status IN ?", id, holdingStatuses())
			if err != nil {
				return err
			}
			if held {
				return apperrors.Conflict("accommodation has active reservations and cannot change establishment")
			}
		}

		err := tx.Model(&models.Accommodation{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":                  a.Name,
			"room_number":           a.RoomNumber,
			"capacity":              a.Capacity,
			"base_price":            a.BasePrice,
			"description":           a.Description,
			"amenities":             a.Amenities,
			"image_url":             a.ImageURL,
			"establishment_id":      a.EstablishmentID,
			"accommodation_type_id": a.AccommodationTypeID,
		}).Error
		if err != nil {
			return storeError(err, "room number already exists in this establishment")
		}

		if moving {
			if err := s.counter.RemoveRoom(tx, before.EstablishmentID, before.IsFree()); err != nil {
				return err
			}
			if err := tx.Model(&models.Accommodation{}).Where("id = ?", id).Update("status", a.Status).Error; err != nil {
				return storeError(err, "failed to update accommodation status")
			}
			return s.counter.AddRoom(tx, a.EstablishmentID, a.IsFree())
		}
		status := a.Status
		a.Status = before.Status
		return s.machine.SetStatus(tx, &a, status)
	})
	if err != nil {
		return nil, storeError(err, "failed to update accommodation")
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

// SetStatus is the manual status change used by housekeeping
func (s *AccommodationService) SetStatus(ctx context.Context, id uint, status string) (*models.Accommodation, error) {
	return s.Update(ctx, id, AccommodationPatch{Status: &status})
}

// Delete refuses while reservations reference the room
func (s *AccommodationService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Accommodation
		if err := lockByID(tx, &a, id, "accommodation not found"); err != nil {
			return err
		}
		booked, err := exists(tx, &models.Reservation{}, "accommodation_id = ?", id)
		if err != nil {
			return err
		}
		if booked {
			return apperrors.Conflict("accommodation has reservations and cannot be deleted")
		}
		if err := tx.Delete(&models.Accommodation{}, id).Error; err != nil {
			return err
		}
		return s.counter.RemoveRoom(tx, a.EstablishmentID, a.IsFree())
	})
	if err != nil {
		return storeError(err, "failed to delete accommodation")
	}
	s.invalidate(ctx)
	return nil
}

func (s *AccommodationService) Get(ctx context.Context, id uint) (*models.Accommodation, error) {
	var a models.Accommodation
	err := s.db.WithContext(ctx).
		Preload("Establishment").
		Preload("AccommodationType").
		First(&a, id).Error
	if err != nil {
		return nil, storeError(err, "accommodation not found")
	}
	return &a, nil
}

func (s *AccommodationService) List(ctx context.Context, f AccommodationFilter) ([]models.Accommodation, error) {
	q := s.db.WithContext(ctx).Model(&models.Accommodation{}).
		Preload("Establishment").
		Preload("AccommodationType")
	if f.EstablishmentID != 0 {
		q = q.Where("establishment_id = ?", f.EstablishmentID)
	}
	if f.AccommodationTypeID != 0 {
		q = q.Where("accommodation_type_id = ?", f.AccommodationTypeID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(room_number) LIKE ?", like, like, like)
	}
	var out []models.Accommodation
	if err := q.Order("establishment_id, room_number").Find(&out).Error; err != nil {
		return nil, storeError(err, "failed to list accommodations")
	}
	return out, nil
}

func (s *AccommodationService) checkReferences(tx *gorm.DB, establishmentID, typeID uint) error {
	ok, err := exists(tx, &models.Establishment{}, "id = ?", establishmentID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("establishment not found")
	}
	ok, err = exists(tx, &models.AccommodationType{}, "id = ?", typeID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("accommodation type not found")
	}
	return nil
}

func (s *AccommodationService) checkRoomNumber(tx *gorm.DB, establishmentID uint, roomNumber string, selfID uint) error {
	taken, err := exists(tx, &models.Accommodation{}, "establishment_id = ? AND room_number = ? AND id <> ?", establishmentID, roomNumber, selfID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Conflict("room number already exists in this establishment")
	}
	return nil
}

func (s *AccommodationService) invalidate(ctx context.Context) {
	invalidate(ctx, s.cache, s.logger, CacheKeyEstablishments, CacheKeyDashboardSummary)
}

func holdingStatuses() []string {
	return append(append([]string{}, constants.ActiveReservationStatuses...), constants.ReservationStatusCheckOut)
}
