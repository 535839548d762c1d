package services

import (
	"context"
	"strings"
	"time"

	"pousada/constants"
	apperrors "pousada/errors"
	"pousada/models"
	"pousada/services/logger"
	"pousada/validator"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const establishmentsCacheTTL = 5 * time.Minute

type EstablishmentPatch struct {
	Name        *string
	Address     *string
	City        *string
	State       *string
	ZipCode     *string
	Phone       *string
	Email       *string
	Website     *string
	Description *string
	Status      *string
	Color       *string
}

type EstablishmentFilter struct {
	Status string
	Search string
}

type EstablishmentService struct {
	db     *gorm.DB
	logger logger.Logger
	cache  Cache
}

type EstablishmentServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Cache  Cache
}

func NewEstablishmentService(opts EstablishmentServiceOptions) *EstablishmentService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.Cache == nil {
		opts.Cache = NopCache{}
	}
	return &EstablishmentService{db: opts.DB, logger: opts.Logger, cache: opts.Cache}
}

// Create stores a new property. Room counters start at zero and are only
// moved by accommodation writes.
func (s *EstablishmentService) Create(ctx context.Context, e *models.Establishment) (*models.Establishment, error) {
	if e.Status == "" {
		e.Status = constants.EstablishmentStatusActive
	}
	if e.Color == "" {
		e.Color = "bg-blue-100"
	}
	if err := validator.ValidateEstablishment(e); err != nil {
		return nil, err
	}
	e.ID = 0
	e.TotalRooms = 0
	e.AvailableRooms = 0
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error; err != nil {
		return nil, storeError(err, "failed to create establishment")
	}
	invalidate(ctx, s.cache, s.logger, CacheKeyEstablishments, CacheKeyDashboardSummary)
	return e, nil
}

func (s *EstablishmentService) Update(ctx context.Context, id uint, patch EstablishmentPatch) (*models.Establishment, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e models.Establishment
		if err := lockByID(tx, &e, id, "establishment not found"); err != nil {
			return err
		}
		applyString(&e.Name, patch.Name)
		applyString(&e.Address, patch.Address)
		applyString(&e.City, patch.City)
		applyString(&e.State, patch.State)
		applyString(&e.ZipCode, patch.ZipCode)
		applyString(&e.Phone, patch.Phone)
		applyString(&e.Email, patch.Email)
		applyString(&e.Website, patch.Website)
		applyString(&e.Description, patch.Description)
		applyString(&e.Status, patch.Status)
		applyString(&e.Color, patch.Color)
		if err := validator.ValidateEstablishment(&e); err != nil {
			return err
		}
		return tx.Model(&models.Establishment{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":        e.Name,
			"address":     e.Address,
			"city":        e.City,
			"state":       e.State,
			"zip_code":    e.ZipCode,
			"phone":       e.Phone,
			"email":       e.Email,
			"website":     e.Website,
			"description": e.Description,
			"status":      e.Status,
			"color":       e.Color,
		}).Error
	})
	if err != nil {
		return nil, storeError(err, "failed to update establishment")
	}
	invalidate(ctx, s.cache, s.logger, CacheKeyEstablishments, CacheKeyDashboardSummary)
	return s.Get(ctx, id)
}

// Delete refuses while accommodations still belong to the property
func (s *EstablishmentService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e models.Establishment
		if err := lockByID(tx, &e, id, "establishment not found"); err != nil {
			return err
		}
		inUse, err := exists(tx, &models.Accommodation{}, "establishment_id = ?", id)
		if err != nil {
			return err
		}
		if inUse {
			return apperrors.Conflict("establishment has accommodations and cannot be deleted")
		}
		booked, err := exists(tx, &models.Reservation{}, "establishment_id = ?", id)
		if err != nil {
			return err
		}
		if booked {
			return apperrors.Conflict("establishment has reservations and cannot be deleted")
		}
		return tx.Delete(&models.Establishment{}, id).Error
	})
	if err != nil {
		return storeError(err, "failed to delete establishment")
	}
	invalidate(ctx, s.cache, s.logger, CacheKeyEstablishments, CacheKeyDashboardSummary)
	return nil
}

func (s *EstablishmentService) Get(ctx context.Context, id uint) (*models.Establishment, error) {
	var e models.Establishment
	if err := findByID(s.db.WithContext(ctx), &e, id, "establishment not found"); err != nil {
		return nil, err
	}
	return &e, nil
}

// List serves the unfiltered list from cache when one is configured
func (s *EstablishmentService) List(ctx context.Context, f EstablishmentFilter) ([]models.Establishment, error) {
	unfiltered := f.Status == "" && strings.TrimSpace(f.Search) == ""
	var out []models.Establishment
	if unfiltered {
		if hit, err := s.cache.Get(ctx, CacheKeyEstablishments, &out); err != nil {
			s.logger.Warn("establishment cache read failed: %v", err)
		} else if hit {
			return out, nil
		}
	}

	q := s.db.WithContext(ctx).Model(&models.Establishment{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ?", like, like)
	}
	if err := q.Order("name").Find(&out).Error; err != nil {
		return nil, storeError(err, "failed to list establishments")
	}

	if unfiltered {
		if err := s.cache.Set(ctx, CacheKeyEstablishments, out, establishmentsCacheTTL); err != nil {
			s.logger.Warn("establishment cache write failed: %v", err)
		}
	}
	return out, nil
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
