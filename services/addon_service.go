package services

import (
	"context"
	"strings"

	apperrors "pousada/errors"
	"pousada/models"
	"pousada/validator"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AddonService struct {
	db *gorm.DB
}

func NewAddonService(db *gorm.DB) *AddonService {
	return &AddonService{db: db}
}

func (s *AddonService) Create(ctx context.Context, a *models.Addon) (*models.Addon, error) {
	a.Name = strings.TrimSpace(a.Name)
	if err := validator.ValidateAddon(a); err != nil {
		return nil, err
	}
	a.ID = 0
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, storeError(err, "failed to create addon")
	}
	return a, nil
}

// Update changes the catalogue entry; lines already attached keep their price
func (s *AddonService) Update(ctx context.Context, id uint, name, description *string, price *decimal.Decimal) (*models.Addon, error) {
	var a models.Addon
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockByID(tx, &a, id, "addon not found"); err != nil {
			return err
		}
		applyString(&a.Name, name)
		if description != nil {
			a.Description = *description
		}
		if price != nil {
			a.Price = *price
		}
		if err := validator.ValidateAddon(&a); err != nil {
			return err
		}
		return tx.Model(&models.Addon{}).Where("id = ?", id).
			Updates(map[string]interface{}{"name": a.Name, "description": a.Description, "price": a.Price}).Error
	})
	if err != nil {
		return nil, storeError(err, "failed to update addon")
	}
	return &a, nil
}

// Delete refuses while the addon is attached to any reservation
func (s *AddonService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Addon
		if err := lockByID(tx, &a, id, "addon not found"); err != nil {
			return err
		}
		attached, err := exists(tx, &models.ReservationAddon{}, "addon_id = ?", id)
		if err != nil {
			return err
		}
		if attached {
			return apperrors.Conflict("addon is attached to reservations and cannot be deleted")
		}
		return tx.Delete(&models.Addon{}, id).Error
	})
	return storeError(err, "failed to delete addon")
}

func (s *AddonService) Get(ctx context.Context, id uint) (*models.Addon, error) {
	var a models.Addon
	if err := findByID(s.db.WithContext(ctx), &a, id, "addon not found"); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AddonService) List(ctx context.Context, search string) ([]models.Addon, error) {
	q := s.db.WithContext(ctx).Model(&models.Addon{})
	if term := strings.TrimSpace(search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	var out []models.Addon
	if err := q.Order("name").Find(&out).Error; err != nil {
		return nil, storeError(err, "failed to list addons")
	}
	return out, nil
}
