package services

import (
	"context"
	"strings"

	apperrors "pousada/errors"
	"pousada/models"

	"gorm.io/gorm"
)

type AccommodationTypeService struct {
	db *gorm.DB
}

func NewAccommodationTypeService(db *gorm.DB) *AccommodationTypeService {
	return &AccommodationTypeService{db: db}
}

func (s *AccommodationTypeService) Create(ctx context.Context, t *models.AccommodationType) (*models.AccommodationType, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil, apperrors.InvalidArgument("name is required")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx, &models.AccommodationType{}, "name = ?", t.Name)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.Conflict("an accommodation type with this name already exists")
		}
		t.ID = 0
		return tx.Create(t).Error
	})
	if err != nil {
		return nil, storeError(err, "an accommodation type with this name already exists")
	}
	return t, nil
}

func (s *AccommodationTypeService) Update(ctx context.Context, id uint, name, description *string) (*models.AccommodationType, error) {
	var t models.AccommodationType
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockByID(tx, &t, id, "accommodation type not found"); err != nil {
			return err
		}
		if name != nil {
			n := strings.TrimSpace(*name)
			if n == "" {
				return apperrors.InvalidArgument("name is required")
			}
			taken, err := exists(tx, &models.AccommodationType{}, "name = ? AND id <> ?", n, id)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.Conflict("an accommodation type with this name already exists")
			}
			t.Name = n
		}
		if description != nil {
			t.Description = *description
		}
		return tx.Model(&models.AccommodationType{}).Where("id = ?", id).
			Updates(map[string]interface{}{"name": t.Name, "description": t.Description}).Error
	})
	if err != nil {
		return nil, storeError(err, "failed to update accommodation type")
	}
	return &t, nil
}

// Delete refuses while accommodations reference the type
func (s *AccommodationTypeService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.AccommodationType
		if err := lockByID(tx, &t, id, "accommodation type not found"); err != nil {
			return err
		}
		inUse, err := exists(tx, &models.Accommodation{}, "accommodation_type_id = ?", id)
		if err != nil {
			return err
		}
		if inUse {
			return apperrors.Conflict("accommodation type is in use and cannot be deleted")
		}
		return tx.Delete(&models.AccommodationType{}, id).Error
	})
	return storeError(err, "failed to delete accommodation type")
}

func (s *AccommodationTypeService) Get(ctx context.Context, id uint) (*models.AccommodationType, error) {
	var t models.AccommodationType
	if err := findByID(s.db.WithContext(ctx), &t, id, "accommodation type not found"); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *AccommodationTypeService) List(ctx context.Context) ([]models.AccommodationType, error) {
	var out []models.AccommodationType
	if err := s.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, storeError(err, "failed to list accommodation types")
	}
	return out, nil
}
