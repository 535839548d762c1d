package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"pousada/constants"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type Accommodation struct {
	ID                  uint               `json:"id" gorm:"primaryKey"`
	Name                string             `json:"name" gorm:"not null"`
	RoomNumber          string             `json:"roomNumber" gorm:"not null;uniqueIndex:idx_establishment_room"`
	Capacity            int                `json:"capacity" gorm:"not null;default:1"`
	BasePrice           decimal.Decimal    `json:"basePrice" gorm:"type:decimal(12,2);not null;default:0"`
	Status              string             `json:"status" gorm:"type:varchar(20);not null;default:'FREE';index"`
	Description         string             `json:"description"`
	Amenities           StringList         `json:"amenities"`
	ImageURL            string             `json:"imageUrl"`
	EstablishmentID     uint               `json:"establishmentId" gorm:"not null;uniqueIndex:idx_establishment_room"`
	Establishment       *Establishment     `json:"establishment,omitempty" gorm:"foreignKey:EstablishmentID"`
	AccommodationTypeID uint               `json:"accommodationTypeId" gorm:"not null;index"`
	AccommodationType   *AccommodationType `json:"accommodationType,omitempty" gorm:"foreignKey:AccommodationTypeID"`
	CreatedAt           time.Time          `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time          `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (a *Accommodation) ValidateStatus() error {
	if !IsAccommodationStatus(a.Status) {
		return fmt.Errorf("invalid status: %q", a.Status)
	}
	return nil
}

func (a *Accommodation) IsFree() bool {
	return a.Status == constants.AccommodationStatusFree
}

func IsAccommodationStatus(status string) bool {
	switch status {
	case constants.AccommodationStatusFree,
		constants.AccommodationStatusOccupied,
		constants.AccommodationStatusReserved,
		constants.AccommodationStatusMaintenance,
		constants.AccommodationStatusCleaning:
		return true
	}
	return false
}

// AccommodationSummary is the joined view embedded in reservation responses
type AccommodationSummary struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	RoomNumber string `json:"roomNumber"`
	Capacity   int    `json:"capacity"`
}

// StringList is stored as text[] on postgres and as the array literal in text elsewhere
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	return pq.StringArray(s).Value()
}

func (s *StringList) Scan(src interface{}) error {
	return (*pq.StringArray)(s).Scan(src)
}

func (StringList) GormDataType() string {
	return "text"
}

func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
