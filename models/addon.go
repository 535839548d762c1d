package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Addon struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ReservationAddon attaches an addon to a reservation; the pair is unique
type ReservationAddon struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	ReservationID uint            `json:"reservationId" gorm:"not null;uniqueIndex:idx_reservation_addon"`
	AddonID       uint            `json:"addonId" gorm:"not null;uniqueIndex:idx_reservation_addon"`
	Addon         *Addon          `json:"addon,omitempty" gorm:"foreignKey:AddonID"`
	Quantity      int             `json:"quantity" gorm:"not null;default:1"`
	LineTotal     decimal.Decimal `json:"lineTotal" gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ComputeLineTotal returns quantity × unit price
func ComputeLineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
