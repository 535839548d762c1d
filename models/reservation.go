package models

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"pousada/constants"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const reservationCodeAttempts = 5

var ErrReservationCodeExhausted = errors.New("could not generate a unique reservation code")

type Reservation struct {
	ID              uint               `json:"id" gorm:"primaryKey"`
	Code            string             `json:"code" gorm:"uniqueIndex;size:20;not null"`
	ClientID        uint               `json:"clientId" gorm:"not null;index"`
	Client          *Client            `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	AccommodationID uint               `json:"accommodationId" gorm:"not null;index"`
	Accommodation   *Accommodation     `json:"accommodation,omitempty" gorm:"foreignKey:AccommodationID"`
	EstablishmentID uint               `json:"establishmentId" gorm:"not null;index"`
	Establishment   *Establishment     `json:"establishment,omitempty" gorm:"foreignKey:EstablishmentID"`
	CheckIn         time.Time          `json:"checkIn" gorm:"not null;index"`
	CheckOut        time.Time          `json:"checkOut" gorm:"not null;index"`
	Headcount       int                `json:"headcount" gorm:"not null;default:1"`
	TotalValue      decimal.Decimal    `json:"totalValue" gorm:"type:decimal(12,2);not null;default:0"`
	PaidValue       decimal.Decimal    `json:"paidValue" gorm:"type:decimal(12,2);not null;default:0"`
	Status          string             `json:"status" gorm:"type:varchar(20);not null;default:'CONFIRMED';index"`
	Notes           string             `json:"notes"`
	Addons          []ReservationAddon `json:"addons,omitempty" gorm:"foreignKey:ReservationID"`
	Payments        []Payment          `json:"payments,omitempty" gorm:"foreignKey:ReservationID"`
	CreatedAt       time.Time          `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time          `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate assigns a unique human-readable code when none is set
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.Code != "" {
		return nil
	}
	for i := 0; i < reservationCodeAttempts; i++ {
		code, err := newReservationCode(time.Now())
		if err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&Reservation{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			r.Code = code
			return nil
		}
	}
	return ErrReservationCodeExhausted
}

// newReservationCode builds RES + YYMMDD + four random digits
func newReservationCode(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("RES%s%04d", now.Format("060102"), n.Int64()), nil
}

func (r *Reservation) IsActive() bool {
	return IsActiveReservationStatus(r.Status)
}

// IsFullyPaid reports paidValue >= totalValue
func (r *Reservation) IsFullyPaid() bool {
	return r.PaidValue.GreaterThanOrEqual(r.TotalValue)
}

// Nights counts started days between check-in and check-out
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	day := 24 * time.Hour
	n := int(d / day)
	if d%day != 0 {
		n++
	}
	return n
}

func IsReservationStatus(status string) bool {
	switch status {
	case constants.ReservationStatusPending,
		constants.ReservationStatusConfirmed,
		constants.ReservationStatusCheckIn,
		constants.ReservationStatusCheckOut,
		constants.ReservationStatusCompleted,
		constants.ReservationStatusCancelled:
		return true
	}
	return false
}

func IsActiveReservationStatus(status string) bool {
	for _, s := range constants.ActiveReservationStatuses {
		if s == status {
			return true
		}
	}
	return false
}
