package models

import (
	"fmt"
	"time"

	"pousada/constants"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	ReservationID uint            `json:"reservationId" gorm:"not null;index"`
	Reservation   *Reservation    `json:"reservation,omitempty" gorm:"foreignKey:ReservationID"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	PaymentDate   time.Time       `json:"paymentDate" gorm:"not null;index"`
	Method        string          `json:"method" gorm:"type:varchar(20);not null"`
	Status        string          `json:"status" gorm:"type:varchar(20);not null;default:'CONFIRMED'"`
	ReceiptURL    string          `json:"receiptUrl"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (p *Payment) ValidateMethod() error {
	switch p.Method {
	case constants.PaymentMethodPix,
		constants.PaymentMethodCreditCard,
		constants.PaymentMethodDebitCard,
		constants.PaymentMethodCash,
		constants.PaymentMethodBankTransfer:
		return nil
	}
	return fmt.Errorf("invalid payment method: %q", p.Method)
}

func (p *Payment) ValidateStatus() error {
	switch p.Status {
	case constants.PaymentStatusPending,
		constants.PaymentStatusConfirmed,
		constants.PaymentStatusCancelled,
		constants.PaymentStatusRefunded:
		return nil
	}
	return fmt.Errorf("invalid payment status: %q", p.Status)
}
