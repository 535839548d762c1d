package builders

import (
	"time"

	"pousada/constants"
	"pousada/models"

	"github.com/shopspring/decimal"
)

// ReservationBuilder assembles a reservation step by step
type ReservationBuilder struct {
	reservation *models.Reservation
	basePrice   decimal.Decimal
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{
			Status:    constants.ReservationStatusConfirmed,
			PaidValue: decimal.Zero,
		},
	}
}

func (b *ReservationBuilder) WithClient(clientID uint) *ReservationBuilder {
	b.reservation.ClientID = clientID
	return b
}

// WithAccommodation binds the room, its establishment and its nightly rate
func (b *ReservationBuilder) WithAccommodation(acc *models.Accommodation) *ReservationBuilder {
	b.reservation.AccommodationID = acc.ID
	b.reservation.EstablishmentID = acc.EstablishmentID
	b.basePrice = acc.BasePrice
	if b.reservation.Headcount == 0 {
		b.reservation.Headcount = acc.Capacity
	}
	return b
}

func (b *ReservationBuilder) WithStay(checkIn, checkOut time.Time) *ReservationBuilder {
	b.reservation.CheckIn = checkIn
	b.reservation.CheckOut = checkOut
	return b
}

// WithHeadcount overrides the capacity default; nil keeps it
func (b *ReservationBuilder) WithHeadcount(headcount *int) *ReservationBuilder {
	if headcount != nil {
		b.reservation.Headcount = *headcount
	}
	return b
}

func (b *ReservationBuilder) WithStatus(status string) *ReservationBuilder {
	if status != "" {
		b.reservation.Status = status
	}
	return b
}

func (b *ReservationBuilder) WithNotes(notes string) *ReservationBuilder {
	b.reservation.Notes = notes
	return b
}

// Build prices the stay at nights x base price
func (b *ReservationBuilder) Build() *models.Reservation {
	nights := models.Nights(b.reservation.CheckIn, b.reservation.CheckOut)
	b.reservation.TotalValue = b.basePrice.Mul(decimal.NewFromInt(int64(nights)))
	if b.reservation.Headcount < 1 {
		b.reservation.Headcount = 1
	}
	return b.reservation
}
