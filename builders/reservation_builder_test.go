package builders

import (
	"testing"
	"time"

	"pousada/constants"
	"pousada/models"

	"github.com/shopspring/decimal"
)

func TestReservationBuilder(t *testing.T) {
	acc := &models.Accommodation{ID: 4, EstablishmentID: 2, Capacity: 3, BasePrice: decimal.RequireFromString("180.50")}
	in := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	r := NewReservationBuilder().
		WithClient(9).
		WithAccommodation(acc).
		WithStay(in, in.AddDate(0, 0, 2)).
		WithNotes("late arrival").
		Build()

	if r.ClientID != 9 || r.AccommodationID != 4 || r.EstablishmentID != 2 {
		t.Errorf("ids = %d/%d/%d", r.ClientID, r.AccommodationID, r.EstablishmentID)
	}
	if r.Status != constants.ReservationStatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED", r.Status)
	}
	if r.Headcount != 3 {
		t.Errorf("headcount = %d, want capacity 3", r.Headcount)
	}
	if !r.TotalValue.Equal(decimal.RequireFromString("361")) {
		t.Errorf("total = %s, want 361", r.TotalValue)
	}
	if !r.PaidValue.IsZero() || r.Notes != "late arrival" {
		t.Errorf("paid=%s notes=%q", r.PaidValue, r.Notes)
	}
}

func TestReservationBuilderHeadcountOverride(t *testing.T) {
	two := 2
	r := NewReservationBuilder().
		WithHeadcount(&two).
		WithAccommodation(&models.Accommodation{Capacity: 4}).
		WithStatus(constants.ReservationStatusPending).
		Build()
	if r.Headcount != 2 || r.Status != constants.ReservationStatusPending {
		t.Errorf("headcount=%d status=%s", r.Headcount, r.Status)
	}

	r = NewReservationBuilder().WithAccommodation(&models.Accommodation{}).WithStatus("").Build()
	if r.Headcount != 1 || r.Status != constants.ReservationStatusConfirmed || !r.TotalValue.IsZero() {
		t.Errorf("defaults = %+v", r)
	}
}
