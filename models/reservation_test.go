package models

import (
	"sync"
	"testing"
	"time"

	"pousada/constants"

	"github.com/shopspring/decimal"
	"gorm.io/gorm/schema"
)

func TestNights(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		out  time.Time
		want int
	}{
		{base, 0},
		{base.Add(-time.Hour), 0},
		{base.AddDate(0, 0, 1), 1},
		{base.AddDate(0, 0, 3), 3},
		{base.Add(26 * time.Hour), 2},
	}
	for _, tt := range tests {
		if got := Nights(base, tt.out); got != tt.want {
			t.Errorf("Nights(%v, %v) = %d, want %d", base, tt.out, got, tt.want)
		}
	}
}

func TestAccommodationStatusFor(t *testing.T) {
	tests := []struct {
		reservation string
		room        string
		ok          bool
	}{
		{constants.ReservationStatusPending, constants.AccommodationStatusReserved, true},
		{constants.ReservationStatusConfirmed, constants.AccommodationStatusReserved, true},
		{constants.ReservationStatusCheckIn, constants.AccommodationStatusOccupied, true},
		{constants.ReservationStatusCheckOut, "", false},
		{constants.ReservationStatusCompleted, constants.AccommodationStatusFree, true},
		{constants.ReservationStatusCancelled, constants.AccommodationStatusFree, true},
	}
	for _, tt := range tests {
		room, ok := AccommodationStatusFor(tt.reservation)
		if room != tt.room || ok != tt.ok {
			t.Errorf("AccommodationStatusFor(%s) = %q %v, want %q %v", tt.reservation, room, ok, tt.room, tt.ok)
		}
	}
}

func TestPromotesOnFullPayment(t *testing.T) {
	for status, want := range map[string]bool{
		constants.ReservationStatusPending:   true,
		constants.ReservationStatusConfirmed: true,
		constants.ReservationStatusCheckIn:   false,
		constants.ReservationStatusCancelled: false,
		constants.ReservationStatusCompleted: false,
	} {
		if got := GetReservationState(status).PromotesOnFullPayment(); got != want {
			t.Errorf("%s promotes = %v, want %v", status, got, want)
		}
	}
}

func TestReservationHelpers(t *testing.T) {
	r := Reservation{Status: constants.ReservationStatusCheckIn, TotalValue: decimal.NewFromInt(300), PaidValue: decimal.NewFromInt(300)}
	if !r.IsActive() || !r.IsFullyPaid() {
		t.Errorf("active=%v paid=%v", r.IsActive(), r.IsFullyPaid())
	}
	r.Status = constants.ReservationStatusCheckOut
	if r.IsActive() {
		t.Error("CHECK_OUT must not hold dates")
	}
	if IsReservationStatus("BOOKED") || !IsReservationStatus(constants.ReservationStatusCompleted) {
		t.Error("IsReservationStatus mismatch")
	}
}

func TestNewReservationCode(t *testing.T) {
	code, err := newReservationCode(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("code: %v", err)
	}
	if len(code) != 13 || code[:9] != "RES260310" {
		t.Errorf("code = %q, want RES260310 + 4 digits", code)
	}
}

func TestStringListValue(t *testing.T) {
	v, err := StringList{"wifi", "tv"}.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	var back StringList
	if err := back.Scan(v); err != nil {
		t.Fatalf("scan %v: %v", v, err)
	}
	if len(back) != 2 || back[0] != "wifi" || back[1] != "tv" {
		t.Errorf("round trip = %v", back)
	}
}

func TestModelsParse(t *testing.T) {
	cache := &sync.Map{}
	for _, m := range All() {
		if _, err := schema.Parse(m, cache, schema.NamingStrategy{}); err != nil {
			t.Errorf("parse %T: %v", m, err)
		}
	}

	s, err := schema.Parse(&Accommodation{}, cache, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parse accommodation: %v", err)
	}
	field := s.LookUpField("Amenities")
	if field == nil || field.DataType != "text" {
		t.Errorf("amenities field = %+v, want text data type", field)
	}
}
