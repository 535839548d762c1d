package services

import (
	"context"
	"testing"

	"pousada/constants"
	apperrors "pousada/errors"
	"pousada/models"

	"gorm.io/gorm"
)

func TestInventoryCounterClamps(t *testing.T) {
	f := newFixture(t)
	counter := NewInventoryCounter(nil)
	id := f.establishment.ID

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := counter.Increment(tx, id); err != nil {
			return err
		}
		return counter.Increment(tx, id)
	})
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if total, available := f.counters(t, id); total != 2 || available != 2 {
		t.Errorf("counters = %d/%d, want available clamped at 2", total, available)
	}

	err = f.db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < 4; i++ {
			if err := counter.Decrement(tx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if _, available := f.counters(t, id); available != 0 {
		t.Errorf("available = %d, want clamped at 0", available)
	}

	err = f.db.Transaction(func(tx *gorm.DB) error {
		return counter.Decrement(tx, 999)
	})
	if !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestReconcileFixesDrift(t *testing.T) {
	f := newFixture(t)
	if _, err := f.accommodations.SetStatus(context.Background(), f.otherRoom.ID, constants.AccommodationStatusMaintenance); err != nil {
		t.Fatalf("set status: %v", err)
	}
	err := f.db.Model(&models.Establishment{}).Where("id = ?", f.establishment.ID).
		UpdateColumns(map[string]interface{}{"total_rooms": 7, "available_rooms": 5}).Error
	if err != nil {
		t.Fatalf("corrupt counters: %v", err)
	}

	drifts, err := NewReconciler(f.db, nil).Reconcile(context.Background())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(drifts) != 1 {
		t.Fatalf("drifts = %+v, want 1", drifts)
	}
	d := drifts[0]
	if d.TotalRooms != 7 || d.AvailableRooms != 5 || d.ExpectedTotalRooms != 2 || d.ExpectedAvailableRooms != 1 {
		t.Errorf("drift = %+v", d)
	}
	if total, available := f.counters(t, f.establishment.ID); total != 2 || available != 1 {
		t.Errorf("counters = %d/%d, want 2/1", total, available)
	}

	again, err := NewReconciler(f.db, nil).Reconcile(context.Background())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second pass drifts = %+v, want none", again)
	}
}

func TestOverlapsIsInclusive(t *testing.T) {
	in, out := day("2026-03-10"), day("2026-03-13")
	tests := []struct {
		from, to string
		want     bool
	}{
		{"2026-03-01", "2026-03-09", false},
		{"2026-03-01", "2026-03-10", true},
		{"2026-03-11", "2026-03-12", true},
		{"2026-03-13", "2026-03-20", true},
		{"2026-03-14", "2026-03-20", false},
	}
	for _, tt := range tests {
		if got := Overlaps(in, out, day(tt.from), day(tt.to)); got != tt.want {
			t.Errorf("Overlaps(%s..%s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewAvailabilityService(f.db)
	r := f.book(t, f.room, "2026-03-10", "2026-03-13", "")

	ok, err := svc.IsAvailable(ctx, f.room.ID, day("2026-03-12"), day("2026-03-14"), nil)
	if err != nil || ok {
		t.Errorf("overlapping range: ok=%v err=%v, want unavailable", ok, err)
	}
	ok, err = svc.IsAvailable(ctx, f.room.ID, day("2026-03-12"), day("2026-03-14"), &r.ID)
	if err != nil || !ok {
		t.Errorf("excluding itself: ok=%v err=%v, want available", ok, err)
	}
	ok, err = svc.IsAvailable(ctx, f.room.ID, day("2026-03-14"), day("2026-03-16"), nil)
	if err != nil || !ok {
		t.Errorf("later range: ok=%v err=%v, want available", ok, err)
	}
	if _, err := svc.IsAvailable(ctx, f.room.ID, day("2026-03-14"), day("2026-03-14"), nil); !apperrors.HasCode(err, apperrors.ErrCodeInvalidArgument) {
		t.Errorf("err = %v, want INVALID_ARGUMENT", err)
	}
	if _, err := svc.IsAvailable(ctx, 999, day("2026-03-14"), day("2026-03-16"), nil); !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}
