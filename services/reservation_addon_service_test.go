package services

import (
	"context"
	"testing"

	apperrors "pousada/errors"
	"pousada/models"
)

func TestReservationAddonsAdjustTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.book(t, f.room, "2026-03-10", "2026-03-13", "")
	catalogue := NewAddonService(f.db)
	lines := NewReservationAddonService(ReservationAddonServiceOptions{DB: f.db})

	breakfast, err := catalogue.Create(ctx, &models.Addon{Name: "Café da manhã", Price: dec("25")})
	if err != nil {
		t.Fatalf("create addon: %v", err)
	}

	line, err := lines.Add(ctx, r.ID, breakfast.ID, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !line.LineTotal.Equal(dec("50")) || line.Addon == nil {
		t.Errorf("line = %+v, want 50 with addon", line)
	}
	if got := f.reservation(t, r.ID).TotalValue; !got.Equal(dec("650")) {
		t.Errorf("total = %s, want 650", got)
	}

	if _, err := lines.Add(ctx, r.ID, breakfast.ID, 1); !apperrors.HasCode(err, apperrors.ErrCodeConflict) {
		t.Errorf("err = %v, want CONFLICT for duplicate addon", err)
	}

	price := dec("30")
	if _, err := catalogue.Update(ctx, breakfast.ID, nil, nil, &price); err != nil {
		t.Fatalf("reprice: %v", err)
	}
	line, err = lines.UpdateQuantity(ctx, r.ID, breakfast.ID, 3)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if !line.LineTotal.Equal(dec("90")) || line.Quantity != 3 {
		t.Errorf("line = %+v, want 3 x 30", line)
	}
	if got := f.reservation(t, r.ID).TotalValue; !got.Equal(dec("690")) {
		t.Errorf("total = %s, want 690", got)
	}

	attached, err := lines.List(ctx, r.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(attached) != 1 || attached[0].Addon == nil || attached[0].Addon.Name != "Café da manhã" {
		t.Errorf("attached = %+v", attached)
	}

	if err := catalogue.Delete(ctx, breakfast.ID); !apperrors.HasCode(err, apperrors.ErrCodeConflict) {
		t.Errorf("err = %v, want CONFLICT while attached", err)
	}

	if err := lines.Remove(ctx, r.ID, breakfast.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := f.reservation(t, r.ID).TotalValue; !got.Equal(dec("600")) {
		t.Errorf("total = %s, want 600", got)
	}
	if err := lines.Remove(ctx, r.ID, breakfast.ID); !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
	if err := catalogue.Delete(ctx, breakfast.ID); err != nil {
		t.Errorf("delete detached addon: %v", err)
	}
}

func TestReservationAddonValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.book(t, f.room, "2026-03-10", "2026-03-13", "")
	lines := NewReservationAddonService(ReservationAddonServiceOptions{DB: f.db})

	if _, err := lines.Add(ctx, r.ID, 999, 1); !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("unknown addon: err = %v, want NOT_FOUND", err)
	}
	if _, err := lines.Add(ctx, 999, 1, 1); !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("unknown reservation: err = %v, want NOT_FOUND", err)
	}
	if _, err := lines.Add(ctx, r.ID, 1, -2); !apperrors.HasCode(err, apperrors.ErrCodeInvalidArgument) {
		t.Errorf("negative quantity: err = %v, want INVALID_ARGUMENT", err)
	}
	if _, err := lines.List(ctx, 999); !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("list unknown reservation: err = %v, want NOT_FOUND", err)
	}
	if _, err := NewAddonService(f.db).Create(ctx, &models.Addon{Name: "Late checkout", Price: dec("-1")}); !apperrors.HasCode(err, apperrors.ErrCodeInvalidArgument) {
		t.Errorf("negative price: err = %v, want INVALID_ARGUMENT", err)
	}
}
