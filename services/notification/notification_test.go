package notification

import (
	"testing"

	"github.com/goccy/go-json"
)

type recorder struct {
	messages []string
}

func (r *recorder) SendMessage(msg string) error {
	r.messages = append(r.messages, msg)
	return nil
}

func TestEventBuilder(t *testing.T) {
	msg, err := NewEventBuilder(ReservationCreated).Reservation(7, "RES2603100042", "CONFIRMED").Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var e Event
	if err := json.Unmarshal([]byte(msg), &e); err != nil {
		t.Fatalf("decode %s: %v", msg, err)
	}
	if e.Type != ReservationCreated || e.ReservationID != 7 || e.Code != "RES2603100042" || e.Status != "CONFIRMED" {
		t.Errorf("event = %+v", e)
	}
	if e.At.IsZero() {
		t.Error("event time not set")
	}
}

func TestPublish(t *testing.T) {
	r := &recorder{}
	if err := Publish(r, NewEventBuilder(InventoryReconciled)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(r.messages) != 1 {
		t.Fatalf("messages = %v", r.messages)
	}
	if err := Publish(nil, NewEventBuilder(InventoryReconciled)); err != nil {
		t.Errorf("nil service: %v", err)
	}
	if err := NewMelodyService(nil).SendMessage("x"); err == nil {
		t.Error("expected an error without a melody instance")
	}
}
