package notification

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// Nop drops every message
type Nop struct{}

func (Nop) SendMessage(string) error { return nil }

// Event types pushed to dashboard sockets
const (
	ReservationCreated  = "reservation.created"
	ReservationUpdated  = "reservation.updated"
	ReservationDeleted  = "reservation.deleted"
	PaymentRecorded     = "payment.recorded"
	PaymentUpdated      = "payment.updated"
	PaymentDeleted      = "payment.deleted"
	InventoryReconciled = "inventory.reconciled"
)

type Event struct {
	Type          string    `json:"type"`
	ReservationID uint      `json:"reservationId,omitempty"`
	Code          string    `json:"code,omitempty"`
	Status        string    `json:"status,omitempty"`
	At            time.Time `json:"at"`
}

type EventBuilder struct {
	event Event
}

func NewEventBuilder(eventType string) *EventBuilder {
	return &EventBuilder{event: Event{Type: eventType}}
}

func (b *EventBuilder) Reservation(id uint, code, status string) *EventBuilder {
	b.event.ReservationID = id
	b.event.Code = code
	b.event.Status = status
	return b
}

func (b *EventBuilder) Build() (string, error) {
	if b.event.At.IsZero() {
		b.event.At = time.Now().UTC()
	}
	data, err := json.Marshal(b.event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Publish builds the event and sends it, ignoring a nil service
func Publish(s Service, b *EventBuilder) error {
	if s == nil {
		return nil
	}
	msg, err := b.Build()
	if err != nil {
		return err
	}
	return s.SendMessage(msg)
}
