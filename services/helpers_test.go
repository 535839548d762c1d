package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"pousada/config"
	"pousada/constants"
	"pousada/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory database migrated like production.
// One connection keeps the shared-cache database alive and serializes writes.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), config.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func day(s string) time.Time {
	t, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fixture is one establishment with two free rooms and a client
type fixture struct {
	db             *gorm.DB
	establishment  *models.Establishment
	roomType       *models.AccommodationType
	room           *models.Accommodation
	otherRoom      *models.Accommodation
	client         *models.Client
	accommodations *AccommodationService
	reservations   *ReservationService
	payments       *PaymentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := newTestDB(t)
	counter := NewInventoryCounter(nil)
	machine := NewStatusMachine(counter)
	f := &fixture{
		db: db,
		accommodations: NewAccommodationService(AccommodationServiceOptions{
			DB:      db,
			Counter: counter,
			Machine: machine,
		}),
		reservations: NewReservationService(ReservationServiceOptions{DB: db, Machine: machine}),
		payments:     NewPaymentService(PaymentServiceOptions{DB: db, Machine: machine}),
	}

	est, err := NewEstablishmentService(EstablishmentServiceOptions{DB: db}).Create(ctx, &models.Establishment{
		Name:    "Pousada Mar Azul",
		Address: "Rua das Flores 10",
		City:    "Paraty",
		State:   "RJ",
	})
	if err != nil {
		t.Fatalf("create establishment: %v", err)
	}
	f.establishment = est

	rt, err := NewAccommodationTypeService(db).Create(ctx, &models.AccommodationType{Name: "Suite"})
	if err != nil {
		t.Fatalf("create type: %v", err)
	}
	f.roomType = rt

	f.room = f.createRoom(t, est.ID, "101", "200")
	f.otherRoom = f.createRoom(t, est.ID, "102", "150")

	client, err := NewClientService(db).Create(ctx, &models.Client{Name: "Maria Souza", Email: "maria@example.com"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	f.client = client
	return f
}

func (f *fixture) createRoom(t *testing.T, establishmentID uint, number, price string) *models.Accommodation {
	t.Helper()
	acc, err := f.accommodations.Create(context.Background(), &models.Accommodation{
		Name:                "Quarto " + number,
		RoomNumber:          number,
		Capacity:            2,
		BasePrice:           dec(price),
		EstablishmentID:     establishmentID,
		AccommodationTypeID: f.roomType.ID,
	})
	if err != nil {
		t.Fatalf("create room %s: %v", number, err)
	}
	return acc
}

func (f *fixture) book(t *testing.T, room *models.Accommodation, in, out, status string) *models.Reservation {
	t.Helper()
	r, err := f.reservations.Create(context.Background(), CreateReservationInput{
		ClientID:        f.client.ID,
		AccommodationID: room.ID,
		EstablishmentID: room.EstablishmentID,
		CheckIn:         day(in),
		CheckOut:        day(out),
		Status:          status,
	})
	if err != nil {
		t.Fatalf("book %s %s..%s: %v", room.RoomNumber, in, out, err)
	}
	return r
}

func (f *fixture) roomStatus(t *testing.T, id uint) string {
	t.Helper()
	var acc models.Accommodation
	if err := f.db.First(&acc, id).Error; err != nil {
		t.Fatalf("load room %d: %v", id, err)
	}
	return acc.Status
}

func (f *fixture) counters(t *testing.T, id uint) (total, available int) {
	t.Helper()
	var est models.Establishment
	if err := f.db.First(&est, id).Error; err != nil {
		t.Fatalf("load establishment %d: %v", id, err)
	}
	return est.TotalRooms, est.AvailableRooms
}

func (f *fixture) reservation(t *testing.T, id uint) models.Reservation {
	t.Helper()
	var r models.Reservation
	if err := f.db.First(&r, id).Error; err != nil {
		t.Fatalf("load reservation %d: %v", id, err)
	}
	return r
}
