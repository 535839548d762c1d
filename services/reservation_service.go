package services

import (
	"context"
	"strings"
	"time"

	"pousada/builders"
	"pousada/constants"
	apperrors "pousada/errors"
	"pousada/models"
	"pousada/services/logger"
	"pousada/services/notification"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateReservationInput struct {
	ClientID        uint
	AccommodationID uint
	EstablishmentID uint
	CheckIn         time.Time
	CheckOut        time.Time
	Headcount       *int
	Status          string
	Notes           string
}

// ReservationPatch holds the fields an update may change; nil means keep
type ReservationPatch struct {
	AccommodationID *uint
	CheckIn         *time.Time
	CheckOut        *time.Time
	Headcount       *int
	TotalValue      *decimal.Decimal
	PaidValue       *decimal.Decimal
	Status          *string
	Notes           *string
}

type ReservationFilter struct {
	EstablishmentID uint
	ClientID        uint
	AccommodationID uint
	Status          string
	CheckInFrom     *time.Time
	CheckOutTo      *time.Time
	Search          string
}

type ReservationService struct {
	db       *gorm.DB
	logger   logger.Logger
	machine  *StatusMachine
	notifier notification.Service
	cache    Cache
	now      func() time.Time
}

type ReservationServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Machine  *StatusMachine
	Notifier notification.Service
	Cache    Cache
}

func NewReservationService(opts ReservationServiceOptions) *ReservationService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.Machine == nil {
		opts.Machine = NewStatusMachine(NewInventoryCounter(opts.Logger))
	}
	if opts.Notifier == nil {
		opts.Notifier = notification.Nop{}
	}
	if opts.Cache == nil {
		opts.Cache = NopCache{}
	}
	return &ReservationService{
		db:       opts.DB,
		logger:   opts.Logger,
		machine:  opts.Machine,
		notifier: opts.Notifier,
		cache:    opts.Cache,
		now:      time.Now,
	}
}

// Create books a room for a client. The room row is locked before the
// overlap check so concurrent bookings of one room serialize.
func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	if !in.CheckIn.Before(in.CheckOut) {
		return nil, apperrors.InvalidArgument(apperrors.ErrInvalidDateRange.Error())
	}
	status := in.Status
	if status == "" {
		status = constants.ReservationStatusConfirmed
	}
	if !models.IsActiveReservationStatus(status) {
		return nil, apperrors.InvalidArgument("a new reservation must be PENDING, CONFIRMED or CHECK_IN")
	}
	if in.Headcount != nil && *in.Headcount < 1 {
		return nil, apperrors.InvalidArgument("headcount must be at least 1")
	}

	var id uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := findByID(tx, &client, in.ClientID, "client not found"); err != nil {
			return err
		}
		var acc models.Accommodation
		if err := lockByID(tx, &acc, in.AccommodationID, "accommodation not found"); err != nil {
			return err
		}
		var est models.Establishment
		if err := findByID(tx, &est, in.EstablishmentID, "establishment not found"); err != nil {
			return err
		}
		if acc.EstablishmentID != est.ID {
			return apperrors.InvalidArgument("accommodation does not belong to the establishment")
		}
		if err := ensureAvailable(tx, acc.ID, in.CheckIn, in.CheckOut, nil); err != nil {
			return err
		}

		reservation := builders.NewReservationBuilder().
			WithClient(client.ID).
			WithHeadcount(in.Headcount).
			WithAccommodation(&acc).
			WithStay(in.CheckIn, in.CheckOut).
			WithStatus(status).
			WithNotes(in.Notes).
			Build()
		if err := tx.Omit(clause.Associations).Create(reservation).Error; err != nil {
			return storeError(err, "failed to create reservation")
		}
		id = reservation.ID
		return s.machine.ApplyReservationStatus(tx, &acc, status)
	})
	if err != nil {
		return nil, storeError(err, "failed to create reservation")
	}

	created, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, notification.ReservationCreated, created)
	s.logger.Info("reservation %s created for accommodation %d", created.Code, created.AccommodationID)
	return created, nil
}

// Update applies the patch, re-checking availability whenever the room,
// the dates, or a return to an active status could create an overlap
func (s *ReservationService) Update(ctx context.Context, id uint, patch ReservationPatch) (*models.Reservation, error) {
	if patch.Status != nil && !models.IsReservationStatus(*patch.Status) {
		return nil, apperrors.InvalidArgument("invalid reservation status: " + *patch.Status)
	}
	if patch.Headcount != nil && *patch.Headcount < 1 {
		return nil, apperrors.InvalidArgument("headcount must be at least 1")
	}
	if patch.TotalValue != nil && patch.TotalValue.IsNegative() {
		return nil, apperrors.InvalidArgument("total value cannot be negative")
	}
	if patch.PaidValue != nil && patch.PaidValue.IsNegative() {
		return nil, apperrors.InvalidArgument("paid value cannot be negative")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Reservation
		if err := lockByID(tx, &r, id, "reservation not found"); err != nil {
			return err
		}

		checkIn, checkOut := r.CheckIn, r.CheckOut
		if patch.CheckIn != nil {
			checkIn = *patch.CheckIn
		}
		if patch.CheckOut != nil {
			checkOut = *patch.CheckOut
		}
		if !checkIn.Before(checkOut) {
			return apperrors.InvalidArgument(apperrors.ErrInvalidDateRange.Error())
		}
		newStatus := r.Status
		if patch.Status != nil {
			newStatus = *patch.Status
		}
		roomChanged := patch.AccommodationID != nil && *patch.AccommodationID != r.AccommodationID
		datesChanged := !checkIn.Equal(r.CheckIn) || !checkOut.Equal(r.CheckOut)

		current, target, err := s.lockRooms(tx, r.AccommodationID, patch.AccommodationID, roomChanged)
		if err != nil {
			return err
		}

		if models.IsActiveReservationStatus(newStatus) && (roomChanged || datesChanged || !r.IsActive()) {
			if err := ensureAvailable(tx, target.ID, checkIn, checkOut, &r.ID); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"check_in":  checkIn,
			"check_out": checkOut,
			"status":    newStatus,
		}
		if roomChanged {
			updates["accommodation_id"] = target.ID
			updates["establishment_id"] = target.EstablishmentID
		}
		if patch.Headcount != nil {
			updates["headcount"] = *patch.Headcount
		}
		if patch.TotalValue != nil {
			updates["total_value"] = *patch.TotalValue
		}
		if patch.PaidValue != nil {
			updates["paid_value"] = *patch.PaidValue
		}
		if patch.Notes != nil {
			updates["notes"] = *patch.Notes
		}
		if err := tx.Model(&models.Reservation{}).Where("id = ?", r.ID).Updates(updates).Error; err != nil {
			return storeError(err, "failed to update reservation")
		}

		if roomChanged {
			held := current.Status
			if holdsRoom(r.Status) {
				if err := s.machine.SetStatus(tx, current, constants.AccommodationStatusFree); err != nil {
					return err
				}
			}
			if !holdsRoom(newStatus) {
				return nil
			}
			status, ok := models.AccommodationStatusFor(newStatus)
			if !ok {
				status = held
			}
			return s.machine.SetStatus(tx, target, status)
		}
		// a released room may already belong to another stay
		if newStatus != r.Status && (holdsRoom(r.Status) || holdsRoom(newStatus)) {
			return s.machine.ApplyReservationStatus(tx, current, newStatus)
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err, "failed to update reservation")
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, notification.ReservationUpdated, updated)
	return updated, nil
}

// lockRooms locks the current room and, on a move, the target room in id order
func (s *ReservationService) lockRooms(tx *gorm.DB, currentID uint, targetID *uint, moving bool) (*models.Accommodation, *models.Accommodation, error) {
	current := &models.Accommodation{}
	if !moving {
		if err := lockByID(tx, current, currentID, "accommodation not found"); err != nil {
			return nil, nil, err
		}
		return current, current, nil
	}

	target := &models.Accommodation{}
	first, second := current, target
	firstID, secondID := currentID, *targetID
	if secondID < firstID {
		first, second = target, current
		firstID, secondID = secondID, firstID
	}
	if err := lockByID(tx, first, firstID, "accommodation not found"); err != nil {
		return nil, nil, err
	}
	if err := lockByID(tx, second, secondID, "accommodation not found"); err != nil {
		return nil, nil, err
	}
	return current, target, nil
}

// Cancel moves the reservation to CANCELLED; cancelling twice is a no-op
func (s *ReservationService) Cancel(ctx context.Context, id uint) (*models.Reservation, error) {
	status := constants.ReservationStatusCancelled
	return s.Update(ctx, id, ReservationPatch{Status: &status})
}

// Delete removes a reservation that has no payments, together with its
// add-ons, and sets the room back to FREE whatever its status was
func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	var deleted models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockByID(tx, &deleted, id, "reservation not found"); err != nil {
			return err
		}
		paid, err := exists(tx, &models.Payment{}, "reservation_id = ?", id)
		if err != nil {
			return err
		}
		if paid {
			return apperrors.Conflict("reservation has payments and cannot be deleted")
		}
		if err := tx.Where("reservation_id = ?", id).Delete(&models.ReservationAddon{}).Error; err != nil {
			return storeError(err, "failed to delete reservation add-ons")
		}
		if err := tx.Delete(&models.Reservation{}, id).Error; err != nil {
			return storeError(err, "failed to delete reservation")
		}
		var acc models.Accommodation
		if err := lockByID(tx, &acc, deleted.AccommodationID, "accommodation not found"); err != nil {
			return err
		}
		return s.machine.SetStatus(tx, &acc, constants.AccommodationStatusFree)
	})
	if err != nil {
		return storeError(err, "failed to delete reservation")
	}
	s.afterWrite(ctx, notification.ReservationDeleted, &deleted)
	return nil
}

// holdsRoom reports whether a reservation in status still occupies its room
func holdsRoom(status string) bool {
	return models.IsActiveReservationStatus(status) || status == constants.ReservationStatusCheckOut
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	var r models.Reservation
	err := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Accommodation").
		Preload("Accommodation.AccommodationType").
		Preload("Establishment").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_date DESC") }).
		Preload("Addons").
		Preload("Addons.Addon").
		First(&r, id).Error
	if err != nil {
		return nil, storeError(err, "reservation not found")
	}
	return &r, nil
}

func (s *ReservationService) List(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	var out []models.Reservation
	err := s.filtered(s.db.WithContext(ctx), f).
		Order("reservations.check_in DESC").
		Find(&out).Error
	if err != nil {
		return nil, storeError(err, "failed to list reservations")
	}
	return out, nil
}

// History lists stays whose check-out is already in the past
func (s *ReservationService) History(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	today := startOfDay(s.now())
	var out []models.Reservation
	err := s.filtered(s.db.WithContext(ctx), f).
		Where("reservations.check_out < ?", today).
		Order("reservations.check_out DESC").
		Find(&out).Error
	if err != nil {
		return nil, storeError(err, "failed to list reservation history")
	}
	return out, nil
}

func (s *ReservationService) filtered(db *gorm.DB, f ReservationFilter) *gorm.DB {
	q := db.Model(&models.Reservation{}).
		Select("reservations.*").
		Joins("LEFT JOIN clients ON clients.id = reservations.client_id").
		Preload("Client").
		Preload("Accommodation").
		Preload("Establishment")
	if f.EstablishmentID != 0 {
		q = q.Where("reservations.establishment_id = ?", f.EstablishmentID)
	}
	if f.ClientID != 0 {
		q = q.Where("reservations.client_id = ?", f.ClientID)
	}
	if f.AccommodationID != 0 {
		q = q.Where("reservations.accommodation_id = ?", f.AccommodationID)
	}
	if f.Status != "" {
		q = q.Where("reservations.status = ?", f.Status)
	}
	if f.CheckInFrom != nil {
		q = q.Where("reservations.check_in >= ?", *f.CheckInFrom)
	}
	if f.CheckOutTo != nil {
		q = q.Where("reservations.check_out <= ?", *f.CheckOutTo)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(reservations.code) LIKE ? OR LOWER(clients.name) LIKE ? OR LOWER(clients.email) LIKE ? OR clients.phone LIKE ?",
			like, like, like, like)
	}
	return q
}

// CompleteCheckedOut closes CHECK_OUT stays that ended before cutoff
func (s *ReservationService) CompleteCheckedOut(ctx context.Context, cutoff time.Time) (int, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("status = ? AND check_out < ?", constants.ReservationStatusCheckOut, cutoff).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return 0, storeError(err, "failed to list checked-out reservations")
	}

	completed := constants.ReservationStatusCompleted
	n := 0
	for _, id := range ids {
		if _, err := s.Update(ctx, id, ReservationPatch{Status: &completed}); err != nil {
			s.logger.Error("failed to complete reservation %d: %v", id, err)
			continue
		}
		n++
	}
	return n, nil
}

func (s *ReservationService) afterWrite(ctx context.Context, eventType string, r *models.Reservation) {
	invalidate(ctx, s.cache, s.logger, CacheKeyEstablishments, CacheKeyDashboardSummary)
	event := notification.NewEventBuilder(eventType).Reservation(r.ID, r.Code, r.Status)
	if err := notification.Publish(s.notifier, event); err != nil {
		s.logger.Warn("failed to publish %s: %v", eventType, err)
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
