package services

import (
	"context"
	"time"

	"pousada/constants"
	apperrors "pousada/errors"
	"pousada/models"
	"pousada/services/logger"
	"pousada/services/notification"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecordPaymentInput struct {
	ReservationID uint
	Amount        decimal.Decimal
	PaymentDate   time.Time
	Method        string
	Status        string
	ReceiptURL    string
	Notes         string
}

type PaymentPatch struct {
	Amount      *decimal.Decimal
	PaymentDate *time.Time
	Method      *string
	Status      *string
	ReceiptURL  *string
	Notes       *string
}

type PaymentFilter struct {
	ReservationID uint
	Method        string
	Status        string
	From          *time.Time
	To            *time.Time
}

type PaymentService struct {
	db       *gorm.DB
	logger   logger.Logger
	machine  *StatusMachine
	notifier notification.Service
	cache    Cache
}

type PaymentServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Machine  *StatusMachine
	Notifier notification.Service
	Cache    Cache
}

func NewPaymentService(opts PaymentServiceOptions) *PaymentService {
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
	return &PaymentService{
		db:       opts.DB,
		logger:   opts.Logger,
		machine:  opts.Machine,
		notifier: opts.Notifier,
		cache:    opts.Cache,
	}
}

// Record stores a payment and adds it to the reservation's paid value,
// confirming the reservation once it is fully paid
func (s *PaymentService) Record(ctx context.Context, in RecordPaymentInput) (*models.Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, apperrors.InvalidArgument("amount must be greater than zero")
	}
	if in.PaymentDate.IsZero() {
		return nil, apperrors.InvalidArgument("payment date is required")
	}
	if in.Status == "" {
		in.Status = constants.PaymentStatusConfirmed
	}
	payment := &models.Payment{
		ReservationID: in.ReservationID,
		Amount:        in.Amount,
		PaymentDate:   in.PaymentDate,
		Method:        in.Method,
		Status:        in.Status,
		ReceiptURL:    in.ReceiptURL,
		Notes:         in.Notes,
	}
	if err := payment.ValidateMethod(); err != nil {
		return nil, apperrors.InvalidArgument(err.Error())
	}
	if err := payment.ValidateStatus(); err != nil {
		return nil, apperrors.InvalidArgument(err.Error())
	}

	var reservation models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockByID(tx, &reservation, in.ReservationID, "reservation not found"); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(payment).Error; err != nil {
			return storeError(err, "failed to record payment")
		}
		return s.settle(tx, &reservation, reservation.PaidValue.Add(payment.Amount))
	})
	if err != nil {
		return nil, storeError(err, "failed to record payment")
	}
	s.afterWrite(ctx, notification.PaymentRecorded, &reservation)
	return s.Get(ctx, payment.ID)
}

// Update edits a payment, applying any amount delta to the reservation
func (s *PaymentService) Update(ctx context.Context, id uint, patch PaymentPatch) (*models.Payment, error) {
	if patch.Amount != nil && !patch.Amount.IsPositive() {
		return nil, apperrors.InvalidArgument("amount must be greater than zero")
	}
	if patch.PaymentDate != nil && patch.PaymentDate.IsZero() {
		return nil, apperrors.InvalidArgument("payment date is required")
	}

	var reservation models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := findByID(tx, &payment, id, "payment not found"); err != nil {
			return err
		}
		if err := lockByID(tx, &reservation, payment.ReservationID, "reservation not found"); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		delta := decimal.Zero
		if patch.Amount != nil {
			delta = patch.Amount.Sub(payment.Amount)
			updates["amount"] = *patch.Amount
		}
		if patch.PaymentDate != nil {
			updates["payment_date"] = *patch.PaymentDate
		}
		if patch.Method != nil {
			payment.Method = *patch.Method
			if err := payment.ValidateMethod(); err != nil {
				return apperrors.InvalidArgument(err.Error())
			}
			updates["method"] = payment.Method
		}
		if patch.Status != nil {
			payment.Status = *patch.Status
			if err := payment.ValidateStatus(); err != nil {
				return apperrors.InvalidArgument(err.Error())
			}
			updates["status"] = payment.Status
		}
		if patch.ReceiptURL != nil {
			updates["receipt_url"] = *patch.ReceiptURL
		}
		if patch.Notes != nil {
			updates["notes"] = *patch.Notes
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Payment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return storeError(err, "failed to update payment")
			}
		}
		if delta.IsZero() {
			return nil
		}
		return s.settle(tx, &reservation, reservation.PaidValue.Add(delta))
	})
	if err != nil {
		return nil, storeError(err, "failed to update payment")
	}
	s.afterWrite(ctx, notification.PaymentUpdated, &reservation)
	return s.Get(ctx, id)
}

// Delete removes a payment and takes its amount off the paid value
func (s *PaymentService) Delete(ctx context.Context, id uint) error {
	var reservation models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := findByID(tx, &payment, id, "payment not found"); err != nil {
			return err
		}
		if err := lockByID(tx, &reservation, payment.ReservationID, "reservation not found"); err != nil {
			return err
		}
		if err := tx.Delete(&models.Payment{}, id).Error; err != nil {
			return storeError(err, "failed to delete payment")
		}
		return s.settle(tx, &reservation, reservation.PaidValue.Sub(payment.Amount))
	})
	if err != nil {
		return storeError(err, "failed to delete payment")
	}
	s.afterWrite(ctx, notification.PaymentDeleted, &reservation)
	return nil
}

// settle writes the new paid value and moves the reservation between
// PENDING and CONFIRMED when the paid threshold is crossed
func (s *PaymentService) settle(tx *gorm.DB, r *models.Reservation, paid decimal.Decimal) error {
	if paid.IsNegative() {
		s.logger.Warn("paid value of reservation %d floored at zero", r.ID)
		paid = decimal.Zero
	}
	wasPaid := r.IsFullyPaid()
	prevStatus := r.Status
	r.PaidValue = paid

	switch {
	case r.IsFullyPaid() && models.GetReservationState(r.Status).PromotesOnFullPayment():
		r.Status = constants.ReservationStatusConfirmed
	case wasPaid && !r.IsFullyPaid() && r.Status == constants.ReservationStatusConfirmed:
		r.Status = constants.ReservationStatusPending
	}

	err := tx.Model(&models.Reservation{}).Where("id = ?", r.ID).
		Updates(map[string]interface{}{"paid_value": r.PaidValue, "status": r.Status}).Error
	if err != nil {
		return storeError(err, "failed to update paid value")
	}
	if r.Status == prevStatus {
		return nil
	}
	var acc models.Accommodation
	if err := lockByID(tx, &acc, r.AccommodationID, "accommodation not found"); err != nil {
		return err
	}
	return s.machine.ApplyReservationStatus(tx, &acc, r.Status)
}

func (s *PaymentService) Get(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	err := s.db.WithContext(ctx).
		Preload("Reservation").
		Preload("Reservation.Client").
		First(&p, id).Error
	if err != nil {
		return nil, storeError(err, "payment not found")
	}
	return &p, nil
}

func (s *PaymentService) List(ctx context.Context, f PaymentFilter) ([]models.Payment, error) {
	q := s.db.WithContext(ctx).Model(&models.Payment{}).
		Preload("Reservation").
		Preload("Reservation.Client")
	if f.ReservationID != 0 {
		q = q.Where("reservation_id = ?", f.ReservationID)
	}
	if f.Method != "" {
		q = q.Where("method = ?", f.Method)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("payment_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("payment_date <= ?", *f.To)
	}
	var out []models.Payment
	if err := q.Order("payment_date DESC").Find(&out).Error; err != nil {
		return nil, storeError(err, "failed to list payments")
	}
	return out, nil
}

func (s *PaymentService) afterWrite(ctx context.Context, eventType string, r *models.Reservation) {
	invalidate(ctx, s.cache, s.logger, CacheKeyEstablishments, CacheKeyDashboardSummary)
	event := notification.NewEventBuilder(eventType).Reservation(r.ID, r.Code, r.Status)
	if err := notification.Publish(s.notifier, event); err != nil {
		s.logger.Warn("failed to publish %s: %v", eventType, err)
	}
}
