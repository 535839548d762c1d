package constants

// Establishment status
const (
	EstablishmentStatusActive   = "ACTIVE"
	EstablishmentStatusInactive = "INACTIVE"
)

// Accommodation status
const (
	AccommodationStatusFree        = "FREE"
	AccommodationStatusOccupied    = "OCCUPIED"
	AccommodationStatusReserved    = "RESERVED"
	AccommodationStatusMaintenance = "MAINTENANCE"
	AccommodationStatusCleaning    = "CLEANING"
)

// Reservation status
const (
	ReservationStatusPending   = "PENDING"
	ReservationStatusConfirmed = "CONFIRMED"
	ReservationStatusCheckIn   = "CHECK_IN"
	ReservationStatusCheckOut  = "CHECK_OUT"
	ReservationStatusCompleted = "COMPLETED"
	ReservationStatusCancelled = "CANCELLED"
)

// Payment status
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusConfirmed = "CONFIRMED"
	PaymentStatusCancelled = "CANCELLED"
	PaymentStatusRefunded  = "REFUNDED"
)

// Payment method
const (
	PaymentMethodPix          = "PIX"
	PaymentMethodCreditCard   = "CREDIT_CARD"
	PaymentMethodDebitCard    = "DEBIT_CARD"
	PaymentMethodCash         = "CASH"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
)

// User roles
const (
	RoleAdmin   = "admin"
	RoleManager = "gerente"
	RoleUser    = "user"
)

// ActiveReservationStatuses are the statuses that hold a room for their date range
var ActiveReservationStatuses = []string{
	ReservationStatusPending,
	ReservationStatusConfirmed,
	ReservationStatusCheckIn,
}

const DateLayout = "2006-01-02"
