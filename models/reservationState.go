package models

import "pousada/constants"

// ReservationState describes how a reservation status drives its room and its payments
type ReservationState interface {
	// AccommodationStatus returns the room status the reservation status implies;
	// ok is false when the room status is left as it is.
	AccommodationStatus() (status string, ok bool)
	// PromotesOnFullPayment reports whether a fully paid reservation moves to CONFIRMED.
	PromotesOnFullPayment() bool
}

type PendingState struct{}

func (PendingState) AccommodationStatus() (string, bool) {
	return constants.AccommodationStatusReserved, true
}

func (PendingState) PromotesOnFullPayment() bool { return true }

type ConfirmedState struct{}

func (ConfirmedState) AccommodationStatus() (string, bool) {
	return constants.AccommodationStatusReserved, true
}

func (ConfirmedState) PromotesOnFullPayment() bool { return true }

type CheckInState struct{}

func (CheckInState) AccommodationStatus() (string, bool) {
	return constants.AccommodationStatusOccupied, true
}

func (CheckInState) PromotesOnFullPayment() bool { return false }

// CheckOutState leaves the room untouched until the stay is completed
type CheckOutState struct{}

func (CheckOutState) AccommodationStatus() (string, bool) {
	return "", false
}

func (CheckOutState) PromotesOnFullPayment() bool { return false }

type CompletedState struct{}

func (CompletedState) AccommodationStatus() (string, bool) {
	return constants.AccommodationStatusFree, true
}

func (CompletedState) PromotesOnFullPayment() bool { return false }

// CancelledState frees the room; payments never revive a cancelled booking
type CancelledState struct{}

func (CancelledState) AccommodationStatus() (string, bool) {
	return constants.AccommodationStatusFree, true
}

func (CancelledState) PromotesOnFullPayment() bool { return false }

// GetReservationState returns the state for a reservation status
func GetReservationState(status string) ReservationState {
	switch status {
	case constants.ReservationStatusPending:
		return PendingState{}
	case constants.ReservationStatusConfirmed:
		return ConfirmedState{}
	case constants.ReservationStatusCheckIn:
		return CheckInState{}
	case constants.ReservationStatusCheckOut:
		return CheckOutState{}
	case constants.ReservationStatusCompleted:
		return CompletedState{}
	case constants.ReservationStatusCancelled:
		return CancelledState{}
	default:
		return PendingState{}
	}
}

// AccommodationStatusFor is the reservation → room transition table
func AccommodationStatusFor(reservationStatus string) (string, bool) {
	return GetReservationState(reservationStatus).AccommodationStatus()
}
