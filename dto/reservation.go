package dto

import (
	"time"

	"pousada/models"

	"github.com/shopspring/decimal"
)

type CreateReservationRequest struct {
	ClientID        uint   `json:"clientId" binding:"required"`
	AccommodationID uint   `json:"accommodationId" binding:"required"`
	EstablishmentID uint   `json:"establishmentId" binding:"required"`
	CheckIn         string `json:"checkIn" binding:"required"`
	CheckOut        string `json:"checkOut" binding:"required"`
	Headcount       *int   `json:"headcount"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

type UpdateReservationRequest struct {
	AccommodationID *uint            `json:"accommodationId"`
	CheckIn         *string          `json:"checkIn"`
	CheckOut        *string          `json:"checkOut"`
	Headcount       *int             `json:"headcount"`
	TotalValue      *decimal.Decimal `json:"totalValue"`
	PaidValue       *decimal.Decimal `json:"paidValue"`
	Status          *string          `json:"status"`
	Notes           *string          `json:"notes"`
}

type ReservationAddonResponse struct {
	AddonID   uint            `json:"addonId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type ReservationResponse struct {
	ID              uint                         `json:"id"`
	Code            string                       `json:"code"`
	ClientID        uint                         `json:"clientId"`
	AccommodationID uint                         `json:"accommodationId"`
	EstablishmentID uint                         `json:"establishmentId"`
	CheckIn         time.Time                    `json:"checkIn"`
	CheckOut        time.Time                    `json:"checkOut"`
	Nights          int                          `json:"nights"`
	Headcount       int                          `json:"headcount"`
	TotalValue      decimal.Decimal              `json:"totalValue"`
	PaidValue       decimal.Decimal              `json:"paidValue"`
	Balance         decimal.Decimal              `json:"balance"`
	Status          string                       `json:"status"`
	Notes           string                       `json:"notes"`
	Client          *models.ClientSummary        `json:"client,omitempty"`
	Accommodation   *models.AccommodationSummary `json:"accommodation,omitempty"`
	Establishment   *models.EstablishmentSummary `json:"establishment,omitempty"`
	Addons          []ReservationAddonResponse   `json:"addons,omitempty"`
	Payments        []PaymentResponse            `json:"payments,omitempty"`
	CreatedAt       time.Time                    `json:"createdAt"`
	UpdatedAt       time.Time                    `json:"updatedAt"`
}

func NewReservationResponse(r *models.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:              r.ID,
		Code:            r.Code,
		ClientID:        r.ClientID,
		AccommodationID: r.AccommodationID,
		EstablishmentID: r.EstablishmentID,
		CheckIn:         r.CheckIn,
		CheckOut:        r.CheckOut,
		Nights:          models.Nights(r.CheckIn, r.CheckOut),
		Headcount:       r.Headcount,
		TotalValue:      r.TotalValue,
		PaidValue:       r.PaidValue,
		Balance:         r.TotalValue.Sub(r.PaidValue),
		Status:          r.Status,
		Notes:           r.Notes,
		Client:          clientSummary(r.Client),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if a := r.Accommodation; a != nil {
		resp.Accommodation = &models.AccommodationSummary{ID: a.ID, Name: a.Name, RoomNumber: a.RoomNumber, Capacity: a.Capacity}
	}
	if e := r.Establishment; e != nil {
		resp.Establishment = &models.EstablishmentSummary{ID: e.ID, Name: e.Name}
	}
	for i := range r.Addons {
		resp.Addons = append(resp.Addons, NewReservationAddonResponse(&r.Addons[i]))
	}
	for i := range r.Payments {
		resp.Payments = append(resp.Payments, NewPaymentResponse(&r.Payments[i]))
	}
	return resp
}

func NewReservationResponses(reservations []models.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, len(reservations))
	for i := range reservations {
		out[i] = NewReservationResponse(&reservations[i])
	}
	return out
}

func NewReservationAddonResponse(line *models.ReservationAddon) ReservationAddonResponse {
	resp := ReservationAddonResponse{
		AddonID:   line.AddonID,
		Quantity:  line.Quantity,
		LineTotal: line.LineTotal,
	}
	if line.Addon != nil {
		resp.Name = line.Addon.Name
		resp.UnitPrice = line.Addon.Price
	}
	return resp
}

func clientSummary(c *models.Client) *models.ClientSummary {
	if c == nil {
		return nil
	}
	return &models.ClientSummary{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}
