package dto

import (
	"time"

	"pousada/models"

	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	ReservationID uint            `json:"reservationId" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"paymentDate" binding:"required"`
	Method        string          `json:"method" binding:"required"`
	Status        string          `json:"status"`
	ReceiptURL    string          `json:"receiptUrl"`
	Notes         string          `json:"notes"`
}

type UpdatePaymentRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	PaymentDate *string          `json:"paymentDate"`
	Method      *string          `json:"method"`
	Status      *string          `json:"status"`
	ReceiptURL  *string          `json:"receiptUrl"`
	Notes       *string          `json:"notes"`
}

// ReservationRef is the reservation view embedded in payment responses
type ReservationRef struct {
	ID     uint                  `json:"id"`
	Code   string                `json:"code"`
	Status string                `json:"status"`
	Client *models.ClientSummary `json:"client,omitempty"`
}

type PaymentResponse struct {
	ID            uint            `json:"id"`
	ReservationID uint            `json:"reservationId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	ReceiptURL    string          `json:"receiptUrl"`
	Notes         string          `json:"notes"`
	Reservation   *ReservationRef `json:"reservation,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type ReceiptResponse struct {
	PaymentID  uint   `json:"paymentId"`
	ReceiptURL string `json:"receiptUrl"`
}

func NewPaymentResponse(p *models.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		Method:        p.Method,
		Status:        p.Status,
		ReceiptURL:    p.ReceiptURL,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if r := p.Reservation; r != nil {
		resp.Reservation = &ReservationRef{ID: r.ID, Code: r.Code, Status: r.Status, Client: clientSummary(r.Client)}
	}
	return resp
}

func NewPaymentResponses(payments []models.Payment) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i := range payments {
		out[i] = NewPaymentResponse(&payments[i])
	}
	return out
}
