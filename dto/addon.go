package dto

import "github.com/shopspring/decimal"

type CreateAddonRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type UpdateAddonRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// ReservationAddonRequest is the body of attach and quantity updates
type ReservationAddonRequest struct {
	Quantity int `json:"quantity"`
}
