package dto

import "github.com/shopspring/decimal"

type CreateAccommodationRequest struct {
	Name                string          `json:"name" binding:"required"`
	RoomNumber          string          `json:"roomNumber" binding:"required"`
	Capacity            int             `json:"capacity"`
	BasePrice           decimal.Decimal `json:"basePrice"`
	Status              string          `json:"status"`
	Description         string          `json:"description"`
	Amenities           []string        `json:"amenities"`
	ImageURL            string          `json:"imageUrl"`
	EstablishmentID     uint            `json:"establishmentId" binding:"required"`
	AccommodationTypeID uint            `json:"accommodationTypeId" binding:"required"`
}

type UpdateAccommodationRequest struct {
	Name                *string          `json:"name"`
	RoomNumber          *string          `json:"roomNumber"`
	Capacity            *int             `json:"capacity"`
	BasePrice           *decimal.Decimal `json:"basePrice"`
	Status              *string          `json:"status"`
	Description         *string          `json:"description"`
	Amenities           *[]string        `json:"amenities"`
	ImageURL            *string          `json:"imageUrl"`
	EstablishmentID     *uint            `json:"establishmentId"`
	AccommodationTypeID *uint            `json:"accommodationTypeId"`
}

type AccommodationTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type AvailabilityResponse struct {
	AccommodationID uint   `json:"accommodationId"`
	CheckIn         string `json:"checkIn"`
	CheckOut        string `json:"checkOut"`
	Available       bool   `json:"available"`
}
