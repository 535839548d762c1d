package models

import (
	"fmt"
	"time"

	"pousada/constants"
)

type Establishment struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	ZipCode        string    `json:"zipCode"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Website        string    `json:"website"`
	Description    string    `json:"description"`
	TotalRooms     int       `json:"totalRooms" gorm:"not null;default:0"`
	AvailableRooms int       `json:"availableRooms" gorm:"not null;default:0"` // cached count of FREE accommodations
	Status         string    `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Color          string    `json:"color" gorm:"default:'bg-blue-100'"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (e *Establishment) ValidateStatus() error {
	switch e.Status {
	case constants.EstablishmentStatusActive, constants.EstablishmentStatusInactive:
		return nil
	}
	return fmt.Errorf("invalid status: %q, must be ACTIVE or INACTIVE", e.Status)
}

// EstablishmentSummary is the joined view embedded in other responses
type EstablishmentSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
