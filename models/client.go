package models

import "time"

type Client struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null" validate:"required"`
	Email       string     `json:"email" validate:"omitempty,email"`
	Phone       string     `json:"phone"`
	Document    *string    `json:"document" gorm:"uniqueIndex"` // CPF, unique when present
	IDCard      string     `json:"idCard"`
	BirthDate   *time.Time `json:"birthDate"`
	Nationality string     `json:"nationality"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	State       string     `json:"state"`
	ZipCode     string     `json:"zipCode"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ClientSummary is the joined view embedded in reservation responses
type ClientSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
