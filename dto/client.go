package dto

type CreateClientRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Document    *string `json:"document"`
	IDCard      string  `json:"idCard"`
	BirthDate   *string `json:"birthDate"`
	Nationality string  `json:"nationality"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	ZipCode     string  `json:"zipCode"`
	Notes       string  `json:"notes"`
}

type UpdateClientRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Document    *string `json:"document"`
	IDCard      *string `json:"idCard"`
	BirthDate   *string `json:"birthDate"`
	Nationality *string `json:"nationality"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zipCode"`
	Notes       *string `json:"notes"`
}
