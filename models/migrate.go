package models

// All lists every persisted model in dependency order for AutoMigrate
func All() []interface{} {
	return []interface{}{
		&Establishment{},
		&AccommodationType{},
		&Accommodation{},
		&Client{},
		&Addon{},
		&Reservation{},
		&ReservationAddon{},
		&Payment{},
	}
}
