package validator

import (
	"regexp"
	"strings"
	"time"

	"pousada/errors"
	"pousada/models"

	playground "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var structValidator = playground.New()

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex    = regexp.MustCompile(`^[0-9]{10,11}$`)
	documentRegex = regexp.MustCompile(`^[0-9]{11}$`)
	colorRegex    = regexp.MustCompile(`^[a-z]+(-[a-z]+)*-[0-9]{2,3}$`)
	nonDigitRegex = regexp.MustCompile(`[^0-9]`)
)

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.InvalidArgument(field + " is required")
	}
	return nil
}

// ValidateEstablishment checks the fields a property must have
func ValidateEstablishment(e *models.Establishment) error {
	if err := required("name", e.Name); err != nil {
		return err
	}
	if err := required("address", e.Address); err != nil {
		return err
	}
	if err := required("city", e.City); err != nil {
		return err
	}
	if err := required("state", e.State); err != nil {
		return err
	}
	if e.Email != "" && !isValidEmail(e.Email) {
		return errors.InvalidArgument("invalid email")
	}
	if e.Phone != "" && !isValidPhone(e.Phone) {
		return errors.InvalidArgument("invalid phone")
	}
	if e.Color != "" && !colorRegex.MatchString(e.Color) {
		return errors.InvalidArgument("invalid color class")
	}
	if e.Status != "" {
		if err := e.ValidateStatus(); err != nil {
			return errors.InvalidArgument(err.Error())
		}
	}
	return nil
}

func ValidateAccommodation(a *models.Accommodation) error {
	if err := required("name", a.Name); err != nil {
		return err
	}
	if err := required("roomNumber", a.RoomNumber); err != nil {
		return err
	}
	if a.EstablishmentID == 0 {
		return errors.InvalidArgument("establishmentId is required")
	}
	if a.AccommodationTypeID == 0 {
		return errors.InvalidArgument("accommodationTypeId is required")
	}
	if a.Capacity < 1 {
		return errors.InvalidArgument("capacity must be at least 1")
	}
	if err := ValidateAmount("basePrice", a.BasePrice); err != nil {
		return err
	}
	if err := a.ValidateStatus(); err != nil {
		return errors.InvalidArgument(err.Error())
	}
	return nil
}

// ValidateClient runs the struct tags, then the Brazilian phone and CPF rules
func ValidateClient(c *models.Client) error {
	if err := structValidator.Struct(c); err != nil {
		if fieldErrs, ok := err.(playground.ValidationErrors); ok && len(fieldErrs) > 0 {
			return errors.InvalidArgument(describe(fieldErrs[0]))
		}
		return errors.InvalidArgument(err.Error())
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.InvalidArgument("name is required")
	}
	if c.Phone != "" && !isValidPhone(c.Phone) {
		return errors.InvalidArgument("invalid phone")
	}
	if c.Document != nil && !documentRegex.MatchString(DigitsOnly(*c.Document)) {
		return errors.InvalidArgument("document must have 11 digits")
	}
	return nil
}

func ValidateAddon(a *models.Addon) error {
	if err := required("name", a.Name); err != nil {
		return err
	}
	return ValidateAmount("price", a.Price)
}

// ValidateAmount rejects negative money values
func ValidateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.InvalidArgument(field + " cannot be negative")
	}
	return nil
}

// ValidateDateRange requires check-out strictly after check-in
func ValidateDateRange(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return errors.InvalidArgument("checkIn and checkOut are required")
	}
	if !checkIn.Before(checkOut) {
		return errors.InvalidArgument(errors.ErrInvalidDateRange.Error())
	}
	return nil
}

// DigitsOnly strips formatting such as dots, dashes and parentheses
func DigitsOnly(s string) string {
	return nonDigitRegex.ReplaceAllString(s, "")
}

func describe(fe playground.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "invalid email"
	}
	return "invalid " + field
}

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func isValidPhone(phone string) bool {
	return phoneRegex.MatchString(DigitsOnly(phone))
}
