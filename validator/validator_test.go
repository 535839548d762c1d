package validator

import (
	"testing"
	"time"

	apperrors "pousada/errors"
	"pousada/models"

	"github.com/shopspring/decimal"
)

func TestValidateClient(t *testing.T) {
	doc := "123.456.789-01"
	short := "1234"
	tests := []struct {
		name   string
		client models.Client
		ok     bool
	}{
		{"minimal", models.Client{Name: "Ana"}, true},
		{"formatted document", models.Client{Name: "Ana", Document: &doc}, true},
		{"short document", models.Client{Name: "Ana", Document: &short}, false},
		{"missing name", models.Client{Email: "ana@example.com"}, false},
		{"bad email", models.Client{Name: "Ana", Email: "ana@"}, false},
		{"mobile phone", models.Client{Name: "Ana", Phone: "(21) 98765-4321"}, true},
		{"short phone", models.Client{Name: "Ana", Phone: "4321"}, false},
	}
	for _, tt := range tests {
		err := ValidateClient(&tt.client)
		if (err == nil) != tt.ok {
			t.Errorf("%s: err = %v, want ok=%v", tt.name, err, tt.ok)
		}
		if err != nil && !apperrors.HasCode(err, apperrors.ErrCodeInvalidArgument) {
			t.Errorf("%s: err = %v, want INVALID_ARGUMENT", tt.name, err)
		}
	}
}

func TestValidateClientMessages(t *testing.T) {
	err := ValidateClient(&models.Client{})
	if appErr := apperrors.GetAppError(err); appErr == nil || appErr.Message != "name is required" {
		t.Errorf("err = %v, want name is required", err)
	}
}

func TestValidateEstablishment(t *testing.T) {
	valid := models.Establishment{Name: "n", Address: "a", City: "c", State: "s", Email: "a@b.com", Color: "bg-emerald-200"}
	if err := ValidateEstablishment(&valid); err != nil {
		t.Errorf("valid: %v", err)
	}
	missingCity := valid
	missingCity.City = " "
	if err := ValidateEstablishment(&missingCity); err == nil {
		t.Error("missing city accepted")
	}
}

func TestValidateDateRangeAndAmount(t *testing.T) {
	in := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if err := ValidateDateRange(in, in.AddDate(0, 0, 1)); err != nil {
		t.Errorf("valid range: %v", err)
	}
	if err := ValidateDateRange(in, in); err == nil {
		t.Error("empty range accepted")
	}
	if err := ValidateDateRange(time.Time{}, in); err == nil {
		t.Error("zero check-in accepted")
	}
	if err := ValidateAmount("price", decimal.NewFromInt(-1)); err == nil {
		t.Error("negative amount accepted")
	}
	if got := DigitsOnly("(21) 98765-4321"); got != "21987654321" {
		t.Errorf("DigitsOnly = %q", got)
	}
}
