package validator

import (
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"gigflow_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

func (v *Validator) registerCustomRules() {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.validate.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'gig_status': one of the gig lifecycle statuses
	mustRegister("gig_status", validateGigStatus)

	// 'not_past_date': a date no earlier than today
	mustRegister("not_past_date", v.validateNotPastDate)

	// 'money': a positive amount that fits NUMERIC(12,2)
	mustRegister("money", validateMoney)
}

// Bounds of a NUMERIC(12,2) column holding a positive amount.
const (
	MinMoney = 0.01
	MaxMoney = 9999999999.99
)

func validateMoney(fl validator.FieldLevel) bool {
	amount := fl.Field().Float()
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return false
	}
	if amount < MinMoney || amount > MaxMoney {
		return false
	}
	// The shortest decimal form of a JSON number is the number as sent.
	text := strconv.FormatFloat(amount, 'f', -1, 64)
	if dot := strings.IndexByte(text, '.'); dot >= 0 && len(text)-dot-1 > 2 {
		return false
	}
	return true
}

func validateGigStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empty
	}
	return models.GigStatus(value).Valid()
}

// validateNotPastDate compares calendar days in UTC, so a deadline of today
// passes at any time of day.
func (v *Validator) validateNotPastDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	if t.IsZero() {
		return true
	}
	return !StartOfDay(t).Before(StartOfDay(v.now()))
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
