package validation

import (
	"fmt"
	"unicode/utf8"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/apperrors"
)

// Validator accumulates field-level problems so a bad payload reports
// everything wrong at once instead of one field per round-trip.
type Validator struct {
	fields map[string]string
}

func New() *Validator {
	return &Validator{fields: make(map[string]string)}
}

func (v *Validator) add(field, msg string) {
	// Keep the first problem reported per field.
	if _, ok := v.fields[field]; !ok {
		v.fields[field] = msg
	}
}

func (v *Validator) Required(field, value string) {
	if value == "" {
		v.add(field, "is required")
	}
}

func (v *Validator) LenBetween(field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		v.add(field, fmt.Sprintf("length must be between %d and %d", min, max))
	}
}

func (v *Validator) LenExact(field, value string, length int) {
	if utf8.RuneCountInString(value) != length {
		v.add(field, fmt.Sprintf("length must be exactly %d", length))
	}
}

func (v *Validator) OneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.add(field, fmt.Sprintf("must be one of %v", allowed))
}

func (v *Validator) LatLng(latField string, lat float64, lngField string, lng float64) {
	if lat < -90 || lat > 90 {
		v.add(latField, "must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		v.add(lngField, "must be between -180 and 180")
	}
}

// Err returns the accumulated ValidationError, or nil when the payload is
// clean.
func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &apperrors.ValidationError{Fields: v.fields}
}
