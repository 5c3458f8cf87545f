package errors

import "fmt"

// ValidationError reports a raw input field that is missing, non-numeric or
// outside its declared physical range.
type ValidationError struct {
	Field    string
	ErrorMsg string
}

func (m *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", m.Field, m.ErrorMsg)
}

// DegenerateMixError reports a mix whose engineered ratios have a zero
// denominator. Such a mix is outside the model's domain.
type DegenerateMixError struct {
	ErrorMsg string
}

func (m *DegenerateMixError) Error() string {
	return m.ErrorMsg
}

// ModelUnavailableError reports that the trained artifact is missing or
// corrupt. The service must refuse traffic instead of serving predictions.
type ModelUnavailableError struct {
	ErrorMsg string
}

func (m *ModelUnavailableError) Error() string {
	return m.ErrorMsg
}
