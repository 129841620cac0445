package weather

import (
	"errors"
	"fmt"
)

// ErrLookupFailure matches every error returned by FetchTemperature.
// Use errors.As with the concrete types below to tell the causes apart.
var ErrLookupFailure = errors.New("weather lookup failed")

// NetworkError is returned when the request never produced a response
// (DNS failure, connection reset, timeout).
type NetworkError struct {
	City string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("Failed to fetch weather data for %s", e.City)
}

func (e *NetworkError) Unwrap() error { return e.Err }
func (e *NetworkError) Is(target error) bool { return target == ErrLookupFailure }

// StatusError is returned when the API answered with anything but 200.
type StatusError struct {
	City       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to fetch weather data for %s", e.City)
}

func (e *StatusError) Is(target error) bool { return target == ErrLookupFailure }

// ParseError is returned when the body is not a JSON object or the
// temperature is not a number.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "Failed to parse weather data" }

func (e *ParseError) Unwrap() error { return e.Err }
func (e *ParseError) Is(target error) bool { return target == ErrLookupFailure }

// MissingFieldError is returned when a required field is absent or null.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "Temperature data is missing in the response"
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrLookupFailure }
